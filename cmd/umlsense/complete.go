package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"umlsense/internal/diagfmt"
	"umlsense/internal/diagram"
	"umlsense/internal/host"
	"umlsense/internal/intellisense"
	"umlsense/internal/source"
)

var completeCmd = &cobra.Command{
	Use:   "complete [flags] <file.puml|-> --line N --col N",
	Short: "Print completion suggestions at a position",
	Long: `Complete prints what the grammar accepts at the given position, merged
with macro and variable suggestions. Line and column are 1-based.`,
	Args: cobra.ExactArgs(1),
	RunE: runComplete,
}

func init() {
	completeCmd.Flags().Int("line", 1, "1-based line of the caret")
	completeCmd.Flags().Int("col", 1, "1-based column of the caret, in characters")
	completeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	completeCmd.Flags().Bool("signature", false, "print macro signature help instead of suggestions")
	completeCmd.Flags().StringSlice("connectors", nil, "override the connector list")
}

func runComplete(cmd *cobra.Command, args []string) error {
	line, err := cmd.Flags().GetInt("line")
	if err != nil {
		return fmt.Errorf("failed to get line flag: %w", err)
	}
	col, err := cmd.Flags().GetInt("col")
	if err != nil {
		return fmt.Errorf("failed to get col flag: %w", err)
	}
	if line < 1 || col < 1 {
		return fmt.Errorf("--line and --col are 1-based, got %d:%d", line, col)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	signature, err := cmd.Flags().GetBool("signature")
	if err != nil {
		return fmt.Errorf("failed to get signature flag: %w", err)
	}
	connectors, err := cmd.Flags().GetStringSlice("connectors")
	if err != nil {
		return fmt.Errorf("failed to get connectors flag: %w", err)
	}

	_, doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}
	pos := source.Position{Line: line - 1, Character: col - 1}
	ctx := cmd.Context()

	opts := cfg.HostOptions()
	if len(connectors) > 0 {
		opts.Completion.Synth.Connectors = connectors
	}
	h := host.New(opts)
	out := cmd.OutOrStdout()

	if signature {
		help, ok := h.SignatureHelp(ctx, doc, pos)
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), "no macro call at caret")
			return nil
		}
		if format == "json" {
			return diagfmt.FormatSignatureJSON(out, help)
		}
		return diagfmt.FormatSignaturePretty(out, help, useColor(cmd, os.Stdout))
	}

	var items []intellisense.Suggestion
	timer.Track("complete", func() string {
		items = h.ProvideCompletions(ctx, doc, pos)
		return fmt.Sprintf("%d suggestions", len(items))
	})

	switch format {
	case "pretty":
		return diagfmt.FormatSuggestionsPretty(out, items, useColor(cmd, os.Stdout))
	case "json":
		block := diagram.Locate(ctx, doc, pos)
		title := ""
		if !block.Empty() {
			title = block.Title
		}
		return diagfmt.FormatSuggestionsJSON(out, diagfmt.CompletionOutput{
			Block:       title,
			Line:        line,
			Column:      col,
			Suggestions: diagfmt.BuildSuggestions(items),
		})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
