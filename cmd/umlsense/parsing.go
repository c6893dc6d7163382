package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"umlsense/internal/cst"
	"umlsense/internal/diagfmt"
	"umlsense/internal/diagram"
	"umlsense/internal/grammar"
	"umlsense/internal/session"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.puml|->",
	Short: "Parse a PlantUML file and print the syntax tree",
	Long: `Parse runs the tolerant parser and prints the concrete syntax tree.
With --entry uml every @startuml..@enduml block is parsed separately, the way
completion sees it.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|sexpr|json)")
	parseCmd.Flags().String("entry", "file", "entry rule (file|uml)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	entry, err := cmd.Flags().GetString("entry")
	if err != nil {
		return fmt.Errorf("failed to get entry flag: %w", err)
	}

	var printTree func(io.Writer, cst.Node) error
	switch format {
	case "pretty":
		printTree = diagfmt.FormatTreePretty
	case "sexpr":
		printTree = diagfmt.FormatTreeSExpr
	case "json":
		printTree = diagfmt.FormatTreeJSON
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	_, doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	failed := false
	switch entry {
	case "file":
		var sess *session.Session
		timer.Track("parse", func() string {
			sess = session.Parse(ctx, doc.Text, grammar.RuleUmlFile, session.Options{File: doc.ID})
			return fmt.Sprintf("%d errors", len(sess.Errors))
		})
		printSessionErrors(errOut, doc.URI, sess.Errors)
		failed = len(sess.Errors) > 0
		if err := printTree(out, sess.Tree); err != nil {
			return err
		}

	case "uml":
		var blocks []diagram.Block
		timer.Track("locate", func() string {
			blocks = diagram.LocateAll(ctx, doc)
			return fmt.Sprintf("%d blocks", len(blocks))
		})
		for _, b := range blocks {
			var sess *session.Session
			timer.Track("parse "+b.Title, func() string {
				sess = session.Parse(ctx, b.Content, grammar.RuleUml, session.Options{File: doc.ID})
				return fmt.Sprintf("%d errors", len(sess.Errors))
			})
			// ошибки в координатах блока, печатаем с его заголовком
			printSessionErrors(errOut, doc.URI+"#"+b.Title, sess.Errors)
			failed = failed || len(sess.Errors) > 0
			if format != "json" {
				fmt.Fprintf(out, "# %s (%s)\n", b.Title, b.Range())
			}
			if err := printTree(out, sess.Tree); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("unknown entry: %s (expected file|uml)", entry)
	}

	if failed {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errDiagnostics
	}
	return nil
}
