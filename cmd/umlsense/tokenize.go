package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"umlsense/internal/diagfmt"
	"umlsense/internal/grammar"
	"umlsense/internal/session"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.puml|->",
	Short: "Tokenize a PlantUML file",
	Long:  `Tokenize breaks a PlantUML file into the tokens the completion grammar sees`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|antlr)")
	tokenizeCmd.Flags().Bool("hidden", false, "include whitespace and comment tokens")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withHidden, err := cmd.Flags().GetBool("hidden")
	if err != nil {
		return fmt.Errorf("failed to get hidden flag: %w", err)
	}

	_, doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}

	var sess *session.Session
	timer.Track("tokenize", func() string {
		sess = session.Parse(cmd.Context(), doc.Text, grammar.RuleUmlFile, session.Options{File: doc.ID})
		return fmt.Sprintf("%d tokens", len(sess.Tokens))
	})

	// Ошибки лексера в stderr
	printSessionErrors(cmd.ErrOrStderr(), doc.URI, sess.ErrorsOf(session.StageLexer))

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(out, sess.Tokens, withHidden)
	case "json":
		return diagfmt.FormatTokensJSON(out, sess.Tokens, withHidden)
	case "antlr":
		return diagfmt.FormatTokensANTLR(out, sess.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// printSessionErrors writes recognizer errors in "path:line:col: stage CODE: msg"
// form; line is 1-based, column 1-based.
func printSessionErrors(w io.Writer, path string, errs []session.Error) {
	for _, e := range errs {
		line, col := 0, 0
		if e.Token != nil {
			line, col = e.Token.Line, e.Token.Column+1
		}
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, line, col, e.Stage, e.Code.ID(), e.Message)
	}
}
