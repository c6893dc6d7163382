package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"umlsense/internal/cst"
)

// TreeJSON is one node of a serialized parse tree. Exactly one of Rule
// and Token is set.
type TreeJSON struct {
	Rule     string       `json:"rule,omitempty"`
	Token    *TokenOutput `json:"token,omitempty"`
	Error    bool         `json:"error,omitempty"`
	Children []TreeJSON   `json:"children,omitempty"`
}

// BuildTree converts a parse tree for JSON output.
func BuildTree(n cst.Node) TreeJSON {
	switch v := n.(type) {
	case *cst.RuleNode:
		out := TreeJSON{Rule: v.Rule.String()}
		if len(v.Children) > 0 {
			out.Children = make([]TreeJSON, len(v.Children))
			for i, c := range v.Children {
				out.Children[i] = BuildTree(c)
			}
		}
		return out
	case *cst.TerminalNode:
		tok := tokenOutput(*v.Token)
		return TreeJSON{Token: &tok}
	case *cst.ErrorNode:
		tok := tokenOutput(*v.Token)
		return TreeJSON{Token: &tok, Error: true}
	}
	return TreeJSON{}
}

// FormatTreeJSON writes the tree as indented JSON.
func FormatTreeJSON(w io.Writer, root cst.Node) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTree(root))
}

// FormatTreeSExpr writes the LISP-style dump on a single line.
func FormatTreeSExpr(w io.Writer, root cst.Node) error {
	_, err := fmt.Fprintln(w, cst.Dump(root))
	return err
}

// FormatTreePretty writes one node per line, indented by depth.
func FormatTreePretty(w io.Writer, root cst.Node) error {
	var sb strings.Builder
	prettyTree(&sb, root, 0)
	_, err := io.WriteString(w, sb.String())
	return err
}

func prettyTree(sb *strings.Builder, n cst.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *cst.RuleNode:
		sb.WriteString(indent + v.Rule.String() + "\n")
		for _, c := range v.Children {
			prettyTree(sb, c, depth+1)
		}
	case *cst.TerminalNode:
		fmt.Fprintf(sb, "%s%s %q %d:%d\n", indent, v.Token.Kind, v.Token.Text, v.Token.Line, v.Token.Column)
	case *cst.ErrorNode:
		fmt.Fprintf(sb, "%s!%s %q %d:%d\n", indent, v.Token.Kind, v.Token.Text, v.Token.Line, v.Token.Column)
	}
}
