package intellisense

import (
	"slices"

	"golang.org/x/text/unicode/norm"

	"umlsense/internal/cst"
	"umlsense/internal/grammar"
)

// ClassNames returns the distinct names of every class, interface, enum and
// abstract class declared anywhere in the tree, sorted. Names are compared
// in NFC so "é" typed two ways is one class.
func ClassNames(root cst.Node) []string {
	set := cst.Fold(root, map[string]struct{}{}, func(acc map[string]struct{}, n cst.Node) map[string]struct{} {
		r, ok := n.(*cst.RuleNode)
		if !ok || r.Rule != grammar.RuleClassDeclaration {
			return acc
		}
		if id := r.Rule1(grammar.RuleIdent); id != nil && id.Start != nil {
			acc[norm.NFC.String(id.Start.Text)] = struct{}{}
		}
		return acc
	})
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
