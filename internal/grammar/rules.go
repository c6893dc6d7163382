package grammar

import (
	"fmt"

	"umlsense/internal/token"
)

// RuleID identifies a grammar rule.
type RuleID uint8

const (
	RuleUmlFile RuleID = iota
	RuleFreeLine
	RuleUml
	RuleDiagram
	RuleClassDiagram
	RuleStatement
	RuleTitleLine
	RuleEmbeddedDiagram
	RuleClassDeclaration
	RuleClassType
	RuleInheritance
	RuleClassBody
	RuleMember
	RuleMethod
	RuleAttribute
	RuleMethodParameters
	RuleParameter
	RuleTypeDeclaration
	RuleVisibility
	RuleModifier
	RuleConnection
	RuleClassName
	RuleStereotype
	RuleIdent
	RuleJunkLine
	RuleEol
	RuleBodyJunk
	RuleEmbeddedJunk

	ruleCount
)

var ruleNames = [ruleCount]string{
	RuleUmlFile:          "uml_file",
	RuleFreeLine:         "free_line",
	RuleUml:              "uml",
	RuleDiagram:          "diagram",
	RuleClassDiagram:     "class_diagram",
	RuleStatement:        "statement",
	RuleTitleLine:        "title_line",
	RuleEmbeddedDiagram:  "embedded_diagram",
	RuleClassDeclaration: "class_declaration",
	RuleClassType:        "class_type",
	RuleInheritance:      "inheritance",
	RuleClassBody:        "class_body",
	RuleMember:           "member",
	RuleMethod:           "method",
	RuleAttribute:        "attribute",
	RuleMethodParameters: "method_parameters",
	RuleParameter:        "parameter",
	RuleTypeDeclaration:  "type_declaration",
	RuleVisibility:       "visibility",
	RuleModifier:         "modifier",
	RuleConnection:       "connection",
	RuleClassName:        "class_name",
	RuleStereotype:       "stereotype",
	RuleIdent:            "ident",
	RuleJunkLine:         "junk_line",
	RuleEol:              "eol",
	RuleBodyJunk:         "body_junk",
	RuleEmbeddedJunk:     "embedded_junk",
}

func (r RuleID) String() string {
	if r < ruleCount {
		return ruleNames[r]
	}
	return fmt.Sprintf("rule(%d)", uint8(r))
}

// RuleCount returns the number of rules.
func RuleCount() int { return int(ruleCount) }

// Rules returns every rule id in declaration order.
func Rules() []RuleID {
	out := make([]RuleID, ruleCount)
	for i := range out {
		out[i] = RuleID(i)
	}
	return out
}

// Body returns the expression of rule r. It panics on an unknown rule.
func Body(r RuleID) Expr {
	if r >= ruleCount {
		panic(fmt.Sprintf("grammar: unknown rule %d", r))
	}
	return bodies[r]
}

// SyncSet lists the kinds the parser resynchronises on after a committed failure.
var SyncSet = []token.Kind{token.Newline, token.EndUml, token.EOF}

// IsSync reports whether k belongs to SyncSet.
func IsSync(k token.Kind) bool {
	for _, s := range SyncSet {
		if s == k {
			return true
		}
	}
	return false
}

var bodies [ruleCount]Expr

func init() {
	const (
		nl  = token.Newline
		eof = token.EOF
		end = token.EndUml
	)
	restOfLine := star(not(nl, eof))
	classNames := seq(ref(RuleClassName), star(tok(token.Comma), ref(RuleClassName)))

	bodies = [ruleCount]Expr{
		RuleUmlFile: seq(
			star(alt(ref(RuleUml), tok(nl), ref(RuleFreeLine))),
			tok(eof),
		),
		RuleFreeLine: seq(not(token.StartUml, nl, eof), restOfLine, ref(RuleEol)),
		RuleUml: seq(
			tok(token.StartUml), cut, restOfLine, ref(RuleEol),
			star(alt(ref(RuleDiagram), tok(nl), ref(RuleJunkLine))),
			tok(end),
		),
		RuleDiagram: ref(RuleClassDiagram),
		RuleClassDiagram: seq(
			ref(RuleStatement), ref(RuleEol),
			star(alt(seq(ref(RuleStatement), ref(RuleEol)), tok(nl))),
		),
		RuleStatement: alt(
			ref(RuleTitleLine),
			ref(RuleClassDeclaration),
			ref(RuleConnection),
			ref(RuleEmbeddedDiagram),
		),
		RuleTitleLine: seq(tok(token.KwTitle), restOfLine),
		RuleEmbeddedDiagram: seq(
			tok(token.EmbedOpen), cut,
			star(alt(tok(nl), ref(RuleDiagram), ref(RuleEmbeddedJunk))),
			tok(token.EmbedClose),
		),
		RuleClassDeclaration: seq(
			ref(RuleClassType), ref(RuleIdent),
			opt(ref(RuleStereotype)), opt(ref(RuleInheritance)), opt(ref(RuleClassBody)),
		),
		RuleClassType: alt(
			seq(tok(token.KwAbstract), tok(token.KwClass)),
			tok(token.KwAbstract),
			tok(token.KwClass),
			tok(token.KwInterface),
			tok(token.KwEnum),
		),
		RuleInheritance: alt(
			seq(tok(token.KwExtends), classNames, opt(tok(token.KwImplements), classNames)),
			seq(tok(token.KwImplements), classNames),
		),
		RuleClassBody: seq(
			tok(token.LCurly), cut,
			star(alt(
				tok(nl),
				seq(ref(RuleMember), alt(tok(nl), peek(token.RCurly))),
				ref(RuleBodyJunk),
			)),
			tok(token.RCurly),
		),
		RuleMember: alt(ref(RuleMethod), ref(RuleAttribute)),
		RuleMethod: seq(
			opt(ref(RuleVisibility)), star(ref(RuleModifier)),
			alt(seq(ref(RuleTypeDeclaration), ref(RuleIdent)), ref(RuleIdent)),
			tok(token.LParen), cut,
			opt(ref(RuleMethodParameters)),
			tok(token.RParen),
			opt(tok(token.Colon), ref(RuleTypeDeclaration)),
		),
		RuleAttribute: seq(
			opt(ref(RuleVisibility)), star(ref(RuleModifier)),
			alt(
				seq(ref(RuleIdent), tok(token.Colon), ref(RuleTypeDeclaration)),
				seq(ref(RuleTypeDeclaration), ref(RuleIdent)),
				ref(RuleIdent),
			),
		),
		RuleMethodParameters: seq(ref(RuleParameter), star(tok(token.Comma), ref(RuleParameter))),
		RuleParameter: alt(
			seq(ref(RuleTypeDeclaration), ref(RuleIdent)),
			ref(RuleIdent),
		),
		RuleTypeDeclaration: seq(ref(RuleIdent), star(tok(token.LSquare), tok(token.RSquare))),
		RuleVisibility:      alt(tok(token.Plus), tok(token.Minus), tok(token.Hash), tok(token.Tilde)),
		RuleModifier:        alt(tok(token.StaticMod), tok(token.AbstractMod)),
		RuleConnection: seq(
			ref(RuleClassName), tok(token.Connector), ref(RuleClassName),
			opt(tok(token.Colon), restOfLine),
		),
		RuleClassName:    ref(RuleIdent),
		RuleStereotype:   tok(token.Stereotype),
		RuleIdent:        tok(token.Ident),
		RuleJunkLine:     seq(not(end, nl, eof), restOfLine, ref(RuleEol)),
		RuleEol:          alt(tok(nl), peek(eof), peek(end), peek(token.EmbedClose)),
		RuleBodyJunk:     plus(not(token.RCurly, nl, end, eof)),
		RuleEmbeddedJunk: plus(not(token.EmbedClose, nl, end, eof)),
	}
}
