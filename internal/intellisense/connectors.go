package intellisense

// Connectors are the relationship arrows offered for a CONNECTOR
// candidate. The order groups them by family and is kept in the output.
var Connectors = []string{
	"--", "..", "-->", "<--", "--*", "*--", "--o", "o--", "<|--", "--|>", "..|>", "<|..",
	"*-->", "<--*", "o-->", "<--o", ".", "->", "<-", "-*", "*-", "-o", "o-", "<|-", "-|>", ".|>", "<|.",
	"*->", "<-*", "o->", "<-o",
}
