// Package token defines lexical token kinds, channels and the static
// vocabulary of the diagram grammar.
// Invariants:
//   - Token.Text is a slice of the original diagram text (no copies).
//   - Concatenating Text of every token in a stream reproduces the input.
//   - Whitespace and comments live on the hidden channel; NEWLINE is a
//     default-channel token because statements are line oriented.
//   - Keywords are lowercase and case-sensitive ("Class" is an identifier).
package token
