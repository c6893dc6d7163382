// Package macro provides the preprocessor-aware completion sources that run
// next to the grammar-driven engine: macro names with their signatures,
// variables assigned with !$name, and signature help inside a macro call.
//
// Both providers read only the part of the diagram before the caret, so a
// macro is offered once it has been declared.
package macro
