// Package notation implements the dice-notation engine: a lexer, an
// operator-precedence parser, and a tree evaluator for expressions such
// as "3d6+10" or "-d20".
//
// The pipeline is pure: Lex turns text into tokens, Parse builds an
// immutable expression tree, and Eval walks the tree with an injected
// random source so rolls stay deterministic under test.
package notation
