package schema

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// defLexer defines the token types for ormkit entity definition files.
var defLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Punctuation
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "Comma", Pattern: `,`},

	// Literals
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},

	// Identifiers: model names, column names, keywords
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*`},

	// Comments
	{Name: "Comment", Pattern: `//[^\n]*`},

	// Whitespace and newlines
	{Name: "Newline", Pattern: `[\r\n]+`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})
