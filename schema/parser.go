package schema

import (
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/spf13/afero"
)

// parser is the Participle parser instance.
var parser = participle.MustBuild[File](
	participle.Lexer(defLexer),
	participle.Elide("Whitespace", "Newline", "Comment"),
	participle.Unquote("String"),
	participle.UseLookahead(4),
)

// Parse parses a definition file from an io.Reader.
func Parse(filename string, r io.Reader) ([]Model, error) {
	raw, err := parser.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	return convertFile(raw), nil
}

// ParseString parses a definition file from a string.
func ParseString(filename, input string) ([]Model, error) {
	return Parse(filename, strings.NewReader(input))
}

// ParseFile parses a definition file from the given filesystem.
func ParseFile(fs afero.Fs, path string) ([]Model, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(path, f)
}
