package vcd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"vcdbw/internal/model"
)

// headerLexer tokenizes a single $var declaration. Identifier codes may use
// any printable character, so everything that is not a keyword or a bit
// range is a Word.
var headerLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Keyword", Pattern: `\$[a-z]+`},
	{Name: "Range", Pattern: `\[[^\]\s]*\]`},
	{Name: "Word", Pattern: `\S+`},
})

// varDecl is the grammar of "$var <type> <size> <id> <reference> [range] $end".
type varDecl struct {
	Type      string `parser:"\"$var\" @Word"`
	Size      int    `parser:"@Word"`
	ID        string `parser:"@(Word | Keyword)"`
	Reference string `parser:"@(Word | Keyword)"`
	Range     string `parser:"@Range? \"$end\""`
}

// HeaderParser reads signal declarations from a dump header.
type HeaderParser struct {
	parser *participle.Parser[varDecl]
}

// NewHeaderParser creates a new header parser instance
func NewHeaderParser() (*HeaderParser, error) {
	parser, err := participle.Build[varDecl](
		participle.Lexer(headerLexer),
		participle.Elide("Whitespace"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &HeaderParser{parser: parser}, nil
}

// ParseDeclaration parses one complete $var declaration.
func (h *HeaderParser) ParseDeclaration(text string) (model.Declaration, error) {
	decl, err := h.parser.ParseString("", text)
	if err != nil {
		return model.Declaration{}, fmt.Errorf("parse error: %w", err)
	}
	return model.Declaration{
		Type:      decl.Type,
		Size:      decl.Size,
		ID:        decl.ID,
		Reference: decl.Reference,
		Range:     decl.Range,
	}, nil
}

// ReadDeclarations reads the header from r up to the end-of-definitions
// marker and returns every $var declaration in order. Declarations may span
// several lines; scopes and other sections are ignored.
func (h *HeaderParser) ReadDeclarations(r io.Reader) ([]model.Declaration, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var decls []model.Declaration
	var pending []string
	number := 0
	for scanner.Scan() {
		number++
		line := strings.TrimSpace(scanner.Text())
		if line == EndDefinitions {
			return decls, nil
		}

		if len(pending) == 0 && !strings.HasPrefix(line, "$var") {
			continue
		}
		pending = append(pending, line)
		if !hasEnd(line) {
			continue
		}

		decl, err := h.ParseDeclaration(strings.Join(pending, " "))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", number, err)
		}
		decls = append(decls, decl)
		pending = pending[:0]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}
	return nil, fmt.Errorf("%w: %q not found", ErrMalformedHeader, EndDefinitions)
}

func hasEnd(line string) bool {
	for _, f := range strings.Fields(line) {
		if f == "$end" {
			return true
		}
	}
	return false
}

// Lookup returns the first declaration whose reference is name.
func Lookup(decls []model.Declaration, name string) (model.Declaration, error) {
	for _, d := range decls {
		if d.Reference == name {
			return d, nil
		}
	}
	return model.Declaration{}, fmt.Errorf("%w: %q", ErrUnknownSignal, name)
}
