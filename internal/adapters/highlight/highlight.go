// Package highlight renders fragment code with ANSI syntax highlighting.
package highlight

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	// DefaultStyle is used when no style is configured
	DefaultStyle = "monokai"

	defaultFormatter = "terminal256"
)

// Highlighter picks a lexer from a fragment's title or content
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

// New creates a highlighter for a chroma style name. Unknown names fall
// back to chroma's default style.
func New(style string) *Highlighter {
	if style == "" {
		style = DefaultStyle
	}
	formatter := formatters.Get(defaultFormatter)
	if formatter == nil {
		formatter = formatters.Fallback
	}
	return &Highlighter{
		style:     styles.Get(style),
		formatter: formatter,
	}
}

// Language returns the detected language name for a fragment
func (h *Highlighter) Language(title, code string) string {
	return lexerFor(title, code).Config().Name
}

// Code returns code with terminal escape sequences applied
func (h *Highlighter) Code(title, code string) (string, error) {
	if code == "" {
		return "", nil
	}

	lexer := chroma.Coalesce(lexerFor(title, code))
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise code: %w", err)
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", fmt.Errorf("failed to format code: %w", err)
	}
	return buf.String(), nil
}

// lexerFor matches the title as a filename first ("debounce.js"), then
// lets chroma analyse the content
func lexerFor(title, code string) chroma.Lexer {
	if lexer := lexers.Match(title); lexer != nil {
		return lexer
	}
	if lexer := lexers.Analyse(code); lexer != nil {
		return lexer
	}
	return lexers.Fallback
}
