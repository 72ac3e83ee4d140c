package pattern

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nuru-cli/nuru/pkg/errs"
)

// Lexer tokenizes a pattern string. It is a straightforward
// hand-written scanner — this module's other tokenizers
// (internal/keychord's chord grammar, the option-bundle scanning in
// the resolver) are written the same way: no generated parser, no
// external lexer library.
type Lexer struct {
	pattern    string
	src        []rune
	pos        int // rune index
	byteOffset []int
	braceDepth int
	afterPipe  bool // the previous token was a Pipe: next comes its Text
}

// NewLexer creates a Lexer over pattern.
func NewLexer(p string) *Lexer {
	src := []rune(p)
	offsets := make([]int, len(src)+1)
	b := 0
	for i, r := range src {
		offsets[i] = b
		b += utf8.RuneLen(r)
	}
	offsets[len(src)] = b
	return &Lexer{pattern: p, src: src, byteOffset: offsets}
}

func (l *Lexer) errorf(offset int, format string, args ...any) error {
	return &errs.PatternSyntaxError{Pattern: l.pattern, Offset: offset, Message: fmt.Sprintf(format, args...)}
}

func (l *Lexer) peek() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *Lexer) peekAt(n int) (rune, bool) {
	if l.pos+n >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos+n], true
}

func (l *Lexer) offset() int {
	return l.byteOffset[l.pos]
}

func isSpecial(r rune) bool {
	switch r {
	case '{', '}', '*', ':', '?', ',', '|', '-':
		return true
	}
	return unicode.IsSpace(r)
}

// Next returns the next token, skipping whitespace between segments. It
// returns an error if whitespace occurs while inside an open '{'.
func (l *Lexer) Next() (Token, error) {
	if l.afterPipe {
		l.afterPipe = false
		return l.lexDescriptionText(l.offset())
	}
	for {
		r, ok := l.peek()
		if !ok {
			return Token{Kind: TokEOF, Offset: l.offset()}, nil
		}
		if unicode.IsSpace(r) {
			if l.braceDepth > 0 {
				return Token{}, l.errorf(l.offset(), "whitespace is not allowed inside '{...}'")
			}
			l.pos++
			continue
		}
		break
	}

	start := l.offset()
	r, _ := l.peek()

	switch r {
	case '{':
		l.pos++
		l.braceDepth++
		return Token{Kind: TokLBrace, Offset: start}, nil
	case '}':
		l.pos++
		if l.braceDepth > 0 {
			l.braceDepth--
		}
		return Token{Kind: TokRBrace, Offset: start}, nil
	case '*':
		l.pos++
		return Token{Kind: TokStar, Offset: start}, nil
	case ':':
		l.pos++
		return Token{Kind: TokColon, Offset: start}, nil
	case '?':
		l.pos++
		return Token{Kind: TokQMark, Offset: start}, nil
	case ',':
		l.pos++
		return Token{Kind: TokComma, Offset: start}, nil
	case '|':
		l.pos++
		l.afterPipe = true
		return Token{Kind: TokPipe, Offset: start}, nil
	case '-':
		if n, ok := l.peekAt(1); ok && n == '-' {
			l.pos += 2
			return Token{Kind: TokDoubleDash, Offset: start}, nil
		}
		l.pos++
		return Token{Kind: TokDash, Offset: start}, nil
	default:
		return l.lexIdent(start)
	}
}

// lexDescriptionText consumes raw text after a Pipe up to the next
// unescaped whitespace boundary, or '}' if still inside braces —
// descriptions are free text, not re-tokenized.
func (l *Lexer) lexDescriptionText(start int) (Token, error) {
	var sb strings.Builder
	for {
		r, ok := l.peek()
		if !ok {
			break
		}
		if r == '}' && l.braceDepth > 0 {
			break
		}
		if unicode.IsSpace(r) && l.braceDepth == 0 {
			break
		}
		sb.WriteRune(r)
		l.pos++
	}
	return Token{Kind: TokText, Text: sb.String(), Offset: start}, nil
}

func (l *Lexer) lexIdent(start int) (Token, error) {
	var sb strings.Builder
	for {
		r, ok := l.peek()
		if !ok || isSpecial(r) {
			break
		}
		sb.WriteRune(r)
		l.pos++
	}
	if sb.Len() == 0 {
		return Token{}, l.errorf(start, "unexpected character %q", string(r0(l)))
	}
	return Token{Kind: TokIdent, Text: sb.String(), Offset: start}, nil
}

func r0(l *Lexer) rune {
	r, _ := l.peek()
	return r
}
