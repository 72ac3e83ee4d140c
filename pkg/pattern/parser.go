package pattern

import (
	"fmt"
	"strings"

	"github.com/nuru-cli/nuru/pkg/errs"
)

// Parser consumes a pattern's token stream and produces an ordered
// []Segment. It is a single-pass recursive-descent parser
// with one token of lookahead, buffered in tok.
type Parser struct {
	lex     *Lexer
	pattern string
	tok     Token

	sawCatchAll   bool
	paramNames    map[string]bool
	optionLongs   map[string]bool
}

// Parse lexes and parses pattern into an ordered segment list.
func Parse(p string) ([]Segment, error) {
	parser := &Parser{
		lex:         NewLexer(p),
		pattern:     p,
		paramNames:  map[string]bool{},
		optionLongs: map[string]bool{},
	}
	if err := parser.advance(); err != nil {
		return nil, err
	}

	var segments []Segment
	for parser.tok.Kind != TokEOF {
		seg, err := parser.parseSegment()
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) semanticErr(code, format string, args ...any) error {
	return &errs.PatternSemanticError{Pattern: p.pattern, Code: code, Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) syntaxErr(format string, args ...any) error {
	return &errs.PatternSyntaxError{Pattern: p.pattern, Offset: p.tok.Offset, Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) parseSegment() (Segment, error) {
	switch p.tok.Kind {
	case TokDoubleDash, TokDash:
		return p.parseOption()
	case TokLBrace:
		return p.parseParameter()
	case TokIdent:
		text := p.tok.Text
		if err := p.advance(); err != nil {
			return Segment{}, err
		}
		return Segment{Kind: KindLiteral, Literal: text}, nil
	default:
		return Segment{}, p.syntaxErr("unexpected %s, expected a literal, '{parameter}', or '--option'/'-option'", p.tok.Kind)
	}
}

// parseParameter parses '{' ['*'] IDENT [':' IDENT] ['?'] ['|' TEXT] '}'
func (p *Parser) parseParameter() (Segment, error) {
	if err := p.expect(TokLBrace); err != nil {
		return Segment{}, err
	}

	seg := Segment{Kind: KindParameter}
	if p.tok.Kind == TokStar {
		seg.CatchAll = true
		if err := p.advance(); err != nil {
			return Segment{}, err
		}
	}

	if p.tok.Kind != TokIdent {
		return Segment{}, p.syntaxErr("expected a parameter name, got %s", p.tok.Kind)
	}
	seg.Name = p.tok.Text
	if err := p.advance(); err != nil {
		return Segment{}, err
	}

	if p.tok.Kind == TokColon {
		if err := p.advance(); err != nil {
			return Segment{}, err
		}
		if p.tok.Kind != TokIdent {
			return Segment{}, p.syntaxErr("expected a type name after ':', got %s", p.tok.Kind)
		}
		seg.Type = p.tok.Text
		if err := p.advance(); err != nil {
			return Segment{}, err
		}
	}

	if p.tok.Kind == TokQMark {
		seg.Optional = true
		if err := p.advance(); err != nil {
			return Segment{}, err
		}
	}

	if p.tok.Kind == TokPipe {
		if err := p.advance(); err != nil {
			return Segment{}, err
		}
		if p.tok.Kind != TokText {
			return Segment{}, p.syntaxErr("expected description text after '|'")
		}
		seg.Description = p.tok.Text
		if err := p.advance(); err != nil {
			return Segment{}, err
		}
	}

	if err := p.expect(TokRBrace); err != nil {
		return Segment{}, err
	}

	if err := p.checkParameter(seg); err != nil {
		return Segment{}, err
	}
	return seg, nil
}

func (p *Parser) checkParameter(seg Segment) error {
	if seg.CatchAll {
		if p.sawCatchAll {
			return p.semanticErr("CatchAllMustBeLast", "at most one catch-all parameter is allowed per route")
		}
		if seg.Optional {
			return p.semanticErr("CatchAllNotOptional", "a catch-all parameter may be typed but not marked optional")
		}
		p.sawCatchAll = true
	} else if p.sawCatchAll {
		return p.semanticErr("CatchAllMustBeLast", "catch-all parameter %q must be the last positional parameter", seg.Name)
	}

	if p.paramNames[seg.Name] {
		return p.semanticErr("DuplicateParameterName", "duplicate parameter name %q", seg.Name)
	}
	p.paramNames[seg.Name] = true
	return nil
}

// parseOption parses either a long option, optionally paired with a
// short form, or a short-only option:
//
//	LongOpt  := '--' IDENT [',' ShortName] [WS Parameter ['*']] ['|' TEXT]
//	ShortOpt := ShortName [WS Parameter ['*']] ['|' TEXT]
//	ShortName := '-' CHAR
//
// A short-only option has no long form to key extraction/binding on,
// so its single character doubles as LongForm: the canonical,
// no-leading-dash key every downstream package (resolve, bind,
// capabilities) already keys options by.
func (p *Parser) parseOption() (Segment, error) {
	if p.tok.Kind == TokDash {
		shortForm, err := p.parseShortName()
		if err != nil {
			return Segment{}, err
		}
		return p.finishOption(Segment{Kind: KindOption, LongForm: shortForm, ShortForm: shortForm})
	}

	if err := p.expect(TokDoubleDash); err != nil {
		return Segment{}, err
	}
	if p.tok.Kind != TokIdent {
		return Segment{}, p.syntaxErr("expected an option name after '--', got %s", p.tok.Kind)
	}
	seg := Segment{Kind: KindOption, LongForm: strings.ToLower(p.tok.Text)}
	if err := p.advance(); err != nil {
		return Segment{}, err
	}

	if p.tok.Kind == TokComma {
		if err := p.advance(); err != nil {
			return Segment{}, err
		}
		shortForm, err := p.parseShortName()
		if err != nil {
			return Segment{}, err
		}
		seg.ShortForm = shortForm
	}
	return p.finishOption(seg)
}

// parseShortName parses '-' CHAR, already positioned on the TokDash.
func (p *Parser) parseShortName() (string, error) {
	if err := p.expect(TokDash); err != nil {
		return "", err
	}
	if p.tok.Kind != TokIdent {
		return "", p.syntaxErr("expected a short option name after '-', got %s", p.tok.Kind)
	}
	if len([]rune(p.tok.Text)) != 1 {
		return "", p.semanticErr("BadShortForm", "short option form %q must be exactly one character", p.tok.Text)
	}
	text := p.tok.Text
	if err := p.advance(); err != nil {
		return "", err
	}
	return text, nil
}

// finishOption parses the shared tail of a long or short option: an
// optional value parameter and an optional description, then runs the
// duplicate/registration checks every option goes through regardless
// of which form introduced it.
func (p *Parser) finishOption(seg Segment) (Segment, error) {

	if p.tok.Kind == TokLBrace {
		valueSeg, err := p.parseParameter()
		if err != nil {
			return Segment{}, err
		}
		if valueSeg.CatchAll {
			return Segment{}, p.semanticErr("BadOptionValue", "an option's value parameter cannot be a catch-all")
		}
		seg.ExpectsValue = true
		seg.ValueParam = valueSeg.Name
		seg.ValueType = valueSeg.Type
		seg.ValueOptional = valueSeg.Optional
		if seg.Description == "" {
			seg.Description = valueSeg.Description
		}

		if p.tok.Kind == TokStar {
			seg.Repeated = true
			if err := p.advance(); err != nil {
				return Segment{}, err
			}
		}
	} else {
		// Boolean flag: required unless marked optional via trailing '?'
		// is not part of the grammar for flags; flags are optional by
		// nature (absence means false) so they carry no Optional marker.
		seg.ValueOptional = true
	}

	if p.tok.Kind == TokPipe {
		if err := p.advance(); err != nil {
			return Segment{}, err
		}
		if p.tok.Kind != TokText {
			return Segment{}, p.syntaxErr("expected description text after '|'")
		}
		seg.Description = p.tok.Text
		if err := p.advance(); err != nil {
			return Segment{}, err
		}
	}

	if p.optionLongs[seg.LongForm] {
		return Segment{}, p.semanticErr("DuplicateOption", "duplicate option --%s", seg.LongForm)
	}
	p.optionLongs[seg.LongForm] = true

	if seg.ExpectsValue {
		if p.paramNames[seg.ValueParam] {
			return Segment{}, p.semanticErr("DuplicateParameterName", "duplicate parameter name %q", seg.ValueParam)
		}
		p.paramNames[seg.ValueParam] = true
	}

	return seg, nil
}

func (p *Parser) expect(k TokenKind) error {
	if p.tok.Kind != k {
		return p.syntaxErr("expected %s, got %s", k, p.tok.Kind)
	}
	return p.advance()
}
