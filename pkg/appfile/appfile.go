// SPDX-License-Identifier: MPL-2.0

// Package appfile parses Erlang application resource files (the ebin/*.app
// descriptor embedded in plugin archives). A descriptor is a single term of
// the form
//
//	{application, Name, [{vsn, "1.2.3"}, {description, "..."}, {applications, [a, b]}]}.
//
// Only the vsn, description, and applications properties are interpreted;
// unrecognized property keys are ignored. Missing properties fall back to
// defaults: vsn "0", empty description, no applications.
package appfile

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrMalformedDescriptor is the sentinel error wrapped by ParseError.
var ErrMalformedDescriptor = errors.New("malformed descriptor")

type (
	// Descriptor is the interpreted content of an application resource file.
	Descriptor struct {
		// Name is the application name (the descriptor's second element).
		Name string
		// Version is the vsn property, "0" when absent.
		Version string
		// Description is the description property, empty when absent.
		Description string
		// Applications lists referenced application names, unfiltered.
		// Callers decide which of these denote optional plugins.
		Applications []string
	}

	// ParseError reports a syntax or shape error in a descriptor, with the
	// 1-based line where parsing failed. It wraps ErrMalformedDescriptor for
	// errors.Is() compatibility.
	ParseError struct {
		Line   int
		Detail string
	}

	// term is one parsed Erlang term. Exactly one of the fields is meaningful,
	// selected by kind.
	term struct {
		kind  termKind
		text  string // atom and string payload
		items []term // tuple and list payload
	}

	termKind int

	parser struct {
		input []rune
		pos   int
		line  int
	}
)

const (
	termAtom termKind = iota
	termString
	termNumber
	termTuple
	termList
)

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed descriptor at line %d: %s", e.Line, e.Detail)
}

// Unwrap returns ErrMalformedDescriptor for errors.Is() compatibility.
func (e *ParseError) Unwrap() error { return ErrMalformedDescriptor }

// Parse decodes a descriptor file into a Descriptor.
func Parse(data []byte) (*Descriptor, error) {
	p := &parser{input: []rune(string(data)), line: 1}

	p.skipSpace()
	root, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	// The terminating full stop is conventional but optional here.
	if p.pos < len(p.input) && p.input[p.pos] == '.' {
		p.pos++
		p.skipSpace()
	}
	if p.pos < len(p.input) {
		return nil, p.errorf("trailing content after descriptor term")
	}

	return interpret(root, p.line)
}

// interpret validates the {application, Name, Props} shape and extracts the
// recognized properties.
func interpret(root term, line int) (*Descriptor, error) {
	shapeErr := func(detail string) error {
		return &ParseError{Line: line, Detail: detail}
	}

	if root.kind != termTuple || len(root.items) != 3 {
		return nil, shapeErr("expected a 3-element {application, Name, Props} tuple")
	}
	if root.items[0].kind != termAtom || root.items[0].text != "application" {
		return nil, shapeErr("first tuple element must be the atom 'application'")
	}
	if root.items[1].kind != termAtom {
		return nil, shapeErr("application name must be an atom")
	}
	if root.items[2].kind != termList {
		return nil, shapeErr("third tuple element must be a property list")
	}

	d := &Descriptor{
		Name:    root.items[1].text,
		Version: "0",
	}

	for _, prop := range root.items[2].items {
		if prop.kind != termTuple || len(prop.items) != 2 || prop.items[0].kind != termAtom {
			return nil, shapeErr("property list entries must be {key, Value} tuples")
		}
		key, value := prop.items[0].text, prop.items[1]
		switch key {
		case "vsn":
			if value.kind != termString && value.kind != termAtom && value.kind != termNumber {
				return nil, shapeErr("vsn must be a string")
			}
			d.Version = value.text
		case "description":
			if value.kind != termString && value.kind != termAtom {
				return nil, shapeErr("description must be a string")
			}
			d.Description = value.text
		case "applications":
			if value.kind != termList {
				return nil, shapeErr("applications must be a list")
			}
			for _, app := range value.items {
				if app.kind != termAtom {
					return nil, shapeErr("applications entries must be atoms")
				}
				d.Applications = append(d.Applications, app.text)
			}
		default:
			// Unrecognized keys (modules, registered, env, ...) are ignored.
		}
	}

	return d, nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Line: p.line, Detail: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case c == '\n':
			p.line++
			p.pos++
		case unicode.IsSpace(c):
			p.pos++
		case c == '%':
			// Line comment runs to end of line.
			for p.pos < len(p.input) && p.input[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *parser) parseTerm() (term, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return term{}, p.errorf("unexpected end of input")
	}

	switch c := p.input[p.pos]; {
	case c == '{':
		return p.parseSequence('{', '}', termTuple)
	case c == '[':
		return p.parseSequence('[', ']', termList)
	case c == '"':
		return p.parseQuoted('"', termString)
	case c == '\'':
		return p.parseQuoted('\'', termAtom)
	case c == '-' || unicode.IsDigit(c):
		return p.parseNumber()
	case unicode.IsLower(c):
		return p.parseAtom(), nil
	default:
		return term{}, p.errorf("unexpected character %q", c)
	}
}

func (p *parser) parseSequence(opener, closer rune, kind termKind) (term, error) {
	p.pos++ // consume opener
	seq := term{kind: kind}

	p.skipSpace()
	if p.pos < len(p.input) && p.input[p.pos] == closer {
		p.pos++
		return seq, nil
	}

	for {
		item, err := p.parseTerm()
		if err != nil {
			return term{}, err
		}
		seq.items = append(seq.items, item)

		p.skipSpace()
		if p.pos >= len(p.input) {
			return term{}, p.errorf("unterminated %q", opener)
		}
		switch p.input[p.pos] {
		case ',':
			p.pos++
		case closer:
			p.pos++
			return seq, nil
		default:
			return term{}, p.errorf("expected ',' or %q, found %q", closer, p.input[p.pos])
		}
	}
}

func (p *parser) parseQuoted(quote rune, kind termKind) (term, error) {
	p.pos++ // consume opening quote
	var sb strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch c {
		case quote:
			p.pos++
			return term{kind: kind, text: sb.String()}, nil
		case '\\':
			p.pos++
			if p.pos >= len(p.input) {
				return term{}, p.errorf("unterminated escape sequence")
			}
			switch esc := p.input[p.pos]; esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			default:
				sb.WriteRune(esc)
			}
			p.pos++
		case '\n':
			p.line++
			sb.WriteRune(c)
			p.pos++
		default:
			sb.WriteRune(c)
			p.pos++
		}
	}
	return term{}, p.errorf("unterminated quoted token")
}

func (p *parser) parseAtom() term {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '@' {
			p.pos++
			continue
		}
		break
	}
	return term{kind: termAtom, text: string(p.input[start:p.pos])}
}

func (p *parser) parseNumber() (term, error) {
	start := p.pos
	if p.input[p.pos] == '-' {
		p.pos++
	}
	digits := 0
	for p.pos < len(p.input) && (unicode.IsDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
		// A full stop followed by non-digit terminates the term, not the number.
		if p.input[p.pos] == '.' {
			if p.pos+1 >= len(p.input) || !unicode.IsDigit(p.input[p.pos+1]) {
				break
			}
		} else {
			digits++
		}
		p.pos++
	}
	if digits == 0 {
		return term{}, p.errorf("malformed number")
	}
	return term{kind: termNumber, text: string(p.input[start:p.pos])}, nil
}
