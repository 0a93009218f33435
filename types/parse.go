package types

import (
	"fmt"
	"strings"
	"unicode"
)

// LookupFunc finds a class by (possibly package-qualified) name
type LookupFunc func(name string) (*Class, error)

// Parse reads a type expression against the class registry. Accepted forms:
//
//	int[][]
//	Map<String, List<? extends Number>>
//	Outer<String>.Inner<Integer>
//	example.com/shapes.Box<String>
func Parse(expr string) (Type, error) {
	return ParseWith(expr, LookupName)
}

// MustParse is like Parse but panics on error
func MustParse(expr string) Type {
	t, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseWith reads a type expression resolving class names with lookup
func ParseWith(expr string, lookup LookupFunc) (Type, error) {
	p := &typeParser{src: expr, lookup: lookup}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

type typeParser struct {
	src    string
	pos    int
	lookup LookupFunc
}

func (p *typeParser) errorf(format string, args ...any) error {
	return fmt.Errorf("parse %q at %d: %s", p.src, p.pos, fmt.Sprintf(format, args...))
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) accept(b byte) bool {
	if p.peek() == b {
		p.pos++
		return true
	}
	return false
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '/' || b == '-' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *typeParser) keyword(word string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], word) {
		end := p.pos + len(word)
		if end == len(p.src) || !isIdentByte(p.src[end]) {
			p.pos = end
			return true
		}
	}
	return false
}

func (p *typeParser) parseType() (Type, error) {
	if p.accept('?') {
		return p.parseWildcard()
	}
	t, err := p.parseReference()
	if err != nil {
		return nil, err
	}
	for p.accept('[') {
		if !p.accept(']') {
			return nil, p.errorf("expected ]")
		}
		t = ArrayOf(t)
	}
	return t, nil
}

func (p *typeParser) parseWildcard() (Type, error) {
	switch {
	case p.keyword("extends"):
		b, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return WildcardExtends(b), nil
	case p.keyword("super"):
		b, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return WildcardSuper(b), nil
	}
	return Wildcard(), nil
}

// parseReference reads a dotted class name, its arguments and any nested
// classes selected from a parameterized owner.
func (p *typeParser) parseReference() (Type, error) {
	segments := []string{p.ident()}
	if segments[0] == "" {
		return nil, p.errorf("expected type name")
	}
	for p.peek() == '.' {
		p.pos++
		seg := p.ident()
		if seg == "" {
			return nil, p.errorf("expected name after '.'")
		}
		segments = append(segments, seg)
	}

	raw, rest, err := p.resolveSegments(segments)
	if err != nil {
		return nil, err
	}
	for _, seg := range rest {
		if raw, err = p.nested(raw, seg); err != nil {
			return nil, err
		}
	}

	var owner Type
	for {
		var current Type = raw
		if p.accept('<') {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			if current, err = NewParameterizedType(raw, defaultOwner(owner, raw), args...); err != nil {
				return nil, p.errorf("%v", err)
			}
		} else if _, generic := owner.(*ParameterizedType); generic {
			if current, err = NewParameterizedType(raw, owner); err != nil {
				return nil, p.errorf("%v", err)
			}
		}
		if p.peek() != '.' {
			return current, nil
		}
		p.pos++
		seg := p.ident()
		if seg == "" {
			return nil, p.errorf("expected nested class name")
		}
		owner = current
		if raw, err = p.nested(raw, seg); err != nil {
			return nil, err
		}
	}
}

func defaultOwner(owner Type, raw *Class) Type {
	if owner != nil {
		return owner
	}
	if raw.enclosing != nil {
		return raw.enclosing
	}
	return nil
}

// resolveSegments finds the longest dotted prefix naming a class and returns
// the remaining segments, which name nested classes.
func (p *typeParser) resolveSegments(segments []string) (*Class, []string, error) {
	var firstErr error
	for n := len(segments); n > 0; n-- {
		c, err := p.lookup(strings.Join(segments[:n], "."))
		if err == nil {
			return c, segments[n:], nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, nil, p.errorf("%v", firstErr)
}

func (p *typeParser) nested(outer *Class, name string) (*Class, error) {
	c, err := p.lookup(outer.ID() + "." + name)
	if err != nil {
		return nil, p.errorf("%v", err)
	}
	if c.enclosing != outer {
		return nil, p.errorf("%s is not nested in %s", c.ID(), outer.ID())
	}
	return c, nil
}

func (p *typeParser) parseArgs() ([]Type, error) {
	var args []Type
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, t)
		if p.accept('>') {
			return args, nil
		}
		if !p.accept(',') {
			return nil, p.errorf("expected , or >")
		}
	}
}
