// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"strconv"
	"unicode"

	"github.com/pkg/errors"
)

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func lexInit(l *Lexer) StateFn {
	r := l.Next()
	switch {
	case r == EOF:
		return lexEOF
	case unicode.IsSpace(r):
		l.AcceptWhile(unicode.IsSpace)
		l.Ignore()
	case unicode.IsLetter(r) || r == '_':
		return lexIdent
	case isDigit(r) || r == '.':
		return lexNumber
	default:
		l.Emit(Raw, r)
		return lexEOF
	}
	return nil
}

func lexNumber(l *Lexer) StateFn {
	first := l.Current()
	l.AcceptWhile(isDigit)
	if first != '.' && l.Peek() == '.' {
		l.Next()
		l.AcceptWhile(isDigit)
	}
	if r := l.Peek(); r == 'e' || r == 'E' {
		l.Next()
		if r = l.Peek(); r == '+' || r == '-' {
			l.Next()
		}
		if !isDigit(l.Peek()) {
			l.Emit(Raw, l.Current())
			return lexEOF
		}
		l.AcceptWhile(isDigit)
	}
	text := l.Text()
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		l.Emit(Raw, text)
		return lexEOF
	}
	l.Emit(Number, v)
	return nil
}

func lexIdent(l *Lexer) StateFn {
	l.AcceptWhile(func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' })
	l.Emit(Ident, l.Text())
	return nil
}

// lexEOF places the lexer in End-Of-File state.
// Once in this state, the lexer will only emit EOF.
//
func lexEOF(l *Lexer) StateFn {
	l.Emit(EOFToken, "end of input")
	return lexEOF
}

// ParseTime parses a time literal made of a non-negative decimal number
// optionally followed by a unit name, like "10ns", "2.5 us" or "1e3". It does
// not validate the unit name.
//
func ParseTime(s string) (v float64, unit string, err error) {
	l := NewLexer(s, lexInit)
	i := l.Lex()
	if i.Type != Number {
		return 0, "", parseError(s, i, "number expected")
	}
	v = i.Value.(float64)
	i = l.Lex()
	if i.Type == Ident {
		unit = i.Value.(string)
		i = l.Lex()
	}
	if i.Type != EOFToken {
		return 0, "", parseError(s, i, "unexpected "+i.String())
	}
	return v, unit, nil
}

func parseError(in string, i Item, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, i.Pos+1, msg)
}
