// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"fmt"
	"unicode/utf8"
)

// EOF is returned by Lexer.Next at the end of input.
//
const EOF rune = -1

// Type is a token type.
//
type Type int

// Tokens
const (
	EOFToken Type = iota
	Raw
	Ident
	Number
)

func (t Type) String() string {
	switch t {
	case EOFToken:
		return "end of input"
	case Ident:
		return "identifier"
	case Number:
		return "number"
	}
	return "character"
}

// Item is a lexed token.
//
type Item struct {
	Type  Type
	Pos   int
	Value interface{}
}

func (i Item) String() string {
	switch v := i.Value.(type) {
	case rune:
		return fmt.Sprintf("%s %q", i.Type, v)
	case string:
		if i.Type == EOFToken {
			return v
		}
		return fmt.Sprintf("%s %q", i.Type, v)
	}
	return fmt.Sprintf("%s %v", i.Type, i.Value)
}

// StateFn is a lexer state function. A nil StateFn returns the lexer to its
// initial state.
//
type StateFn func(l *Lexer) StateFn

// Lexer is a state function lexer over a string.
//
type Lexer struct {
	input string
	init  StateFn
	state StateFn
	items []Item

	pos   int // position of the next rune
	start int // start of the current token
	cur   rune
	width int
}

// NewLexer returns a lexer for input starting in state init.
//
func NewLexer(input string, init StateFn) *Lexer {
	return &Lexer{input: input, init: init}
}

// Lex returns the next token.
//
func (l *Lexer) Lex() Item {
	for len(l.items) == 0 {
		if l.state == nil {
			l.start = l.pos
			l.state = l.init
		}
		l.state = l.state(l)
	}
	i := l.items[0]
	l.items = l.items[1:]
	return i
}

// Next reads the next rune.
//
func (l *Lexer) Next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		l.cur = EOF
		return EOF
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += w
	l.width = w
	l.cur = r
	return r
}

// Backup undoes the last call to Next. It can be called only once per call
// to Next.
//
func (l *Lexer) Backup() {
	l.pos -= l.width
	l.width = 0
}

// Current returns the last rune read by Next.
//
func (l *Lexer) Current() rune { return l.cur }

// Peek returns the next rune without consuming it.
//
func (l *Lexer) Peek() rune {
	r := l.Next()
	l.Backup()
	return r
}

// AcceptWhile consumes runes while f returns true.
//
func (l *Lexer) AcceptWhile(f func(rune) bool) {
	for r := l.Next(); r != EOF && f(r); r = l.Next() {
	}
	l.Backup()
}

// Text returns the text of the current token.
//
func (l *Lexer) Text() string { return l.input[l.start:l.pos] }

// Emit emits a token of type t and value v at the start of the current token.
//
func (l *Lexer) Emit(t Type, v interface{}) {
	l.items = append(l.items, Item{Type: t, Pos: l.start, Value: v})
	l.start = l.pos
}

// Ignore discards the current token text.
//
func (l *Lexer) Ignore() { l.start = l.pos }
