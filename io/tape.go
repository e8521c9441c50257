package io

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Tape provides line oriented input and character output over a pair of
// byte streams. Either stream may be nil, in which case reads see end of
// input and writes are discarded.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	reader *bufio.Reader
	source io.Reader
}

var _ Console = (*Tape)(nil)

// Rewind drops any buffered input, so that a replaced Input is read from
// its start.
func (tc *Tape) Rewind() {
	tc.reader = nil
	tc.source = nil
}

// ReadLine reads up to the next '\n'. A trailing "\r" is dropped, and the
// line is truncated to limit bytes; the remainder of a long line is
// consumed.
func (tc *Tape) ReadLine(limit int) (line []byte, err error) {
	if tc.Input == nil {
		return
	}

	if tc.reader == nil || tc.source != tc.Input {
		tc.reader = bufio.NewReader(tc.Input)
		tc.source = tc.Input
	}

	line, err = tc.reader.ReadBytes('\n')
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		return
	}

	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
	}

	if limit < 0 {
		limit = 0
	}
	if len(line) > limit {
		line = line[:limit]
	}

	return
}

// WriteChar writes a character code as UTF-8.
// Codes that are not valid runes are written as U+FFFD.
func (tc *Tape) WriteChar(code uint32) (err error) {
	if tc.Output == nil {
		return
	}

	r := utf8.RuneError
	if code <= utf8.MaxRune && utf8.ValidRune(rune(code)) {
		r = rune(code)
	}

	_, err = tc.Output.Write(utf8.AppendRune(nil, r))
	return
}
