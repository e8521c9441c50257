package io

import (
	"github.com/pkg/errors"

	"github.com/ezrec/crazyvm/translate"
)

var f = translate.From

var (
	// Program file errors
	ErrImageVersion = errors.New(f("image version unsupported"))
	ErrImageEmpty   = errors.New(f("image empty"))
)

// ErrHexToken reports a program file token that is not a reversed-hex word.
type ErrHexToken string

func (err ErrHexToken) Error() string {
	return f("'%v' is not a program word", string(err))
}
