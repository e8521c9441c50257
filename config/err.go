package config

import (
	"github.com/pkg/errors"

	"github.com/ezrec/crazyvm/translate"
)

var f = translate.From

var (
	// Configuration errors
	ErrConfigKey      = errors.New(f("unknown configuration key"))
	ErrConfigMemory   = errors.New(f("machine memory invalid"))
	ErrConfigMaxTicks = errors.New(f("machine max_ticks invalid"))
	ErrConfigLevel    = errors.New(f("log level invalid"))
)
