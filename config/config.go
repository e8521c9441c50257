// Package config loads the crazyvm machine configuration.
//
// The configuration is a TOML file:
//
//	[machine]
//	memory = 4194304   # data memory, in words
//	max_ticks = 0      # instruction limit, 0 for none
//
//	[log]
//	level = "info"
//
//	[locale]
//	language = ""      # message language, empty for the system locale
package config

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ccoveille/go-safecast"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap/zapcore"
)

const (
	DEFAULT_MEMORY    = 4 * 1024 * 1024 // Default data memory, in words.
	DEFAULT_LOG_LEVEL = "info"
)

// Config is the machine configuration.
type Config struct {
	Machine Machine `toml:"machine"`
	Log     Log     `toml:"log"`
	Locale  Locale  `toml:"locale"`
}

// Machine configures the emulated machine.
type Machine struct {
	Memory   int64 `toml:"memory"`
	MaxTicks int64 `toml:"max_ticks"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"`
}

// Locale configures message translation.
type Locale struct {
	Language string `toml:"language"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Machine: Machine{
			Memory: DEFAULT_MEMORY,
		},
		Log: Log{
			Level: DEFAULT_LOG_LEVEL,
		},
	}
}

// Load reads a configuration file. Settings missing from the file keep
// their default values.
func Load(fs afero.Fs, path string) (cfg *Config, err error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		err = errors.Wrapf(err, "config %s", path)
		return
	}

	cfg = Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		cfg = nil
		err = errors.Wrapf(err, "config %s", path)
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		cfg = nil
		err = errors.Wrapf(ErrConfigKey, "config %s: %s", path, strings.Join(keys, ", "))
		return
	}

	err = cfg.Validate()
	if err != nil {
		cfg = nil
		err = errors.Wrapf(err, "config %s", path)
		return
	}

	return
}

// Validate checks the configuration values.
func (cfg *Config) Validate() (err error) {
	_, err = cfg.MemoryWords()
	if err != nil {
		return
	}

	_, err = cfg.MaxTicks()
	if err != nil {
		return
	}

	_, err = cfg.LogLevel()
	return
}

// MemoryWords returns the data memory size, in words.
func (cfg *Config) MemoryWords() (words uint, err error) {
	words, err = safecast.ToUint(cfg.Machine.Memory)
	if err != nil {
		err = errors.Wrapf(ErrConfigMemory, "%d", cfg.Machine.Memory)
		return
	}
	// Addresses are 32-bit.
	if _, err = safecast.ToUint32(words); err != nil {
		err = errors.Wrapf(ErrConfigMemory, "%d", cfg.Machine.Memory)
		return
	}

	return
}

// MaxTicks returns the instruction limit, 0 for none.
func (cfg *Config) MaxTicks() (ticks int, err error) {
	ticks, err = safecast.ToInt(cfg.Machine.MaxTicks)
	if err != nil || ticks < 0 {
		ticks = 0
		err = errors.Wrapf(ErrConfigMaxTicks, "%d", cfg.Machine.MaxTicks)
	}
	return
}

// LogLevel returns the configured log level.
func (cfg *Config) LogLevel() (level zapcore.Level, err error) {
	level, err = zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		err = errors.Wrapf(ErrConfigLevel, "%q", cfg.Log.Level)
	}
	return
}
