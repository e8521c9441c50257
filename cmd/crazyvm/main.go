package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ccoveille/go-safecast"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ezrec/crazyvm/config"
	"github.com/ezrec/crazyvm/emulator"
	"github.com/ezrec/crazyvm/translate"
)

var f = translate.From

func setupLogger(level zapcore.Level) *zap.Logger {
	al := zap.NewAtomicLevelAt(level)
	ec := zap.NewDevelopmentEncoderConfig()
	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), al))
}

func main() {
	var configFile string
	var memory uint
	var source string
	var program string
	var maxTicks int
	var verbose bool

	flag.StringVarP(&configFile, "config", "c", "", ".toml configuration file")
	flag.UintVarP(&memory, "memory", "m", 0, "Data memory, in words")
	flag.StringVarP(&source, "source", "s", "", ".casm file to assemble and run")
	flag.StringVarP(&program, "input", "i", "", ".cvm, .cvmi or .casm program to run")
	flag.IntVar(&maxTicks, "max-ticks", 0, "Instruction limit, 0 for none")
	flag.BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if (len(source) == 0) == (len(program) == 0) {
		log.Fatalf("%v: exactly one of -s or -i is required", os.Args[0])
	}

	fs := afero.NewOsFs()

	cfg := config.Default()
	if len(configFile) != 0 {
		var err error
		cfg, err = config.Load(fs, configFile)
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}
	}

	if flag.CommandLine.Changed("memory") {
		cfg.Machine.Memory = int64(memory)
	}
	if flag.CommandLine.Changed("max-ticks") {
		cfg.Machine.MaxTicks = int64(maxTicks)
	}
	if verbose {
		cfg.Log.Level = zapcore.DebugLevel.String()
	}

	err := cfg.Validate()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	err = translate.SetLanguage(cfg.Locale.Language)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	level, _ := cfg.LogLevel()
	logger := setupLogger(level)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	words, _ := cfg.MemoryWords()
	ticks, _ := cfg.MaxTicks()

	emu := emulator.NewEmulator(words)
	emu.Verbose = verbose
	emu.MaxTicks = ticks
	emu.Tape.Input = os.Stdin
	emu.Tape.Output = os.Stdout

	if len(source) != 0 {
		err = emu.LoadSource(fs, source)
	} else {
		err = emu.Load(fs, program)
	}
	if err != nil {
		zap.S().Fatalf("%v", err)
	}

	code, err := emu.Run()
	if err != nil {
		zap.S().Error(f("FATAL ERROR: %v", err))
		fmt.Fprint(os.Stderr, emu.Cpu)
		_ = logger.Sync()
		os.Exit(1)
	}

	if !emu.Exited {
		zap.S().Info(f("End of program"))
		fmt.Fprint(os.Stderr, emu.Cpu)
	}

	if code == 0 {
		zap.S().Info(f("Program exited successfully!"))
		return
	}

	zap.S().Warn(f("Program exited abnormally! Exit code: %d", code))
	_ = logger.Sync()

	status, err := safecast.ToInt(code)
	if err != nil {
		status = 1
	}
	os.Exit(status)
}
