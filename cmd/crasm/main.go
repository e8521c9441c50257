package main

import (
	"bytes"
	"log"
	"os"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ezrec/crazyvm/asm"
	"github.com/ezrec/crazyvm/config"
	"github.com/ezrec/crazyvm/emulator"
	"github.com/ezrec/crazyvm/io"
)

// assemble parses a source file, with the defines of a machine of memory
// words.
func assemble(fs afero.Fs, name string, memory uint, noExit bool, verbose bool) (prog *asm.Program, err error) {
	inf, err := fs.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	assembler := &asm.Assembler{Verbose: verbose, NoExit: noExit}
	for key, value := range emulator.Defines(memory) {
		assembler.Predefine(key, value)
	}

	prog, err = assembler.Parse(inf)
	return
}

// encode formats a program for standard output, as an image or as
// reversed-hex text.
func encode(img *io.Image, image bool) (data []byte, err error) {
	if image {
		return io.MarshalImage(img)
	}

	buf := &bytes.Buffer{}
	err = io.WriteHex(buf, img.Words)
	if err != nil {
		return
	}
	buf.WriteString("\n")

	data = buf.Bytes()
	return
}

func main() {
	var input string
	var output string
	var disassemble bool
	var image bool
	var noExit bool
	var memory uint
	var verbose bool

	flag.StringVarP(&input, "input", "i", "", "Input file (.casm, or a program with -d)")
	flag.StringVarP(&output, "output", "o", "-", "Output file; .cvmi files are written as images")
	flag.BoolVarP(&disassemble, "disassemble", "d", false, "Disassemble a program to a listing")
	flag.BoolVar(&image, "image", false, "Write an image, with debug information, to standard output")
	flag.BoolVar(&noExit, "no-exit", false, "Do not append the exit syscall")
	flag.UintVarP(&memory, "memory", "m", config.DEFAULT_MEMORY, "MEMORY_SIZE, in words")
	flag.BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(input) == 0 {
		log.Fatalf("%v: -i is required", os.Args[0])
	}

	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}
		defer func() { _ = logger.Sync() }()
		zap.ReplaceGlobals(logger)
	}

	fs := afero.NewOsFs()

	if disassemble {
		img, err := io.LoadProgram(fs, input)
		if err != nil {
			log.Fatalf("%v", err)
		}

		prog, err := asm.NewProgramFromImage(img)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}

		buf := &bytes.Buffer{}
		err = prog.WriteListing(buf)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}

		if output == "-" {
			_, err = os.Stdout.Write(buf.Bytes())
		} else {
			err = afero.WriteFile(fs, output, buf.Bytes(), 0644)
		}
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	prog, err := assemble(fs, input, memory, noExit, verbose)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	if output != "-" {
		if image && !io.IsImage(output) {
			log.Fatalf("%v: --image output must end in %v", output, io.EXT_IMAGE)
		}
		err = io.SaveProgram(fs, output, prog.Image())
		if err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	data, err := encode(prog.Image(), image)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	_, err = os.Stdout.Write(data)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}
