package emulator

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/ezrec/crazyvm/asm"
	"github.com/ezrec/crazyvm/io"
)

// Load loads a program by its file name: assembly source is assembled,
// anything else is read as a program file.
func (emu *Emulator) Load(fs afero.Fs, name string) (err error) {
	if filepath.Ext(name) == io.EXT_SOURCE {
		return emu.LoadSource(fs, name)
	}

	return emu.LoadProgram(fs, name)
}

// LoadSource assembles a source file, with the machine's defines, and
// resets the emulator to run it.
func (emu *Emulator) LoadSource(fs afero.Fs, name string) (err error) {
	file, err := fs.Open(name)
	if err != nil {
		err = errors.Wrapf(err, "load %s", name)
		return
	}
	defer file.Close()

	assembler := &asm.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		assembler.Predefine(key, value)
	}

	prog, err := assembler.Parse(file)
	if err != nil {
		err = errors.Wrapf(err, "%s", name)
		return
	}

	emu.Program = prog
	emu.Reset()

	return
}

// LoadProgram loads a hex or image program file, and resets the emulator to
// run it.
func (emu *Emulator) LoadProgram(fs afero.Fs, name string) (err error) {
	img, err := io.LoadProgram(fs, name)
	if err != nil {
		return
	}

	prog, err := asm.NewProgramFromImage(img)
	if err != nil {
		err = errors.Wrapf(err, "%s", name)
		return
	}

	emu.Program = prog
	emu.Reset()

	return
}
