package io

import (
	"bytes"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	EXT_SOURCE = ".casm" // Assembly source.
	EXT_HEX    = ".cvm"  // Reversed-hex program text.
	EXT_IMAGE  = ".cvmi" // CBOR program image.
)

// IsImage is true if the file name selects the image format.
func IsImage(name string) bool {
	return filepath.Ext(name) == EXT_IMAGE
}

// LoadProgram reads a program file. Image files keep their debug
// information; any other file is read as reversed-hex text.
func LoadProgram(fs afero.Fs, name string) (img *Image, err error) {
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		err = errors.Wrapf(err, "load %s", name)
		return
	}

	if IsImage(name) {
		img, err = UnmarshalImage(data)
	} else {
		var words []uint32
		words, err = ReadHex(bytes.NewReader(data))
		if err == nil {
			img = NewImage(words)
		}
	}
	if err != nil {
		err = errors.Wrapf(err, "load %s", name)
	}

	return
}

// SaveProgram writes a program file, in the format selected by its name.
func SaveProgram(fs afero.Fs, name string, img *Image) (err error) {
	var data []byte
	if IsImage(name) {
		data, err = MarshalImage(img)
		if err != nil {
			return
		}
	} else {
		buf := &bytes.Buffer{}
		err = WriteHex(buf, img.Words)
		if err != nil {
			return
		}
		data = buf.Bytes()
	}

	err = afero.WriteFile(fs, name, data, 0644)
	if err != nil {
		err = errors.Wrapf(err, "save %s", name)
	}
	return
}
