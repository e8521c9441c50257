package io

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestProgram_SaveLoad(t *testing.T) {
	assert := assert.New(t)

	fs := afero.NewMemMapFs()

	img := &Image{
		Version: IMAGE_VERSION,
		Words:   []uint32{0x12345678, 0x9},
		Lines:   []ImageLine{{Pc: 1, LineNo: 2, Text: "Ret"}},
	}

	assert.NoError(SaveProgram(fs, "prog"+EXT_HEX, img))
	data, err := afero.ReadFile(fs, "prog.cvm")
	assert.NoError(err)
	assert.Equal("87654321 90000000", string(data))

	read, err := LoadProgram(fs, "prog.cvm")
	assert.NoError(err)
	assert.Equal(img.Words, read.Words)
	assert.Nil(read.Lines)

	assert.NoError(SaveProgram(fs, "prog"+EXT_IMAGE, img))
	read, err = LoadProgram(fs, "prog.cvmi")
	assert.NoError(err)
	assert.Equal(img, read)
}

func TestProgram_LoadErrors(t *testing.T) {
	assert := assert.New(t)

	fs := afero.NewMemMapFs()

	_, err := LoadProgram(fs, "missing.cvm")
	assert.ErrorIs(err, os.ErrNotExist)

	assert.NoError(afero.WriteFile(fs, "bad.cvm", []byte("zz"), 0644))
	_, err = LoadProgram(fs, "bad.cvm")
	assert.ErrorIs(err, ErrHexToken("zz"))

	assert.NoError(afero.WriteFile(fs, "empty.cvmi", nil, 0644))
	_, err = LoadProgram(fs, "empty.cvmi")
	assert.ErrorIs(err, ErrImageEmpty)
}

func TestIsImage(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsImage("a/b.cvmi"))
	assert.False(IsImage("a/b.cvm"))
	assert.False(IsImage("a.cvmi.txt"))
}
