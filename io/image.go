package io

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

const IMAGE_VERSION = 1 // Current program image layout.

// ImageLine ties an instruction address to the source line it came from.
type ImageLine struct {
	Pc     uint32 `cbor:"1,keyasint"`
	LineNo int    `cbor:"2,keyasint"`
	Text   string `cbor:"3,keyasint,omitempty"`
}

// Image is a program together with its debug information.
type Image struct {
	Version int               `cbor:"1,keyasint"`
	Words   []uint32          `cbor:"2,keyasint"`
	Lines   []ImageLine       `cbor:"3,keyasint,omitempty"`
	Labels  map[string]uint32 `cbor:"4,keyasint,omitempty"`
}

var imageEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("io: failed to create CBOR enc mode: %v", err))
	}
	imageEncMode = em
}

// NewImage creates an image without debug information.
func NewImage(words []uint32) *Image {
	return &Image{
		Version: IMAGE_VERSION,
		Words:   words,
	}
}

// MarshalImage serializes an image to canonical CBOR.
func MarshalImage(img *Image) (data []byte, err error) {
	data, err = imageEncMode.Marshal(img)
	if err != nil {
		err = errors.Wrap(err, "marshal image")
	}
	return
}

// UnmarshalImage deserializes an image from CBOR.
func UnmarshalImage(data []byte) (img *Image, err error) {
	if len(data) == 0 {
		err = ErrImageEmpty
		return
	}

	img = &Image{}
	err = cbor.Unmarshal(data, img)
	if err != nil {
		img = nil
		err = errors.Wrap(err, "unmarshal image")
		return
	}

	if img.Version != IMAGE_VERSION {
		err = errors.Wrapf(ErrImageVersion, "version %d", img.Version)
		img = nil
		return
	}

	return
}
