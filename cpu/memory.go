package cpu

import (
	"iter"
	"slices"
)

// Memory is a fixed size, word addressed data store.
type Memory struct {
	Data []uint32
}

// NewMemory creates a zeroed memory of capacity words.
func NewMemory(capacity uint) *Memory {
	return &Memory{Data: make([]uint32, capacity)}
}

// Len returns the capacity in words.
func (mem *Memory) Len() int {
	return len(mem.Data)
}

// inside is true if the n words at index lie within data.
func inside(data []uint32, index uint32, n uint32) bool {
	return uint64(index)+uint64(n) <= uint64(len(data))
}

// Read a single word.
func (mem *Memory) Read(index uint32) (value uint32, err error) {
	if !inside(mem.Data, index, 1) {
		err = ErrOutOfBounds(index)
		return
	}
	value = mem.Data[index]
	return
}

// Write a single word.
func (mem *Memory) Write(value uint32, index uint32) (err error) {
	if !inside(mem.Data, index, 1) {
		err = ErrOutOfBounds(index)
		return
	}
	mem.Data[index] = value
	return
}

// ReadMany returns a copy of n words starting at index.
func (mem *Memory) ReadMany(index uint32, n uint32) (values []uint32, err error) {
	if !inside(mem.Data, index, n) {
		err = ErrOutOfBounds(index)
		return
	}
	values = slices.Clone(mem.Data[index : index+n])
	return
}

// WriteMany writes values starting at index. Nothing is written if the
// range does not fit.
func (mem *Memory) WriteMany(values []uint32, index uint32) (err error) {
	if uint64(len(values)) > uint64(^uint32(0)) || !inside(mem.Data, index, uint32(len(values))) {
		err = ErrOutOfBounds(index)
		return
	}
	copy(mem.Data[index:], values)
	return
}

// Rom is the read-only instruction store.
type Rom struct {
	data []uint32
}

// NewRom creates an instruction store holding a copy of words.
func NewRom(words []uint32) *Rom {
	return &Rom{data: slices.Clone(words)}
}

// Len returns the number of instruction words.
func (rom *Rom) Len() int {
	return len(rom.data)
}

// Read a single word.
func (rom *Rom) Read(index uint32) (value uint32, err error) {
	if !inside(rom.data, index, 1) {
		err = ErrOutOfBounds(index)
		return
	}
	value = rom.data[index]
	return
}

// ReadMany returns a copy of n words starting at index.
func (rom *Rom) ReadMany(index uint32, n uint32) (values []uint32, err error) {
	if !inside(rom.data, index, n) {
		err = ErrOutOfBounds(index)
		return
	}
	values = slices.Clone(rom.data[index : index+n])
	return
}

// Words iterates over the store by address.
func (rom *Rom) Words() iter.Seq2[uint32, uint32] {
	return func(yield func(pc uint32, word uint32) bool) {
		for n, word := range rom.data {
			if !yield(uint32(n), word) {
				return
			}
		}
	}
}
