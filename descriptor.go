package wad

import (
	"encoding/binary"
	"strings"
)

const (
	headerSize     = 12
	descriptorSize = 16
	nameFieldSize  = 8
)

// header is the 12-byte WAD header: 4-byte magic, numDescriptors, descriptorOffset.
type header struct {
	magic            [4]byte
	numDescriptors   uint32
	descriptorOffset uint32
}

func decodeHeader(buf []byte) header {
	var h header
	copy(h.magic[:], buf[0:4])
	h.numDescriptors = binary.LittleEndian.Uint32(buf[4:8])
	h.descriptorOffset = binary.LittleEndian.Uint32(buf[8:12])
	return h
}

func (h header) encode() []byte {
	buf := make([]byte, headerSize)
	copy(buf[0:4], h.magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.numDescriptors)
	binary.LittleEndian.PutUint32(buf[8:12], h.descriptorOffset)
	return buf
}

// rawDescriptor is the 16-byte on-disk descriptor record before name trimming.
type rawDescriptor struct {
	offset uint32
	length uint32
	name   string // trimmed of leading/trailing spaces and NULs
}

func decodeDescriptor(buf []byte) rawDescriptor {
	return rawDescriptor{
		offset: binary.LittleEndian.Uint32(buf[0:4]),
		length: binary.LittleEndian.Uint32(buf[4:8]),
		name:   trimName(buf[8:16]),
	}
}

func encodeDescriptor(offset, length uint32, name string) []byte {
	buf := make([]byte, descriptorSize)
	binary.LittleEndian.PutUint32(buf[0:4], offset)
	binary.LittleEndian.PutUint32(buf[4:8], length)
	copy(buf[8:16], padName(name))
	return buf
}

// padName right-pads name with NUL bytes to nameFieldSize, truncating if
// it somehow exceeds that (callers validate basename length beforehand).
func padName(name string) []byte {
	buf := make([]byte, nameFieldSize)
	n := copy(buf, name)
	_ = n
	return buf
}

// trimName trims leading/trailing spaces, then strips embedded NULs, the
// same two-pass cleanup the reference source performs on descriptor names.
func trimName(raw []byte) string {
	s := string(raw)
	s = strings.Trim(s, " ")
	s = strings.ReplaceAll(s, "\x00", "")
	return s
}
