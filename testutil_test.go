package wad

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTempWad writes raw bytes to a fresh file under t.TempDir and returns
// its path, ready to be passed to Load.
func writeTempWad(t *testing.T, raw []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wad")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("writeTempWad: %s", err)
	}
	return path
}

// buildWad assembles a minimal WAD file: a 12-byte header followed
// immediately by lumpData, followed immediately by the descriptor list
// built from descs. A desc with non-nil data always gets an offset/length
// pointing at its own slice of lumpData, appended in order; a desc with nil
// data gets its explicit offset and length 0.
type descSpec struct {
	name   string
	data   []byte // lump payload; nil for directory markers
	offset uint32 // explicit offset; used only when data is nil
}

func buildWad(t *testing.T, magic string, descs []descSpec) (raw []byte, descriptorOffset uint32) {
	t.Helper()

	var lumpData []byte
	records := make([][]byte, 0, len(descs))

	for _, d := range descs {
		offset := d.offset
		length := uint32(len(d.data))
		if d.data != nil {
			offset = headerSize + uint32(len(lumpData))
			lumpData = append(lumpData, d.data...)
		}
		records = append(records, encodeDescriptor(offset, length, d.name))
	}

	descriptorOffset = headerSize + uint32(len(lumpData))

	var h header
	copy(h.magic[:], magic)
	h.numDescriptors = uint32(len(descs))
	h.descriptorOffset = descriptorOffset

	raw = append(raw, h.encode()...)
	raw = append(raw, lumpData...)
	for _, r := range records {
		raw = append(raw, r...)
	}

	return raw, descriptorOffset
}
