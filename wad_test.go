package wad

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path.wad"); err == nil {
		t.Fatalf("Load on a missing file should return an error")
	}
}

func TestLoadTruncatedHeader(t *testing.T) {
	path := writeTempWad(t, []byte("PWAD"))
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load on a truncated header should return an error")
	}
	if !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("Load err = %v, want ErrInvalidFile", err)
	}
}

func TestPathReturnsLoadedFile(t *testing.T) {
	raw, _ := buildWad(t, "PWAD", nil)
	path := writeTempWad(t, raw)
	w, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	defer w.Close()

	if got := w.Path(); got != path {
		t.Fatalf("Path() = %q, want %q", got, path)
	}
}

func TestGetMagicTrimsTrailingNUL(t *testing.T) {
	raw, _ := buildWad(t, "PW", nil)
	w, err := Load(writeTempWad(t, raw))
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	defer w.Close()

	if got := w.GetMagic(); got != "PW" {
		t.Fatalf("GetMagic() = %q, want %q", got, "PW")
	}
}

func TestWithMutexGuardsAccess(t *testing.T) {
	raw, _ := buildWad(t, "PWAD", []descSpec{{name: "A", data: []byte("x")}})
	w, err := Load(writeTempWad(t, raw), WithMutex())
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	defer w.Close()

	if !w.guarded {
		t.Fatalf("expected guarded to be true after WithMutex")
	}
	if !w.IsContent("/A") {
		t.Fatalf("expected /A to be content under a guarded Wad")
	}
}

func TestWriteTreeListsNamespace(t *testing.T) {
	raw, _ := buildWad(t, "PWAD", []descSpec{
		{name: "S_START"},
		{name: "LUMP", data: []byte("x")},
		{name: "S_END"},
	})
	w, err := Load(writeTempWad(t, raw))
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	defer w.Close()

	var buf bytes.Buffer
	if err := w.WriteTree(&buf); err != nil {
		t.Fatalf("WriteTree: %s", err)
	}
	out := buf.String()
	if !strings.Contains(out, "/S/") {
		t.Fatalf("WriteTree output missing /S/: %q", out)
	}
	if !strings.Contains(out, "/S/LUMP") {
		t.Fatalf("WriteTree output missing /S/LUMP: %q", out)
	}
}
