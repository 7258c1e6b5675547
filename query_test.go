package wad

import "testing"

func TestIsContentIsDirectoryRejectsShapes(t *testing.T) {
	raw, _ := buildWad(t, "PWAD", []descSpec{{name: "A", data: []byte("x")}})
	w, err := Load(writeTempWad(t, raw))
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	defer w.Close()

	cases := []struct {
		path string
		want bool
	}{
		{"", false},
		{"A", false},
		{"/A/", false},
		{"/A", true},
	}
	for _, c := range cases {
		if got := w.IsContent(c.path); got != c.want {
			t.Errorf("IsContent(%q) = %v, want %v", c.path, got, c.want)
		}
	}

	if w.IsDirectory("") {
		t.Errorf("IsDirectory(\"\") = true, want false")
	}
	if !w.IsDirectory("/") {
		t.Errorf("IsDirectory(/) = false, want true")
	}
}

func TestGetContentsBounds(t *testing.T) {
	raw, _ := buildWad(t, "PWAD", []descSpec{{name: "A", data: []byte("0123456789")}})
	w, err := Load(writeTempWad(t, raw))
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	defer w.Close()

	buf := make([]byte, 4)
	if n := w.GetContents("/A", buf, 4, 0); n != 4 || string(buf) != "0123" {
		t.Fatalf("GetContents offset 0 = %d %q, want 4 %q", n, buf, "0123")
	}
	if n := w.GetContents("/A", buf, 4, 8); n != 2 || string(buf[:2]) != "89" {
		t.Fatalf("GetContents offset 8 = %d %q, want 2 %q", n, buf[:2], "89")
	}
	if n := w.GetContents("/A", buf, 4, 10); n != 0 {
		t.Fatalf("GetContents offset at length = %d, want 0", n)
	}
	if n := w.GetContents("/A", buf, 4, 100); n != 0 {
		t.Fatalf("GetContents offset past length = %d, want 0", n)
	}
	if n := w.GetContents("/missing", buf, 4, 0); n != -1 {
		t.Fatalf("GetContents on missing path = %d, want -1", n)
	}
	if n := w.GetSize("/missing"); n != -1 {
		t.Fatalf("GetSize on missing path = %d, want -1", n)
	}
}

func TestGetDirectoryOrderMatchesDescriptors(t *testing.T) {
	raw, _ := buildWad(t, "PWAD", []descSpec{
		{name: "C", data: []byte("c")},
		{name: "A", data: []byte("a")},
		{name: "B", data: []byte("b")},
	})
	w, err := Load(writeTempWad(t, raw))
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	defer w.Close()

	var entries []string
	n := w.GetDirectory("/", &entries)
	if n != 3 {
		t.Fatalf("GetDirectory(/) = %d, want 3", n)
	}
	want := []string{"C", "A", "B"}
	for i, e := range entries {
		if e != want[i] {
			t.Fatalf("entries[%d] = %q, want %q", i, e, want[i])
		}
	}

	if n := w.GetDirectory("/missing/", &entries); n != -1 {
		t.Fatalf("GetDirectory on missing path = %d, want -1", n)
	}
}
