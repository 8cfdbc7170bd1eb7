package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"weft/internal/source"
)

func TestAddVirtualAndResolve(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.html", []byte("<a>\n<b/>\n</a>"))

	f := fs.Get(id)
	if f.Flags&source.FileVirtual == 0 {
		t.Error("virtual flag not set")
	}

	// "<b/>" starts at offset 4: line 2, col 1.
	start, end := fs.Resolve(source.Span{File: id, Start: 4, End: 8})
	if start.Line != 2 || start.Col != 1 {
		t.Errorf("start = %+v, want 2:1", start)
	}
	if end.Line != 2 || end.Col != 5 {
		t.Errorf("end = %+v, want 2:5", end)
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBF<a>\r\nx\r\n</a>"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)

	if string(f.Content) != "<a>\nx\n</a>" {
		t.Errorf("content = %q, BOM and CRLF should be normalized", f.Content)
	}
	if f.Flags&source.FileHadBOM == 0 || f.Flags&source.FileNormalizedCRLF == 0 {
		t.Errorf("flags = %v, want BOM and CRLF flags", f.Flags)
	}
}

func TestGetLine(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.html", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	cases := map[uint32]string{1: "one", 2: "two", 3: "three", 4: "", 0: ""}
	for line, want := range cases {
		if got := f.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestGetByPath(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("a/b.html", []byte("x"))

	if _, ok := fs.GetByPath("a/b.html"); !ok {
		t.Error("lookup by the original spelling failed")
	}
	if _, ok := fs.GetByPath("a/./b.html"); !ok {
		t.Error("lookup must normalize the path")
	}
	if _, ok := fs.GetByPath("missing.html"); ok {
		t.Error("missing path should not resolve")
	}
}

func TestNormalizePath(t *testing.T) {
	if got := source.NormalizePath("a/./b/../c.html"); got != "a/c.html" {
		t.Errorf("NormalizePath = %q, want a/c.html", got)
	}
}
