package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"weft/internal/driver"
	"weft/internal/loader"
)

func writeRoot(t *testing.T, pages map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range pages {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestListPages(t *testing.T) {
	root := writeRoot(t, map[string]string{
		"index.html":     "<html></html>",
		"sub/about.html": "<html></html>",
		"notes.txt":      "skip me",
	})

	pages, err := driver.ListPages(root)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"/index.html", "/sub/about.html"}
	if len(pages) != 2 || pages[0] != want[0] || pages[1] != want[1] {
		t.Errorf("pages = %v, want %v", pages, want)
	}
}

func TestLoadAllSessionsAreIndependent(t *testing.T) {
	root := writeRoot(t, map[string]string{
		"a.html":   `<html><:import src="lib.html"/><x-c>A</x-c></html>`,
		"b.html":   `<html><:import src="lib.html"/><x-c>B</x-c></html>`,
		"lib.html": `<lib><:define tag="x-c" class="c"/></lib>`,
	})

	results, err := driver.LoadAll(context.Background(), root, []string{"a.html", "b.html"}, loader.Options{}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	for _, r := range results {
		if r.Session.Tree == nil || r.Session.Bag.HasErrors() {
			t.Errorf("%s failed: %+v", r.Entry, r.Session.Bag.Items())
		}
		// Each session imported the library for itself.
		if len(r.Session.Files) != 2 {
			t.Errorf("%s visited %v, want entry + lib", r.Entry, r.Session.Files)
		}
		if _, ok := r.Session.Macros["x-c"]; !ok {
			t.Errorf("%s is missing the imported macro", r.Entry)
		}
	}
	// Entry order is preserved regardless of completion order.
	if results[0].Entry != "a.html" || results[1].Entry != "b.html" {
		t.Errorf("order = %s, %s", results[0].Entry, results[1].Entry)
	}
}

func TestLoadAllHonoursCancellation(t *testing.T) {
	root := writeRoot(t, map[string]string{"a.html": "<html></html>"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := driver.LoadAll(ctx, root, []string{"a.html"}, loader.Options{}, 1); err == nil {
		t.Error("cancelled context must surface an error")
	}
}
