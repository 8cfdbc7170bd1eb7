// Package project reads the weft.toml manifest that pins a site's document
// root and default entry pages.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file looked up by Find.
const ManifestName = "weft.toml"

// SiteSection pins the document root and default entries.
type SiteSection struct {
	// Root is the document root directory, relative to the manifest.
	// The loader never reads outside of it.
	Root string `toml:"root"`
	// Entry lists the default entry pages for check/expand.
	Entry []string `toml:"entry"`
}

// LoaderSection tunes the loader.
type LoaderSection struct {
	MaxNesting     int `toml:"max_nesting"`
	MaxDiagnostics int `toml:"max_diagnostics"`
}

// Manifest is the parsed weft.toml.
type Manifest struct {
	Site   SiteSection   `toml:"site"`
	Loader LoaderSection `toml:"loader"`

	// Dir is the directory holding the manifest; Root resolves against it.
	Dir string `toml:"-"`
}

// Default returns the manifest used when no weft.toml exists: the given
// directory is the document root.
func Default(dir string) *Manifest {
	return &Manifest{
		Site: SiteSection{Root: "."},
		Dir:  dir,
	}
}

// Load parses the manifest at path.
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if m.Site.Root == "" {
		m.Site.Root = "."
	}
	m.Dir = filepath.Dir(path)
	return &m, nil
}

// Find walks up from dir looking for a weft.toml and loads it. When none
// exists, it returns Default(dir).
func Find(dir string) (*Manifest, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("find manifest: %w", err)
	}
	for cur := abs; ; {
		candidate := filepath.Join(cur, ManifestName)
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return Load(candidate)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return Default(abs), nil
		}
		cur = parent
	}
}

// RootDir returns the absolute document root.
func (m *Manifest) RootDir() string {
	if filepath.IsAbs(m.Site.Root) {
		return m.Site.Root
	}
	return filepath.Join(m.Dir, m.Site.Root)
}
