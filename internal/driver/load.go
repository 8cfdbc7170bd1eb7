// Package driver wires the loader to the CLI: single-entry loads, parallel
// multi-entry loads, and page discovery under a document root.
package driver

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"weft/internal/loader"
)

// LoadResult pairs an entry page with its finished session.
type LoadResult struct {
	Entry   string
	Session *loader.Session
}

// Load runs one session for one entry page under root.
func Load(root, entry string, opts loader.Options) *loader.Session {
	return loader.New(root, opts).Load(entry)
}

// ListPages returns the sorted, root-relative paths of every *.html page
// under the document root.
func ListPages(root string) ([]string, error) {
	var pages []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		pages = append(pages, "/"+filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(pages)
	return pages, nil
}
