package loader

import (
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// resolve maps a requested name, relative to the current directory inside
// the document root, onto a session path ("/dir/page.html"). A name starting
// with "/" resets the current directory. The result never escapes the root;
// traversal attempts report false.
//
// Resolution is purely logical (slash-separated, `.`/`..` normalized); the
// OS path is derived afterwards by osPath.
func resolve(cur, name string) (string, bool) {
	// NFC so that once-semantics cannot be defeated by a differently
	// normalized spelling of the same name. Cleaning happens after the
	// join: a leading "/.." must still read as an escape.
	name = norm.NFC.String(filepath.ToSlash(name))
	if strings.HasPrefix(name, "/") {
		cur = ""
		name = strings.TrimPrefix(name, "/")
	}

	p := path.Clean(path.Join(cur, name))
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return "", false
	}
	return "/" + p, true
}

// dirOf returns the current directory implied by a session path:
// "/a/b.html" → "a".
func dirOf(sessionPath string) string {
	d := path.Dir(strings.TrimPrefix(sessionPath, "/"))
	if d == "." {
		return ""
	}
	return d
}

// osPath turns a session path into a host filesystem path under root.
func osPath(root, sessionPath string) string {
	return filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(sessionPath, "/")))
}
