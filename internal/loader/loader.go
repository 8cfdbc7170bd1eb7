package loader

import (
	"fmt"

	"weft/internal/diag"
	"weft/internal/parser"
	"weft/internal/source"
	"weft/internal/tree"
)

// Loader loads pages beneath a fixed document root. It is safe to use from
// multiple goroutines: each Load call owns its session and shares nothing.
type Loader struct {
	root string
	opts Options
}

// New constructs a Loader over the given document root directory.
func New(root string, opts Options) *Loader {
	return &Loader{root: root, opts: opts}
}

// Root returns the document root the loader is confined to.
func (l *Loader) Root() string {
	return l.root
}

// Load reads the entry page, resolves every inclusion directive, registers
// macro definitions, and expands macro uses. The returned session is always
// non-nil; Session.Tree is nil only when the entry itself failed fatally.
func (l *Loader) Load(entry string) *Session {
	st := &state{
		loader:  l,
		opts:    l.opts,
		session: newSession(l.opts.maxDiagnostics()),
	}

	root := st.loadFile(entry, "", 0, false, source.Span{})
	if root != nil {
		root = st.expandMacros(root, 0)
	}
	st.session.Tree = root
	return st.session
}

// state carries one load's working set: the loader configuration plus the
// session being filled in.
type state struct {
	loader  *Loader
	opts    Options
	session *Session
}

// loadFile drives resolution, reading, parsing, and directive processing
// for one page. It returns the page's root element with all of its own
// directives already resolved, or nil when the page contributes nothing
// (fatal subtree failure, or an :import of an already visited page).
//
// cur is the current directory inside the document root; origin locates the
// directive that requested the page (zero for the entry).
func (st *state) loadFile(name, cur string, depth int, once bool, origin source.Span) *tree.Element {
	if depth >= st.opts.maxNesting() {
		diag.ReportError(st.session.reporter(), diag.LoadTooManyInclusions, origin,
			"too many nested inclusions").Emit()
		return nil
	}

	sessionPath, ok := resolve(cur, name)
	if !ok {
		diag.ReportError(st.session.reporter(), diag.LoadForbiddenPath, origin,
			fmt.Sprintf("forbidden pathname %q", name)).Emit()
		return nil
	}

	if st.session.visited(sessionPath) && once {
		return nil
	}
	st.session.Files = append(st.session.Files, sessionPath)

	root := st.readAndParse(sessionPath, origin)
	if root == nil {
		return nil
	}

	st.processDirectives(root, dirOf(sessionPath), depth)
	return root
}

// readAndParse is the reader and parser bridge: bytes in, a single root
// element out. Read failures, parse errors, and a first statement that is
// not a markup element are all fatal to the page.
func (st *state) readAndParse(sessionPath string, origin source.Span) *tree.Element {
	fileID, err := st.session.FileSet.LoadAs(osPath(st.loader.root, sessionPath), sessionPath)
	if err != nil {
		diag.ReportError(st.session.reporter(), diag.LoadReadFailed, origin,
			fmt.Sprintf("failed to read %q", sessionPath)).Emit()
		return nil
	}
	file := st.session.FileSet.Get(fileID)

	local := diag.NewBag(int(st.session.Bag.Cap()))
	result := parser.Parse(file, parser.Options{
		MaxErrors: uint(st.session.Bag.Cap()),
		Reporter:  &diag.BagReporter{Bag: local},
	})
	// Parse findings name the page they came from: `<error> in "<path>"`.
	wrapped := diag.NewBag(local.Len())
	for _, d := range local.Items() {
		d.Message = fmt.Sprintf("%s in %q", d.Message, sessionPath)
		wrapped.Add(d)
	}
	st.session.Bag.Merge(wrapped)
	if local.HasErrors() {
		return nil
	}

	root := result.Root()
	if root == nil {
		// The first statement must be a markup element. Leading whitespace
		// text trips this too; that matches the page grammar as shipped.
		sp := origin
		if len(result.Nodes) > 0 {
			sp = result.Nodes[0].Span()
		}
		diag.ReportError(st.session.reporter(), diag.LoadRootExpected, sp,
			fmt.Sprintf("HTML tag expected %q", sessionPath)).Emit()
		return nil
	}
	return root
}
