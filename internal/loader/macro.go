package loader

import (
	"regexp"
	"strings"

	"weft/internal/diag"
	"weft/internal/tree"
)

// defaultBase is the tag a macro rewrites to when no base is given.
const defaultBase = "div"

// defaultSlotName is the name of the implicit slot.
const defaultSlotName = "default"

// Macro is a registered element macro: a user-chosen tag (containing a
// dash, custom-element style) that expands to Body at every use site.
// From is set when the macro inherits from a previously defined macro.
type Macro struct {
	Name string
	// Base is the underlying tag the macro rewrites to. It may have named
	// another macro at definition time; Body then already carries the
	// parent's expansion.
	Base string
	// Body is the stored definition body. The registry owns it; every
	// expansion stamps a fresh deep clone.
	Body *tree.Element
	// From references the parent macro when Base named one.
	From *Macro
}

var macroTagRe = regexp.MustCompile(`^[-\w]+$`)

// splitMacroTag parses a `tag` attribute of the shape `name` or `name:base`
// and validates both components.
func splitMacroTag(value string) (name, base string, ok bool) {
	name, base, hasBase := strings.Cut(value, ":")
	if !hasBase {
		base = defaultBase
	}
	if !macroTagRe.MatchString(name) || !strings.Contains(name, "-") {
		return "", "", false
	}
	if !macroTagRe.MatchString(base) {
		return "", "", false
	}
	return name, base, true
}

// collectMacro registers the :define directive as a macro descriptor. The
// caller removes the directive from the host tree afterwards, whether or
// not registration succeeded.
func (st *state) collectMacro(ref directiveRef) {
	name, base, ok := splitMacroTag(ref.el.AttrValue("tag"))
	if !ok {
		diag.ReportWarning(st.session.reporter(), diag.LoadInvalidTagName, ref.el.Loc,
			"invalid tag name").Emit()
		return
	}

	// The registry owns a deep clone of the definition body: later edits to
	// the host tree must not leak into expansions.
	body := ref.el.Clone()
	body.RemoveAttr("tag")
	body.Tag = base
	if body.SelfClosing {
		// Promote to paired tags so the body has room for expanded content.
		body.SelfClosing = false
		body.Children = []tree.Node{}
	}

	var from *Macro
	if strings.Contains(base, "-") {
		if parent, registered := st.session.Macros[base]; registered {
			from = parent
			// Inheritance is resolved now, one-shot: the child body is
			// expanded against the parent with slot preservation, and the
			// expanded form becomes the stored body.
			body = st.stamp(parent, body, true)
		}
	}

	st.session.Macros[name] = &Macro{
		Name: name,
		Base: base,
		Body: body,
		From: from,
	}
}
