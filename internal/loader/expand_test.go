package loader_test

import (
	"strings"
	"testing"

	"weft/internal/testkit"
)

func TestMacroWithNamedSlots(t *testing.T) {
	s := load(t, map[string]string{
		"a.html": `<html><:define tag="my-card" class="card"><:slot name="header"/><:slot name="default"/></:define><my-card><span name="header">H</span>B</my-card></html>`,
	}, "a.html")

	if got, want := mustMarkup(t, s), `<html><div class="card"><span>H</span>B</div></html>`; got != want {
		t.Errorf("markup mismatch:\n got  %s\n want %s", got, want)
	}
	if s.Bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %+v", s.Bag.Items())
	}
	if err := testkit.CheckTreeInvariants(s.Tree, false); err != nil {
		t.Error(err)
	}
	if _, ok := s.Macros["my-card"]; !ok {
		t.Error("my-card should be registered in the session")
	}
}

func TestMacroCustomBaseTag(t *testing.T) {
	s := load(t, map[string]string{
		"a.html": `<html><:define tag="my-chip:span" class="chip"/><my-chip>X</my-chip></html>`,
	}, "a.html")

	// A self-closing definition body is promoted to paired tags so the
	// default slot has room.
	if got, want := mustMarkup(t, s), `<html><span class="chip">X</span></html>`; got != want {
		t.Errorf("markup mismatch:\n got  %s\n want %s", got, want)
	}
}

func TestMacroDefaultSlotSynthesis(t *testing.T) {
	s := load(t, map[string]string{
		"a.html": `<html><:define tag="x-box" class="b">P</:define><x-box>Q</x-box></html>`,
	}, "a.html")

	// No default slot in the body: one is synthesized as the last child,
	// so use-site children land after the body's own content.
	if got, want := mustMarkup(t, s), `<html><div class="b">PQ</div></html>`; got != want {
		t.Errorf("markup mismatch:\n got  %s\n want %s", got, want)
	}
}

func TestMacroIdempotentDefaultSlot(t *testing.T) {
	implicit := load(t, map[string]string{
		"a.html": `<html><:define tag="x-box">P</:define><x-box>Q</x-box></html>`,
	}, "a.html")
	explicit := load(t, map[string]string{
		"a.html": `<html><:define tag="x-box">P<:slot name="default"/></:define><x-box>Q</x-box></html>`,
	}, "a.html")

	got := mustMarkup(t, implicit)
	want := mustMarkup(t, explicit)
	if got != want {
		t.Errorf("implicit and explicit default slots diverge:\n implicit %s\n explicit %s", got, want)
	}
}

func TestMacroAttrMergeUseSiteWins(t *testing.T) {
	s := load(t, map[string]string{
		"a.html": `<html><:define tag="x-b" class="a" id="i"/><x-b class="z"/></html>`,
	}, "a.html")

	if got, want := mustMarkup(t, s), `<html><div class="z" id="i"></div></html>`; got != want {
		t.Errorf("markup mismatch:\n got  %s\n want %s", got, want)
	}
}

func TestSlotRoutingPreservesOrder(t *testing.T) {
	s := load(t, map[string]string{
		"a.html": `<html><:define tag="x-box"><:slot name="default"/></:define><x-box>A<span>S</span>B</x-box></html>`,
	}, "a.html")

	if got, want := mustMarkup(t, s), `<html><div>A<span>S</span>B</div></html>`; got != want {
		t.Errorf("markup mismatch:\n got  %s\n want %s", got, want)
	}
}

func TestChildForUnknownSlotIsDropped(t *testing.T) {
	s := load(t, map[string]string{
		"a.html": `<html><:define tag="x-box"><:slot name="default"/></:define><x-box><span name="nope">N</span>K</x-box></html>`,
	}, "a.html")

	if got, want := mustMarkup(t, s), `<html><div>K</div></html>`; got != want {
		t.Errorf("markup mismatch:\n got  %s\n want %s", got, want)
	}
	// Dropped silently: no diagnostic.
	if s.Bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %+v", s.Bag.Items())
	}
}

func TestSlotMissingNameAttribute(t *testing.T) {
	s := load(t, map[string]string{
		"a.html": `<html><:define tag="x-box"><:slot/></:define><x-box>Q</x-box></html>`,
	}, "a.html")

	if got := countMessages(s, "missing name attribute"); got != 1 {
		t.Fatalf("expected 1 missing-slot-name error, got %d (%+v)", got, s.Bag.Items())
	}
}

func TestInvalidMacroTagName(t *testing.T) {
	for name, def := range map[string]string{
		"no dash":     `<:define tag="nodash">x</:define>`,
		"missing tag": `<:define>x</:define>`,
		"bad chars":   `<:define tag="my-tag:no/good">x</:define>`,
	} {
		t.Run(name, func(t *testing.T) {
			s := load(t, map[string]string{"a.html": `<html>` + def + `</html>`}, "a.html")
			if got := countMessages(s, "invalid tag name"); got != 1 {
				t.Fatalf("expected 1 invalid-tag-name warning, got %d (%+v)", got, s.Bag.Items())
			}
			if s.Bag.HasErrors() {
				t.Errorf("invalid tag name must be a warning, got errors: %+v", s.Bag.Items())
			}
			if len(s.Macros) != 0 {
				t.Errorf("nothing should be registered, got %v", s.Macros)
			}
			// The definition is removed either way.
			if got, want := mustMarkup(t, s), `<html></html>`; got != want {
				t.Errorf("markup mismatch:\n got  %s\n want %s", got, want)
			}
		})
	}
}

func TestMacroInheritance(t *testing.T) {
	s := load(t, map[string]string{
		"a.html": `<html><:define tag="my-card" class="card"><:slot name="header"/><:slot name="default"/></:define><:define tag="my-big:my-card"><h1 name="header">Big</h1></:define><my-big><span name="header">H</span>B</my-big></html>`,
	}, "a.html")

	// my-big's h1 was routed into my-card's header slot at definition
	// time; the use-site's children route into the preserved slots.
	if got, want := mustMarkup(t, s), `<html><div class="card"><h1>Big</h1><span>H</span>B</div></html>`; got != want {
		t.Errorf("markup mismatch:\n got  %s\n want %s", got, want)
	}

	big, ok := s.Macros["my-big"]
	if !ok {
		t.Fatal("my-big should be registered")
	}
	if big.From == nil || big.From.Name != "my-card" {
		t.Errorf("my-big should inherit from my-card, got %+v", big.From)
	}
}

func TestMacroInheritanceSlotOverride(t *testing.T) {
	s := load(t, map[string]string{
		"a.html": `<html><:define tag="c-a"><p><:slot name="x"/></p><:slot name="default"/></:define><:define tag="c-b:c-a"><em><:slot name="x"/></em></:define><c-b><b name="x">X</b></c-b></html>`,
	}, "a.html")

	// c-b redefines slot x inside <em>; the parent's slot inside <p> is
	// removed, so routed content lands in the new position only.
	if got, want := mustMarkup(t, s), `<html><div><p></p><em><b>X</b></em></div></html>`; got != want {
		t.Errorf("markup mismatch:\n got  %s\n want %s", got, want)
	}
}

func TestMacroInheritanceKeepsUnredefinedSlots(t *testing.T) {
	s := load(t, map[string]string{
		"a.html": `<html><:define tag="c-a"><:slot name="x"/><:slot name="default"/></:define><:define tag="c-b:c-a">body</:define><c-b><i name="x">I</i>D</c-b></html>`,
	}, "a.html")

	// c-b defines no slot of its own: both parent slots stay routable.
	if got, want := mustMarkup(t, s), `<html><div><i>I</i>bodyD</div></html>`; got != want {
		t.Errorf("markup mismatch:\n got  %s\n want %s", got, want)
	}
}

func TestNestedMacroUse(t *testing.T) {
	s := load(t, map[string]string{
		"a.html": `<html><:define tag="x-inner" class="i"/><:define tag="x-outer"><x-inner>T</x-inner></:define><x-outer/></html>`,
	}, "a.html")

	if got, want := mustMarkup(t, s), `<html><div><div class="i">T</div></div></html>`; got != want {
		t.Errorf("markup mismatch:\n got  %s\n want %s", got, want)
	}
}

func TestRecursiveMacroDepthLimit(t *testing.T) {
	s := load(t, map[string]string{
		"a.html": `<html><:define tag="x-loop"><x-loop/></:define><x-loop/></html>`,
	}, "a.html")

	if got := countMessages(s, `too many nested macros "x-loop"`); got != 1 {
		t.Fatalf("expected exactly 1 macro-depth error, got %d", got)
	}
	// The use-site at the bound stays unexpanded.
	if !strings.Contains(mustMarkup(t, s), "<x-loop/>") {
		t.Error("the over-deep use-site should remain in the tree")
	}
}

func TestMacroDefinedInImportedPage(t *testing.T) {
	s := load(t, map[string]string{
		"a.html":   `<html><:import src="lib.html"/><x-chip>Z</x-chip></html>`,
		"lib.html": `<lib><:define tag="x-chip" class="c"/></lib>`,
	}, "a.html")

	if got, want := mustMarkup(t, s), `<html><div class="c">Z</div></html>`; got != want {
		t.Errorf("markup mismatch:\n got  %s\n want %s", got, want)
	}
}

func TestMacroBodyCarriesExpressions(t *testing.T) {
	s := load(t, map[string]string{
		"a.html": `<html><:define tag="x-greet" class={theme}>Hi {name}</:define><x-greet/></html>`,
	}, "a.html")

	// Expression islands pass through expansion verbatim.
	if got, want := mustMarkup(t, s), `<html><div class={theme}>Hi {name}</div></html>`; got != want {
		t.Errorf("markup mismatch:\n got  %s\n want %s", got, want)
	}
}
