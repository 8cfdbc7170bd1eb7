package parser_test

import (
	"testing"

	"weft/internal/diag"
	"weft/internal/parser"
	"weft/internal/source"
	"weft/internal/tree"
)

func parseString(t *testing.T, src string) (parser.Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.html", []byte(src))
	bag := diag.NewBag(64)
	res := parser.Parse(fs.Get(id), parser.Options{
		MaxErrors: 64,
		Reporter:  &diag.BagReporter{Bag: bag},
	})
	return res, bag
}

func mustRoot(t *testing.T, src string) *tree.Element {
	t.Helper()
	res, bag := parseString(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %+v", bag.Items())
	}
	root := res.Root()
	if root == nil {
		t.Fatalf("no root element for %q", src)
	}
	return root
}

func TestParseSimpleElement(t *testing.T) {
	root := mustRoot(t, `<div class="x">hello</div>`)

	if root.Tag != "div" {
		t.Errorf("tag = %q, want div", root.Tag)
	}
	if root.SelfClosing {
		t.Error("element is not self-closing")
	}
	if got := root.AttrValue("class"); got != "x" {
		t.Errorf("class = %q, want x", got)
	}
	if len(root.Children) != 1 {
		t.Fatalf("children = %d, want 1", len(root.Children))
	}
	text, ok := root.Children[0].(*tree.Text)
	if !ok || text.Value != "hello" {
		t.Errorf("child = %#v, want text \"hello\"", root.Children[0])
	}
}

func TestParseSelfClosing(t *testing.T) {
	root := mustRoot(t, `<br/>`)
	if !root.SelfClosing || len(root.Children) != 0 {
		t.Errorf("expected a childless self-closing element, got %+v", root)
	}
}

func TestParseNestedElements(t *testing.T) {
	root := mustRoot(t, `<a><b><c/></b>tail</a>`)

	if len(root.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(root.Children))
	}
	b, ok := root.Children[0].(*tree.Element)
	if !ok || b.Tag != "b" {
		t.Fatalf("first child = %#v, want element b", root.Children[0])
	}
	if len(b.Children) != 1 {
		t.Fatalf("b children = %d, want 1", len(b.Children))
	}
}

func TestParseAttributeKinds(t *testing.T) {
	root := mustRoot(t, `<input disabled type="text" value={user.name}/>`)

	if a, _ := root.Lookup("disabled"); a.Kind != tree.AttrBare {
		t.Errorf("disabled should be bare, got %v", a.Kind)
	}
	if a, _ := root.Lookup("type"); a.Kind != tree.AttrLiteral || a.Value != "text" {
		t.Errorf("type = %+v, want literal \"text\"", a)
	}
	if a, _ := root.Lookup("value"); a.Kind != tree.AttrExpr || a.Value != "user.name" {
		t.Errorf("value = %+v, want expr user.name", a)
	}
}

func TestParseDuplicateAttributeLastWins(t *testing.T) {
	root := mustRoot(t, `<div class="a" class="b"></div>`)

	if len(root.Attrs) != 1 {
		t.Fatalf("attrs = %d, want 1 (names are unique)", len(root.Attrs))
	}
	if got := root.AttrValue("class"); got != "b" {
		t.Errorf("class = %q, the last write should win", got)
	}
}

func TestParseExpressionIsland(t *testing.T) {
	root := mustRoot(t, `<p>Hi {user.first({a: 1})}!</p>`)

	if len(root.Children) != 3 {
		t.Fatalf("children = %d, want text/expr/text", len(root.Children))
	}
	expr, ok := root.Children[1].(*tree.Expr)
	if !ok {
		t.Fatalf("middle child = %#v, want expression", root.Children[1])
	}
	if expr.Src != "user.first({a: 1})" {
		t.Errorf("expr = %q, braces should nest", expr.Src)
	}
}

func TestParseDirectiveTags(t *testing.T) {
	root := mustRoot(t, `<html><:include src="b.html"/><:define tag="x-y">z</:define></html>`)

	inc, ok := root.Children[0].(*tree.Element)
	if !ok || inc.Tag != ":include" || !inc.IsDirective() {
		t.Fatalf("first child = %#v, want :include directive", root.Children[0])
	}
	def, ok := root.Children[1].(*tree.Element)
	if !ok || def.DirectiveName() != "define" {
		t.Fatalf("second child = %#v, want :define directive", root.Children[1])
	}
}

func TestParseCommentIsDropped(t *testing.T) {
	root := mustRoot(t, `<div><!-- note -->x</div>`)
	if len(root.Children) != 1 {
		t.Fatalf("children = %d, comments should not produce nodes", len(root.Children))
	}
}

func TestParseLeadingWhitespaceKept(t *testing.T) {
	res, bag := parseString(t, "\n  <div/>")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if len(res.Nodes) != 2 {
		t.Fatalf("nodes = %d, want whitespace text + element", len(res.Nodes))
	}
	if res.Root() != nil {
		t.Error("Root() must be nil when the first statement is text")
	}
}

func TestParseMismatchedClosingTag(t *testing.T) {
	_, bag := parseString(t, `<a><b></a>`)
	if !bag.HasErrors() {
		t.Fatal("expected a mismatched-tag error")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynMismatchedTag {
			found = true
		}
	}
	if !found {
		t.Errorf("no SynMismatchedTag in %+v", bag.Items())
	}
}

func TestParseUnclosedTag(t *testing.T) {
	_, bag := parseString(t, `<a><b>`)
	if !bag.HasErrors() {
		t.Fatal("expected unclosed-tag errors")
	}
}

func TestParseStrayClosingTag(t *testing.T) {
	res, bag := parseString(t, `</a><div/>`)
	if !bag.HasErrors() {
		t.Fatal("expected a stray-end-tag error")
	}
	// Recovery continues: the element after the stray tag still parses.
	if len(res.Nodes) != 1 {
		t.Errorf("nodes = %d, want the recovered element", len(res.Nodes))
	}
}

func TestParseSpansCoverElement(t *testing.T) {
	src := `<div class="x">hello</div>`
	root := mustRoot(t, src)
	if root.Loc.Start != 0 || int(root.Loc.End) != len(src) {
		t.Errorf("span = %v, want 0-%d", root.Loc, len(src))
	}
}
