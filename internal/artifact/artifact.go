// Package artifact serializes a load session's expanded tree into a
// compact, schema-versioned payload that downstream compilation stages
// consume. Trees are flattened into a node table with integer child
// references; nothing here depends on Go pointer identity.
package artifact

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"weft/internal/loader"
	"weft/internal/source"
	"weft/internal/tree"
)

// Schema is the current payload version. Bump when Payload changes shape;
// Decode rejects other versions.
const Schema uint16 = 1

var (
	ErrNoTree       = errors.New("artifact: session has no tree")
	ErrBadSchema    = errors.New("artifact: unsupported schema version")
	ErrCorruptNodes = errors.New("artifact: node table is corrupt")
)

type nodeKind uint8

const (
	kindElement nodeKind = iota
	kindText
	kindExpr
)

// FlatAttr is one attribute entry in serialized form.
type FlatAttr struct {
	Name  string `msgpack:"n"`
	Kind  uint8  `msgpack:"k"`
	Value string `msgpack:"v"`
}

// FlatNode is one tree node in serialized form. Children reference node
// table indices; index 0 is the root.
type FlatNode struct {
	Kind        uint8      `msgpack:"k"`
	Tag         string     `msgpack:"t,omitempty"`
	Text        string     `msgpack:"x,omitempty"`
	Attrs       []FlatAttr `msgpack:"a,omitempty"`
	SelfClosing bool       `msgpack:"s,omitempty"`
	Children    []uint32   `msgpack:"c,omitempty"`
	File        uint32     `msgpack:"f"`
	Start       uint32     `msgpack:"b"`
	End         uint32     `msgpack:"e"`
}

// Payload is the on-disk artifact: the page set that produced the tree
// (paths and content hashes, for downstream invalidation), the macro names
// that were in scope, and the flattened tree itself.
type Payload struct {
	Schema     uint16     `msgpack:"schema"`
	Files      []string   `msgpack:"files"`
	FileHashes [][]byte   `msgpack:"hashes"`
	Macros     []string   `msgpack:"macros"`
	Nodes      []FlatNode `msgpack:"nodes"`
}

// Encode flattens the session's expanded tree and marshals it.
func Encode(s *loader.Session) ([]byte, error) {
	if s.Tree == nil {
		return nil, ErrNoTree
	}

	p := Payload{
		Schema: Schema,
		Files:  append([]string(nil), s.Files...),
	}
	for _, f := range s.Files {
		hash := [32]byte{}
		if file, ok := s.FileSet.GetByPath(f); ok {
			hash = file.Hash
		}
		p.FileHashes = append(p.FileHashes, hash[:])
	}
	for name := range s.Macros {
		p.Macros = append(p.Macros, name)
	}
	sort.Strings(p.Macros)

	flatten(&p, s.Tree)
	return msgpack.Marshal(p)
}

// flatten appends n (and its descendants) to the payload's node table and
// returns its index.
func flatten(p *Payload, n tree.Node) uint32 {
	idx := uint32(len(p.Nodes))
	p.Nodes = append(p.Nodes, FlatNode{})

	var fn FlatNode
	switch n := n.(type) {
	case *tree.Element:
		fn = FlatNode{
			Kind:        uint8(kindElement),
			Tag:         n.Tag,
			SelfClosing: n.SelfClosing,
			File:        uint32(n.Loc.File),
			Start:       n.Loc.Start,
			End:         n.Loc.End,
		}
		for _, a := range n.Attrs {
			fn.Attrs = append(fn.Attrs, FlatAttr{Name: a.Name, Kind: uint8(a.Kind), Value: a.Value})
		}
		for _, c := range n.Children {
			fn.Children = append(fn.Children, flatten(p, c))
		}
	case *tree.Text:
		fn = FlatNode{Kind: uint8(kindText), Text: n.Value, File: uint32(n.Loc.File), Start: n.Loc.Start, End: n.Loc.End}
	case *tree.Expr:
		fn = FlatNode{Kind: uint8(kindExpr), Text: n.Src, File: uint32(n.Loc.File), Start: n.Loc.Start, End: n.Loc.End}
	}
	p.Nodes[idx] = fn
	return idx
}

// Decode unmarshals a payload and rebuilds the tree.
func Decode(data []byte) (*Payload, *tree.Element, error) {
	var p Payload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, nil, fmt.Errorf("artifact: unmarshal: %w", err)
	}
	if p.Schema != Schema {
		return nil, nil, ErrBadSchema
	}
	if len(p.Nodes) == 0 {
		return &p, nil, nil
	}
	root, err := rebuild(&p, 0)
	if err != nil {
		return nil, nil, err
	}
	el, ok := root.(*tree.Element)
	if !ok {
		return nil, nil, ErrCorruptNodes
	}
	return &p, el, nil
}

func rebuild(p *Payload, idx uint32) (tree.Node, error) {
	if int(idx) >= len(p.Nodes) {
		return nil, ErrCorruptNodes
	}
	fn := p.Nodes[idx]
	loc := spanOf(fn)
	switch nodeKind(fn.Kind) {
	case kindText:
		return &tree.Text{Value: fn.Text, Loc: loc}, nil
	case kindExpr:
		return &tree.Expr{Src: fn.Text, Loc: loc}, nil
	case kindElement:
		el := &tree.Element{Tag: fn.Tag, SelfClosing: fn.SelfClosing, Loc: loc}
		for _, a := range fn.Attrs {
			el.Attrs = append(el.Attrs, tree.Attr{Name: a.Name, Kind: tree.AttrValueKind(a.Kind), Value: a.Value, Loc: loc})
		}
		for _, c := range fn.Children {
			if c <= idx {
				return nil, ErrCorruptNodes
			}
			child, err := rebuild(p, c)
			if err != nil {
				return nil, err
			}
			el.Children = append(el.Children, child)
		}
		return el, nil
	}
	return nil, ErrCorruptNodes
}

func spanOf(fn FlatNode) source.Span {
	return source.Span{File: source.FileID(fn.File), Start: fn.Start, End: fn.End}
}
