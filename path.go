package dynopath

import (
	"fmt"
	"strings"
)

// PathNode is one step of a compiled attribute path. Nodes form a
// single-owner chain from leaf back to the root property; they are
// immutable once built and safe to share between goroutines.
type PathNode interface {
	// Codec returns the codec of the value found at this node.
	Codec() Codec
	// Root returns the schema property the chain starts at.
	Root() *Property
	// Tokens returns the human-readable path segments, root to leaf.
	Tokens() []string
	// ID compiles the chain into its canonical AttributeID.
	ID() AttributeID
	// ForEachCodec visits every codec along the chain, root first.
	ForEachCodec(fn func(Codec))

	pathNode()
}

// RootNode is the terminal base case: direct access to a root property.
type RootNode struct {
	Prop *Property
}

// NestedNode is member access one level deeper into a nested schema.
type NestedNode struct {
	Prop   *Property
	Parent PathNode
}

// ItemNode is constant-index element access into an indexable collection.
type ItemNode struct {
	Index  int
	Elem   Codec
	Parent PathNode
}

// OptionalNode unwraps an optional value. The store has no notion of an
// optional wrapper, so the node contributes no path token.
type OptionalNode struct {
	Elem   Codec
	Parent PathNode
}

func (*RootNode) pathNode()     {}
func (*NestedNode) pathNode()   {}
func (*ItemNode) pathNode()     {}
func (*OptionalNode) pathNode() {}

func (n *RootNode) Codec() Codec     { return n.Prop.Codec }
func (n *NestedNode) Codec() Codec   { return n.Prop.Codec }
func (n *ItemNode) Codec() Codec     { return n.Elem }
func (n *OptionalNode) Codec() Codec { return n.Elem }

func (n *RootNode) Root() *Property     { return n.Prop }
func (n *NestedNode) Root() *Property   { return n.Parent.Root() }
func (n *ItemNode) Root() *Property     { return n.Parent.Root() }
func (n *OptionalNode) Root() *Property { return n.Parent.Root() }

func (n *RootNode) Tokens() []string   { return []string{n.Prop.Name} }
func (n *NestedNode) Tokens() []string { return append(n.Parent.Tokens(), n.Prop.Name) }
func (n *ItemNode) Tokens() []string {
	return append(n.Parent.Tokens(), fmt.Sprintf("[%d]", n.Index))
}
func (n *OptionalNode) Tokens() []string { return n.Parent.Tokens() }

func (n *RootNode) ID() AttributeID { return rootAttributeID(n.Prop) }
func (n *NestedNode) ID() AttributeID {
	return n.Parent.ID().AppendName(n.Prop.AttrID(), n.Prop.Name)
}
func (n *ItemNode) ID() AttributeID {
	return n.Parent.ID().Append(fmt.Sprintf("[%d]", n.Index))
}
func (n *OptionalNode) ID() AttributeID { return n.Parent.ID() }

func (n *RootNode) ForEachCodec(fn func(Codec)) { fn(n.Prop.Codec) }
func (n *NestedNode) ForEachCodec(fn func(Codec)) {
	n.Parent.ForEachCodec(fn)
	fn(n.Prop.Codec)
}
func (n *ItemNode) ForEachCodec(fn func(Codec)) {
	n.Parent.ForEachCodec(fn)
	fn(n.Elem)
}
func (n *OptionalNode) ForEachCodec(fn func(Codec)) {
	n.Parent.ForEachCodec(fn)
	fn(n.Elem)
}

// renderTokens joins path tokens into their diagnostic string form:
// names are dot-separated, index tokens attach directly.
func renderTokens(tokens []string) string {
	var sb strings.Builder
	for i, tok := range tokens {
		if i > 0 && !strings.HasPrefix(tok, "[") {
			sb.WriteByte('.')
		}
		sb.WriteString(tok)
	}
	return sb.String()
}
