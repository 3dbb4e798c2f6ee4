package dynopath

import "fmt"

// exprParams is the result of peeling a curried expression's binders:
// the positions of auxiliary scalar parameters, the schema-bound record
// variable, and the unwrapped body.
type exprParams struct {
	NumArgs int
	Record  *Var
	Body    Expr

	args map[string]int // auxiliary binder name → 0-based position
}

// extractParams peels leading lambda binders whose declared type differs
// from the schema's native type, recording each as an auxiliary parameter.
// The first binder matching the schema type is the record parameter; it
// stops the peel. Reports false when no binder matches the schema.
func extractParams(schema Schema, e Expr) (*exprParams, bool) {
	p := &exprParams{args: make(map[string]int)}
	for {
		lam, ok := e.(*Lambda)
		if !ok {
			return nil, false
		}
		if lam.Param.Type == schema.Type() {
			p.Record = lam.Param
			p.Body = lam.Body
			return p, true
		}
		p.args[lam.Param.Name] = p.NumArgs
		p.NumArgs++
		e = lam.Body
	}
}

// Arg maps a variable reference to its auxiliary parameter position.
func (p *exprParams) Arg(v *Var) (int, bool) {
	i, ok := p.args[v.Name]
	return i, ok
}

// isBound reports whether v refers to the record or any auxiliary binder.
func (p *exprParams) isBound(v *Var) bool {
	if p.Record != nil && v.Name == p.Record.Name {
		return true
	}
	_, ok := p.args[v.Name]
	return ok
}

// opKind tags one pending navigation step.
type opKind int

const (
	opMember opKind = iota
	opUnwrap
	opIndex
)

// pathOp is one peeled operation, recorded outermost-first.
type pathOp struct {
	kind  opKind
	name  string // member name, opMember only
	index Expr   // index sub-expression, opIndex only
}

// tryExtract matches e against the accepted path shapes, rooted at the
// schema-bound variable. It returns (nil, nil) when e has some other
// shape — callers decide whether that is an error — and ErrOpaquePath
// when the chain tries to continue past a serialized or union leaf.
// isBound reports extra bound variables for the closed-index check; it
// may be nil.
func tryExtract(bound *Var, schema Schema, e Expr, isBound func(*Var) bool) (PathNode, error) {
	// Peel outer operations into a pending list, outermost first,
	// descending until we reach the bound variable.
	var ops []pathOp
	cur := e
peel:
	for {
		switch t := cur.(type) {
		case *Var:
			if t.Name != bound.Name {
				return nil, nil
			}
			break peel
		case *Member:
			ops = append(ops, pathOp{kind: opMember, name: t.Name})
			cur = t.Target
		case *Index:
			ops = append(ops, pathOp{kind: opIndex, index: t.Key})
			cur = t.Target
		case *Call:
			if t.Target == nil || len(t.Args) != 0 {
				return nil, nil
			}
			switch t.Fn {
			case "Unwrap":
				ops = append(ops, pathOp{kind: opUnwrap})
			case "Deref":
				ops = append(ops, pathOp{kind: opMember, name: "Contents"})
			case "First":
				ops = append(ops, pathOp{kind: opMember, name: "Item1"})
			case "Second":
				ops = append(ops, pathOp{kind: opMember, name: "Item2"})
			default:
				return nil, nil
			}
			cur = t.Target
		default:
			return nil, nil
		}
	}
	if len(ops) == 0 {
		// The bare record variable is not an attribute path.
		return nil, nil
	}

	inIndex := func(v *Var) bool {
		if v.Name == bound.Name {
			return true
		}
		return isBound != nil && isBound(v)
	}

	// Replay innermost-first, tracking the node built so far and the
	// schema context its leaf exposes.
	var node PathNode
	ctx := schema
	for i := len(ops) - 1; i >= 0; i-- {
		if node != nil && node.Codec().Kind().Opaque() {
			return nil, fmt.Errorf("%w: %s", ErrOpaquePath, renderTokens(node.Tokens()))
		}
		op := ops[i]
		switch op.kind {
		case opMember:
			if node != nil && op.name == "Value" && node.Codec().Kind() == KindOptional {
				oc, ok := node.Codec().(OptionCodec)
				if !ok {
					return nil, nil
				}
				node = &OptionalNode{Elem: oc.Elem(), Parent: node}
				continue
			}
			prop := lookupProp(ctx, op.name)
			if prop == nil {
				return nil, nil
			}
			if node == nil {
				node = &RootNode{Prop: prop}
			} else {
				node = &NestedNode{Prop: prop, Parent: node}
			}
			ctx = prop.Schema
		case opUnwrap:
			if node == nil || node.Codec().Kind() != KindOptional {
				return nil, nil
			}
			oc, ok := node.Codec().(OptionCodec)
			if !ok {
				return nil, nil
			}
			node = &OptionalNode{Elem: oc.Elem(), Parent: node}
		case opIndex:
			if node == nil {
				return nil, nil
			}
			if !closed(op.index, inIndex) {
				return nil, nil
			}
			idx, ok := foldIndex(op.index)
			if !ok {
				return nil, nil
			}
			ec, ok := node.Codec().(ElemCodec)
			if !ok {
				return nil, nil
			}
			node = &ItemNode{Index: idx, Elem: ec.Elem(), Parent: node}
			ctx = ec.ElemSchema()
		}
	}
	return node, nil
}
