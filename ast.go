package dynopath

import "reflect"

// Expr is a node in the abstract expression tree the path extractor
// understands. Callers build trees with the node types below; the
// extractor never cares how they were produced.
type Expr interface {
	exprNode()
}

// Var references a bound variable by name. Type carries the declared
// native type of the binder that introduced it.
type Var struct {
	Name string
	Type reflect.Type
}

// Member accesses a named member of Target.
type Member struct {
	Target Expr
	Name   string
}

// Index accesses an element of Target. Key must be a closed, constant
// integer expression for the access to compile.
type Index struct {
	Target Expr
	Key    Expr
}

// Call applies a named operation. Unwrap/Deref/First/Second calls on a
// Target participate in path extraction; arithmetic calls ("+", "-",
// "*", "/") over Args participate in index folding.
type Call struct {
	Fn     string
	Target Expr
	Args   []Expr
}

// Lambda binds one parameter over a body. Curried expressions nest
// lambdas, innermost body last.
type Lambda struct {
	Param *Var
	Body  Expr
}

// Const is a literal value.
type Const struct {
	Value any
}

func (*Var) exprNode()    {}
func (*Member) exprNode() {}
func (*Index) exprNode()  {}
func (*Call) exprNode()   {}
func (*Lambda) exprNode() {}
func (*Const) exprNode()  {}

// Bind builds a single-parameter lambda over a record type.
func Bind(name string, typ reflect.Type, body func(*Var) Expr) *Lambda {
	v := &Var{Name: name, Type: typ}
	return &Lambda{Param: v, Body: body(v)}
}

// closed reports whether e contains no reference to a bound variable.
func closed(e Expr, bound func(*Var) bool) bool {
	switch t := e.(type) {
	case nil:
		return true
	case *Var:
		return !bound(t)
	case *Const:
		return true
	case *Member:
		return closed(t.Target, bound)
	case *Index:
		return closed(t.Target, bound) && closed(t.Key, bound)
	case *Call:
		if !closed(t.Target, bound) {
			return false
		}
		for _, a := range t.Args {
			if !closed(a, bound) {
				return false
			}
		}
		return true
	case *Lambda:
		inner := func(v *Var) bool {
			if v.Name == t.Param.Name {
				return false // shadowed
			}
			return bound(v)
		}
		return closed(t.Body, inner)
	}
	return false
}

// foldIndex constant-folds e to an integer. It understands literal
// constants and the four arithmetic operations over them; anything else
// is not a constant index.
func foldIndex(e Expr) (int, bool) {
	switch t := e.(type) {
	case *Const:
		return toInt(t.Value)
	case *Call:
		if t.Target != nil || len(t.Args) != 2 {
			return 0, false
		}
		l, ok := foldIndex(t.Args[0])
		if !ok {
			return 0, false
		}
		r, ok := foldIndex(t.Args[1])
		if !ok {
			return 0, false
		}
		switch t.Fn {
		case "+":
			return l + r, true
		case "-":
			return l - r, true
		case "*":
			return l * r, true
		case "/":
			if r == 0 {
				return 0, false
			}
			return l / r, true
		}
	}
	return 0, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	}
	return 0, false
}
