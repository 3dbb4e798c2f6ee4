package dynopath

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Compiler compiles typed member-access expressions against one schema
// into store-compatible attribute paths. A Compiler is immutable and
// safe for concurrent use; every compilation gets its own writer.
type Compiler struct {
	schema Schema
	log    *zap.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger used for debug traces.
// The default logger discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Compiler) { c.log = log }
}

// NewCompiler returns a Compiler bound to schema.
func NewCompiler(schema Schema, opts ...Option) *Compiler {
	c := &Compiler{
		schema: schema,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compiled is the result of compiling one attribute expression: the
// placeholder path for expression text, its identity and tokens, the
// leaf codec, and the name/value maps accumulated while writing it.
type Compiled struct {
	Path    string
	ID      AttributeID
	Tokens  []string
	Codec   Codec
	NumArgs int
	Names   map[string]string
	Values  map[string]types.AttributeValue
}

// Compile compiles a curried expression of one schema-bound record
// parameter (plus any auxiliary scalar parameters) into its attribute
// path. Unrecognized shapes return ErrUnsupported; descending past a
// serialized or union attribute returns ErrOpaquePath.
func (c *Compiler) Compile(e Expr) (*Compiled, error) {
	node, params, err := c.extract(e)
	if err != nil {
		return nil, err
	}
	w := newWriter()
	id := node.ID()
	path := w.WriteAttribute(id)
	out := &Compiled{
		Path:    path,
		ID:      id,
		Tokens:  node.Tokens(),
		Codec:   node.Codec(),
		NumArgs: params.NumArgs,
		Names:   w.names,
		Values:  w.values,
	}
	c.log.Debug("compiled attribute path",
		zap.String("path", path),
		zap.Strings("tokens", out.Tokens),
		zap.Int("names", len(out.Names)))
	return out, nil
}

// CompileAll compiles a batch of expressions destined for one request,
// then rejects the batch if any two attribute paths overlap. Each
// expression compiles with its own writer, so the batch runs in
// parallel; results keep input order, and so does conflict reporting.
func (c *Compiler) CompileAll(ctx context.Context, exprs ...Expr) ([]*Compiled, error) {
	out := make([]*Compiled, len(exprs))
	g, _ := errgroup.WithContext(ctx)
	for i, e := range exprs {
		i, e := i, e
		g.Go(func() error {
			compiled, err := c.Compile(e)
			if err != nil {
				return err
			}
			out[i] = compiled
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	paths := make([][]string, len(out))
	for i, compiled := range out {
		paths[i] = compiled.Tokens
	}
	if conflict := tryFindConflict(paths); conflict != nil {
		return nil, conflict
	}
	return out, nil
}

func (c *Compiler) extract(e Expr) (PathNode, *exprParams, error) {
	params, ok := extractParams(c.schema, e)
	if !ok {
		return nil, nil, ErrUnsupported
	}
	node, err := tryExtract(params.Record, c.schema, params.Body, params.isBound)
	if err != nil {
		return nil, nil, err
	}
	if node == nil {
		return nil, nil, ErrUnsupported
	}
	return node, params, nil
}
