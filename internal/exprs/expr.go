// Package exprs lexes condition and update expression templates:
// plain expression text with `$` attribute placeholders, `?` value
// placeholders, and 'quoted' attribute names.
package exprs

import (
	"fmt"
	"sync"
)

// Expr is a lexed template.
type Expr struct {
	Items []Item
	err   error
}

// Parse lexes a template into its items. Results are cached per input,
// since condition templates tend to be compile-time constants reused
// across many requests.
func Parse(input string) (*Expr, error) {
	exprCache.RLock()
	expr := exprCache.m[input]
	exprCache.RUnlock()
	if expr != nil {
		return expr, expr.err
	}

	expr = &Expr{}
	l := lex(input)
loop:
	for {
		item := l.nextItem()
		switch item.Type {
		case ItemError:
			expr.err = fmt.Errorf("dynopath: template lex error: %s at position %d", item.Val, item.Pos)
			break loop
		case ItemEOF:
			break loop
		}
		expr.Items = append(expr.Items, item)
	}
	exprCache.Lock()
	exprCache.m[input] = expr
	exprCache.Unlock()
	return expr, expr.err
}

// exprCache holds an in-memory cache of already lexed templates.
var exprCache = struct {
	m map[string]*Expr // input → expr
	sync.RWMutex
}{m: make(map[string]*Expr)}
