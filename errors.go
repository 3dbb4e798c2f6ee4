package dynopath

import (
	"errors"
	"fmt"
)

var (
	// ErrOpaquePath is returned when an expression tries to navigate
	// inside a serialized or tagged-union attribute. Those values are
	// stored whole; the store cannot see their internals.
	ErrOpaquePath = errors.New("dynopath: cannot traverse inside a serialized or union attribute")

	// ErrUnsupported is returned for expressions that match none of the
	// accepted path shapes, including non-constant element indexes and
	// unknown properties.
	ErrUnsupported = errors.New("dynopath: unsupported expression")
)

// ConflictError reports two attribute paths in one batch that would
// overlap if written together. Path is the later path in input order;
// Prefix is the previously accepted path it collides with.
type ConflictError struct {
	Path   string
	Prefix string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("dynopath: conflicting attribute paths: %q overlaps %q", e.Path, e.Prefix)
}
