package dynopath

import (
	"fmt"
	"reflect"
)

// AttributeRole describes how an attribute participates in the table's key schema.
type AttributeRole int

// Roles for schema properties.
const (
	RoleOrdinary AttributeRole = iota
	RolePrimaryKey
	RoleSortKey
)

func (r AttributeRole) String() string {
	switch r {
	case RolePrimaryKey:
		return "hash"
	case RoleSortKey:
		return "range"
	}
	return "attr"
}

// Property describes a single attribute of a schema: its stable index,
// wire name, codec, key role, and nested schema when the attribute is
// itself a structured value.
type Property struct {
	Index  int
	Name   string
	Codec  Codec
	Schema Schema // nested schema, nil for leaf properties
	Role   AttributeRole
}

// AttrID returns the stable placeholder alias for this property.
// Indexes are unique across the whole schema tree, so aliases never
// collide between nesting levels.
func (p *Property) AttrID() string {
	return fmt.Sprintf("#ATTR%d", p.Index)
}

// Schema exposes the shape of a record type to the path compiler.
// Implementations must be immutable once handed to a Compiler.
type Schema interface {
	// Type is the native type this schema describes.
	Type() reflect.Type
	// Properties returns the property descriptors in declaration order.
	Properties() []*Property
	// HashKey returns the property with the primary key role, or nil.
	HashKey() *Property
	// RangeKey returns the property with the sort key role, or nil.
	RangeKey() *Property
}

// StaticSchema is a Schema backed by a fixed property list.
// It is the concrete type produced by SchemaOf and the easiest way to
// supply synthetic schemas in tests.
type StaticSchema struct {
	NativeType reflect.Type
	Props      []*Property
}

func (s *StaticSchema) Type() reflect.Type      { return s.NativeType }
func (s *StaticSchema) Properties() []*Property { return s.Props }

func (s *StaticSchema) HashKey() *Property {
	for _, p := range s.Props {
		if p.Role == RolePrimaryKey {
			return p
		}
	}
	return nil
}

func (s *StaticSchema) RangeKey() *Property {
	for _, p := range s.Props {
		if p.Role == RoleSortKey {
			return p
		}
	}
	return nil
}

// lookupProp finds a property by wire name.
func lookupProp(s Schema, name string) *Property {
	if s == nil {
		return nil
	}
	for _, p := range s.Properties() {
		if p.Name == name {
			return p
		}
	}
	return nil
}
