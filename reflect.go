package dynopath

import (
	"fmt"
	"reflect"
	"time"
)

type schemaFlags uint

const (
	flagHash schemaFlags = 1 << iota
	flagRange
	flagSet
	flagSerialized
	flagUnion

	flagNone schemaFlags = 0
)

// fieldInfo parses a `dynopath:"Name,flag"` struct tag.
// An empty name keeps the Go field name; "-" skips the field.
func fieldInfo(field reflect.StructField) (name string, flags schemaFlags) {
	tag := field.Tag.Get("dynopath")
	if tag == "" {
		return field.Name, flagNone
	}

	begin := 0
	for i := 0; i <= len(tag); i++ {
		if !(i == len(tag) || tag[i] == ',') {
			continue
		}
		part := tag[begin:i]
		begin = i + 1

		if name == "" {
			if part == "" {
				name = field.Name
			} else {
				name = part
			}
			continue
		}

		switch part {
		case "hash":
			flags |= flagHash
		case "range":
			flags |= flagRange
		case "set":
			flags |= flagSet
		case "serialized":
			flags |= flagSerialized
		case "union":
			flags |= flagUnion
		}
	}

	return
}

var rtypeTime = reflect.TypeOf(time.Time{})

// SchemaOf derives a Schema from a struct value or type, honoring
// `dynopath` struct tags. Property indexes are allocated level by level
// across the whole schema tree, so every property's #ATTR alias is
// unique regardless of nesting depth.
func SchemaOf(v any) (Schema, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil, fmt.Errorf("dynopath: cannot derive a schema from nil")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("dynopath: cannot derive a schema from %s", t)
	}
	counter := 0
	return structSchema(t, &counter)
}

func structSchema(t reflect.Type, counter *int) (*StaticSchema, error) {
	schema := &StaticSchema{NativeType: t}

	// Allocate this level's indexes before descending so root properties
	// always claim the lowest aliases.
	type pending struct {
		prop  *Property
		field reflect.StructField
		flags schemaFlags
	}
	var todo []pending
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, flags := fieldInfo(field)
		if name == "-" {
			continue
		}
		prop := &Property{Index: *counter, Name: name}
		*counter++
		switch {
		case flags&flagHash != 0:
			prop.Role = RolePrimaryKey
		case flags&flagRange != 0:
			prop.Role = RoleSortKey
		}
		schema.Props = append(schema.Props, prop)
		todo = append(todo, pending{prop, field, flags})
	}

	for _, p := range todo {
		codec, nested, err := codecFor(p.field.Type, p.flags, counter)
		if err != nil {
			return nil, fmt.Errorf("dynopath: field %s.%s: %w", t.Name(), p.field.Name, err)
		}
		p.prop.Codec = codec
		p.prop.Schema = nested
	}
	return schema, nil
}

// codecFor derives the codec and nested schema for one field type.
func codecFor(t reflect.Type, flags schemaFlags, counter *int) (Codec, Schema, error) {
	switch {
	case flags&flagSerialized != 0:
		return serializedCodec{}, nil, nil
	case flags&flagUnion != 0:
		return unionCodec{}, nil, nil
	case flags&flagSet != 0:
		if t.Kind() != reflect.Slice && t.Kind() != reflect.Map {
			return nil, nil, fmt.Errorf("the set flag needs a slice or map, not %s", t)
		}
		return setCodec{}, nil, nil
	}

	switch t.Kind() {
	case reflect.Pointer:
		elem, nested, err := codecFor(t.Elem(), flagNone, counter)
		if err != nil {
			return nil, nil, err
		}
		return optionalCodec{elem: elem}, nested, nil
	case reflect.Slice, reflect.Array:
		elem, nested, err := codecFor(t.Elem(), flagNone, counter)
		if err != nil {
			return nil, nil, err
		}
		return listCodec{elem: elem, elemSchema: nested}, nil, nil
	case reflect.Struct:
		if t == rtypeTime {
			return awsCodec{kind: KindScalar}, nil, nil
		}
		nested, err := structSchema(t, counter)
		if err != nil {
			return nil, nil, err
		}
		return recordCodec{schema: nested, kind: KindRecord}, nested, nil
	case reflect.Map:
		return awsCodec{kind: KindMap}, nil, nil
	case reflect.Interface:
		return unionCodec{}, nil, nil
	default:
		return awsCodec{kind: KindScalar}, nil, nil
	}
}

// fieldNameOf maps a wire name back to the Go field that produced it.
func fieldNameOf(t reflect.Type, wireName string) string {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		if name, _ := fieldInfo(field); name == wireName {
			return field.Name
		}
	}
	return wireName
}
