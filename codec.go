package dynopath

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// CodecKind classifies the wire shape a codec produces.
type CodecKind int

// Codec kinds.
const (
	KindScalar CodecKind = iota
	KindSet
	KindList
	KindMap
	KindRecord
	KindOptional
	KindPair
	KindCell
	KindSerialized // opaque JSON blob
	KindUnion      // opaque tagged union
)

// Opaque reports whether values of this kind refuse structural navigation.
// Serialized blobs and tagged unions are stored whole; paths may terminate
// at them but never reach inside.
func (k CodecKind) Opaque() bool {
	return k == KindSerialized || k == KindUnion
}

// Codec converts between a native value and its wire representation.
type Codec interface {
	Encode(v any) (types.AttributeValue, error)
	Decode(av types.AttributeValue, out any) error
	Kind() CodecKind
}

// ElemCodec is implemented by codecs for indexable collections.
type ElemCodec interface {
	Codec
	// Elem returns the codec for a single element.
	Elem() Codec
	// ElemSchema returns the element type's schema, or nil when elements
	// have no navigable structure.
	ElemSchema() Schema
}

// OptionCodec is implemented by codecs that wrap an inner value which may
// be absent. The wrapper itself never appears on the wire.
type OptionCodec interface {
	Codec
	Elem() Codec
}

// awsCodec delegates to the official attributevalue package, which honors
// "dynamodbav" struct tags.
type awsCodec struct {
	kind CodecKind
}

func (c awsCodec) Encode(v any) (types.AttributeValue, error) {
	return attributevalue.Marshal(v)
}

func (c awsCodec) Decode(av types.AttributeValue, out any) error {
	return attributevalue.Unmarshal(av, out)
}

func (c awsCodec) Kind() CodecKind { return c.kind }

// setCodec encodes a slice as a DynamoDB set (SS, NS or BS) rather than a
// list, matching the `set` tag flag.
type setCodec struct{}

func (setCodec) Kind() CodecKind { return KindSet }

func (setCodec) Encode(v any) (types.AttributeValue, error) {
	av, err := attributevalue.Marshal(v)
	if err != nil {
		return nil, err
	}
	list, ok := av.(*types.AttributeValueMemberL)
	if !ok {
		return av, nil
	}
	return listToSet(list)
}

func (setCodec) Decode(av types.AttributeValue, out any) error {
	return attributevalue.Unmarshal(av, out)
}

func listToSet(list *types.AttributeValueMemberL) (types.AttributeValue, error) {
	if len(list.Value) == 0 {
		return &types.AttributeValueMemberNULL{Value: true}, nil
	}
	switch list.Value[0].(type) {
	case *types.AttributeValueMemberS:
		ss := make([]string, 0, len(list.Value))
		for _, av := range list.Value {
			s, ok := av.(*types.AttributeValueMemberS)
			if !ok {
				return nil, fmt.Errorf("dynopath: mixed element types in string set")
			}
			ss = append(ss, s.Value)
		}
		return &types.AttributeValueMemberSS{Value: ss}, nil
	case *types.AttributeValueMemberN:
		ns := make([]string, 0, len(list.Value))
		for _, av := range list.Value {
			n, ok := av.(*types.AttributeValueMemberN)
			if !ok {
				return nil, fmt.Errorf("dynopath: mixed element types in number set")
			}
			ns = append(ns, n.Value)
		}
		return &types.AttributeValueMemberNS{Value: ns}, nil
	case *types.AttributeValueMemberB:
		bs := make([][]byte, 0, len(list.Value))
		for _, av := range list.Value {
			b, ok := av.(*types.AttributeValueMemberB)
			if !ok {
				return nil, fmt.Errorf("dynopath: mixed element types in binary set")
			}
			bs = append(bs, b.Value)
		}
		return &types.AttributeValueMemberBS{Value: bs}, nil
	}
	return nil, fmt.Errorf("dynopath: unsupported set element type %T", list.Value[0])
}

// listCodec encodes an indexable collection and carries the element codec
// and schema needed for constant-index navigation.
type listCodec struct {
	elem       Codec
	elemSchema Schema
}

func (c listCodec) Kind() CodecKind    { return KindList }
func (c listCodec) Elem() Codec        { return c.elem }
func (c listCodec) ElemSchema() Schema { return c.elemSchema }

func (c listCodec) Encode(v any) (types.AttributeValue, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("dynopath: cannot encode %T as a list", v)
	}
	list := make([]types.AttributeValue, rv.Len())
	for i := range list {
		av, err := c.elem.Encode(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		list[i] = av
	}
	return &types.AttributeValueMemberL{Value: list}, nil
}

func (c listCodec) Decode(av types.AttributeValue, out any) error {
	return attributevalue.Unmarshal(av, out)
}

// optionalCodec wraps a value that may be absent. Absence is encoded as
// NULL; presence defers to the inner codec.
type optionalCodec struct {
	elem Codec
}

func (c optionalCodec) Kind() CodecKind { return KindOptional }
func (c optionalCodec) Elem() Codec     { return c.elem }

func (c optionalCodec) Encode(v any) (types.AttributeValue, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
		return &types.AttributeValueMemberNULL{Value: true}, nil
	}
	if rv.Kind() == reflect.Pointer {
		return c.elem.Encode(rv.Elem().Interface())
	}
	return c.elem.Encode(v)
}

func (c optionalCodec) Decode(av types.AttributeValue, out any) error {
	if _, isNull := av.(*types.AttributeValueMemberNULL); isNull {
		return nil
	}
	return attributevalue.Unmarshal(av, out)
}

// recordCodec encodes a structured value as a map, one entry per property.
type recordCodec struct {
	schema Schema
	kind   CodecKind
}

func (c recordCodec) Kind() CodecKind { return c.kind }

func (c recordCodec) Encode(v any) (types.AttributeValue, error) {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return attributevalue.Marshal(v)
	}
	m := make(map[string]types.AttributeValue, len(c.schema.Properties()))
	for _, p := range c.schema.Properties() {
		fv := rv.FieldByName(fieldNameOf(rv.Type(), p.Name))
		if !fv.IsValid() {
			continue
		}
		av, err := p.Codec.Encode(fv.Interface())
		if err != nil {
			return nil, fmt.Errorf("dynopath: encoding %s: %w", p.Name, err)
		}
		m[p.Name] = av
	}
	return &types.AttributeValueMemberM{Value: m}, nil
}

func (c recordCodec) Decode(av types.AttributeValue, out any) error {
	return attributevalue.Unmarshal(av, out)
}

// serializedCodec stores a value as an opaque JSON blob. Paths may end at
// such an attribute but its internals are invisible to the store.
type serializedCodec struct{}

func (serializedCodec) Kind() CodecKind { return KindSerialized }

func (serializedCodec) Encode(v any) (types.AttributeValue, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &types.AttributeValueMemberB{Value: data}, nil
}

func (serializedCodec) Decode(av types.AttributeValue, out any) error {
	b, ok := av.(*types.AttributeValueMemberB)
	if !ok {
		return fmt.Errorf("dynopath: expected binary attribute, got %T", av)
	}
	return json.Unmarshal(b.Value, out)
}

// unionCodec stores a tagged union whole. Like serialized blobs, unions
// are opaque leaves.
type unionCodec struct{}

func (unionCodec) Kind() CodecKind { return KindUnion }

func (unionCodec) Encode(v any) (types.AttributeValue, error) {
	tag := "nil"
	if v != nil {
		tag = reflect.Indirect(reflect.ValueOf(v)).Type().Name()
	}
	body, err := attributevalue.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
		"Case":   &types.AttributeValueMemberS{Value: tag},
		"Fields": body,
	}}, nil
}

func (unionCodec) Decode(av types.AttributeValue, out any) error {
	m, ok := av.(*types.AttributeValueMemberM)
	if !ok {
		return fmt.Errorf("dynopath: expected map attribute for union, got %T", av)
	}
	return attributevalue.Unmarshal(m.Value["Fields"], out)
}
