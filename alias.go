package dynopath

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// writer interns attribute names and values into expression placeholders
// for one compilation. It is a transient builder: create one per
// compiled expression, hand off its maps, throw it away. Not safe for
// concurrent use; independent compilations each get their own writer.
type writer struct {
	names  map[string]string               // "#ATTRn" → raw attribute name
	values map[string]types.AttributeValue // ":valN" → wire value
	index  map[string]string               // canonical value encoding → alias
}

func newWriter() *writer {
	return &writer{
		names:  make(map[string]string),
		values: make(map[string]types.AttributeValue),
		index:  make(map[string]string),
	}
}

// WriteValue interns av and returns its placeholder. Structurally equal
// values share one placeholder per compilation, so repeated operands
// don't bloat the expression.
func (w *writer) WriteValue(av types.AttributeValue) string {
	key := avKey(av)
	if alias, ok := w.index[key]; ok {
		return alias
	}
	alias := ":val" + strconv.Itoa(len(w.values))
	w.values[alias] = av
	w.index[key] = alias
	return alias
}

// WriteAttribute registers every segment alias of id and returns the
// literal placeholder path for embedding in expression text. Repeated
// registration of the same alias is harmless.
func (w *writer) WriteAttribute(id AttributeID) string {
	for _, sub := range id.subs {
		w.names[sub.alias] = sub.name
	}
	return id.Path
}

// avKey renders av into a canonical string so structurally equal wire
// values collide. Map entries are key-sorted; every variant is prefixed
// with its shape tag.
func avKey(av types.AttributeValue) string {
	var sb strings.Builder
	avKeyTo(&sb, av)
	return sb.String()
}

func avKeyTo(sb *strings.Builder, av types.AttributeValue) {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		sb.WriteString("S:")
		sb.WriteString(v.Value)
	case *types.AttributeValueMemberN:
		sb.WriteString("N:")
		sb.WriteString(v.Value)
	case *types.AttributeValueMemberB:
		sb.WriteString("B:")
		sb.Write(v.Value)
	case *types.AttributeValueMemberBOOL:
		fmt.Fprintf(sb, "T:%t", v.Value)
	case *types.AttributeValueMemberNULL:
		sb.WriteString("0")
	case *types.AttributeValueMemberSS:
		sb.WriteString("s:")
		for _, s := range v.Value {
			sb.WriteString(s)
			sb.WriteByte(0)
		}
	case *types.AttributeValueMemberNS:
		sb.WriteString("n:")
		for _, n := range v.Value {
			sb.WriteString(n)
			sb.WriteByte(0)
		}
	case *types.AttributeValueMemberBS:
		sb.WriteString("b:")
		for _, b := range v.Value {
			sb.Write(b)
			sb.WriteByte(0)
		}
	case *types.AttributeValueMemberL:
		sb.WriteString("L[")
		for _, item := range v.Value {
			avKeyTo(sb, item)
			sb.WriteByte(0)
		}
		sb.WriteByte(']')
	case *types.AttributeValueMemberM:
		sb.WriteString("M{")
		keys := make([]string, 0, len(v.Value))
		for k := range v.Value {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(k)
			sb.WriteByte('=')
			avKeyTo(sb, v.Value[k])
			sb.WriteByte(0)
		}
		sb.WriteByte('}')
	default:
		fmt.Fprintf(sb, "?%#v", av)
	}
}
