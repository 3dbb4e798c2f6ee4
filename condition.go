package dynopath

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/dynopath/dynopath/internal/exprs"
)

// Expression is rendered condition or update expression text together
// with the placeholder maps it references, ready for a request.
type Expression struct {
	Text   string
	Names  map[string]string
	Values map[string]types.AttributeValue
}

// Render fills a template with compiled attribute paths and interned
// values. Each `$` consumes one attribute argument (a *Compiled, an
// AttributeID, or an expression to compile in place), each `?` consumes
// one value argument (marshaled unless it already is an AttributeValue),
// and 'quoted' names resolve against the schema, chaining through nested
// schemas across dots. All placeholders share one writer, so equal
// values collapse to a single alias.
func (c *Compiler) Render(template string, args ...any) (*Expression, error) {
	lexed, err := exprs.Parse(template)
	if err != nil {
		return nil, err
	}

	w := newWriter()
	var sb strings.Builder
	var (
		argi         int
		lastProp     *Property
		lastQuoted   bool
		dotAfterName bool
	)

	nextArg := func() (any, error) {
		if argi >= len(args) {
			return nil, fmt.Errorf("dynopath: not enough arguments for template %q", template)
		}
		a := args[argi]
		argi++
		return a, nil
	}

	for _, item := range lexed.Items {
		switch item.Type {
		case exprs.ItemText:
			sb.WriteString(item.Val)
			dotAfterName = lastQuoted && item.Val == "."
			lastQuoted = false

		case exprs.ItemQuotedName:
			name := strings.Trim(item.Val, "'")
			scope := c.schema
			if dotAfterName && lastProp != nil {
				scope = lastProp.Schema
			}
			prop := lookupProp(scope, name)
			if prop == nil {
				return nil, fmt.Errorf("dynopath: unknown attribute %q in template %q", name, template)
			}
			w.names[prop.AttrID()] = prop.Name
			sb.WriteString(prop.AttrID())
			lastProp = prop
			lastQuoted = true
			dotAfterName = false

		case exprs.ItemNamePlaceholder:
			arg, err := nextArg()
			if err != nil {
				return nil, err
			}
			switch a := arg.(type) {
			case *Compiled:
				sb.WriteString(w.WriteAttribute(a.ID))
			case AttributeID:
				sb.WriteString(w.WriteAttribute(a))
			case Expr:
				compiled, err := c.Compile(a)
				if err != nil {
					return nil, err
				}
				sb.WriteString(w.WriteAttribute(compiled.ID))
			default:
				return nil, fmt.Errorf("dynopath: $ placeholder needs an attribute, got %T", arg)
			}
			lastQuoted = false
			dotAfterName = false

		case exprs.ItemValuePlaceholder:
			arg, err := nextArg()
			if err != nil {
				return nil, err
			}
			av, ok := arg.(types.AttributeValue)
			if !ok {
				if av, err = attributevalue.Marshal(arg); err != nil {
					return nil, err
				}
			}
			sb.WriteString(w.WriteValue(av))
			lastQuoted = false
			dotAfterName = false
		}
	}
	if argi != len(args) {
		return nil, fmt.Errorf("dynopath: too many arguments for template %q: want %d, got %d", template, argi, len(args))
	}

	return &Expression{
		Text:   sb.String(),
		Names:  w.names,
		Values: w.values,
	}, nil
}
