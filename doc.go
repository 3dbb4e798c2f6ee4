// Package dynopath compiles typed attribute-path expressions into
// DynamoDB-compatible placeholder paths.
/*

dynopath is the expression layer of a typed DynamoDB client: it takes a
schema describing a record type and an expression tree describing a
member-access chain into that record, and produces the canonical
attribute path, the codec for the value found there, and the
ExpressionAttributeNames / ExpressionAttributeValues maps a request
needs.

Schemas are usually derived from tagged structs:

	type widget struct {
		UserID  string   `dynopath:"UserID,hash"`
		Count   int
		Friends []string `dynopath:",set"`
		Profile profile
		Blob    payload  `dynopath:",serialized"`
	}

	schema, err := dynopath.SchemaOf(widget{})
	c := dynopath.NewCompiler(schema)

Expressions are single-parameter lambdas over the record, built from
plain tree nodes:

	path := dynopath.Bind("w", schema.Type(), func(w *dynopath.Var) dynopath.Expr {
		return &dynopath.Member{
			Target: &dynopath.Member{Target: w, Name: "Profile"},
			Name:   "Bio",
		}
	})
	compiled, err := c.Compile(path)
	// compiled.Path is "#ATTR3.#ATTR5"; compiled.Names maps the aliases
	// back to raw attribute names

Batches destined for one request go through CompileAll, which rejects
overlapping paths (for example writing both a parent attribute and one
of its children). Render fills condition and update templates, interning
names and values as it goes:

	expr, err := c.Render("$ > ? AND contains('Friends', ?)", compiled, 5, "karen")
	err = expr.BindQueryFilter(&queryInput)

Everything except the per-compilation writer is immutable; distinct
compilations may run concurrently without coordination.

*/
package dynopath
