//go:build debug

package dynopath

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

// debugging tools for dynopath developers
// disabled by default, use `go build -tags debug` to enable
// warning: not covered by API stability guarantees

// DumpSchema dumps a description of a derived schema to stdout,
// including every property's alias, role, and codec kind.
func DumpSchema(s Schema) {
	fmt.Fprintf(os.Stdout, "SCHEMA %s\n", s.Type())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 1, ' ', 0)
	dumpSchema(w, s, 0)
	w.Flush()
}

func dumpSchema(w *tabwriter.Writer, s Schema, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, p := range s.Properties() {
		kind := "<nil>"
		if p.Codec != nil {
			kind = fmt.Sprintf("kind(%d)", p.Codec.Kind())
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n", indent, p.AttrID(), p.Name, p.Role, kind)
		if p.Schema != nil {
			dumpSchema(w, p.Schema, depth+1)
		}
	}
}
