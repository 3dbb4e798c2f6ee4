package dynopath

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPathNodeOps(t *testing.T) {
	schema := widgetSchema(t)
	profileProp := lookupProp(schema, "Profile")
	bioProp := lookupProp(profileProp.Schema, "Bio")
	historyProp := lookupProp(schema, "History")

	nested := &NestedNode{Prop: bioProp, Parent: &RootNode{Prop: profileProp}}
	if nested.Root() != profileProp {
		t.Error("nested node must walk back to its root property")
	}
	if diff := cmp.Diff([]string{"Profile", "Bio"}, nested.Tokens()); diff != "" {
		t.Errorf("bad tokens (-want +got):\n%s", diff)
	}

	ec := historyProp.Codec.(ElemCodec)
	item := &ItemNode{Index: 3, Elem: ec.Elem(), Parent: &RootNode{Prop: historyProp}}
	if got := renderTokens(item.Tokens()); got != "History[3]" {
		t.Errorf("bad rendering: %v ≠ History[3]", got)
	}
	if item.ID().Path != "#ATTR7[3]" {
		t.Errorf("bad id path: %v", item.ID().Path)
	}
	if item.Root() != historyProp {
		t.Error("item node must walk back to its root property")
	}

	var visited int
	nested.ForEachCodec(func(c Codec) {
		if c == nil {
			t.Error("nil codec visited")
		}
		visited++
	})
	if visited != 2 {
		t.Errorf("bad codec visit count: %v ≠ 2", visited)
	}

	ownerProp := lookupProp(schema, "Owner")
	opt := &OptionalNode{
		Elem:   ownerProp.Codec.(OptionCodec).Elem(),
		Parent: &RootNode{Prop: ownerProp},
	}
	// Optional adds no token and no path segment.
	if diff := cmp.Diff([]string{"Owner"}, opt.Tokens()); diff != "" {
		t.Errorf("bad optional tokens (-want +got):\n%s", diff)
	}
	if opt.ID().Path != "#ATTR6" {
		t.Errorf("bad optional id path: %v", opt.ID().Path)
	}
}

func TestAttributeID(t *testing.T) {
	schema := widgetSchema(t)

	hk := rootAttributeID(lookupProp(schema, "UserID"))
	if !hk.IsPrimaryKey() || hk.IsSortKey() {
		t.Error("UserID must compile with the primary key role")
	}
	rk := rootAttributeID(lookupProp(schema, "Time"))
	if !rk.IsSortKey() || rk.IsPrimaryKey() {
		t.Error("Time must compile with the sort key role")
	}

	base := rootAttributeID(lookupProp(schema, "Profile"))
	extended := base.Append("[1]")
	if base.Path != "#ATTR5" {
		t.Error("Append must not mutate its receiver:", base.Path)
	}
	if extended.Path != "#ATTR5[1]" || extended.RootID != "#ATTR5" {
		t.Errorf("bad appended id: %v root %v", extended.Path, extended.RootID)
	}

	named := base.AppendName("#ATTR10", "Bio")
	if named.Path != "#ATTR5.#ATTR10" {
		t.Errorf("bad named path: %v", named.Path)
	}
	if len(base.subs) != 1 || len(named.subs) != 2 {
		t.Errorf("segment registrations leaked: %d, %d", len(base.subs), len(named.subs))
	}
}

func TestKeyAttributeID(t *testing.T) {
	schema := widgetSchema(t)
	id, err := KeyAttributeID(schema)
	if err != nil {
		t.Fatal(err)
	}
	if id.Path != "#HKEY" || id.RootID != "#HKEY" {
		t.Errorf("bad key alias: %v", id.Path)
	}
	if id.RootName != "UserID" {
		t.Errorf("bad key name: %v ≠ UserID", id.RootName)
	}
	if !id.IsPrimaryKey() {
		t.Error("key schema id must carry the primary key role")
	}

	w := newWriter()
	if path := w.WriteAttribute(id); path != "#HKEY" {
		t.Errorf("bad written path: %v", path)
	}
	if w.names["#HKEY"] != "UserID" {
		t.Errorf("missing #HKEY registration: %v", w.names)
	}

	keyless := &StaticSchema{NativeType: schema.Type()}
	if _, err := KeyAttributeID(keyless); err == nil {
		t.Error("want error for a schema without a hash key")
	}
}

func TestRenderTokens(t *testing.T) {
	test := []struct {
		in  []string
		out string
	}{
		{[]string{"Foo"}, "Foo"},
		{[]string{"Foo", "Bar"}, "Foo.Bar"},
		{[]string{"Foo", "[0]"}, "Foo[0]"},
		{[]string{"Foo", "[0]", "Bar"}, "Foo[0].Bar"},
		{nil, ""},
	}
	for _, tc := range test {
		if got := renderTokens(tc.in); got != tc.out {
			t.Errorf("renderTokens(%v) = %v ≠ %v", tc.in, got, tc.out)
		}
	}
}
