package dynopath

import "testing"

func TestTryFindConflict(t *testing.T) {
	test := []struct {
		name   string
		paths  [][]string
		path   string // "" means no conflict expected
		prefix string
	}{
		{
			name:  "disjoint siblings",
			paths: [][]string{{"Foo", "Bar", "[0]"}, {"Foo", "Bar", "[1]"}},
		},
		{
			name:  "disjoint roots",
			paths: [][]string{{"Foo"}, {"Bar"}, {"Baz", "Qux"}},
		},
		{
			name:   "child extends written parent",
			paths:  [][]string{{"Foo"}, {"Foo", "Bar"}},
			path:   "Foo.Bar",
			prefix: "Foo",
		},
		{
			name:   "exact duplicate",
			paths:  [][]string{{"Foo", "Bar"}, {"Foo", "Bar"}},
			path:   "Foo.Bar",
			prefix: "Foo.Bar",
		},
		{
			name:   "parent masks written child",
			paths:  [][]string{{"Foo", "Bar"}, {"Foo"}},
			path:   "Foo",
			prefix: "Foo",
		},
		{
			name:   "index element under written list",
			paths:  [][]string{{"Foo"}, {"Foo", "[2]"}},
			path:   "Foo[2]",
			prefix: "Foo",
		},
		{
			name: "first conflict in input order wins",
			paths: [][]string{
				{"A"},
				{"B"},
				{"A", "X"}, // conflicts here first
				{"B", "Y"},
			},
			path:   "A.X",
			prefix: "A",
		},
	}

	for _, tc := range test {
		t.Run(tc.name, func(t *testing.T) {
			got := tryFindConflict(tc.paths)
			if tc.path == "" {
				if got != nil {
					t.Fatalf("want no conflict, got %q overlaps %q", got.Path, got.Prefix)
				}
				return
			}
			if got == nil {
				t.Fatalf("want conflict %q overlaps %q, got none", tc.path, tc.prefix)
			}
			if got.Path != tc.path || got.Prefix != tc.prefix {
				t.Errorf("bad conflict: %q overlaps %q ≠ %q overlaps %q",
					got.Path, got.Prefix, tc.path, tc.prefix)
			}
		})
	}
}

func TestConflictErrorMessage(t *testing.T) {
	err := &ConflictError{Path: "Foo.Bar", Prefix: "Foo"}
	want := `dynopath: conflicting attribute paths: "Foo.Bar" overlaps "Foo"`
	if err.Error() != want {
		t.Errorf("bad message: %v ≠ %v", err.Error(), want)
	}
}
