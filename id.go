package dynopath

import "fmt"

// hkeyAlias is the fixed placeholder for a primary key derived straight
// from the key schema rather than from a property index.
const hkeyAlias = "#HKEY"

// nameSub is one placeholder → raw name mapping carried by an AttributeID.
type nameSub struct {
	alias string
	name  string
}

// AttributeID is the canonical compiled identity of one attribute path:
// the placeholder path for embedding in expression text, the root
// property's stable alias and raw name, and its key role.
type AttributeID struct {
	Path     string
	RootID   string
	RootName string
	Role     AttributeRole

	// subs holds every segment's alias → raw name pair, root first, so a
	// writer can register the whole path.
	subs []nameSub
}

// IsPrimaryKey reports whether the root attribute is the table's hash key.
func (id AttributeID) IsPrimaryKey() bool { return id.Role == RolePrimaryKey }

// IsSortKey reports whether the root attribute is the table's range key.
func (id AttributeID) IsSortKey() bool { return id.Role == RoleSortKey }

// Append returns a copy of id with the path extended by a literal suffix,
// such as an element index. The root is untouched.
func (id AttributeID) Append(suffix string) AttributeID {
	id.Path += suffix
	return id
}

// AppendName returns a copy of id extended by one nested segment.
func (id AttributeID) AppendName(alias, name string) AttributeID {
	id.Path += "." + alias
	subs := make([]nameSub, len(id.subs), len(id.subs)+1)
	copy(subs, id.subs)
	id.subs = append(subs, nameSub{alias, name})
	return id
}

// rootAttributeID builds the AttributeID for a bare root property.
func rootAttributeID(p *Property) AttributeID {
	alias := p.AttrID()
	return AttributeID{
		Path:     alias,
		RootID:   alias,
		RootName: p.Name,
		Role:     p.Role,
		subs:     []nameSub{{alias, p.Name}},
	}
}

// KeyAttributeID builds the root AttributeID for the schema's primary key
// under the fixed #HKEY alias.
func KeyAttributeID(s Schema) (AttributeID, error) {
	hk := s.HashKey()
	if hk == nil {
		return AttributeID{}, fmt.Errorf("dynopath: schema for %s has no hash key", s.Type())
	}
	return AttributeID{
		Path:     hkeyAlias,
		RootID:   hkeyAlias,
		RootName: hk.Name,
		Role:     RolePrimaryKey,
		subs:     []nameSub{{hkeyAlias, hk.Name}},
	}, nil
}
