package entities

// Relation is a resolved entity: the catalog confirmed it exists and told us
// whether row-level security is active on it.
type Relation struct {
	OID        uint32
	Schema     string
	Name       string
	RLSEnabled bool
}

func (r *Relation) Entity() Entity {
	return Entity{Schema: r.Schema, Name: r.Name}
}

// RelationColumn is one column a role may read, with its resolved type.
type RelationColumn struct {
	Name string
	Type string
}
