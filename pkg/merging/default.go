package merging

// DefaultPolicy returns the policy tree for the wiki dataset:
//
//	items:   collection of item records
//	           name:  match
//	           tags:  union
//	           power: collection of replace
//	           slots: collection of replace
//	recipes: add (recipe lists are concatenated, never deduplicated)
func DefaultPolicy() *Policy {
	return Record(map[string]*Policy{
		"items": Collection(Record(map[string]*Policy{
			"name":  Match(),
			"tags":  Union(),
			"power": Collection(Replace()),
			"slots": Collection(Replace()),
		})),
		"recipes": Add(),
	})
}

// DefaultSpec returns DefaultPolicy as an editable spec, the starting point
// for policy files that add rules for new fields.
func DefaultSpec() *Spec {
	return Describe(DefaultPolicy())
}
