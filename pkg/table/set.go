package table

// Set maps archive table keys to parsed tables, the shape a single
// region query returns. A catalog missing from the set produced no
// rows near the target.
type Set map[string]*Table

// Get returns the table stored under key.
func (s Set) Get(key string) (*Table, bool) {
	t, ok := s[key]
	return t, ok
}

// Keys returns the stored table keys in unspecified order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}

// Add stores t under key, replacing any previous table.
func (s Set) Add(key string, t *Table) {
	s[key] = t
}
