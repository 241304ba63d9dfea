package mock

// Entry is the metadata kept for one registered matcher.
type Entry struct {
	Category    Category
	Key         string
	Description string
}

// Registry records matcher metadata per category and decides whether a new
// registration is legal. The zero value is ready to use.
type Registry struct {
	entries map[Category][]Entry
	order   []Entry
}

// Check validates a prospective registration without recording it.
func (r *Registry) Check(cat Category, key, description string) error {
	switch cat.Cardinality() {
	case Singleton:
		if existing := r.entries[cat]; len(existing) > 0 {
			return &ConfigError{
				Category: cat, Key: key, Description: description,
				Conflict: existing[0], Reason: ErrDuplicateMatcher,
			}
		}

	case Keyed:
		if e, ok := r.find(cat, key); ok {
			return &ConfigError{
				Category: cat, Key: key, Description: description,
				Conflict: e, Reason: ErrDuplicateMatcher,
			}
		}
		if opp, ok := cat.Opposite(); ok {
			if e, ok := r.find(opp, key); ok {
				return &ConfigError{
					Category: cat, Key: key, Description: description,
					Conflict: e, Reason: ErrContradictoryMatcher,
				}
			}
		}
	}
	return nil
}

// Record stores a registration that has passed Check.
func (r *Registry) Record(cat Category, key, description string) {
	if r.entries == nil {
		r.entries = make(map[Category][]Entry)
	}
	e := Entry{Category: cat, Key: key, Description: description}
	r.entries[cat] = append(r.entries[cat], e)
	r.order = append(r.order, e)
}

// Entries returns all registrations in the order they were recorded.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) find(cat Category, key string) (Entry, bool) {
	for _, e := range r.entries[cat] {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}
