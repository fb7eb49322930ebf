package story

// table is a normalized entity collection: an id-to-entity map paired with an
// insertion-order id list so that lookups are O(1) and iteration is stable.
type table[E any] struct {
	id   func(E) string
	ids  []string
	byID map[string]E
}

func newTable[E any](id func(E) string) *table[E] {
	return &table[E]{
		id:   id,
		ids:  []string{},
		byID: map[string]E{},
	}
}

// upsert inserts the entity or replaces an existing one with the same id.
// Insertion order is preserved on replace.
func (t *table[E]) upsert(entity E) {
	id := t.id(entity)
	if _, ok := t.byID[id]; !ok {
		t.ids = append(t.ids, id)
	}
	t.byID[id] = entity
}

func (t *table[E]) get(id string) (E, bool) {
	entity, ok := t.byID[id]
	return entity, ok
}

// update applies fn to the stored entity. Reports whether the id was found.
func (t *table[E]) update(id string, fn func(*E)) bool {
	entity, ok := t.byID[id]
	if !ok {
		return false
	}
	fn(&entity)
	t.byID[id] = entity
	return true
}

// all returns the entities in insertion order.
func (t *table[E]) all() []E {
	entities := make([]E, 0, len(t.ids))
	for _, id := range t.ids {
		entities = append(entities, t.byID[id])
	}
	return entities
}

func (t *table[E]) len() int {
	return len(t.ids)
}
