package propkv

// Entity is the per-record mapping from storage names to base values. All
// of a record's value state lives here; properties hold none. An Entity
// belongs to a single record and is not safe for concurrent mutation.
type Entity map[string]any

func (e Entity) Get(key string) (any, bool) {
	v, ok := e[key]
	return v, ok
}

func (e Entity) Set(key string, value any) {
	e[key] = value
}

func (e Entity) Delete(key string) {
	delete(e, key)
}

func (e Entity) Pop(key string) (any, bool) {
	v, ok := e[key]
	if ok {
		delete(e, key)
	}
	return v, ok
}

// Record is one instance of a model: the model's shared property
// descriptors plus this record's own entity mapping.
type Record struct {
	model  *Model
	values Entity
}

func (rec *Record) Model() *Model {
	return rec.model
}

func (rec *Record) Entity() Entity {
	return rec.values
}

// Get reads the named attribute through its property descriptor. Unknown
// attribute names are a definition-level mistake and panic.
func (rec *Record) Get(name string) (any, error) {
	return rec.model.mustProp(name).GetValue(rec)
}

func (rec *Record) MustGet(name string) any {
	return must(rec.Get(name))
}

func (rec *Record) Set(name string, value any) error {
	return rec.model.mustProp(name).SetValue(rec, value)
}

func (rec *Record) Delete(name string) {
	rec.model.mustProp(name).DeleteValue(rec)
}
