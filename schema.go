package propkv

import (
	"fmt"
	"strings"
)

type Schema struct {
	models            []*Model
	modelsByLowerName map[string]*Model
}

func NewSchema() *Schema {
	return &Schema{
		modelsByLowerName: make(map[string]*Model),
	}
}

func (scm *Schema) Models() []*Model {
	return append([]*Model(nil), scm.models...)
}

func (scm *Schema) ModelNamed(name string) *Model {
	return scm.modelsByLowerName[strings.ToLower(name)]
}

// Model is a record type: a named, ordered set of property descriptors.
// Models are defined once at startup and immutable afterwards, including
// every property's storage name.
type Model struct {
	schema         *Schema
	name           string
	props          []*Property
	propsByName    map[string]*Property // by attribute name
	propsByStorage map[string]*Property // by storage name
}

func AddModel(scm *Schema, name string, build func(b *ModelBuilder)) *Model {
	if name == "" {
		panic(configErrf("", "model name missing"))
	}
	if scm.modelsByLowerName[strings.ToLower(name)] != nil {
		panic(configErrf("", "model %s already defined", name))
	}
	model := &Model{
		schema:         scm,
		name:           name,
		propsByName:    make(map[string]*Property),
		propsByStorage: make(map[string]*Property),
	}
	b := ModelBuilder{model: model}
	build(&b)
	scm.models = append(scm.models, model)
	scm.modelsByLowerName[strings.ToLower(name)] = model
	return model
}

func (model *Model) Name() string {
	return model.name
}

func (model *Model) Props() []*Property {
	return append([]*Property(nil), model.props...)
}

// PropNamed looks up a property by attribute name.
func (model *Model) PropNamed(name string) *Property {
	return model.propsByName[name]
}

// PropStored looks up a property by storage name.
func (model *Model) PropStored(name string) *Property {
	return model.propsByStorage[name]
}

func (model *Model) mustProp(name string) *Property {
	p := model.propsByName[name]
	if p == nil {
		panic(fmt.Errorf("%s does not have property %s", model.name, name))
	}
	return p
}

// New creates an empty record of this model. Values materialize in the
// record's entity on first get/set.
func (model *Model) New() *Record {
	return &Record{model: model, values: Entity{}}
}

func (model *Model) prepareForPut(rec *Record) error {
	for _, p := range model.props {
		if err := p.PrepareForPut(rec); err != nil {
			return err
		}
	}
	return nil
}

type ModelBuilder struct {
	model *Model
}

// Prop attaches a property under the given attribute name, fixing up the
// property's storage name if none was set explicitly.
func (b *ModelBuilder) Prop(name string, p *Property) {
	if name == "" {
		panic(configErrf("", "model %s: property attribute name missing", b.model.name))
	}
	p.fixUp(name)
	if prior := b.model.propsByName[name]; prior != nil {
		panic(configErrf(name, "model %s already has a property named %s", b.model.name, name))
	}
	if prior := b.model.propsByStorage[p.name]; prior != nil {
		panic(configErrf(p.name, "model %s already has a property stored as %s", b.model.name, p.name))
	}
	b.model.props = append(b.model.props, p)
	b.model.propsByName[name] = p
	b.model.propsByStorage[p.name] = p
}
