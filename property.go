package propkv

import (
	"reflect"
	"time"
)

// Validator is a custom validation hook. It runs after the property
// kind's own checks, and its return value supersedes the value under
// validation.
type Validator func(p *Property, value any) (any, error)

// Property describes one named attribute of a record: metadata plus the
// validate / to-base-type / from-base-type / pre-persist contract. A
// single Property instance is attached to a model at definition time and
// shared by all of the model's records; it holds no per-record state and
// is immutable afterwards, so concurrent read-only dispatch is safe.
type Property struct {
	kind       Kind
	name       string
	indexed    bool
	repeated   bool
	required   bool
	compressed bool
	autoNow    bool
	autoNowAdd bool
	def        any
	hasDefault bool
	choices    []any
	validator  Validator
	schema     any
	fixedUp    bool
	nowFn      func() time.Time
}

type propFlag int

const (
	Repeated propFlag = 1 << iota
	Required
	Indexed
	Unindexed
	Compressed
	AutoNow
	AutoNowAdd
)

type nameOption struct{ name string }
type defaultOption struct{ value any }
type choicesOption struct{ values []any }
type validatorOption struct{ fn Validator }
type schemaOption struct{ schema any }

// WithName sets an explicit storage name, overriding the attribute name
// the property would otherwise receive at model definition time.
func WithName(name string) nameOption { return nameOption{name} }

// WithDefault sets the value materialized lazily on first access of an
// unset attribute.
func WithDefault(value any) defaultOption { return defaultOption{value} }

// WithChoices restricts non-nil user values to the given set.
func WithChoices(values ...any) choicesOption { return choicesOption{values} }

func WithValidator(fn Validator) validatorOption { return validatorOption{fn} }

// WithSchema attaches structural schema metadata to a JSON property. The
// schema is carried, not enforced.
func WithSchema(schema any) schemaOption { return schemaOption{schema} }

func BoolProp(opts ...any) *Property     { return newProperty(KindBool, opts) }
func IntProp(opts ...any) *Property      { return newProperty(KindInt, opts) }
func FloatProp(opts ...any) *Property    { return newProperty(KindFloat, opts) }
func BlobProp(opts ...any) *Property     { return newProperty(KindBlob, opts) }
func TextProp(opts ...any) *Property     { return newProperty(KindText, opts) }
func StringProp(opts ...any) *Property   { return newProperty(KindString, opts) }
func PackedProp(opts ...any) *Property   { return newProperty(KindPacked, opts) }
func JSONProp(opts ...any) *Property     { return newProperty(KindJSON, opts) }
func DateTimeProp(opts ...any) *Property { return newProperty(KindDateTime, opts) }
func DateProp(opts ...any) *Property     { return newProperty(KindDate, opts) }
func TimeProp(opts ...any) *Property     { return newProperty(KindTime, opts) }

func newProperty(kind Kind, opts []any) *Property {
	kd := &kindDefs[kind]
	p := &Property{
		kind:    kind,
		indexed: kd.defaultIndexed,
	}
	var explicitIndexed bool
	for _, opt := range opts {
		switch opt := opt.(type) {
		case propFlag:
			switch opt {
			case Repeated:
				p.repeated = true
			case Required:
				p.required = true
			case Indexed:
				p.indexed = true
				explicitIndexed = true
			case Unindexed:
				p.indexed = false
			case Compressed:
				p.compressed = true
			case AutoNow:
				p.autoNow = true
			case AutoNowAdd:
				p.autoNowAdd = true
			default:
				panic(configErrf(p.name, "unknown property flag %d", opt))
			}
		case nameOption:
			p.name = opt.name
		case defaultOption:
			p.def, p.hasDefault = opt.value, true
		case choicesOption:
			p.choices = opt.values
		case validatorOption:
			p.validator = opt.fn
		case schemaOption:
			p.schema = opt.schema
		default:
			panic(configErrf(p.name, "unexpected property option %T %v", opt, opt))
		}
	}

	if kd.neverIndexed {
		if p.compressed && explicitIndexed {
			panic(configErrf(p.name, "%s property cannot be compressed and indexed at the same time", kd.name))
		}
		if explicitIndexed {
			panic(configErrf(p.name, "%s property cannot be indexed", kd.name))
		}
		p.indexed = false
	}
	if p.compressed && !kd.compressible {
		panic(configErrf(p.name, "%s property cannot be compressed", kd.name))
	}
	if p.autoNow || p.autoNowAdd {
		if !kd.temporal {
			panic(configErrf(p.name, "%s property cannot auto-assign timestamps", kd.name))
		}
		if p.repeated {
			panic(configErrf(p.name, "auto-now %s property cannot be repeated", kd.name))
		}
	}
	return p
}

func (p *Property) kd() *kindDef { return &kindDefs[p.kind] }

func (p *Property) Name() string     { return p.name }
func (p *Property) Kind() Kind       { return p.kind }
func (p *Property) Indexed() bool    { return p.indexed }
func (p *Property) Repeated() bool   { return p.repeated }
func (p *Property) Required() bool   { return p.required }
func (p *Property) Compressed() bool { return p.compressed }
func (p *Property) Schema() any      { return p.schema }

// fixUp binds the property to its attribute name at model definition
// time, exactly once. An explicit WithName wins; either way the storage
// name never changes afterwards.
func (p *Property) fixUp(name string) {
	if p.fixedUp {
		panic(configErrf(p.name, "property already attached to a model"))
	}
	if p.name == "" {
		p.name = name
	}
	p.fixedUp = true
}

// Validate checks a user value and returns its validated form. Order:
// choices (nil is always exempt), the required rule, nil short-circuit,
// the kind's type check, then the custom validator, whose return value
// supersedes.
func (p *Property) Validate(value any) (any, error) {
	if len(p.choices) > 0 && value != nil && !p.choiceAllowed(value) {
		return nil, invalidValuef(p, value, nil, "value not among allowed choices")
	}
	if p.required && value == nil {
		return nil, invalidValuef(p, value, nil, "required property has no value")
	}
	if value == nil {
		return nil, nil
	}
	if v := p.kd().validate; v != nil {
		var err error
		value, err = v(p, value)
		if err != nil {
			return nil, err
		}
	}
	if p.validator != nil {
		return p.validator(p, value)
	}
	return value, nil
}

func (p *Property) choiceAllowed(value any) bool {
	for _, c := range p.choices {
		if reflect.DeepEqual(c, value) {
			return true
		}
	}
	return false
}

// ToBaseType converts a validated user value into its storage-ready base
// value. Nil passes through.
func (p *Property) ToBaseType(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if conv := p.kd().toBase; conv != nil {
		return conv(p, value)
	}
	return value, nil
}

// FromBaseType converts a stored base value back into the user value.
// Nil passes through.
func (p *Property) FromBaseType(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if conv := p.kd().fromBase; conv != nil {
		return conv(p, value)
	}
	return value, nil
}

// FromDBValue adapts a raw value returned by the storage driver into the
// base type this property expects, e.g. decoding driver bytes into text.
// The default is identity.
func (p *Property) FromDBValue(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	if conv := p.kd().fromDB; conv != nil {
		return conv(p, raw)
	}
	return raw, nil
}

// GetValue reads the property's user value from the record, materializing
// the default on first access. A repeated property always yields a []any,
// preserving stored order.
func (p *Property) GetValue(rec *Record) (any, error) {
	if p.repeated {
		if _, ok := rec.values.Get(p.name); !ok {
			def := p.def
			if def == nil {
				def = []any{}
			}
			if err := p.SetValue(rec, def); err != nil {
				return nil, err
			}
		}
		stored, _ := rec.values.Get(p.name)
		base, ok := stored.([]any)
		if !ok {
			return nil, invalidValuef(p, stored, nil, "repeated property holds a non-sequence base value")
		}
		out := make([]any, len(base))
		for i, bv := range base {
			uv, err := p.FromBaseType(bv)
			if err != nil {
				return nil, err
			}
			out[i] = uv
		}
		return out, nil
	}

	if _, ok := rec.values.Get(p.name); !ok {
		if err := p.SetValue(rec, p.def); err != nil {
			return nil, err
		}
	}
	stored, _ := rec.values.Get(p.name)
	return p.FromBaseType(stored)
}

// SetValue validates and converts a user value and replaces the stored
// base value. On any failure the entity mapping is left unmodified.
func (p *Property) SetValue(rec *Record, value any) error {
	if p.repeated {
		elems, ok := sequenceValues(value)
		if !ok {
			return mismatchErrf(p, "repeated property requires a slice or array, got %T", value)
		}
		base := make([]any, len(elems))
		for i, el := range elems {
			v, err := p.Validate(el)
			if err != nil {
				return err
			}
			bv, err := p.ToBaseType(v)
			if err != nil {
				return err
			}
			base[i] = bv
		}
		rec.values.Set(p.name, base)
		return nil
	}

	if isSequence(value) && !p.kd().opaquePayload {
		return mismatchErrf(p, "scalar property cannot hold a slice or array, got %T", value)
	}
	v, err := p.Validate(value)
	if err != nil {
		return err
	}
	bv, err := p.ToBaseType(v)
	if err != nil {
		return err
	}
	rec.values.Set(p.name, bv)
	return nil
}

// DeleteValue removes the stored value from the record. Absent is fine.
func (p *Property) DeleteValue(rec *Record) {
	rec.values.Pop(p.name)
}

// PrepareForPut runs just before the record is durably written. Temporal
// properties use it to inject the current UTC timestamp per their
// auto-now policy; everything else is a no-op.
func (p *Property) PrepareForPut(rec *Record) error {
	if !p.autoNow && !p.autoNowAdd {
		return nil
	}
	cur, ok := rec.values.Get(p.name)
	if p.autoNow || (p.autoNowAdd && (!ok || cur == nil)) {
		return p.SetValue(rec, p.kd().now(p.currentTime()))
	}
	return nil
}

func (p *Property) currentTime() time.Time {
	if p.nowFn != nil {
		return p.nowFn()
	}
	return time.Now().UTC()
}

// []byte is always a scalar value, never a sequence of elements.
func isSequence(value any) bool {
	if value == nil {
		return false
	}
	if _, ok := value.([]byte); ok {
		return false
	}
	k := reflect.TypeOf(value).Kind()
	return k == reflect.Slice || k == reflect.Array
}

func sequenceValues(value any) ([]any, bool) {
	if !isSequence(value) {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
