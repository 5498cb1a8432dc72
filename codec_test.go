package propkv

import (
	"testing"
)

func TestPackedRoundTrip(t *testing.T) {
	p := PackedProp()
	tests := []any{
		map[string]any{"a": int64(1), "b": "two"},
		[]any{"x", int64(2), true},
		"plain string",
		int64(-5),
		true,
	}
	for _, value := range tests {
		base := must(p.ToBaseType(value))
		if _, ok := base.([]byte); !ok {
			t.Fatalf("** base value of %v is %T, wanted []byte", value, base)
		}
		deepEqual(t, must(p.FromBaseType(base)), value)
	}
}

func TestPackedNoValidation(t *testing.T) {
	// payload shape is opaque: any serializable value passes validation
	p := PackedProp()
	v := map[string]any{"nested": []any{int64(1)}}
	deepEqual[any](t, must(p.Validate(v)), v)
}

func TestPackedCompressedRoundTrip(t *testing.T) {
	p := PackedProp(Compressed)
	value := map[string]any{"k": "vvvvvvvvvvvvvvvvvvvvvvvvvvvvvvvv"}
	base := must(p.ToBaseType(value))
	deepEqual(t, must(p.FromBaseType(CompressedValue{base.([]byte)})), any(value))
}

func TestJSONRoundTrip(t *testing.T) {
	p := JSONProp()
	tests := []any{
		map[string]any{"a": float64(1), "b": "two"},
		[]any{"x", float64(2), true},
		"plain string",
		float64(-5),
		true,
	}
	for _, value := range tests {
		base := must(p.ToBaseType(value))
		if _, ok := base.([]byte); !ok {
			t.Fatalf("** base value of %v is %T, wanted []byte", value, base)
		}
		deepEqual(t, must(p.FromBaseType(base)), value)
	}
}

func TestJSONSchemaMetadata(t *testing.T) {
	schema := map[string]any{"type": "object"}
	p := JSONProp(WithSchema(schema))
	deepEqual[any](t, p.Schema(), schema)

	// schema is metadata only, never enforced
	_, rec := singlePropModel(t, p)
	ensure(rec.Set("v", []any{"not", "an", "object"}))
}

func TestJSONUnserializableValue(t *testing.T) {
	p := JSONProp()
	if _, err := p.ToBaseType(make(chan int)); err == nil {
		t.Fatalf("** encoding a channel succeeded")
	}
}

func TestCodecRepeated(t *testing.T) {
	_, rec := singlePropModel(t, JSONProp(Repeated))
	ensure(rec.Set("v", []any{map[string]any{"a": float64(1)}, map[string]any{"b": float64(2)}}))
	deepEqual[any](t, must(rec.Get("v")), []any{
		map[string]any{"a": float64(1)},
		map[string]any{"b": float64(2)},
	})
}
