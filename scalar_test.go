package propkv

import (
	"math"
	"testing"
)

func TestIntValidate(t *testing.T) {
	p := IntProp()
	tests := []struct {
		input    any
		expected int64
		fails    bool
	}{
		{5, 5, false},
		{int8(-3), -3, false},
		{int16(300), 300, false},
		{int32(-70000), -70000, false},
		{int64(1 << 40), 1 << 40, false},
		{uint(9), 9, false},
		{uint8(255), 255, false},
		{uint32(math.MaxUint32), math.MaxUint32, false},
		{uint64(math.MaxInt64), math.MaxInt64, false},
		{uint64(math.MaxInt64) + 1, 0, true},
		{"5", 0, true},
		{3.5, 0, true},
		{true, 0, true},
	}
	for _, test := range tests {
		v, err := p.Validate(test.input)
		if test.fails {
			if err == nil {
				t.Errorf("** Validate(%T %v) succeeded, wanted error", test.input, test.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("** Validate(%T %v) failed: %v", test.input, test.input, err)
		} else if v != test.expected {
			t.Errorf("** Validate(%T %v) = %v, wanted %v", test.input, test.input, v, test.expected)
		}
	}
}

func TestFloatValidate(t *testing.T) {
	p := FloatProp()
	tests := []struct {
		input    any
		expected float64
		fails    bool
	}{
		{3.5, 3.5, false},
		{float32(2), 2, false},
		{5, 5, false},
		{int64(-7), -7, false},
		{uint16(12), 12, false},
		{"x", 0, true},
		{false, 0, true},
	}
	for _, test := range tests {
		v, err := p.Validate(test.input)
		if test.fails {
			if err == nil {
				t.Errorf("** Validate(%T %v) succeeded, wanted error", test.input, test.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("** Validate(%T %v) failed: %v", test.input, test.input, err)
		} else if v != test.expected {
			t.Errorf("** Validate(%T %v) = %v, wanted %v", test.input, test.input, v, test.expected)
		}
	}
}

func TestBoolValidate(t *testing.T) {
	p := BoolProp()
	if v := must(p.Validate(true)); v != true {
		t.Fatalf("** Validate(true) = %v", v)
	}
	wantInvalid(t, second(p.Validate(1)))
	wantInvalid(t, second(p.Validate("true")))
}

func TestScalarRoundTrip(t *testing.T) {
	tests := []struct {
		p     *Property
		value any
	}{
		{BoolProp(), true},
		{BoolProp(), false},
		{IntProp(), int64(42)},
		{IntProp(), int64(-1)},
		{FloatProp(), 3.25},
	}
	for _, test := range tests {
		base := must(test.p.ToBaseType(test.value))
		back := must(test.p.FromBaseType(base))
		if back != test.value {
			t.Errorf("** %s: round trip of %v = %v", test.p.Kind(), test.value, back)
		}
	}
}

func TestIntegerSetGetScenario(t *testing.T) {
	_, rec := singlePropModel(t, IntProp())
	ensure(rec.Set("v", 5))
	deepEqual[any](t, rec.Entity()["v"], int64(5))
	deepEqual[any](t, must(rec.Get("v")), int64(5))
}

func second[T1, T2 any](v1 T1, v2 T2) T2 {
	return v2
}
