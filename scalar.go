package propkv

import "math"

func validateBool(p *Property, value any) (any, error) {
	if v, ok := value.(bool); ok {
		return v, nil
	}
	return nil, invalidValuef(p, value, nil, "expected bool")
}

// validateInt accepts any Go integer kind and narrows to int64, the
// uniform integer base type.
func validateInt(p *Property, value any) (any, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return narrowUint(p, value, uint64(v))
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return narrowUint(p, value, v)
	case uintptr:
		return narrowUint(p, value, uint64(v))
	}
	return nil, invalidValuef(p, value, nil, "expected an integer")
}

func narrowUint(p *Property, orig any, v uint64) (any, error) {
	if v > math.MaxInt64 {
		return nil, invalidValuef(p, orig, nil, "integer out of int64 range")
	}
	return int64(v), nil
}

// validateFloat accepts any numeric value and widens to float64.
func validateFloat(p *Property, value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	}
	iv, err := validateInt(p, value)
	if err != nil {
		return nil, invalidValuef(p, value, nil, "expected a number")
	}
	return float64(iv.(int64)), nil
}
