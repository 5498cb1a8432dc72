package propkv

import (
	"fmt"
	"strings"
)

// ConfigurationError reports an invalid combination of property or model
// definition parameters. Definitions run at program startup, so these are
// raised via panic, same as any other definition-time contract violation.
type ConfigurationError struct {
	Property string
	Msg      string
}

func configErrf(propName string, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{propName, fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	if e.Property == "" {
		return e.Msg
	}
	return "property " + e.Property + ": " + e.Msg
}

// InvalidValueError reports a value rejected during validation: not among
// the allowed choices, nil for a required property, or failing the
// property kind's type check.
type InvalidValueError struct {
	Property string
	Value    any
	Msg      string
	Err      error
}

func invalidValuef(p *Property, value any, err error, format string, args ...any) error {
	return &InvalidValueError{p.name, value, fmt.Sprintf(format, args...), err}
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

func (e *InvalidValueError) Error() string {
	var buf strings.Builder
	if e.Property != "" {
		buf.WriteString("property ")
		buf.WriteString(e.Property)
		buf.WriteString(": ")
	}
	buf.WriteString(e.Msg)
	if e.Err != nil {
		buf.WriteString(": ")
		buf.WriteString(e.Err.Error())
	}
	fmt.Fprintf(&buf, " (got %T %v)", e.Value, e.Value)
	return buf.String()
}

// TypeMismatchError reports a sequence assigned to a scalar property or a
// non-sequence assigned to a repeated property.
type TypeMismatchError struct {
	Property string
	Msg      string
}

func mismatchErrf(p *Property, format string, args ...any) error {
	return &TypeMismatchError{p.name, fmt.Sprintf(format, args...)}
}

func (e *TypeMismatchError) Error() string {
	if e.Property == "" {
		return e.Msg
	}
	return "property " + e.Property + ": " + e.Msg
}
