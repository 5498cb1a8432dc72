package propkv

import (
	"fmt"
	"time"
)

// Kind selects a property's validation and conversion strategy. Behavior
// that the variants share (text decoding, blob compression, codec framing)
// is composed from the same strategy funcs rather than layered through
// embedding.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindBlob
	KindText
	KindString
	KindPacked
	KindJSON
	KindDateTime
	KindDate
	KindTime
)

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindDefs) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindDefs[k].name
}

type kindDef struct {
	name           string
	defaultIndexed bool
	neverIndexed   bool // raw byte storage, excluded from indexing
	compressible   bool
	temporal       bool
	opaquePayload  bool // codec kinds: user values may be any shape, including sequences

	validate func(p *Property, value any) (any, error)
	toBase   func(p *Property, value any) (any, error)
	fromBase func(p *Property, value any) (any, error)
	fromDB   func(p *Property, raw any) (any, error)
	now      func(t time.Time) any
}

var kindDefs = [...]kindDef{
	KindBool:  {name: "bool", defaultIndexed: true, validate: validateBool},
	KindInt:   {name: "int", defaultIndexed: true, validate: validateInt},
	KindFloat: {name: "float", defaultIndexed: true, validate: validateFloat},
	KindBlob: {
		name: "blob", neverIndexed: true, compressible: true,
		validate: validateBlob,
		toBase:   blobToBase,
		fromBase: blobFromBase,
	},
	KindText: {
		name:     "text",
		validate: validateText,
		toBase:   textToBase,
		fromBase: textFromBase,
		fromDB:   textFromDB,
	},
	KindString: {
		name: "string", defaultIndexed: true,
		validate: validateText,
		toBase:   textToBase,
		fromBase: textFromBase,
		fromDB:   textFromDB,
	},
	KindPacked: {
		name: "packed", neverIndexed: true, compressible: true, opaquePayload: true,
		toBase:   packedToBase,
		fromBase: packedFromBase,
	},
	KindJSON: {
		name: "json", neverIndexed: true, compressible: true, opaquePayload: true,
		toBase:   jsonToBase,
		fromBase: jsonFromBase,
	},
	KindDateTime: {
		name: "datetime", defaultIndexed: true, temporal: true,
		validate: validateDateTime,
		fromDB:   dateTimeFromDB,
		now:      func(t time.Time) any { return t },
	},
	KindDate: {
		name: "date", defaultIndexed: true, temporal: true,
		validate: validateDate,
		toBase:   dateToBase,
		fromBase: dateFromBase,
		now:      func(t time.Time) any { return DateOf(t) },
	},
	KindTime: {
		name: "time", defaultIndexed: true, temporal: true,
		validate: validateTimeOfDay,
		toBase:   timeOfDayToBase,
		fromBase: timeOfDayFromBase,
		now:      func(t time.Time) any { return TimeOfDayOf(t) },
	},
}
