package propkv

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

type codecMethod int

const (
	msgpackCodec codecMethod = iota
	jsonCodec

	entityEncoding = msgpackCodec
)

func (c codecMethod) encode(value any) ([]byte, error) {
	switch c {
	case msgpackCodec:
		var buf bytes.Buffer
		enc := msgpack.GetEncoder()
		enc.Reset(&buf)
		enc.SetSortMapKeys(true)
		err := enc.Encode(value)
		msgpack.PutEncoder(enc)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %T using msgpack: %w", value, err)
		}
		return buf.Bytes(), nil
	case jsonCodec:
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %T to JSON: %w", value, err)
		}
		return raw, nil
	default:
		panic("unsupported codec")
	}
}

// decode produces generic values: maps, slices, strings, bools, int64,
// float64, []byte, time.Time. Decoded integers are always int64 so that
// round-tripped values compare predictably.
func (c codecMethod) decode(data []byte) (any, error) {
	switch c {
	case msgpackCodec:
		var r bytes.Reader
		r.Reset(data)
		dec := msgpack.GetDecoder()
		dec.Reset(&r)
		dec.UseLooseInterfaceDecoding(true)
		var out any
		err := dec.Decode(&out)
		msgpack.PutDecoder(dec)
		if err != nil {
			return nil, fmt.Errorf("failed to decode msgpack: %w", err)
		}
		return out, nil
	case jsonCodec:
		var out any
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("failed to decode JSON: %w", err)
		}
		return out, nil
	default:
		panic("unsupported codec")
	}
}

func (c codecMethod) decodeInto(data []byte, out any) error {
	switch c {
	case msgpackCodec:
		var r bytes.Reader
		r.Reset(data)
		dec := msgpack.GetDecoder()
		dec.Reset(&r)
		dec.UseLooseInterfaceDecoding(true)
		err := dec.Decode(out)
		msgpack.PutDecoder(dec)
		if err != nil {
			return fmt.Errorf("failed to decode msgpack into %T: %w", out, err)
		}
		return nil
	case jsonCodec:
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode JSON into %T: %w", out, err)
		}
		return nil
	default:
		panic("unsupported codec")
	}
}

// Codec properties serialize the user value to bytes, then hand off to
// the blob storage contract (which applies optional compression). No kind
// validation runs: the payload shape is opaque to the property.

func packedToBase(p *Property, value any) (any, error) {
	data, err := msgpackCodec.encode(value)
	if err != nil {
		return nil, err
	}
	return blobToBase(p, data)
}

func packedFromBase(p *Property, value any) (any, error) {
	return codecFromBase(p, msgpackCodec, value)
}

func jsonToBase(p *Property, value any) (any, error) {
	data, err := jsonCodec.encode(value)
	if err != nil {
		return nil, err
	}
	return blobToBase(p, data)
}

func jsonFromBase(p *Property, value any) (any, error) {
	return codecFromBase(p, jsonCodec, value)
}

func codecFromBase(p *Property, c codecMethod, value any) (any, error) {
	raw, err := blobFromBase(p, value)
	if err != nil {
		return nil, err
	}
	data, ok := raw.([]byte)
	if !ok {
		return nil, invalidValuef(p, value, nil, "expected []byte base value")
	}
	return c.decode(data)
}
