package propkv

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/klauspost/compress/zlib"
)

// CompressedPayload is the storage driver's compressed-value holder. When
// the store hydrates a compressed blob it hands the raw compressed bytes
// back wrapped in this capability; blob from-base-type decompresses only
// by unwrapping it. The wrapper's shape is the driver contract, not part
// of the property pipeline.
type CompressedPayload interface {
	CompressedBytes() []byte
}

// CompressedValue is the wrapper the Store produces for compressed
// blob-family values fetched from Bolt.
type CompressedValue struct {
	Data []byte
}

func (v CompressedValue) CompressedBytes() []byte { return v.Data }

func validateBlob(p *Property, value any) (any, error) {
	if v, ok := value.([]byte); ok {
		return v, nil
	}
	return nil, invalidValuef(p, value, nil, "expected []byte")
}

func blobToBase(p *Property, value any) (any, error) {
	v, ok := value.([]byte)
	if !ok {
		return nil, invalidValuef(p, value, nil, "expected []byte base input")
	}
	if p.compressed {
		return zlibCompress(v)
	}
	return v, nil
}

// blobFromBase decompresses only a driver-provided wrapper; locally
// stored base values (already compressed or plain) pass through as-is.
func blobFromBase(p *Property, value any) (any, error) {
	if w, ok := value.(CompressedPayload); ok {
		raw, err := zlibDecompress(w.CompressedBytes())
		if err != nil {
			return nil, invalidValuef(p, value, err, "corrupt compressed payload")
		}
		return raw, nil
	}
	return value, nil
}

func zlibCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func zlibDecompress(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// decodeText is the one named decode step shared by the text and string
// kinds: bytes are strictly UTF-8-decoded, text passes through.
func decodeText(p *Property, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		if !utf8.Valid(v) {
			return "", invalidValuef(p, value, nil, "invalid UTF-8 byte sequence")
		}
		return string(v), nil
	}
	return "", invalidValuef(p, value, nil, "expected string or []byte")
}

func validateText(p *Property, value any) (any, error) {
	s, err := decodeText(p, value)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// textToBase keeps decoded text as the base type. Text deliberately
// bypasses the blob byte contract: the entity holds a string, not bytes.
func textToBase(p *Property, value any) (any, error) {
	s, err := decodeText(p, value)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func textFromBase(p *Property, value any) (any, error) {
	s, err := decodeText(p, value)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func textFromDB(p *Property, raw any) (any, error) {
	if b, ok := raw.([]byte); ok {
		return decodeText(p, b)
	}
	return raw, nil
}
