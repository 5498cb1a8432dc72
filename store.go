package propkv

import (
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	valueFormatVer1      = 1
	valueFormatVerLatest = valueFormatVer1
)

// Store persists records to Bolt, one bucket per model. It is the
// external persistence layer the property contract feeds: Put runs every
// property's pre-persist hook before encoding, and Get hydrates stored
// values through each property's FromDBValue, wrapping compressed
// blob-family values in CompressedValue.
type Store struct {
	bdb     *bbolt.DB
	schema  *Schema
	logf    func(format string, args ...any)
	verbose bool
}

type Options struct {
	Logf      func(format string, args ...any)
	Verbose   bool
	IsTesting bool
	MmapSize  int
}

func OpenStore(path string, schema *Schema, opt Options) (*Store, error) {
	bopt := &bbolt.Options{}
	*bopt = *bbolt.DefaultOptions
	bopt.Timeout = 10 * time.Second
	if opt.IsTesting {
		bopt.NoSync = true
		bopt.NoFreelistSync = true
		bopt.InitialMmapSize = 1024 * 1024 * 5
	} else {
		bopt.InitialMmapSize = 1024 * 1024 * 1024
		bopt.FreelistType = bbolt.FreelistMapType
	}
	if opt.MmapSize != 0 {
		bopt.InitialMmapSize = opt.MmapSize
	}

	bdb, err := bbolt.Open(path, 0666, bopt)
	if err != nil {
		return nil, fmt.Errorf("propkv: %w", err)
	}

	st := &Store{
		bdb:     bdb,
		schema:  schema,
		logf:    opt.Logf,
		verbose: opt.Verbose,
	}
	if st.logf == nil {
		st.logf = func(format string, args ...any) {}
	}

	err = bdb.Update(func(btx *bbolt.Tx) error {
		for _, model := range schema.models {
			if _, err := btx.CreateBucketIfNotExists([]byte(model.name)); err != nil {
				return fmt.Errorf("bucket %s: %w", model.name, err)
			}
		}
		return nil
	})
	if err != nil {
		bdb.Close()
		return nil, fmt.Errorf("propkv: %w", err)
	}
	return st, nil
}

func (st *Store) Close() error {
	return st.bdb.Close()
}

func (st *Store) Bolt() *bbolt.DB {
	return st.bdb
}

// Put runs pre-persist hooks on the record, encodes its entity and writes
// it under the given key, replacing any prior value.
func (st *Store) Put(key string, rec *Record) error {
	if key == "" {
		return fmt.Errorf("propkv: empty key for model %s", rec.model.name)
	}
	if err := rec.model.prepareForPut(rec); err != nil {
		return err
	}
	raw, err := encodeEntityValue(rec.model, rec.values)
	if err != nil {
		return err
	}
	err = st.bdb.Update(func(btx *bbolt.Tx) error {
		return nonNil(btx.Bucket([]byte(rec.model.name))).Put([]byte(key), raw)
	})
	if err != nil {
		return fmt.Errorf("propkv: %w", err)
	}
	if st.verbose {
		st.logf("store: PUT %s/%s (%d bytes)", rec.model.name, key, len(raw))
	}
	return nil
}

// Get returns the stored record, or nil if the key is absent.
func (st *Store) Get(model *Model, key string) (*Record, error) {
	var raw []byte
	err := st.bdb.View(func(btx *bbolt.Tx) error {
		if data := nonNil(btx.Bucket([]byte(model.name))).Get([]byte(key)); data != nil {
			raw = append([]byte(nil), data...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("propkv: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	if st.verbose {
		st.logf("store: GET %s/%s (%d bytes)", model.name, key, len(raw))
	}
	return decodeEntityValue(model, raw)
}

func (st *Store) Delete(model *Model, key string) error {
	err := st.bdb.Update(func(btx *bbolt.Tx) error {
		return nonNil(btx.Bucket([]byte(model.name))).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("propkv: %w", err)
	}
	if st.verbose {
		st.logf("store: DELETE %s/%s", model.name, key)
	}
	return nil
}

func encodeEntityValue(model *Model, ent Entity) ([]byte, error) {
	stored := make(map[string]any, len(ent))
	for k, v := range ent {
		stored[k] = storableValue(v)
	}
	data, err := entityEncoding.encode(stored)
	if err != nil {
		return nil, err
	}
	var hdr [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(hdr[:], valueFormatVerLatest)
	return append(hdr[:n], data...), nil
}

// A hydrated record may hold driver wrappers in its entity; writing it
// back stores the wrapped compressed bytes as-is.
func storableValue(v any) any {
	switch v := v.(type) {
	case CompressedPayload:
		return v.CompressedBytes()
	case []any:
		out := make([]any, len(v))
		for i, el := range v {
			out[i] = storableValue(el)
		}
		return out
	}
	return v
}

func decodeEntityValue(model *Model, raw []byte) (*Record, error) {
	ver, n := binary.Uvarint(raw)
	if n <= 0 {
		return nil, fmt.Errorf("propkv: %s: invalid value header", model.name)
	}
	if ver != valueFormatVer1 {
		return nil, fmt.Errorf("propkv: %s: unsupported value format %d", model.name, ver)
	}
	var stored map[string]any
	if err := entityEncoding.decodeInto(raw[n:], &stored); err != nil {
		return nil, fmt.Errorf("propkv: %s: %w", model.name, err)
	}

	rec := model.New()
	for k, v := range stored {
		p := model.PropStored(k)
		if p == nil {
			// Keep values of since-removed properties untouched.
			rec.values[k] = v
			continue
		}
		hv, err := hydrateValue(p, v)
		if err != nil {
			return nil, err
		}
		rec.values[k] = hv
	}
	return rec, nil
}

func hydrateValue(p *Property, raw any) (any, error) {
	if p.repeated {
		elems, ok := raw.([]any)
		if !ok {
			return nil, invalidValuef(p, raw, nil, "stored repeated value is not a sequence")
		}
		out := make([]any, len(elems))
		for i, el := range elems {
			hv, err := hydrateElement(p, el)
			if err != nil {
				return nil, err
			}
			out[i] = hv
		}
		return out, nil
	}
	return hydrateElement(p, raw)
}

func hydrateElement(p *Property, raw any) (any, error) {
	if p.compressed {
		if b, ok := raw.([]byte); ok {
			return CompressedValue{b}, nil
		}
	}
	return p.FromDBValue(raw)
}
