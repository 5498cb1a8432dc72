/*
Package propkv implements the typed property layer of an object mapper
for document-oriented key-value stores (in this case, on top of Bolt).

A Property describes one named attribute of a record: how it validates,
what default it materializes, and how it converts between the user-facing
value and the base value kept in the record's entity mapping. Properties
are defined once, attached to a Model, and shared by every record of that
model; per-record state lives only in the record's Entity.

We implement:

1. Scalar properties: bool, int64, float64.

2. Byte properties: opaque blobs (optionally zlib-compressed), UTF-8 text,
and short indexable strings.

3. Codec properties: values serialized with msgpack or JSON before blob
storage.

4. Temporal properties: datetime (with auto-now policies), calendar date,
and time of day, all stored in a uniform timestamp form.

5. A Store persisting records to Bolt, one bucket per model, running
pre-persist hooks on the way in and per-property hydration on the way out.

# Value pipeline

Every assignment runs validate, then to-base-type, and writes the base
value into the entity mapping keyed by the property's storage name. Every
read runs from-base-type over the stored base value. Repeated properties
hold an ordered sequence of base values and convert element by element.

Compressed blobs are the one asymmetry: the store hands compressed bytes
back wrapped in a CompressedValue, and from-base-type decompresses only by
unwrapping that wrapper.

# Stored values

**Key**: the record key string, raw bytes.

**Value**: value header, then a msgpack map of base values keyed by
storage name.

**Value header**: format version (uvarint).
*/
package propkv
