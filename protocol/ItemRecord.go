package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Reserved keys of the item record JSON representation.
const (
	RecordKeyID             = "id"
	RecordKeyDocumentFields = "documentFields"
)

// ItemRecord is the generic representation of one item: an ordered mapping
// of field name to JSON-compatible value, an identifier, and an optional
// snapshot of the hosting document's metadata. Field order follows the class
// definition and is preserved through JSON encoding.
type ItemRecord struct {
	// ID is the serialized ItemID of the record.
	ID string

	// DocumentFields is the metadata snapshot of the hosting document, or
	// nil when none was attached.
	DocumentFields *DocumentMetadata

	keys   []string
	values map[string]interface{}
}

// NewItemRecord creates an empty record.
func NewItemRecord() *ItemRecord {
	return &ItemRecord{values: make(map[string]interface{})}
}

// Set assigns a field value, appending the key on first assignment.
func (r *ItemRecord) Set(key string, value interface{}) {
	if r.values == nil {
		r.values = make(map[string]interface{})
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get reads a field value.
func (r *ItemRecord) Get(key string) (interface{}, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the field names in insertion order.
func (r *ItemRecord) Keys() []string {
	return r.keys
}

// Len returns the number of fields.
func (r *ItemRecord) Len() int {
	return len(r.keys)
}

// IsEmpty is true for a record with no fields and no identifier.
func (r *ItemRecord) IsEmpty() bool {
	return r == nil || (len(r.keys) == 0 && r.ID == "")
}

// MarshalJSON renders the identifier first, then the fields in insertion
// order, then the document metadata block when present.
func (r *ItemRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeMember(&buf, RecordKeyID, r.ID)
	for _, key := range r.keys {
		buf.WriteByte(',')
		writeMember(&buf, key, r.values[key])
	}
	if r.DocumentFields != nil {
		buf.WriteByte(',')
		writeMember(&buf, RecordKeyDocumentFields, r.DocumentFields)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, value interface{}) {
	k, _ := json.Marshal(key)
	buf.Write(k)
	buf.WriteByte(':')
	v, err := json.Marshal(value)
	if err != nil {
		v = []byte("null")
	}
	buf.Write(v)
}

// UnmarshalJSON decodes a record, preserving the field order of the payload.
// The "id" and "documentFields" members are routed to their dedicated slots.
func (r *ItemRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	r.keys = nil
	r.values = make(map[string]interface{})
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		switch key {
		case RecordKeyID:
			var id string
			if err := json.Unmarshal(raw, &id); err != nil {
				return err
			}
			r.ID = id
		case RecordKeyDocumentFields:
			meta := &DocumentMetadata{}
			if err := json.Unmarshal(raw, meta); err != nil {
				return err
			}
			r.DocumentFields = meta
		default:
			var value interface{}
			if err := json.Unmarshal(raw, &value); err != nil {
				return err
			}
			r.Set(key, value)
		}
	}
	// consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
