package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ItemResultset is the result of an item listing: records keyed by their
// identifier, in listing order. The order is preserved through JSON
// encoding.
type ItemResultset struct {
	ids     []string
	records map[string]*ItemRecord
}

// NewItemResultset creates an empty resultset.
func NewItemResultset() *ItemResultset {
	return &ItemResultset{records: make(map[string]*ItemRecord)}
}

// Add appends a record under its identifier. Re-adding an identifier
// replaces the record in place.
func (rs *ItemResultset) Add(record *ItemRecord) {
	if rs.records == nil {
		rs.records = make(map[string]*ItemRecord)
	}
	if _, ok := rs.records[record.ID]; !ok {
		rs.ids = append(rs.ids, record.ID)
	}
	rs.records[record.ID] = record
}

// Get reads a record by identifier.
func (rs *ItemResultset) Get(id string) (*ItemRecord, bool) {
	r, ok := rs.records[id]
	return r, ok
}

// IDs returns the record identifiers in listing order.
func (rs *ItemResultset) IDs() []string {
	return rs.ids
}

// Len returns the number of records.
func (rs *ItemResultset) Len() int {
	return len(rs.ids)
}

// MarshalJSON renders the records as an object keyed by identifier, in
// listing order.
func (rs *ItemResultset) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range rs.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeMember(&buf, id, rs.records[id])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a resultset, preserving the record order of the
// payload.
func (rs *ItemResultset) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	rs.ids = nil
	rs.records = make(map[string]*ItemRecord)
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
		record := NewItemRecord()
		if err := json.Unmarshal(raw, record); err != nil {
			return err
		}
		rs.ids = append(rs.ids, key)
		rs.records[key] = record
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
