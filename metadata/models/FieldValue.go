package models

import "time"

// FieldKind enumerates the property types a class can declare. The values
// match the type names exposed through the schema API.
type FieldKind string

const (
	KindString     FieldKind = "String"
	KindTextArea   FieldKind = "TextArea"
	KindInteger    FieldKind = "Integer"
	KindLong       FieldKind = "Long"
	KindFloat      FieldKind = "Float"
	KindDouble     FieldKind = "Double"
	KindDate       FieldKind = "Date"
	KindBoolean    FieldKind = "Boolean"
	KindStaticList FieldKind = "StaticList"
	KindDBList     FieldKind = "DBList"
	KindPassword   FieldKind = "Password"
	KindReference  FieldKind = "Reference"
)

// IsNumeric is true for the four numeric kinds.
func (k FieldKind) IsNumeric() bool {
	switch k {
	case KindInteger, KindLong, KindFloat, KindDouble:
		return true
	}
	return false
}

// IsList is true for the enumerated list kinds.
func (k FieldKind) IsList() bool {
	return k == KindStaticList || k == KindDBList
}

// FieldValue is a tagged union holding the value of one typed property. Only
// the member selected by Kind is meaningful.
type FieldValue struct {
	Kind  FieldKind
	Str   string
	Int   int64
	Float float64
	Time  time.Time
	Bool  bool
	List  []string
}

// ZeroValue returns the empty value for a kind. It stands in for properties
// an instance has never been assigned.
func ZeroValue(kind FieldKind) FieldValue {
	return FieldValue{Kind: kind}
}

// StringValue wraps a plain string.
func StringValue(kind FieldKind, s string) FieldValue {
	return FieldValue{Kind: kind, Str: s}
}

// IntValue wraps an integer for the Integer and Long kinds.
func IntValue(kind FieldKind, i int64) FieldValue {
	return FieldValue{Kind: kind, Int: i}
}

// FloatValue wraps a float for the Float and Double kinds.
func FloatValue(kind FieldKind, f float64) FieldValue {
	return FieldValue{Kind: kind, Float: f}
}

// DateValue wraps a timestamp.
func DateValue(t time.Time) FieldValue {
	return FieldValue{Kind: KindDate, Time: t}
}

// BoolValue wraps a boolean.
func BoolValue(b bool) FieldValue {
	return FieldValue{Kind: KindBoolean, Bool: b}
}

// ListValue wraps the selected entries of a list property.
func ListValue(kind FieldKind, entries []string) FieldValue {
	return FieldValue{Kind: kind, List: entries}
}

// Interface converts the value to its generic JSON-compatible representation.
func (v FieldValue) Interface() interface{} {
	switch v.Kind {
	case KindInteger, KindLong:
		return v.Int
	case KindFloat, KindDouble:
		return v.Float
	case KindDate:
		if v.Time.IsZero() {
			return nil
		}
		return v.Time
	case KindBoolean:
		return v.Bool
	case KindStaticList, KindDBList:
		if v.List == nil {
			return []string{}
		}
		return v.List
	default:
		return v.Str
	}
}
