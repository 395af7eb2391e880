package mapping

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/xwiki-contrib/api-structured-data/metadata/models"
	"github.com/xwiki-contrib/api-structured-data/protocol"
)

// OverwriteObjectWithItem writes the fields of an item record onto a class
// instance. Each value is coerced to the declared kind of its property;
// a value that cannot be coerced resets the property to its unset state.
// Field names that do not match class properties are ignored.
func OverwriteObjectWithItem(class models.Class, obj *models.Object, record *protocol.ItemRecord) {
	for _, key := range record.Keys() {
		property, ok := class.Property(key)
		if !ok || property.Disabled {
			continue
		}
		raw, _ := record.Get(key)
		value, ok := CoerceValue(property.Kind, raw)
		if !ok {
			obj.ClearField(key)
			continue
		}
		obj.SetField(key, value)
	}
}

// CoerceValue converts a JSON-decoded value into a typed field value of the
// given kind. The second return is false when no sensible conversion exists,
// including a null value.
func CoerceValue(kind models.FieldKind, raw interface{}) (models.FieldValue, bool) {
	if raw == nil {
		return models.FieldValue{}, false
	}
	switch kind {
	case models.KindInteger, models.KindLong:
		return coerceInt(kind, raw)
	case models.KindFloat, models.KindDouble:
		return coerceFloat(kind, raw)
	case models.KindDate:
		return coerceDate(raw)
	case models.KindBoolean:
		return coerceBool(raw)
	case models.KindStaticList, models.KindDBList:
		return coerceList(kind, raw)
	default:
		return coerceString(kind, raw)
	}
}

func coerceInt(kind models.FieldKind, raw interface{}) (models.FieldValue, bool) {
	switch v := raw.(type) {
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil {
				return models.FieldValue{}, false
			}
			return models.IntValue(kind, int64(f)), true
		}
		return models.IntValue(kind, i), true
	case float64:
		return models.IntValue(kind, int64(v)), true
	case int:
		return models.IntValue(kind, int64(v)), true
	case int64:
		return models.IntValue(kind, v), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return models.FieldValue{}, false
		}
		return models.IntValue(kind, i), true
	}
	return models.FieldValue{}, false
}

func coerceFloat(kind models.FieldKind, raw interface{}) (models.FieldValue, bool) {
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return models.FieldValue{}, false
		}
		return models.FloatValue(kind, f), true
	case float64:
		return models.FloatValue(kind, v), true
	case int:
		return models.FloatValue(kind, float64(v)), true
	case int64:
		return models.FloatValue(kind, float64(v)), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return models.FieldValue{}, false
		}
		return models.FloatValue(kind, f), true
	}
	return models.FieldValue{}, false
}

func coerceDate(raw interface{}) (models.FieldValue, bool) {
	switch v := raw.(type) {
	case time.Time:
		return models.DateValue(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return models.FieldValue{}, false
		}
		return models.DateValue(time.UnixMilli(int64(f)).UTC()), true
	case float64:
		return models.DateValue(time.UnixMilli(int64(v)).UTC()), true
	case int64:
		return models.DateValue(time.UnixMilli(v).UTC()), true
	case string:
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(v))
		if err != nil {
			return models.FieldValue{}, false
		}
		return models.DateValue(t), true
	}
	return models.FieldValue{}, false
}

func coerceBool(raw interface{}) (models.FieldValue, bool) {
	switch v := raw.(type) {
	case bool:
		return models.BoolValue(v), true
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return models.FieldValue{}, false
		}
		return models.BoolValue(i != 0), true
	case float64:
		return models.BoolValue(v != 0), true
	case string:
		s := strings.TrimSpace(strings.ToLower(v))
		return models.BoolValue(s == "1" || s == "true"), true
	}
	return models.FieldValue{}, false
}

func coerceList(kind models.FieldKind, raw interface{}) (models.FieldValue, bool) {
	switch v := raw.(type) {
	case []interface{}:
		entries := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				if n, isNum := e.(json.Number); isNum {
					s = n.String()
				} else {
					return models.FieldValue{}, false
				}
			}
			entries = append(entries, s)
		}
		return models.ListValue(kind, entries), true
	case []string:
		return models.ListValue(kind, v), true
	case string:
		if v == "" {
			return models.ListValue(kind, []string{}), true
		}
		return models.ListValue(kind, strings.Split(v, "|")), true
	}
	return models.FieldValue{}, false
}

func coerceString(kind models.FieldKind, raw interface{}) (models.FieldValue, bool) {
	switch v := raw.(type) {
	case string:
		return models.StringValue(kind, v), true
	case json.Number:
		return models.StringValue(kind, v.String()), true
	case bool:
		return models.StringValue(kind, strconv.FormatBool(v)), true
	case float64:
		return models.StringValue(kind, strconv.FormatFloat(v, 'g', -1, 64)), true
	}
	return models.FieldValue{}, false
}
