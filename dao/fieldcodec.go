package dao

import (
	"strconv"
	"strings"
	"time"

	"github.com/xwiki-contrib/api-structured-data/metadata/models"
)

// listEntrySeparator joins the selected entries of a list property into one
// stored string.
const listEntrySeparator = "|"

// encodeFieldValue renders a typed value into its stored string form.
func encodeFieldValue(v models.FieldValue) string {
	switch v.Kind {
	case models.KindInteger, models.KindLong:
		return strconv.FormatInt(v.Int, 10)
	case models.KindFloat, models.KindDouble:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case models.KindDate:
		if v.Time.IsZero() {
			return ""
		}
		return v.Time.UTC().Format(time.RFC3339Nano)
	case models.KindBoolean:
		if v.Bool {
			return "1"
		}
		return "0"
	case models.KindStaticList, models.KindDBList:
		return strings.Join(v.List, listEntrySeparator)
	default:
		return v.Str
	}
}

// decodeFieldValue parses a stored string back into a typed value. A value
// that does not parse yields the empty value of the kind.
func decodeFieldValue(kind models.FieldKind, s string) models.FieldValue {
	switch kind {
	case models.KindInteger, models.KindLong:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return models.ZeroValue(kind)
		}
		return models.IntValue(kind, i)
	case models.KindFloat, models.KindDouble:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return models.ZeroValue(kind)
		}
		return models.FloatValue(kind, f)
	case models.KindDate:
		if s == "" {
			return models.ZeroValue(kind)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return models.ZeroValue(kind)
		}
		return models.DateValue(t)
	case models.KindBoolean:
		return models.BoolValue(s == "1" || s == "true")
	case models.KindStaticList, models.KindDBList:
		if s == "" {
			return models.ListValue(kind, []string{})
		}
		return models.ListValue(kind, strings.Split(s, listEntrySeparator))
	default:
		return models.StringValue(kind, s)
	}
}
