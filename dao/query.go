package dao

import (
	"strconv"
	"strings"

	"github.com/xwiki-contrib/api-structured-data/metadata/models"
	"github.com/xwiki-contrib/api-structured-data/protocol"
)

// ItemQuery is the structured form of a listing query: a class, a storage
// scope, the default exclusions, and the caller's options. It is rendered to
// the store's query language by the DataAccessLayer and interpreted
// structurally by FakeDAO.
type ItemQuery struct {
	// Wiki scopes the query to one wiki.
	Wiki string
	// ClassName is the wiki-local full name of the class whose instances
	// are listed.
	ClassName string
	// Space restricts matches to hosting documents of one space. Empty
	// means the whole wiki.
	Space string
	// RawWhere is a caller-supplied filter fragment. When non-empty it
	// replaces the space, template and hidden filtering entirely.
	RawWhere string
	// IncludeHidden lifts the default exclusion of hidden documents.
	IncludeHidden bool
	// ExcludedNames lists hosting document full names never returned,
	// conventionally the class templates.
	ExcludedNames []string
	// OrderBy is a rendered order clause body, already vetted against the
	// sortable-field whitelist. Empty means the default document name and
	// occurrence number order.
	OrderBy string
	// Limit and Offset select the page, applied after filtering.
	Limit  int
	Offset int
}

// NewItemQuery builds the default query for a class within a storage scope.
func NewItemQuery(wiki string, className string, space string) ItemQuery {
	return ItemQuery{Wiki: wiki, ClassName: className, Space: space}
}

// WithOptions applies caller options onto the query. The acting user's
// show-hidden preference takes precedence over the hidden option; a raw
// query fragment disables the default filters; the order override is matched
// against the sortable-field whitelist and ignored when unrecognized.
func (q ItemQuery) WithOptions(rc models.RequestContext, opts protocol.ItemQueryOptions) ItemQuery {
	if raw := strings.TrimSpace(opts.Query); raw != "" {
		if len(raw) > 6 && strings.EqualFold(raw[:6], "where ") {
			raw = strings.TrimSpace(raw[6:])
		}
		q.RawWhere = raw
	}
	q.IncludeHidden = rc.ShowHiddenDocuments || opts.IncludeHidden()
	if opts.Order != "" {
		q.OrderBy = buildOrderBy(opts.Order)
	}
	q.Limit = opts.Limit
	q.Offset = opts.Offset
	return q
}

// buildOrderBy vets an order override of the form "<field> [asc|desc]"
// against the whitelist of sortable fields so that we don't just take values
// straight from the caller. An unrecognized field yields the empty string
// and the default ordering applies.
func buildOrderBy(order string) string {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(order)))
	if len(parts) == 0 {
		return ""
	}
	dbField := getDBFieldFromOptionField(parts[0])
	if dbField == "" {
		return ""
	}
	direction := " asc"
	if len(parts) > 1 && parts[1] == "desc" {
		direction = " desc"
	}
	return dbField + direction
}

func getDBFieldFromOptionField(fieldName string) string {
	dbFields := map[string][]string{}
	dbFields["o.docFullName"] = []string{"name", "docname", "doc.name", "doc.fullname"}
	dbFields["o.objNumber"] = []string{"number", "objnumber"}
	dbFields["d.author"] = []string{"author", "doc.author"}
	dbFields["d.creator"] = []string{"creator", "doc.creator"}
	dbFields["d.createdDate"] = []string{"creationdate", "doc.creationdate", "created"}
	dbFields["d.updatedDate"] = []string{"updatedate", "doc.date", "date", "updated"}
	dbFields["d.title"] = []string{"title", "doc.title"}

	field := strings.ToLower(strings.TrimSpace(fieldName))
	for dbField, aliases := range dbFields {
		for _, alias := range aliases {
			if field == alias {
				return dbField
			}
		}
	}
	return ""
}

// renderItemQuery assembles the listing statement for the relational store.
// Fixed values are escaped with SafeString; the optional raw fragment is
// passed through as the caller's own filter body.
func renderItemQuery(q ItemQuery) string {
	sql := `
    select
        o.docFullName
       ,o.objNumber
    from object o
        inner join document d on o.wiki = d.wiki and o.docFullName = d.fullName `
	sql += `where o.wiki = '` + SafeString(q.Wiki) + `' and o.className = '` + SafeString(q.ClassName) + `'`
	if q.RawWhere != "" {
		sql += ` and (` + q.RawWhere + `)`
	} else {
		if q.Space != "" {
			sql += ` and d.docSpace = '` + SafeString(q.Space) + `'`
		}
		for _, name := range q.ExcludedNames {
			sql += ` and o.docFullName <> '` + SafeString(name) + `'`
		}
		if !q.IncludeHidden {
			sql += ` and d.hidden = 0`
		}
	}
	sql += ` order by `
	if q.OrderBy != "" {
		sql += q.OrderBy
	} else {
		sql += `o.docFullName asc, o.objNumber asc`
	}
	limit := GetSanitizedLimit(q.Limit)
	offset := GetSanitizedOffset(q.Offset)
	sql += ` limit ` + strconv.Itoa(limit) + ` offset ` + strconv.Itoa(offset)
	return sql
}

// SafeString takes an input string and escapes characters as appropriate
// to make it safe for usage as a string input when building dynamic sql query
// Based upon: https://www.owasp.org/index.php/SQL_Injection_Prevention_Cheat_Sheet#MySQL_Escaping
func SafeString(i string) string {
	o := ""
	b := []byte(i)
	for _, v := range b {
		switch v {
		case 0x00: // NULL
			o += `\0`
		case 0x08: // Backspace
			o += `\b`
		case 0x09: // Tab
			o += `\t`
		case 0x0a: // Linefeed
			o += `\n`
		case 0x0d: // Carriage Return
			o += `\r`
		case 0x1a: // Substitute Character
			o += `\Z`
		case 0x22: // Double Quote
			o += `\"`
		case 0x25: // Percent Symbol
			o += `\%`
		case 0x27: // Single Quote
			o += `\'`
		case 0x5c: // Backslash
			o += `\\`
		case 0x5f: // Underscore
			o += `\_`
		default:
			o += string(v)
		}
	}
	return o
}
