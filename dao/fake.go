package dao

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xwiki-contrib/api-structured-data/metadata/models"
)

// FakeDAO is an in-memory DAO suitable for tests. Documents and classes are
// keyed by their serialized reference, and FindItems interprets the item
// query structurally instead of rendering it to SQL.
type FakeDAO struct {
	// Documents holds the stored documents keyed by reference string,
	// e.g. "xwiki:HR.Employees".
	Documents map[string]*models.Document
	// Classes holds the class definitions keyed by reference string.
	Classes map[string]models.Class
	// ListValues holds canned database-list resolutions keyed by
	// "<classFullName>#<propertyName>".
	ListValues map[string][]string
	// ListErrs holds canned database-list failures under the same keys.
	ListErrs map[string]error
	// SaveComments records the revision comments of each save, in order.
	SaveComments []string
	// Err, when set, is returned by every operation.
	Err error
	// Logger is optional.
	Logger *zap.Logger
}

// NewFakeDAO creates an empty FakeDAO.
func NewFakeDAO() *FakeDAO {
	return &FakeDAO{
		Documents:  make(map[string]*models.Document),
		Classes:    make(map[string]models.Class),
		ListValues: make(map[string][]string),
		ListErrs:   make(map[string]error),
	}
}

// GetLogger returns the configured logger, or a no-op one.
func (fake *FakeDAO) GetLogger() *zap.Logger {
	if fake.Logger == nil {
		return zap.NewNop()
	}
	return fake.Logger
}

// GetDocument returns a copy of the stored document, or ErrNoRows.
func (fake *FakeDAO) GetDocument(ref models.DocumentReference) (models.Document, error) {
	if fake.Err != nil {
		return models.Document{}, fake.Err
	}
	stored, ok := fake.Documents[ref.String()]
	if !ok {
		return models.Document{}, ErrNoRows
	}
	return copyDocument(stored), nil
}

// SaveDocument stores a copy of the document and records the comment.
func (fake *FakeDAO) SaveDocument(doc *models.Document, comment string) error {
	if fake.Err != nil {
		return fake.Err
	}
	if doc == nil || doc.Ref.Name == "" {
		return ErrMissingReference
	}
	now := time.Now().UTC()
	if doc.IsNew && doc.CreationDate.IsZero() {
		doc.CreationDate = now
	}
	if !doc.PreserveUpdateDate || doc.UpdateDate.IsZero() {
		doc.UpdateDate = now
	}
	doc.PreserveUpdateDate = false
	stored := copyDocument(doc)
	stored.IsNew = false
	fake.Documents[doc.Ref.String()] = &stored
	fake.SaveComments = append(fake.SaveComments, comment)
	doc.IsNew = false
	return nil
}

// GetClass returns the stored class definition, or ErrNoRows.
func (fake *FakeDAO) GetClass(ref models.DocumentReference) (models.Class, error) {
	if fake.Err != nil {
		return models.Class{}, fake.Err
	}
	class, ok := fake.Classes[ref.String()]
	if !ok {
		return models.Class{}, ErrNoRows
	}
	return class, nil
}

// GetClassNames lists the stored class full names of a wiki, sorted.
func (fake *FakeDAO) GetClassNames(wiki string) ([]string, error) {
	if fake.Err != nil {
		return nil, fake.Err
	}
	names := []string{}
	for _, class := range fake.Classes {
		if class.Reference.Wiki == wiki {
			names = append(names, class.FullName())
		}
	}
	sort.Strings(names)
	return names, nil
}

// GetListValues returns the canned resolution for the property, preferring a
// canned failure when one is set.
func (fake *FakeDAO) GetListValues(wiki string, classFullName string, property models.PropertyDefinition) ([]string, error) {
	if fake.Err != nil {
		return nil, fake.Err
	}
	key := classFullName + "#" + property.Name
	if err, ok := fake.ListErrs[key]; ok {
		return nil, err
	}
	return fake.ListValues[key], nil
}

// FindItems interprets the item query against the stored documents. A raw
// filter fragment cannot be evaluated in memory, so its presence only lifts
// the default space, template and hidden filtering, matching the filter
// replacement the real store performs.
func (fake *FakeDAO) FindItems(q ItemQuery) ([]ItemLocator, error) {
	if fake.Err != nil {
		return nil, fake.Err
	}
	items := []ItemLocator{}
	for _, doc := range fake.Documents {
		if doc.Ref.Wiki != q.Wiki {
			continue
		}
		if q.RawWhere == "" {
			if q.Space != "" && doc.Ref.Space != q.Space {
				continue
			}
			if excludedName(q.ExcludedNames, doc.Ref.FullName()) {
				continue
			}
			if doc.Hidden && !q.IncludeHidden {
				continue
			}
		}
		for _, obj := range doc.Objects {
			if obj.ClassName == q.ClassName {
				items = append(items, ItemLocator{DocumentName: doc.Ref.FullName(), Number: obj.Number})
			}
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].DocumentName != items[j].DocumentName {
			return items[i].DocumentName < items[j].DocumentName
		}
		return items[i].Number < items[j].Number
	})
	limit := GetSanitizedLimit(q.Limit)
	offset := GetSanitizedOffset(q.Offset)
	if offset >= len(items) {
		return []ItemLocator{}, nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}

func excludedName(excluded []string, fullName string) bool {
	for _, name := range excluded {
		if strings.EqualFold(name, fullName) {
			return true
		}
	}
	return false
}

func copyDocument(doc *models.Document) models.Document {
	out := *doc
	out.Objects = make([]*models.Object, 0, len(doc.Objects))
	for _, obj := range doc.Objects {
		clone := models.NewObject(obj.ClassName, obj.Number)
		for name, value := range obj.Fields {
			clone.SetField(name, value)
		}
		out.Objects = append(out.Objects, clone)
	}
	return out
}
