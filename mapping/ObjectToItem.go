package mapping

import (
	"github.com/xwiki-contrib/api-structured-data/metadata/models"
	"github.com/xwiki-contrib/api-structured-data/protocol"
)

// MapObjectToItem converts a class instance and its hosting document into an
// API exposable item record. Fields follow class declaration order, password
// properties are never exposed, and a property that was never assigned on
// the instance is rendered as the empty value of its kind. A non-empty
// properties filter restricts the rendered fields to the named ones; the
// document metadata block is then only attached when the filter asks for it.
func MapObjectToItem(class models.Class, doc models.Document, obj *models.Object, id string, properties []string) *protocol.ItemRecord {
	record := protocol.NewItemRecord()
	record.ID = id
	for _, p := range class.EnabledProperties() {
		if p.Kind == models.KindPassword {
			continue
		}
		if !wantProperty(properties, p.Name) {
			continue
		}
		value, ok := obj.Field(p.Name)
		if !ok {
			value = models.ZeroValue(p.Kind)
		}
		record.Set(p.Name, value.Interface())
	}
	if wantProperty(properties, protocol.RecordKeyDocumentFields) {
		record.DocumentFields = MapDocumentToMetadata(doc)
	}
	return record
}

func wantProperty(properties []string, name string) bool {
	if len(properties) == 0 {
		return true
	}
	for _, p := range properties {
		if p == name {
			return true
		}
	}
	return false
}

// MapDocumentToMetadata snapshots the hosting document's metadata. Author,
// creator and parent are exposed wiki-qualified, the way the platform
// serializes absolute references.
func MapDocumentToMetadata(doc models.Document) *protocol.DocumentMetadata {
	meta := &protocol.DocumentMetadata{
		Author:       qualified(doc.Ref.Wiki, doc.Author),
		Creator:      qualified(doc.Ref.Wiki, doc.Creator),
		CreationDate: doc.CreationDate,
		UpdateDate:   doc.UpdateDate,
		Parent:       qualified(doc.Ref.Wiki, doc.Parent),
		Hidden:       doc.Hidden,
		Title:        doc.Title,
		Content:      doc.Content,
	}
	return meta
}

func qualified(wiki string, fullName string) string {
	if fullName == "" || wiki == "" {
		return fullName
	}
	for i := 0; i < len(fullName); i++ {
		if fullName[i] == ':' {
			return fullName
		}
	}
	return wiki + ":" + fullName
}
