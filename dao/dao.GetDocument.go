package dao

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/xwiki-contrib/api-structured-data/metadata/models"
)

// GetDocument retrieves a document by reference along with all class
// instances attached to it. A missing document yields ErrNoRows.
func (dao *DataAccessLayer) GetDocument(ref models.DocumentReference) (models.Document, error) {
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("Could not begin transaction", zap.Error(err))
		return models.Document{}, err
	}
	doc, err := getDocumentInTransaction(tx, ref)
	if err != nil {
		if err != ErrNoRows {
			dao.GetLogger().Error("Error in GetDocument", zap.Error(err))
		}
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return doc, err
}

type documentRow struct {
	Wiki        string       `db:"wiki"`
	DocSpace    string       `db:"docSpace"`
	DocName     string       `db:"docName"`
	Author      string       `db:"author"`
	Creator     string       `db:"creator"`
	CreatedDate sql.NullTime `db:"createdDate"`
	UpdatedDate sql.NullTime `db:"updatedDate"`
	Parent      string       `db:"parent"`
	Hidden      bool         `db:"hidden"`
	Title       string       `db:"title"`
	Content     string       `db:"content"`
}

type propertyRow struct {
	ClassName string `db:"className"`
	ObjNumber int    `db:"objNumber"`
	PropName  string `db:"propName"`
	PropKind  string `db:"propKind"`
	PropValue string `db:"propValue"`
}

func getDocumentInTransaction(tx *sqlx.Tx, ref models.DocumentReference) (models.Document, error) {
	var doc models.Document
	if ref.Name == "" {
		return doc, ErrMissingReference
	}

	getDocumentStatement := `
    select
        d.wiki
       ,d.docSpace
       ,d.docName
       ,d.author
       ,d.creator
       ,d.createdDate
       ,d.updatedDate
       ,d.parent
       ,d.hidden
       ,d.title
       ,d.content
    from document d
    where d.wiki = ? and d.fullName = ?`
	var row documentRow
	err := tx.Unsafe().Get(&row, getDocumentStatement, ref.Wiki, ref.FullName())
	if err != nil {
		if err == sql.ErrNoRows {
			return doc, ErrNoRows
		}
		return doc, err
	}
	doc = models.Document{
		Ref:     models.SpaceDocumentReference(row.Wiki, row.DocSpace, row.DocName),
		Author:  row.Author,
		Creator: row.Creator,
		Parent:  row.Parent,
		Hidden:  row.Hidden,
		Title:   row.Title,
		Content: row.Content,
	}
	if row.CreatedDate.Valid {
		doc.CreationDate = row.CreatedDate.Time
	}
	if row.UpdatedDate.Valid {
		doc.UpdateDate = row.UpdatedDate.Time
	}

	getObjectsStatement := `
    select
        o.className
       ,o.objNumber
    from object o
    where o.wiki = ? and o.docFullName = ?
    order by o.className, o.objNumber`
	var objects []models.Object
	if err := tx.Unsafe().Select(&objects, getObjectsStatement, ref.Wiki, ref.FullName()); err != nil {
		return doc, err
	}
	for i := range objects {
		obj := models.NewObject(objects[i].ClassName, objects[i].Number)
		doc.Objects = append(doc.Objects, obj)
	}

	getPropertiesStatement := `
    select
        p.className
       ,p.objNumber
       ,p.propName
       ,p.propKind
       ,p.propValue
    from objectProperty p
    where p.wiki = ? and p.docFullName = ?`
	var props []propertyRow
	if err := tx.Unsafe().Select(&props, getPropertiesStatement, ref.Wiki, ref.FullName()); err != nil {
		return doc, err
	}
	for _, p := range props {
		obj := doc.Object(p.ClassName, p.ObjNumber)
		if obj == nil {
			continue
		}
		obj.SetField(p.PropName, decodeFieldValue(models.FieldKind(p.PropKind), p.PropValue))
	}
	return doc, nil
}
