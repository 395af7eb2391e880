package dao

import (
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/xwiki-contrib/api-structured-data/metadata/models"
)

// SaveDocument persists a document, its class instances, and their property
// values, replacing whatever was previously stored under the same reference.
// The comment is recorded as the revision comment of the save.
func (dao *DataAccessLayer) SaveDocument(doc *models.Document, comment string) error {
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("Could not begin transaction", zap.Error(err))
		return err
	}
	err = saveDocumentInTransaction(tx, doc, comment)
	if err != nil {
		dao.GetLogger().Error("Error in SaveDocument", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
		doc.IsNew = false
	}
	return err
}

func saveDocumentInTransaction(tx *sqlx.Tx, doc *models.Document, comment string) error {
	if doc == nil {
		return ErrMissingReference
	}
	if doc.Ref.Name == "" {
		return ErrMissingReference
	}
	fullName := doc.Ref.FullName()
	now := time.Now().UTC()
	if doc.IsNew && doc.CreationDate.IsZero() {
		doc.CreationDate = now
	}
	if !doc.PreserveUpdateDate || doc.UpdateDate.IsZero() {
		doc.UpdateDate = now
	}
	doc.PreserveUpdateDate = false

	deleteDocumentStatement := `delete from document where wiki = ? and fullName = ?`
	if _, err := tx.Exec(deleteDocumentStatement, doc.Ref.Wiki, fullName); err != nil {
		return err
	}
	deleteObjectsStatement := `delete from object where wiki = ? and docFullName = ?`
	if _, err := tx.Exec(deleteObjectsStatement, doc.Ref.Wiki, fullName); err != nil {
		return err
	}
	deletePropertiesStatement := `delete from objectProperty where wiki = ? and docFullName = ?`
	if _, err := tx.Exec(deletePropertiesStatement, doc.Ref.Wiki, fullName); err != nil {
		return err
	}

	insertDocumentStatement := `
    insert into document
        (wiki, docSpace, docName, fullName, author, creator, createdDate,
         updatedDate, parent, hidden, title, content, revisionComment)
    values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.Exec(insertDocumentStatement,
		doc.Ref.Wiki, doc.Ref.Space, doc.Ref.Name, fullName,
		doc.Author, doc.Creator, doc.CreationDate, doc.UpdateDate,
		doc.Parent, doc.Hidden, doc.Title, doc.Content, comment)
	if err != nil {
		return err
	}

	insertObjectStatement := `
    insert into object (wiki, docFullName, className, objNumber)
    values (?, ?, ?, ?)`
	insertPropertyStatement := `
    insert into objectProperty
        (wiki, docFullName, className, objNumber, propName, propKind, propValue)
    values (?, ?, ?, ?, ?, ?, ?)`
	for _, obj := range doc.Objects {
		if _, err := tx.Exec(insertObjectStatement, doc.Ref.Wiki, fullName, obj.ClassName, obj.Number); err != nil {
			return err
		}
		for name, value := range obj.Fields {
			_, err := tx.Exec(insertPropertyStatement,
				doc.Ref.Wiki, fullName, obj.ClassName, obj.Number,
				name, string(value.Kind), encodeFieldValue(value))
			if err != nil {
				return err
			}
		}
	}
	return nil
}
