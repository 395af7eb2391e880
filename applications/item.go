package applications

import (
	"go.uber.org/zap"

	"github.com/xwiki-contrib/api-structured-data/auth"
	"github.com/xwiki-contrib/api-structured-data/dao"
	"github.com/xwiki-contrib/api-structured-data/mapping"
	"github.com/xwiki-contrib/api-structured-data/metadata/models"
	"github.com/xwiki-contrib/api-structured-data/protocol"
)

// storeComment is recorded as the revision comment when an item is written.
const storeComment = "Properties updated"

// GetItem reads one item record. A missing item, a missing instance, or a
// denied view check all yield an empty record rather than an error; only a
// store failure is reported as one.
func (app *application) GetItem(id string) (*protocol.ItemRecord, error) {
	itemID := protocol.ParseItemID(id)
	ref := app.itemReference(itemID)
	if !app.svcs.Auth.HasAccess(app.rc.User, auth.RightView, ref) {
		return protocol.NewItemRecord(), nil
	}
	doc, err := app.svcs.DAO.GetDocument(ref)
	if err != nil {
		if err == dao.ErrNoRows {
			return protocol.NewItemRecord(), nil
		}
		return nil, err
	}
	obj := doc.Object(app.class.FullName(), itemID.Number)
	if obj == nil {
		return protocol.NewItemRecord(), nil
	}
	return mapping.MapObjectToItem(app.class, doc, obj, itemID.String(), nil), nil
}

// StoreItem creates or updates one item from a record. The hosting document
// and the class instance are created when absent. The acting user becomes
// the author of the change, and the creator of a new document; an explicit
// document metadata patch on the record overrides both. Incoming field
// values are coerced to their declared kinds.
func (app *application) StoreItem(id string, record *protocol.ItemRecord) protocol.OperationResult {
	itemID := protocol.ParseItemID(id)
	ref := app.itemReference(itemID)
	if err := app.svcs.Auth.CheckAccess(app.rc.User, auth.RightEdit, ref); err != nil {
		return protocol.ErrorResult(err)
	}
	doc, err := app.svcs.DAO.GetDocument(ref)
	if err == dao.ErrNoRows {
		doc = *models.NewDocument(ref)
	} else if err != nil {
		return protocol.ErrorResult(err)
	}
	obj := doc.Object(app.class.FullName(), itemID.Number)
	if obj == nil {
		obj = doc.NewObject(app.class.FullName(), itemID.Number)
	}
	mapping.OverwriteObjectWithItem(app.class, obj, record)
	if doc.IsNew {
		doc.Creator = app.rc.User
	}
	doc.Author = app.rc.User
	app.applyMetadataPatch(&doc, record.DocumentFields)
	if err := app.svcs.DAO.SaveDocument(&doc, storeComment); err != nil {
		app.svcs.logger().Error("Could not store item",
			zap.String("id", id),
			zap.Error(err))
		return protocol.ErrorResult(err)
	}
	return protocol.SuccessResult()
}

// DeleteItem removes one class instance from its hosting document. The
// document itself is kept.
func (app *application) DeleteItem(id string) protocol.OperationResult {
	itemID := protocol.ParseItemID(id)
	ref := app.itemReference(itemID)
	if err := app.svcs.Auth.CheckAccess(app.rc.User, auth.RightEdit, ref); err != nil {
		return protocol.ErrorResult(err)
	}
	doc, err := app.svcs.DAO.GetDocument(ref)
	if err != nil {
		return protocol.ErrorResult(err)
	}
	obj := doc.Object(app.class.FullName(), itemID.Number)
	if obj == nil {
		return protocol.ErrorResult(dao.ErrNoRows)
	}
	doc.RemoveObject(obj)
	doc.Author = app.rc.User
	if err := app.svcs.DAO.SaveDocument(&doc, ""); err != nil {
		app.svcs.logger().Error("Could not delete item",
			zap.String("id", id),
			zap.Error(err))
		return protocol.ErrorResult(err)
	}
	return protocol.SuccessResult()
}

// applyMetadataPatch writes the explicitly assigned metadata fields of a
// record onto the hosting document and empties the change set.
func (app *application) applyMetadataPatch(doc *models.Document, meta *protocol.DocumentMetadata) {
	if meta == nil {
		return
	}
	if meta.Changed(protocol.MetaAuthor) {
		doc.Author = meta.Author
	}
	if meta.Changed(protocol.MetaCreator) {
		doc.Creator = meta.Creator
	}
	if meta.Changed(protocol.MetaCreation) {
		doc.CreationDate = meta.CreationDate
	}
	if meta.Changed(protocol.MetaUpdate) {
		doc.UpdateDate = meta.UpdateDate
		doc.PreserveUpdateDate = true
	}
	if meta.Changed(protocol.MetaParent) {
		doc.Parent = meta.Parent
	}
	if meta.Changed(protocol.MetaHidden) {
		doc.Hidden = meta.Hidden
	}
	if meta.Changed(protocol.MetaTitle) {
		doc.Title = meta.Title
	}
	if meta.Changed(protocol.MetaContent) {
		doc.Content = meta.Content
	}
	meta.ClearChanges()
}
