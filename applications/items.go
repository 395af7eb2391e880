package applications

import (
	"go.uber.org/zap"

	"github.com/xwiki-contrib/api-structured-data/auth"
	"github.com/xwiki-contrib/api-structured-data/dao"
	"github.com/xwiki-contrib/api-structured-data/mapping"
	"github.com/xwiki-contrib/api-structured-data/metadata/models"
	"github.com/xwiki-contrib/api-structured-data/protocol"
)

// GetItems lists the application's item records. The query excludes the
// class templates and, unless asked otherwise, hidden documents. Items the
// acting user cannot view are left out, and an item whose document fails to
// load is logged and skipped rather than failing the whole listing.
func (app *application) GetItems(opts protocol.ItemQueryOptions) (*protocol.ItemResultset, error) {
	q := dao.NewItemQuery(app.rc.Wiki, app.class.FullName(), app.dataSpace)
	q.ExcludedNames = app.excludedTemplateNames()
	q = q.WithOptions(app.rc, opts)
	locators, err := app.svcs.DAO.FindItems(q)
	if err != nil {
		return nil, err
	}
	records := protocol.NewItemResultset()
	for _, locator := range locators {
		ref := models.ParseDocumentReference(locator.DocumentName, app.rc.Wiki)
		if !app.svcs.Auth.HasAccess(app.rc.User, auth.RightView, ref) {
			app.svcs.logger().Debug("Item not viewable, skipped",
				zap.String("document", locator.DocumentName),
				zap.String("user", app.rc.User))
			continue
		}
		doc, err := app.svcs.DAO.GetDocument(ref)
		if err != nil {
			app.svcs.logger().Error("Could not load item document",
				zap.String("document", locator.DocumentName),
				zap.Int("number", locator.Number),
				zap.Error(err))
			continue
		}
		obj := doc.Object(app.class.FullName(), locator.Number)
		if obj == nil {
			app.svcs.logger().Error("Item object missing from document",
				zap.String("document", locator.DocumentName),
				zap.Int("number", locator.Number))
			continue
		}
		id := app.itemID(locator.DocumentName, locator.Number)
		records.Add(mapping.MapObjectToItem(app.class, doc, obj, id, opts.Properties))
	}
	return records, nil
}
