package applications

import (
	"errors"

	"go.uber.org/zap"

	"github.com/xwiki-contrib/api-structured-data/auth"
	"github.com/xwiki-contrib/api-structured-data/dao"
	"github.com/xwiki-contrib/api-structured-data/metadata/models"
	"github.com/xwiki-contrib/api-structured-data/protocol"
)

// ErrApplicationNotFound indicates the application identifier matched
// neither an application descriptor nor a class definition.
var ErrApplicationNotFound = errors.New("applications: application not found")

// Services bundles the dependencies an application operates with.
type Services struct {
	DAO    dao.DAO
	Auth   auth.Authorization
	Logger *zap.Logger
}

func (s Services) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Application is one resolved structured-data application: a typed record
// set a caller can describe, list, read and write through generic item
// records. Access control is enforced on every operation against the acting
// user of the request context the application was resolved for.
type Application interface {
	// Name returns the identifier the application was resolved from.
	Name() string
	// ClassReference locates the class definition backing the application.
	ClassReference() models.DocumentReference
	// GetSchema describes the application's fields. A user without view
	// access on the class gets an empty schema.
	GetSchema() (protocol.Schema, error)
	// GetItems lists item records according to the given options, keyed by
	// item identifier in listing order.
	GetItems(opts protocol.ItemQueryOptions) (*protocol.ItemResultset, error)
	// GetItem reads one item record by identifier. A missing item or one
	// the user cannot view yields an empty record.
	GetItem(id string) (*protocol.ItemRecord, error)
	// StoreItem creates or updates an item from a record. The outcome is
	// reported in the returned operation result.
	StoreItem(id string, record *protocol.ItemRecord) protocol.OperationResult
	// DeleteItem removes one item. The outcome is reported in the returned
	// operation result.
	DeleteItem(id string) protocol.OperationResult
}

// application is the single implementation behind both flavors of
// applications. A class-backed application spans the whole wiki and uses
// full document names as item identifiers; an AppWithinMinutes application
// is scoped to its data space and uses space-local document names.
type application struct {
	svcs      Services
	rc        models.RequestContext
	name      string
	class     models.Class
	dataSpace string
}

func (app *application) Name() string {
	return app.name
}

func (app *application) ClassReference() models.DocumentReference {
	return app.class.Reference
}

// itemReference resolves a parsed item identifier to the hosting document.
func (app *application) itemReference(id protocol.ItemID) models.DocumentReference {
	if app.dataSpace != "" {
		return models.SpaceDocumentReference(app.rc.Wiki, app.dataSpace, id.DocumentName)
	}
	return models.ParseDocumentReference(id.DocumentName, app.rc.Wiki)
}

// itemID serializes the identifier of an item hosted by the named document.
func (app *application) itemID(documentName string, number int) string {
	name := documentName
	if app.dataSpace != "" {
		name = trimSpacePrefix(documentName, app.dataSpace)
	}
	return protocol.ItemID{DocumentName: name, Number: number}.String()
}

func trimSpacePrefix(fullName string, space string) string {
	prefix := space + "."
	if len(fullName) > len(prefix) && fullName[:len(prefix)] == prefix {
		return fullName[len(prefix):]
	}
	return fullName
}

// excludedTemplateNames lists the full names of the class template documents
// a listing never returns.
func (app *application) excludedTemplateNames() []string {
	space := app.class.Reference.Space
	if app.dataSpace != "" {
		space = app.dataSpace
	}
	var names []string
	for _, name := range models.TemplateNames(app.class.Reference.Name) {
		names = append(names, space+"."+name)
	}
	return names
}
