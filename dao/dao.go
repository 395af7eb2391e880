package dao

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/xwiki-contrib/api-structured-data/metadata/models"
)

// SchemaVersion marks compatibility with previously created databases.
var SchemaVersion = "20170612"

// Common errors returned by DAO implementations.
var (
	// ErrNoRows indicates the requested document or class does not exist.
	ErrNoRows = errors.New("dao: sql: no rows in result set")
	// ErrMissingReference indicates a call without a usable reference.
	ErrMissingReference = errors.New("dao: object reference not specified")
)

// ItemLocator identifies one matched item of a listing query: the full name
// of its hosting document and the instance occurrence number.
type ItemLocator struct {
	// DocumentName is the wiki-local full name of the hosting document.
	DocumentName string `db:"docFullName"`
	// Number is the instance occurrence number within the document.
	Number int `db:"objNumber"`
}

// DAO defines the contract our app has with the backing store: document and
// class retrieval, document persistence, and the declarative listing query.
type DAO interface {
	GetDocument(ref models.DocumentReference) (models.Document, error)
	SaveDocument(doc *models.Document, comment string) error
	GetClass(ref models.DocumentReference) (models.Class, error)
	GetClassNames(wiki string) ([]string, error)
	GetListValues(wiki string, classFullName string, property models.PropertyDefinition) ([]string, error)
	FindItems(q ItemQuery) ([]ItemLocator, error)
	GetLogger() *zap.Logger
}

// DataAccessLayer is a concrete DAO implementation with a true DB connection.
type DataAccessLayer struct {
	// MetadataDB is the connection.
	MetadataDB *sqlx.DB
	// Logger has a default, but can be updated by passing options to constructor.
	Logger *zap.Logger
}

// Opt sets an option on DataAccessLayer.
type Opt func(*DataAccessLayer)

// WithLogger sets a custom logger on a DataAccessLayer.
func WithLogger(logger *zap.Logger) Opt {
	return func(d *DataAccessLayer) {
		d.Logger = logger
	}
}

// NewDataAccessLayer constructs a DataAccessLayer with the given database
// connection and options.
func NewDataAccessLayer(db *sqlx.DB, opts ...Opt) *DataAccessLayer {
	d := DataAccessLayer{MetadataDB: db, Logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&d)
	}
	return &d
}

// GetLogger is a logger for the DAO.
func (dao *DataAccessLayer) GetLogger() *zap.Logger {
	return dao.Logger
}
