package dao

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/xwiki-contrib/api-structured-data/metadata/models"
)

// GetClass retrieves a class definition with its property definitions in
// declaration order. A class with no stored definition yields ErrNoRows.
func (dao *DataAccessLayer) GetClass(ref models.DocumentReference) (models.Class, error) {
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("Could not begin transaction", zap.Error(err))
		return models.Class{}, err
	}
	class, err := getClassInTransaction(tx, ref)
	if err != nil {
		if err != ErrNoRows {
			dao.GetLogger().Error("Error in GetClass", zap.Error(err))
		}
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return class, err
}

func getClassInTransaction(tx *sqlx.Tx, ref models.DocumentReference) (models.Class, error) {
	var class models.Class
	if ref.Name == "" {
		return class, ErrMissingReference
	}

	getClassStatement := `select c.fullName from class c where c.wiki = ? and c.fullName = ?`
	var fullName string
	err := tx.Get(&fullName, getClassStatement, ref.Wiki, ref.FullName())
	if err != nil {
		if err == sql.ErrNoRows {
			return class, ErrNoRows
		}
		return class, err
	}
	class.Reference = ref

	getPropertiesStatement := `
    select
        p.propName
       ,p.propKind
       ,p.listValues
       ,p.listQuery
       ,p.disabled
    from classProperty p
    where p.wiki = ? and p.classFullName = ?
    order by p.sortOrder`
	if err := tx.Unsafe().Select(&class.Properties, getPropertiesStatement, ref.Wiki, ref.FullName()); err != nil {
		return class, err
	}
	return class, nil
}
