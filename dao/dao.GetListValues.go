package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/xwiki-contrib/api-structured-data/metadata/models"
)

// GetListValues resolves the possible values of a database list property.
// When the property carries its own list query that query is executed as-is;
// otherwise the distinct values already stored for the property across the
// class instances are returned.
func (dao *DataAccessLayer) GetListValues(wiki string, classFullName string, property models.PropertyDefinition) ([]string, error) {
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("Could not begin transaction", zap.Error(err))
		return nil, err
	}
	values, err := getListValuesInTransaction(tx, wiki, classFullName, property)
	if err != nil {
		dao.GetLogger().Error("Error in GetListValues",
			zap.String("classname", classFullName),
			zap.String("property", property.Name),
			zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return values, err
}

func getListValuesInTransaction(tx *sqlx.Tx, wiki string, classFullName string, property models.PropertyDefinition) ([]string, error) {
	values := []string{}
	if property.ListQuery != "" {
		if err := tx.Select(&values, property.ListQuery); err != nil {
			return nil, err
		}
		return values, nil
	}
	getStoredValuesStatement := `
    select distinct p.propValue
    from objectProperty p
    where p.wiki = ? and p.className = ? and p.propName = ? and p.propValue <> ''
    order by p.propValue`
	if err := tx.Select(&values, getStoredValuesStatement, wiki, classFullName, property.Name); err != nil {
		return nil, err
	}
	return values, nil
}
