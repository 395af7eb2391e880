package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// GetClassNames lists the full names of all classes defined in a wiki,
// sorted alphabetically.
func (dao *DataAccessLayer) GetClassNames(wiki string) ([]string, error) {
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("Could not begin transaction", zap.Error(err))
		return nil, err
	}
	names, err := getClassNamesInTransaction(tx, wiki)
	if err != nil {
		dao.GetLogger().Error("Error in GetClassNames", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return names, err
}

func getClassNamesInTransaction(tx *sqlx.Tx, wiki string) ([]string, error) {
	getClassNamesStatement := `select c.fullName from class c where c.wiki = ? order by c.fullName`
	names := []string{}
	if err := tx.Select(&names, getClassNamesStatement, wiki); err != nil {
		return nil, err
	}
	return names, nil
}
