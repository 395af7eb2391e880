package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// FindItems runs an item query and returns the matching item locators in
// query order.
func (dao *DataAccessLayer) FindItems(q ItemQuery) ([]ItemLocator, error) {
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("Could not begin transaction", zap.Error(err))
		return nil, err
	}
	items, err := findItemsInTransaction(tx, q)
	if err != nil {
		dao.GetLogger().Error("Error in FindItems",
			zap.String("classname", q.ClassName),
			zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return items, err
}

func findItemsInTransaction(tx *sqlx.Tx, q ItemQuery) ([]ItemLocator, error) {
	items := []ItemLocator{}
	if err := tx.Unsafe().Select(&items, renderItemQuery(q)); err != nil {
		return nil, err
	}
	return items, nil
}
