package mysql

import "gorm.io/gorm"

// Shared gorm scopes for keyset pagination. Every listing orders by id
// descending and fetches limit+1 rows; the extra row is the has-more probe
// trimmed by domain.BuildPage.

func scopeCursor(cursor int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if cursor > 0 {
			return db.Where("id < ?", cursor)
		}
		return db
	}
}

func scopeExclude(column string, ids []int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(ids) > 0 {
			return db.Where(column+" NOT IN ?", ids)
		}
		return db
	}
}

func scopeKeyset(cursor, limit int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Scopes(scopeCursor(cursor)).
			Order("id DESC").
			Limit(int(limit + 1))
	}
}
