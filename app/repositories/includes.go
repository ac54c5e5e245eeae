// Package repositories is the catalog's entity store adapter: per-entity
// CRUD over GORM with explicit association projections. Callers say which
// related entities to attach on reads instead of relying on implicit
// relation loading.
package repositories

import "gorm.io/gorm"

// Include names an association to eager-load on a read.
type Include string

const (
	IncludeProducts Include = "Products"
	IncludeCategory Include = "Category"
	IncludeTags     Include = "Tags"
)

func withIncludes(db *gorm.DB, includes []Include) *gorm.DB {
	for _, inc := range includes {
		db = db.Preload(string(inc))
	}
	return db
}
