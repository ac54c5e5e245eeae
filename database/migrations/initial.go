package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/vipani/app/models"
	"github.com/shashiranjanraj/vipani/pkg/migration"
)

func init() {
	migration.Register("20260815000000_create_categories_table", &CreateCategoriesTable{})
	migration.Register("20260815000001_create_tags_table", &CreateTagsTable{})
	migration.Register("20260815000002_create_products_table", &CreateProductsTable{})
	migration.Register("20260815000003_create_product_tags_table", &CreateProductTagsTable{})
}

// -------- 0001: categories --------

type CreateCategoriesTable struct{}

func (m *CreateCategoriesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{})
}

func (m *CreateCategoriesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("categories")
}

// -------- 0002: tags --------

type CreateTagsTable struct{}

func (m *CreateTagsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Tag{})
}

func (m *CreateTagsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("tags")
}

// -------- 0003: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0004: product_tags --------

// ProductTag is registered as a custom join table, so migrating the
// model directly gives it its own id and created_at columns.

type CreateProductTagsTable struct{}

func (m *CreateProductTagsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.ProductTag{})
}

func (m *CreateProductTagsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("product_tags")
}
