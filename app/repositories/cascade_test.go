package repositories_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/vipani/app/models"
	"github.com/shashiranjanraj/vipani/app/repositories"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.SetupJoinTable(db))
	require.NoError(t, db.AutoMigrate(
		&models.Category{}, &models.Tag{}, &models.Product{}, &models.ProductTag{},
	))
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.Category, models.Product, models.Tag) {
	t.Helper()

	category := models.Category{Name: "Electronics"}
	require.NoError(t, db.Create(&category).Error)

	product := models.Product{Name: "Widget", Price: 5, Stock: 1, CategoryID: &category.ID}
	require.NoError(t, db.Omit("Tags", "Category").Create(&product).Error)

	tag := models.Tag{TagName: "sale"}
	require.NoError(t, db.Create(&tag).Error)

	link := models.ProductTag{ProductID: product.ID, TagID: tag.ID}
	require.NoError(t, db.Create(&link).Error)

	return category, product, tag
}

func countLinks(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&models.ProductTag{}).Count(&n).Error)
	return n
}

func TestProductDeleteCascadeRemovesLinks(t *testing.T) {
	db := openTestDB(t)
	_, product, _ := seedCatalog(t, db)

	repo := repositories.NewProductRepository(db, true)
	count, err := repo.Delete(context.Background(), product.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	assert.EqualValues(t, 0, countLinks(t, db))
}

func TestProductDeleteWithoutCascadeKeepsLinks(t *testing.T) {
	db := openTestDB(t)
	_, product, _ := seedCatalog(t, db)

	repo := repositories.NewProductRepository(db, false)
	_, err := repo.Delete(context.Background(), product.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, countLinks(t, db), "links stay behind for the sweeper")
}

func TestTagDeleteCascadeRemovesLinks(t *testing.T) {
	db := openTestDB(t)
	_, _, tag := seedCatalog(t, db)

	repo := repositories.NewTagRepository(db, true)
	count, err := repo.Delete(context.Background(), tag.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	assert.EqualValues(t, 0, countLinks(t, db))
}

func TestCategoryDeleteCascadeDetachesProducts(t *testing.T) {
	db := openTestDB(t)
	category, product, _ := seedCatalog(t, db)

	repo := repositories.NewCategoryRepository(db, true)
	_, err := repo.Delete(context.Background(), category.ID)
	require.NoError(t, err)

	var fetched models.Product
	require.NoError(t, db.First(&fetched, product.ID).Error)
	assert.Nil(t, fetched.CategoryID, "products survive with category_id nulled")
}

func TestDeleteMissingRowIsNotFound(t *testing.T) {
	db := openTestDB(t)

	repo := repositories.NewProductRepository(db, false)
	_, err := repo.Delete(context.Background(), 999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUpdateMissingRowIsNotFound(t *testing.T) {
	db := openTestDB(t)

	name := "Ghost"
	repo := repositories.NewProductRepository(db, false)
	_, err := repo.Update(context.Background(), 999, repositories.ProductFields{Name: &name})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUpdateDetachesCategory(t *testing.T) {
	db := openTestDB(t)
	_, product, _ := seedCatalog(t, db)

	repo := repositories.NewProductRepository(db, false)
	count, err := repo.Update(context.Background(), product.ID, repositories.ProductFields{
		CategoryID:  nil,
		SetCategory: true,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	var fetched models.Product
	require.NoError(t, db.First(&fetched, product.ID).Error)
	assert.Nil(t, fetched.CategoryID)
}
