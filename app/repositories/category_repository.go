package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vipani/app/models"
	"github.com/shashiranjanraj/vipani/pkg/metrics"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	db      *gorm.DB
	cascade bool
}

// NewCategoryRepository wires the repository to a store handle. When
// cascade is on, deleting a category also nulls out the category_id of its
// products; otherwise dependent products keep a dangling reference.
func NewCategoryRepository(db *gorm.DB, cascade bool) *CategoryRepository {
	return &CategoryRepository{db: db, cascade: cascade}
}

// All returns every category with the requested associations attached.
func (r *CategoryRepository) All(ctx context.Context, includes ...Include) ([]models.Category, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var categories []models.Category
	err := withIncludes(r.db.WithContext(ctx), includes).Find(&categories).Error
	return categories, err
}

// Find looks up one category by primary key.
// Returns gorm.ErrRecordNotFound when the id does not exist.
func (r *CategoryRepository) Find(ctx context.Context, id uint, includes ...Include) (models.Category, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var category models.Category
	err := withIncludes(r.db.WithContext(ctx), includes).First(&category, id).Error
	return category, err
}

// Create persists a new category row.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.WithContext(ctx).Create(category).Error
}

// Update replaces the category's scalar fields and reports the affected-row
// count. Returns gorm.ErrRecordNotFound when the id does not exist.
func (r *CategoryRepository) Update(ctx context.Context, id uint, name string) (int64, error) {
	defer metrics.ObserveDBQuery("update", time.Now())

	res := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Update("name", name)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		if missing, err := r.absent(ctx, id); err != nil {
			return 0, err
		} else if missing {
			return 0, gorm.ErrRecordNotFound
		}
	}
	return res.RowsAffected, nil
}

// Delete removes the category row. With cascade on, dependent products are
// detached in the same transaction.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) (int64, error) {
	defer metrics.ObserveDBQuery("delete", time.Now())

	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.cascade {
			err := tx.Model(&models.Product{}).
				Where("category_id = ?", id).
				Update("category_id", nil).Error
			if err != nil {
				return err
			}
		}

		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}

func (r *CategoryRepository) absent(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Count(&n).Error
	return n == 0, err
}
