package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vipani/app/models"
	"github.com/shashiranjanraj/vipani/pkg/metrics"
)

// TagRepository handles database operations for Tag.
type TagRepository struct {
	db      *gorm.DB
	cascade bool
}

// NewTagRepository wires the repository to a store handle. When cascade is
// on, deleting a tag also removes its product_tags rows.
func NewTagRepository(db *gorm.DB, cascade bool) *TagRepository {
	return &TagRepository{db: db, cascade: cascade}
}

// All returns every tag with the requested associations attached.
func (r *TagRepository) All(ctx context.Context, includes ...Include) ([]models.Tag, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var tags []models.Tag
	err := withIncludes(r.db.WithContext(ctx), includes).Find(&tags).Error
	return tags, err
}

// Find looks up one tag by primary key.
// Returns gorm.ErrRecordNotFound when the id does not exist.
func (r *TagRepository) Find(ctx context.Context, id uint, includes ...Include) (models.Tag, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var tag models.Tag
	err := withIncludes(r.db.WithContext(ctx), includes).First(&tag, id).Error
	return tag, err
}

// Create persists a new tag row.
func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.WithContext(ctx).Create(tag).Error
}

// Update replaces the tag's name and reports the affected-row count.
// Returns gorm.ErrRecordNotFound when the id does not exist.
func (r *TagRepository) Update(ctx context.Context, id uint, tagName string) (int64, error) {
	defer metrics.ObserveDBQuery("update", time.Now())

	res := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Where("id = ?", id).
		Update("tag_name", tagName)
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

// Delete removes the tag row. With cascade on, links referencing it go in
// the same transaction.
func (r *TagRepository) Delete(ctx context.Context, id uint) (int64, error) {
	defer metrics.ObserveDBQuery("delete", time.Now())

	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.cascade {
			if err := tx.Where("tag_id = ?", id).Delete(&models.ProductTag{}).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&models.Tag{}, id)
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

func (r *TagRepository) absent(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Where("id = ?", id).
		Count(&n).Error
	return n == 0, err
}
