package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vipani/app/models"
	"github.com/shashiranjanraj/vipani/pkg/metrics"
)

// ProductFields are the scalar columns a product update may touch. Pointers
// distinguish "leave unchanged" from "set to zero value".
type ProductFields struct {
	Name       *string
	Price      *float64
	Stock      *int
	CategoryID *uint
	// SetCategory marks CategoryID as provided even when it is nil, so a
	// product can be detached from its category.
	SetCategory bool
}

// ProductRepository handles database operations for Product.
// Tag links are not touched here; that is the tag-link service's job.
type ProductRepository struct {
	db      *gorm.DB
	cascade bool
}

// NewProductRepository wires the repository to a store handle. When cascade
// is on, deleting a product also removes its product_tags rows; otherwise
// they are left for the sweeper.
func NewProductRepository(db *gorm.DB, cascade bool) *ProductRepository {
	return &ProductRepository{db: db, cascade: cascade}
}

// All returns every product with the requested associations attached.
func (r *ProductRepository) All(ctx context.Context, includes ...Include) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var products []models.Product
	err := withIncludes(r.db.WithContext(ctx), includes).Find(&products).Error
	return products, err
}

// Find looks up one product by primary key.
// Returns gorm.ErrRecordNotFound when the id does not exist.
func (r *ProductRepository) Find(ctx context.Context, id uint, includes ...Include) (models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var product models.Product
	err := withIncludes(r.db.WithContext(ctx), includes).First(&product, id).Error
	return product, err
}

// Create persists a new product row. Associations on the struct are not
// written; Tags must go through the tag-link service.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.WithContext(ctx).Omit("Tags", "Category").Create(product).Error
}

// Update writes the provided scalar fields and reports the affected-row
// count. Returns gorm.ErrRecordNotFound when the id does not exist.
func (r *ProductRepository) Update(ctx context.Context, id uint, fields ProductFields) (int64, error) {
	defer metrics.ObserveDBQuery("update", time.Now())

	changes := map[string]interface{}{}
	if fields.Name != nil {
		changes["name"] = *fields.Name
	}
	if fields.Price != nil {
		changes["price"] = *fields.Price
	}
	if fields.Stock != nil {
		changes["stock"] = *fields.Stock
	}
	if fields.SetCategory {
		changes["category_id"] = fields.CategoryID
	}

	if len(changes) == 0 {
		if missing, err := r.absent(ctx, id); err != nil {
			return 0, err
		} else if missing {
			return 0, gorm.ErrRecordNotFound
		}
		return 0, nil
	}

	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(changes)
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

// Delete removes the product row. With cascade on, its tag links go in the
// same transaction; otherwise they are left behind for the sweeper.
func (r *ProductRepository) Delete(ctx context.Context, id uint) (int64, error) {
	defer metrics.ObserveDBQuery("delete", time.Now())

	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.cascade {
			if err := tx.Where("product_id = ?", id).Delete(&models.ProductTag{}).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&models.Product{}, id)
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

func (r *ProductRepository) absent(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Count(&n).Error
	return n == 0, err
}
