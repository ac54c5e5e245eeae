// Package services holds the catalog's domain logic. The only non-trivial
// piece is the tag-link service: it moves a product's persisted tag set to a
// caller-supplied target set with a minimal diff instead of delete-all-then-
// reinsert, so untouched links keep their row id and created_at.
package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vipani/app/models"
	"github.com/shashiranjanraj/vipani/pkg/metrics"
)

// LinkPlan is the outcome of diffing a product's current tag links against
// a desired tag-id set. ToInsert holds new join rows (id unset), ToRemove
// holds the link ids of rows whose tag is no longer wanted.
type LinkPlan struct {
	ToInsert []models.ProductTag
	ToRemove []uint
}

// Empty reports whether the plan changes nothing.
func (p LinkPlan) Empty() bool {
	return len(p.ToInsert) == 0 && len(p.ToRemove) == 0
}

// PlanTagLinks computes the minimal set of insertions and removals that
// move current to the set described by desired. It is a pure function:
// no store access, no side effects.
//
// Rules:
//   - desired is a target set; order is irrelevant and duplicates collapse,
//     so the result never holds two rows for the same (product, tag) pair.
//   - A tag present in both sets is left alone: its existing row is neither
//     removed nor recreated.
//   - An empty desired list clears every current link.
func PlanTagLinks(productID uint, desired []uint, current []models.ProductTag) LinkPlan {
	currentTags := make(map[uint]bool, len(current))
	for _, link := range current {
		currentTags[link.TagID] = true
	}

	var plan LinkPlan

	seen := make(map[uint]bool, len(desired))
	for _, tagID := range desired {
		if seen[tagID] {
			continue
		}
		seen[tagID] = true

		if currentTags[tagID] {
			continue
		}
		plan.ToInsert = append(plan.ToInsert, models.ProductTag{
			ProductID: productID,
			TagID:     tagID,
		})
	}

	for _, link := range current {
		if !seen[link.TagID] {
			plan.ToRemove = append(plan.ToRemove, link.ID)
		}
	}

	return plan
}

// TagLinkService applies link plans against the store.
//
// There is no per-product locking here: two concurrent reconciliations for
// the same product race at the store level and can duplicate inserts or
// lose removals. Callers that need stronger guarantees must serialize
// updates per product id.
type TagLinkService struct {
	db *gorm.DB
}

func NewTagLinkService(db *gorm.DB) *TagLinkService {
	return &TagLinkService{db: db}
}

// CurrentLinks returns the persisted join rows for one product.
func (s *TagLinkService) CurrentLinks(ctx context.Context, productID uint) ([]models.ProductTag, error) {
	var links []models.ProductTag
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("tag links: load for product %d: %w", productID, err)
	}
	return links, nil
}

// Apply runs the plan's removal and insertion batches in one transaction,
// so either both sides commit or neither does. Store errors propagate to
// the caller untouched apart from wrapping.
func (s *TagLinkService) Apply(ctx context.Context, plan LinkPlan) error {
	if plan.Empty() {
		return nil
	}

	defer metrics.ObserveDBQuery("reconcile", time.Now())

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(plan.ToRemove) > 0 {
			if err := tx.Where("id IN ?", plan.ToRemove).Delete(&models.ProductTag{}).Error; err != nil {
				return fmt.Errorf("remove links: %w", err)
			}
		}
		if len(plan.ToInsert) > 0 {
			if err := tx.Create(&plan.ToInsert).Error; err != nil {
				return fmt.Errorf("insert links: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("tag links: apply: %w", err)
	}

	metrics.TagLinksInserted.Add(float64(len(plan.ToInsert)))
	metrics.TagLinksRemoved.Add(float64(len(plan.ToRemove)))
	return nil
}

// Reconcile loads the product's current links, diffs them against desired,
// and applies the result. The product row itself must already exist; that
// is the calling controller's concern.
func (s *TagLinkService) Reconcile(ctx context.Context, productID uint, desired []uint) error {
	current, err := s.CurrentLinks(ctx, productID)
	if err != nil {
		return err
	}
	return s.Apply(ctx, PlanTagLinks(productID, desired, current))
}
