package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vipani/app/models"
	"github.com/shashiranjanraj/vipani/pkg/logger"
	"github.com/shashiranjanraj/vipani/pkg/metrics"
)

// Sweeper prunes product_tags rows whose product or tag no longer exists.
// Deleting a product or tag with cascade off leaves such rows behind; the
// sweeper is the cleanup path that keeps the join table free of dangling
// references without changing request-path semantics.
type Sweeper struct {
	db *gorm.DB
}

func NewSweeper(db *gorm.DB) *Sweeper {
	return &Sweeper{db: db}
}

// Sweep deletes every orphaned join row and returns how many went.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBQuery("delete", time.Now())

	products := s.db.Model(&models.Product{}).Select("id")
	tags := s.db.Model(&models.Tag{}).Select("id")

	res := s.db.WithContext(ctx).
		Where("product_id NOT IN (?) OR tag_id NOT IN (?)", products, tags).
		Delete(&models.ProductTag{})
	if res.Error != nil {
		return 0, fmt.Errorf("sweeper: prune orphan links: %w", res.Error)
	}

	if res.RowsAffected > 0 {
		metrics.OrphanLinksSwept.Add(float64(res.RowsAffected))
		logger.Info("orphan tag links swept", "count", res.RowsAffected)
	}
	return res.RowsAffected, nil
}
