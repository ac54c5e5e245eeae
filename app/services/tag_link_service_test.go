package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/vipani/app/models"
	"github.com/shashiranjanraj/vipani/app/services"
)

// ─── Plan (pure diff) ─────────────────────────────────────────────────────────

func link(id, productID, tagID uint) models.ProductTag {
	return models.ProductTag{ID: id, ProductID: productID, TagID: tagID}
}

func insertedTagIDs(plan services.LinkPlan) []uint {
	var ids []uint
	for _, l := range plan.ToInsert {
		ids = append(ids, l.TagID)
	}
	return ids
}

func TestPlanNoChanges(t *testing.T) {
	current := []models.ProductTag{link(1, 7, 2), link(2, 7, 3)}

	plan := services.PlanTagLinks(7, []uint{3, 2}, current)

	assert.True(t, plan.Empty(), "same set in different order should be a no-op")
}

func TestPlanEmptyToEmpty(t *testing.T) {
	plan := services.PlanTagLinks(7, nil, nil)
	assert.True(t, plan.Empty())
}

func TestPlanInsertAndRemove(t *testing.T) {
	// Product 7 currently has tags {2, 3}; target is {3, 4} with a duplicate.
	current := []models.ProductTag{link(10, 7, 2), link(11, 7, 3)}

	plan := services.PlanTagLinks(7, []uint{3, 4, 4}, current)

	assert.Equal(t, []uint{4}, insertedTagIDs(plan), "only tag 4 is new, duplicate collapses")
	assert.Equal(t, []uint{10}, plan.ToRemove, "only the link for tag 2 goes away")

	for _, l := range plan.ToInsert {
		assert.Equal(t, uint(7), l.ProductID)
		assert.Zero(t, l.ID, "new links must not carry an id")
	}
}

func TestPlanClearAll(t *testing.T) {
	current := []models.ProductTag{link(1, 7, 2), link(2, 7, 3)}

	plan := services.PlanTagLinks(7, []uint{}, current)

	assert.Empty(t, plan.ToInsert)
	assert.ElementsMatch(t, []uint{1, 2}, plan.ToRemove, "empty target clears every link")
}

func TestPlanFreshProduct(t *testing.T) {
	plan := services.PlanTagLinks(9, []uint{1, 2, 1}, nil)

	assert.ElementsMatch(t, []uint{1, 2}, insertedTagIDs(plan))
	assert.Empty(t, plan.ToRemove)
}

func TestPlanIdempotent(t *testing.T) {
	desired := []uint{3, 4}
	current := []models.ProductTag{link(10, 7, 2), link(11, 7, 3)}

	first := services.PlanTagLinks(7, desired, current)
	require.False(t, first.Empty())

	// Simulate the state after first is applied: tag 2's link is gone,
	// tag 3 keeps row 11, tag 4 got a new row.
	after := []models.ProductTag{link(11, 7, 3), link(12, 7, 4)}

	second := services.PlanTagLinks(7, desired, after)
	assert.True(t, second.Empty(), "replaying the same target must change nothing")
}

// ─── Apply / Reconcile (against the store) ────────────────────────────────────

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

func seedLinks(t *testing.T, db *gorm.DB) (product models.Product, tags []models.Tag) {
	t.Helper()

	product = models.Product{Name: "Widget", Price: 9.99, Stock: 3}
	require.NoError(t, db.Omit("Tags", "Category").Create(&product).Error)

	tags = []models.Tag{{TagName: "alpha"}, {TagName: "beta"}, {TagName: "gamma"}}
	require.NoError(t, db.Create(&tags).Error)
	return product, tags
}

func storedLinks(t *testing.T, db *gorm.DB, productID uint) []models.ProductTag {
	t.Helper()

	var links []models.ProductTag
	require.NoError(t, db.Where("product_id = ?", productID).Order("id").Find(&links).Error)
	return links
}

func TestReconcileRoundTrip(t *testing.T) {
	db := openTestDB(t)
	svc := services.NewTagLinkService(db)
	ctx := context.Background()

	product, tags := seedLinks(t, db)

	// First pass links alpha and beta.
	require.NoError(t, svc.Reconcile(ctx, product.ID, []uint{tags[0].ID, tags[1].ID}))

	links := storedLinks(t, db, product.ID)
	require.Len(t, links, 2)
	betaLinkID := links[1].ID

	// Second pass swaps alpha for gamma; beta's row must survive untouched.
	require.NoError(t, svc.Reconcile(ctx, product.ID, []uint{tags[1].ID, tags[2].ID}))

	links = storedLinks(t, db, product.ID)
	require.Len(t, links, 2)

	tagIDs := []uint{links[0].TagID, links[1].TagID}
	assert.ElementsMatch(t, []uint{tags[1].ID, tags[2].ID}, tagIDs)

	for _, l := range links {
		if l.TagID == tags[1].ID {
			assert.Equal(t, betaLinkID, l.ID, "unchanged link must keep its row id")
		}
	}
}

func TestReconcileClearsAll(t *testing.T) {
	db := openTestDB(t)
	svc := services.NewTagLinkService(db)
	ctx := context.Background()

	product, tags := seedLinks(t, db)
	require.NoError(t, svc.Reconcile(ctx, product.ID, []uint{tags[0].ID, tags[1].ID}))

	require.NoError(t, svc.Reconcile(ctx, product.ID, []uint{}))

	assert.Empty(t, storedLinks(t, db, product.ID))
}

func TestReconcileDuplicatesCollapse(t *testing.T) {
	db := openTestDB(t)
	svc := services.NewTagLinkService(db)
	ctx := context.Background()

	product, tags := seedLinks(t, db)

	desired := []uint{tags[0].ID, tags[0].ID, tags[0].ID}
	require.NoError(t, svc.Reconcile(ctx, product.ID, desired))

	links := storedLinks(t, db, product.ID)
	require.Len(t, links, 1, "duplicate tag ids must produce a single link")
	assert.Equal(t, tags[0].ID, links[0].TagID)
}

func TestApplyRollsBackWhenInsertFails(t *testing.T) {
	db := openTestDB(t)
	svc := services.NewTagLinkService(db)
	ctx := context.Background()

	product, tags := seedLinks(t, db)
	require.NoError(t, svc.Reconcile(ctx, product.ID, []uint{tags[0].ID, tags[1].ID}))

	before := storedLinks(t, db, product.ID)
	require.Len(t, before, 2)

	// Removal of the first link plus an insert whose explicit id collides
	// with the surviving link's primary key. The insert must fail and take
	// the removal down with it.
	plan := services.LinkPlan{
		ToRemove: []uint{before[0].ID},
		ToInsert: []models.ProductTag{
			{ID: before[1].ID, ProductID: product.ID, TagID: tags[2].ID},
		},
	}

	require.Error(t, svc.Apply(ctx, plan))

	after := storedLinks(t, db, product.ID)
	require.Len(t, after, 2, "failed apply must leave the link set untouched")
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.Equal(t, before[1].ID, after[1].ID)
	assert.ElementsMatch(t,
		[]uint{before[0].TagID, before[1].TagID},
		[]uint{after[0].TagID, after[1].TagID},
	)
}

func TestApplyEmptyPlanIsNoOp(t *testing.T) {
	db := openTestDB(t)
	svc := services.NewTagLinkService(db)

	require.NoError(t, svc.Apply(context.Background(), services.LinkPlan{}))
}

func TestSweeperRemovesOrphans(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	product, tags := seedLinks(t, db)
	svc := services.NewTagLinkService(db)
	require.NoError(t, svc.Reconcile(ctx, product.ID, []uint{tags[0].ID, tags[1].ID}))

	// Delete the product out from under its links.
	require.NoError(t, db.Delete(&models.Product{}, product.ID).Error)

	n, err := services.NewSweeper(db).Sweep(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	assert.Empty(t, storedLinks(t, db, product.ID))
}
