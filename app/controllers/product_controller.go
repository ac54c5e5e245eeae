package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vipani/app/models"
	"github.com/shashiranjanraj/vipani/app/repositories"
	"github.com/shashiranjanraj/vipani/app/services"
	"github.com/shashiranjanraj/vipani/pkg/bind"
	"github.com/shashiranjanraj/vipani/pkg/cache"
	"github.com/shashiranjanraj/vipani/pkg/logger"
	"github.com/shashiranjanraj/vipani/pkg/response"
)

// ProductInput is the create/update payload for a product. PUT carries the
// same shape as POST: the scalar fields replace the stored row and tagIds
// is the complete target tag set. A missing tagIds key is a validation
// failure; an empty array deliberately clears every tag.
type ProductInput struct {
	Name       string  `json:"name" validate:"required,min=1,max=255"`
	Price      float64 `json:"price" validate:"gte=0"`
	Stock      int     `json:"stock" validate:"gte=0"`
	CategoryID *uint   `json:"category_id"`
	TagIDs     *[]uint `json:"tagIds" validate:"required"`
}

type ProductController struct {
	repo  *repositories.ProductRepository
	links *services.TagLinkService
	cache *cache.Cache
}

func NewProductController(repo *repositories.ProductRepository, links *services.TagLinkService, cc *cache.Cache) *ProductController {
	return &ProductController{repo: repo, links: links, cache: cc}
}

// Index lists all products with their category and tags.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var products []models.Product
	if c.cache.Get(ctx, productsListKey, &products) {
		response.Success(w, products)
		return
	}

	products, err := c.repo.All(ctx, repositories.IncludeCategory, repositories.IncludeTags)
	if err != nil {
		response.StoreError(w, err)
		return
	}

	_ = c.cache.Set(ctx, productsListKey, products)
	response.Success(w, products)
}

// Show returns one product with its category and tags.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "No product found with that id")
		return
	}

	product, err := c.repo.Find(r.Context(), id, repositories.IncludeCategory, repositories.IncludeTags)
	if err != nil {
		if isNotFound(err) {
			response.NotFound(w, "No product found with that id")
			return
		}
		response.StoreError(w, err)
		return
	}

	response.Success(w, product)
}

// Store creates a product and links its tags. The new product has no
// existing links, so the plan is pure insertion; duplicates in the payload
// collapse to one link per tag. The response is the created row without a
// reload of its associations.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var input ProductInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	ctx := r.Context()
	product := models.Product{
		Name:       input.Name,
		Price:      input.Price,
		Stock:      input.Stock,
		CategoryID: input.CategoryID,
	}
	if err := c.repo.Create(ctx, &product); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if len(*input.TagIDs) > 0 {
		plan := services.PlanTagLinks(product.ID, *input.TagIDs, nil)
		if err := c.links.Apply(ctx, plan); err != nil {
			response.BadRequest(w, err.Error())
			return
		}
	}

	invalidateLists(ctx, c.cache)
	logger.WithCtx(ctx).Info("product created",
		"product_id", product.ID, "tags", len(*input.TagIDs))
	response.Created(w, product)
}

// Update replaces the product's scalar fields and reconciles its tag links
// against the payload's tagIds. The response is the update count, not the
// reconciled associations; clients re-read for the full projection.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "No product found with that id")
		return
	}

	var input ProductInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	ctx := r.Context()
	count, err := c.repo.Update(ctx, id, repositories.ProductFields{
		Name:        &input.Name,
		Price:       &input.Price,
		Stock:       &input.Stock,
		CategoryID:  input.CategoryID,
		SetCategory: true,
	})
	if err != nil {
		if isNotFound(err) {
			response.NotFound(w, "No product found with that id")
			return
		}
		response.BadRequest(w, err.Error())
		return
	}

	if err := c.links.Reconcile(ctx, id, *input.TagIDs); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	invalidateLists(ctx, c.cache)
	logger.WithCtx(ctx).Info("product updated",
		"product_id", id, "tags", len(*input.TagIDs))
	response.Count(w, "updated", count)
}

// Destroy deletes a product and returns the deletion count. Its tag links
// are only removed when cascade deletes are on; otherwise the sweeper
// prunes them later.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "No product found with that id")
		return
	}

	count, err := c.repo.Delete(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			response.NotFound(w, "No product found with that id")
			return
		}
		response.StoreError(w, err)
		return
	}

	invalidateLists(r.Context(), c.cache)
	logger.WithCtx(r.Context()).Info("product deleted", "product_id", id)
	response.Count(w, "deleted", count)
}
