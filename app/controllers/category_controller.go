package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vipani/app/models"
	"github.com/shashiranjanraj/vipani/app/repositories"
	"github.com/shashiranjanraj/vipani/pkg/bind"
	"github.com/shashiranjanraj/vipani/pkg/cache"
	"github.com/shashiranjanraj/vipani/pkg/logger"
	"github.com/shashiranjanraj/vipani/pkg/response"
)

// CategoryInput is the create/update payload for a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type CategoryController struct {
	repo  *repositories.CategoryRepository
	cache *cache.Cache
}

func NewCategoryController(repo *repositories.CategoryRepository, cc *cache.Cache) *CategoryController {
	return &CategoryController{repo: repo, cache: cc}
}

// Index lists all categories with their products.
func (c *CategoryController) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var categories []models.Category
	if c.cache.Get(ctx, categoriesListKey, &categories) {
		response.Success(w, categories)
		return
	}

	categories, err := c.repo.All(ctx, repositories.IncludeProducts)
	if err != nil {
		response.StoreError(w, err)
		return
	}

	_ = c.cache.Set(ctx, categoriesListKey, categories)
	response.Success(w, categories)
}

// Show returns one category with its products.
func (c *CategoryController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "No category found with that id")
		return
	}

	category, err := c.repo.Find(r.Context(), id, repositories.IncludeProducts)
	if err != nil {
		if isNotFound(err) {
			response.NotFound(w, "No category found with that id")
			return
		}
		response.StoreError(w, err)
		return
	}

	response.Success(w, category)
}

// Store creates a new category.
func (c *CategoryController) Store(w http.ResponseWriter, r *http.Request) {
	var input CategoryInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	category := models.Category{Name: input.Name}
	if err := c.repo.Create(r.Context(), &category); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	invalidateLists(r.Context(), c.cache)
	logger.WithCtx(r.Context()).Info("category created", "category_id", category.ID)
	response.Created(w, category)
}

// Update renames a category and returns the affected-row count.
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "No category found with that id")
		return
	}

	var input CategoryInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	count, err := c.repo.Update(r.Context(), id, input.Name)
	if err != nil {
		if isNotFound(err) {
			response.NotFound(w, "No category found with that id")
			return
		}
		response.StoreError(w, err)
		return
	}

	invalidateLists(r.Context(), c.cache)
	response.Count(w, "updated", count)
}

// Destroy deletes a category and returns the deletion count.
// Dependent products are only detached when cascade deletes are on.
func (c *CategoryController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "No category found with that id")
		return
	}

	count, err := c.repo.Delete(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			response.NotFound(w, "No category found with that id")
			return
		}
		response.StoreError(w, err)
		return
	}

	invalidateLists(r.Context(), c.cache)
	logger.WithCtx(r.Context()).Info("category deleted", "category_id", id)
	response.Count(w, "deleted", count)
}
