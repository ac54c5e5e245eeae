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

// TagInput is the create/update payload for a tag.
type TagInput struct {
	TagName string `json:"tag_name" validate:"required,min=1,max=255"`
}

type TagController struct {
	repo  *repositories.TagRepository
	cache *cache.Cache
}

func NewTagController(repo *repositories.TagRepository, cc *cache.Cache) *TagController {
	return &TagController{repo: repo, cache: cc}
}

// Index lists all tags with their products.
func (c *TagController) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var tags []models.Tag
	if c.cache.Get(ctx, tagsListKey, &tags) {
		response.Success(w, tags)
		return
	}

	tags, err := c.repo.All(ctx, repositories.IncludeProducts)
	if err != nil {
		response.StoreError(w, err)
		return
	}

	_ = c.cache.Set(ctx, tagsListKey, tags)
	response.Success(w, tags)
}

// Show returns one tag with its products.
func (c *TagController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "No tag found with that id")
		return
	}

	tag, err := c.repo.Find(r.Context(), id, repositories.IncludeProducts)
	if err != nil {
		if isNotFound(err) {
			response.NotFound(w, "No tag found with that id")
			return
		}
		response.StoreError(w, err)
		return
	}

	response.Success(w, tag)
}

// Store creates a new tag.
func (c *TagController) Store(w http.ResponseWriter, r *http.Request) {
	var input TagInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	tag := models.Tag{TagName: input.TagName}
	if err := c.repo.Create(r.Context(), &tag); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	invalidateLists(r.Context(), c.cache)
	logger.WithCtx(r.Context()).Info("tag created", "tag_id", tag.ID)
	response.Created(w, tag)
}

// Update renames a tag and returns the affected-row count.
func (c *TagController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "No tag found with that id")
		return
	}

	var input TagInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	count, err := c.repo.Update(r.Context(), id, input.TagName)
	if err != nil {
		if isNotFound(err) {
			response.NotFound(w, "No tag found with that id")
			return
		}
		response.BadRequest(w, err.Error())
		return
	}

	invalidateLists(r.Context(), c.cache)
	response.Count(w, "updated", count)
}

// Destroy deletes a tag and returns the deletion count. Its links are only
// removed when cascade deletes are on; otherwise the sweeper prunes them.
func (c *TagController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "No tag found with that id")
		return
	}

	count, err := c.repo.Delete(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			response.NotFound(w, "No tag found with that id")
			return
		}
		response.StoreError(w, err)
		return
	}

	invalidateLists(r.Context(), c.cache)
	logger.WithCtx(r.Context()).Info("tag deleted", "tag_id", id)
	response.Count(w, "deleted", count)
}
