// Package controllers translates HTTP requests into repository and service
// calls. Controllers stay thin: decode, delegate, map errors to statuses.
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/vipani/pkg/cache"
)

// List-response cache keys. Only collection reads are cached; single-entity
// reads always hit the store. Any catalog write invalidates all three,
// because each entity's list embeds the other entities.
const (
	categoriesListKey = "categories:list"
	productsListKey   = "products:list"
	tagsListKey       = "tags:list"
)

func invalidateLists(ctx context.Context, c *cache.Cache) {
	_ = c.Del(ctx, categoriesListKey, productsListKey, tagsListKey)
}

// pathID parses the {id} route parameter. Identifiers are positive integers.
func pathID(r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
