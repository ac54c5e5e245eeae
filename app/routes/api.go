package routes

import (
	"net/http"

	"github.com/shashiranjanraj/vipani/app/controllers"
	"github.com/shashiranjanraj/vipani/pkg/metrics"
	"github.com/shashiranjanraj/vipani/pkg/response"
	"github.com/shashiranjanraj/vipani/pkg/router"
)

// Deps carries the constructed controllers into route registration, so the
// wiring stays in one place and tests can register against their own stack.
type Deps struct {
	Categories *controllers.CategoryController
	Products   *controllers.ProductController
	Tags       *controllers.TagController
}

// RegisterAPI mounts the catalog surface plus the operational endpoints.
func RegisterAPI(r *router.Router, d Deps) {
	r.Get("/ping", "ping", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"message": "pong"})
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	r.Get("/categories", "categories.index", d.Categories.Index)
	r.Get("/categories/{id}", "categories.show", d.Categories.Show)
	r.Post("/categories", "categories.store", d.Categories.Store)
	r.Put("/categories/{id}", "categories.update", d.Categories.Update)
	r.Delete("/categories/{id}", "categories.destroy", d.Categories.Destroy)

	r.Get("/products", "products.index", d.Products.Index)
	r.Get("/products/{id}", "products.show", d.Products.Show)
	r.Post("/products", "products.store", d.Products.Store)
	r.Put("/products/{id}", "products.update", d.Products.Update)
	r.Delete("/products/{id}", "products.destroy", d.Products.Destroy)

	r.Get("/tags", "tags.index", d.Tags.Index)
	r.Get("/tags/{id}", "tags.show", d.Tags.Show)
	r.Post("/tags", "tags.store", d.Tags.Store)
	r.Put("/tags/{id}", "tags.update", d.Tags.Update)
	r.Delete("/tags/{id}", "tags.destroy", d.Tags.Destroy)
}
