package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/vipani/pkg/router"
)

func noop(w http.ResponseWriter, r *http.Request) {}

func TestNamedRouteURL(t *testing.T) {
	r := router.New()
	r.Get("/products/{id}", "products.show", noop)

	url, err := r.URL("products.show", map[string]string{"id": "42"})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "/products/42" {
		t.Errorf("got %q, want /products/42", url)
	}
}

func TestURLMissingParam(t *testing.T) {
	r := router.New()
	r.Get("/products/{id}", "products.show", noop)

	if _, err := r.URL("products.show", nil); err == nil {
		t.Error("expected error for missing {id} parameter")
	}
}

func TestURLUnknownRoute(t *testing.T) {
	r := router.New()
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("expected error for unknown route name")
	}
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/tags", "tags.index", noop)
	r.Post("/tags", "tags.store", noop)
	r.Get("/internal", "", noop) // unnamed routes stay out of listings

	infos := r.Routes()
	if len(infos) != 2 {
		t.Fatalf("got %d routes, want 2", len(infos))
	}
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	mw := func(label string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, label)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	g := r.Group("/admin", mw("outer"))
	g.Get("/stats", "admin.stats", func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}, mw("inner"))

	if path, ok := r.Path("admin.stats"); !ok || path != "/admin/stats" {
		t.Fatalf("got %q (%v), want /admin/stats", path, ok)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	r.Handler().ServeHTTP(httptest.NewRecorder(), req)

	want := []string{"outer", "inner", "handler"}
	if len(order) != len(want) {
		t.Fatalf("got call order %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got call order %v, want %v", order, want)
		}
	}
}
