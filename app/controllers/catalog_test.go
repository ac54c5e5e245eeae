package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/vipani/app/models"
	"github.com/shashiranjanraj/vipani/internal/server"
	"github.com/shashiranjanraj/vipani/pkg/testkit"
)

// apiEnvelope mirrors the JSON envelope every endpoint writes.
type apiEnvelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func newTestAPI(t *testing.T) http.Handler {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.SetupJoinTable(db))
	require.NoError(t, db.AutoMigrate(
		&models.Category{}, &models.Tag{}, &models.Product{}, &models.ProductTag{},
	))

	return server.NewRouter(db, nil).Handler()
}

func decodeEnvelope(t *testing.T, h http.Handler, method, path string, body interface{}, wantStatus int) apiEnvelope {
	t.Helper()

	rec := testkit.Request(t, h, method, path, body)
	testkit.AssertStatus(t, rec, wantStatus)

	var env apiEnvelope
	testkit.DecodeJSON(t, rec, &env)
	assert.Equal(t, wantStatus, env.Status, "envelope status must echo the HTTP code")
	return env
}

func createTag(t *testing.T, h http.Handler, name string) models.Tag {
	t.Helper()

	env := decodeEnvelope(t, h, http.MethodPost, "/tags",
		map[string]string{"tag_name": name}, http.StatusCreated)

	var tag models.Tag
	require.NoError(t, json.Unmarshal(env.Data, &tag))
	require.NotZero(t, tag.ID)
	return tag
}

func productTagIDs(t *testing.T, h http.Handler, productID uint) []uint {
	t.Helper()

	env := decodeEnvelope(t, h, http.MethodGet,
		fmt.Sprintf("/products/%d", productID), nil, http.StatusOK)

	var product models.Product
	require.NoError(t, json.Unmarshal(env.Data, &product))

	var ids []uint
	for _, tag := range product.Tags {
		ids = append(ids, tag.ID)
	}
	return ids
}

// ─── Ping ─────────────────────────────────────────────────────────────────────

func TestPing(t *testing.T) {
	h := newTestAPI(t)

	env := decodeEnvelope(t, h, http.MethodGet, "/ping", nil, http.StatusOK)
	assert.JSONEq(t, `{"message":"pong"}`, string(env.Data))
}

// ─── Categories ───────────────────────────────────────────────────────────────

func TestCategoryCRUD(t *testing.T) {
	h := newTestAPI(t)

	env := decodeEnvelope(t, h, http.MethodPost, "/categories",
		map[string]string{"name": "Books"}, http.StatusCreated)

	var created models.Category
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Books", created.Name)
	require.NotZero(t, created.ID)

	env = decodeEnvelope(t, h, http.MethodGet, "/categories", nil, http.StatusOK)
	var list []models.Category
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)

	path := fmt.Sprintf("/categories/%d", created.ID)

	env = decodeEnvelope(t, h, http.MethodPut, path,
		map[string]string{"name": "Textbooks"}, http.StatusOK)
	assert.JSONEq(t, `{"updated":1}`, string(env.Data))

	env = decodeEnvelope(t, h, http.MethodGet, path, nil, http.StatusOK)
	var fetched models.Category
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, "Textbooks", fetched.Name)

	env = decodeEnvelope(t, h, http.MethodDelete, path, nil, http.StatusOK)
	assert.JSONEq(t, `{"deleted":1}`, string(env.Data))

	decodeEnvelope(t, h, http.MethodGet, path, nil, http.StatusNotFound)
}

func TestCategoryValidation(t *testing.T) {
	h := newTestAPI(t)

	env := decodeEnvelope(t, h, http.MethodPost, "/categories",
		map[string]string{}, http.StatusBadRequest)
	assert.Contains(t, env.Errors, "name")
}

// ─── Tags ─────────────────────────────────────────────────────────────────────

func TestTagCRUD(t *testing.T) {
	h := newTestAPI(t)

	tag := createTag(t, h, "clearance")
	path := fmt.Sprintf("/tags/%d", tag.ID)

	env := decodeEnvelope(t, h, http.MethodPut, path,
		map[string]string{"tag_name": "closeout"}, http.StatusOK)
	assert.JSONEq(t, `{"updated":1}`, string(env.Data))

	env = decodeEnvelope(t, h, http.MethodGet, path, nil, http.StatusOK)
	var fetched models.Tag
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, "closeout", fetched.TagName)

	env = decodeEnvelope(t, h, http.MethodDelete, path, nil, http.StatusOK)
	assert.JSONEq(t, `{"deleted":1}`, string(env.Data))

	decodeEnvelope(t, h, http.MethodDelete, path, nil, http.StatusNotFound)
}

// ─── Products ─────────────────────────────────────────────────────────────────

func TestProductTagLifecycle(t *testing.T) {
	h := newTestAPI(t)

	t1 := createTag(t, h, "alpha")
	t2 := createTag(t, h, "beta")
	t3 := createTag(t, h, "gamma")

	env := decodeEnvelope(t, h, http.MethodPost, "/products", map[string]interface{}{
		"name":   "Widget",
		"price":  19.99,
		"stock":  5,
		"tagIds": []uint{t1.ID, t2.ID},
	}, http.StatusCreated)

	var product models.Product
	require.NoError(t, json.Unmarshal(env.Data, &product))
	require.NotZero(t, product.ID)

	assert.ElementsMatch(t, []uint{t1.ID, t2.ID}, productTagIDs(t, h, product.ID))

	path := fmt.Sprintf("/products/%d", product.ID)

	env = decodeEnvelope(t, h, http.MethodPut, path, map[string]interface{}{
		"name":   "Widget v2",
		"price":  24.99,
		"stock":  4,
		"tagIds": []uint{t2.ID, t3.ID},
	}, http.StatusOK)
	assert.JSONEq(t, `{"updated":1}`, string(env.Data))

	assert.ElementsMatch(t, []uint{t2.ID, t3.ID}, productTagIDs(t, h, product.ID))

	// Empty array clears every tag.
	decodeEnvelope(t, h, http.MethodPut, path, map[string]interface{}{
		"name":   "Widget v2",
		"price":  24.99,
		"stock":  4,
		"tagIds": []uint{},
	}, http.StatusOK)

	assert.Empty(t, productTagIDs(t, h, product.ID))
}

func TestProductMissingTagIDsRejected(t *testing.T) {
	h := newTestAPI(t)

	env := decodeEnvelope(t, h, http.MethodPost, "/products", map[string]interface{}{
		"name":  "Widget",
		"price": 19.99,
		"stock": 5,
	}, http.StatusBadRequest)
	assert.Contains(t, env.Errors, "tagIds")
}

func TestProductMalformedJSON(t *testing.T) {
	h := newTestAPI(t)

	rec := testkit.Request(t, h, http.MethodPost, "/products", "{not json")
	testkit.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestProductNotFound(t *testing.T) {
	h := newTestAPI(t)

	decodeEnvelope(t, h, http.MethodGet, "/products/999", nil, http.StatusNotFound)

	decodeEnvelope(t, h, http.MethodPut, "/products/999", map[string]interface{}{
		"name":   "Ghost",
		"price":  1.0,
		"stock":  1,
		"tagIds": []uint{},
	}, http.StatusNotFound)

	decodeEnvelope(t, h, http.MethodDelete, "/products/999", nil, http.StatusNotFound)
}

func TestProductCategoryProjection(t *testing.T) {
	h := newTestAPI(t)

	env := decodeEnvelope(t, h, http.MethodPost, "/categories",
		map[string]string{"name": "Gadgets"}, http.StatusCreated)
	var category models.Category
	require.NoError(t, json.Unmarshal(env.Data, &category))

	env = decodeEnvelope(t, h, http.MethodPost, "/products", map[string]interface{}{
		"name":        "Gizmo",
		"price":       9.99,
		"stock":       2,
		"category_id": category.ID,
		"tagIds":      []uint{},
	}, http.StatusCreated)
	var product models.Product
	require.NoError(t, json.Unmarshal(env.Data, &product))

	env = decodeEnvelope(t, h, http.MethodGet,
		fmt.Sprintf("/products/%d", product.ID), nil, http.StatusOK)
	var fetched models.Product
	require.NoError(t, json.Unmarshal(env.Data, &fetched))

	require.NotNil(t, fetched.Category)
	assert.Equal(t, "Gadgets", fetched.Category.Name)
}
