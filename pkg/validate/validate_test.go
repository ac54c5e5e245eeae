package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/vipani/pkg/validate"
)

type productInput struct {
	Name       string  `json:"name" validate:"required,min=1,max=255"`
	Price      float64 `json:"price" validate:"gte=0"`
	Stock      int     `json:"stock" validate:"gte=0"`
	CategoryID *uint   `json:"category_id"`
	TagIDs     *[]uint `json:"tagIds" validate:"required"`
}

func TestValidInput(t *testing.T) {
	tagIDs := []uint{1, 2}
	errs := validate.Struct(productInput{
		Name:   "Widget",
		Price:  9.99,
		Stock:  3,
		TagIDs: &tagIDs,
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(productInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["tagIds"]; !ok {
		t.Error("expected tagIds to be required")
	}
}

func TestEmptySliceCountsAsProvided(t *testing.T) {
	// A nil pointer means the key was absent; a pointer to an empty slice
	// means the caller sent [] on purpose.
	empty := []uint{}
	errs := validate.Struct(productInput{Name: "Widget", TagIDs: &empty})
	if _, ok := errs["tagIds"]; ok {
		t.Errorf("explicit empty list must pass required, got: %v", errs)
	}
}

func TestGteRule(t *testing.T) {
	tagIDs := []uint{}
	errs := validate.Struct(productInput{Name: "Widget", Price: -1, TagIDs: &tagIDs})
	if _, ok := errs["price"]; !ok {
		t.Error("expected price gte violation")
	}

	errs = validate.Struct(productInput{Name: "Widget", Stock: -5, TagIDs: &tagIDs})
	if _, ok := errs["stock"]; !ok {
		t.Error("expected stock gte violation")
	}
}

func TestZeroIsAllowedByGte(t *testing.T) {
	tagIDs := []uint{}
	errs := validate.Struct(productInput{Name: "Free", Price: 0, Stock: 0, TagIDs: &tagIDs})
	if validate.HasErrors(errs) {
		t.Errorf("zero price and stock should pass gte=0, got: %v", errs)
	}
}

func TestMaxLength(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required,max=5"`
	}
	errs := validate.Struct(in{Name: "toolongname"})
	if _, ok := errs["name"]; !ok {
		t.Error("expected name max-length violation")
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Note string `json:"note" validate:"nullable,min=10"`
	}
	errs := validate.Struct(in{})
	if validate.HasErrors(errs) {
		t.Errorf("empty nullable field must skip remaining rules, got: %v", errs)
	}

	errs = validate.Struct(in{Note: "short"})
	if _, ok := errs["note"]; !ok {
		t.Error("present nullable field must still honour later rules")
	}
}

func TestErrorKeysUseJSONNames(t *testing.T) {
	errs := validate.Struct(productInput{})
	for key := range errs {
		switch key {
		case "name", "price", "stock", "category_id", "tagIds":
		default:
			t.Errorf("unexpected error key %q, want JSON field names", key)
		}
	}
}
