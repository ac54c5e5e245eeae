package seeders

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/vipani/app/models"
)

func init() {
	Register("categories", SeedCategories)
	Register("tags", SeedTags)
	Register("products", SeedProducts)
}

// SeedCategories inserts a starter set of categories. Existing rows with
// the same name are left untouched.
func SeedCategories(db *gorm.DB) error {
	categories := []models.Category{
		{Name: "Electronics"},
		{Name: "Books"},
		{Name: "Clothing"},
		{Name: "Home & Kitchen"},
	}

	for i := range categories {
		err := db.Where(models.Category{Name: categories[i].Name}).
			FirstOrCreate(&categories[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// SeedTags inserts a starter set of tags.
func SeedTags(db *gorm.DB) error {
	tags := []models.Tag{
		{TagName: "new-arrival"},
		{TagName: "bestseller"},
		{TagName: "sale"},
		{TagName: "eco-friendly"},
		{TagName: "limited-edition"},
	}

	for i := range tags {
		err := db.Where(models.Tag{TagName: tags[i].TagName}).
			FirstOrCreate(&tags[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// SeedProducts inserts sample products linked to the seeded categories
// and tags. Runs after SeedCategories and SeedTags.
func SeedProducts(db *gorm.DB) error {
	var electronics, books models.Category
	if err := db.Where(models.Category{Name: "Electronics"}).First(&electronics).Error; err != nil {
		return err
	}
	if err := db.Where(models.Category{Name: "Books"}).First(&books).Error; err != nil {
		return err
	}

	var newArrival, bestseller models.Tag
	if err := db.Where(models.Tag{TagName: "new-arrival"}).First(&newArrival).Error; err != nil {
		return err
	}
	if err := db.Where(models.Tag{TagName: "bestseller"}).First(&bestseller).Error; err != nil {
		return err
	}

	products := []struct {
		product models.Product
		tagIDs  []uint
	}{
		{
			product: models.Product{
				Name:       "Wireless Headphones",
				Price:      129.99,
				Stock:      50,
				CategoryID: &electronics.ID,
			},
			tagIDs: []uint{newArrival.ID, bestseller.ID},
		},
		{
			product: models.Product{
				Name:       "Mechanical Keyboard",
				Price:      89.50,
				Stock:      30,
				CategoryID: &electronics.ID,
			},
			tagIDs: []uint{newArrival.ID},
		},
		{
			product: models.Product{
				Name:       "The Art of Computer Programming",
				Price:      199.00,
				Stock:      12,
				CategoryID: &books.ID,
			},
			tagIDs: []uint{bestseller.ID},
		},
	}

	for i := range products {
		p := &products[i].product
		err := db.Where(models.Product{Name: p.Name}).
			Omit("Tags", "Category").
			FirstOrCreate(p).Error
		if err != nil {
			return err
		}

		for _, tagID := range products[i].tagIDs {
			link := models.ProductTag{ProductID: p.ID, TagID: tagID}
			err := db.Where(models.ProductTag{ProductID: p.ID, TagID: tagID}).
				FirstOrCreate(&link).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}
