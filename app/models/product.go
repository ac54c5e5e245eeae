package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is the central catalog entity. It belongs to at most one
// Category and carries any number of Tags through the product_tags join.
type Product struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string  `gorm:"size:255;not null" json:"name"`
	Price      float64 `gorm:"not null;default:0" json:"price"`
	Stock      int     `gorm:"not null;default:0" json:"stock"`
	CategoryID *uint   `gorm:"index" json:"category_id"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags     []Tag     `gorm:"many2many:product_tags;joinForeignKey:ProductID;joinReferences:TagID" json:"tags,omitempty"`
}

// ProductTag is one "product has tag" fact. Rows are created and destroyed
// by the tag-link service only, never by a controller, so each row's id
// stays stable for as long as the tag remains in the product's set.
type ProductTag struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	TagID     uint      `gorm:"not null;index" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProductTag) TableName() string { return "product_tags" }

// SetupJoinTable tells GORM to use ProductTag as the join model for
// Product.Tags and Tag.Products, so eager loads cross the same table the
// tag-link service writes to.
func SetupJoinTable(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Product{}, "Tags", &ProductTag{}); err != nil {
		return err
	}
	return db.SetupJoinTable(&Tag{}, "Products", &ProductTag{})
}
