package models

// Tag is a free-form label attached to products through product_tags.
// The column and JSON key stay "tag_name" for wire compatibility.
type Tag struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TagName string `gorm:"column:tag_name;size:255;not null" json:"tag_name"`

	Products []Product `gorm:"many2many:product_tags;joinForeignKey:TagID;joinReferences:ProductID" json:"products,omitempty"`
}
