package models

// Category groups products. Deleting a category does not touch its
// products unless CASCADE_DELETE is on; see the category repository.
type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}
