package models

// PantryItem is a named quantity kept in a user's pantry. Names are not
// unique within a pantry.
type PantryItem struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"size:64"`
	Amount string `json:"amount" gorm:"size:12"`
	UserID uint   `json:"user_id" gorm:"index;not null"`
	Owner  *User  `json:"-" gorm:"foreignKey:UserID"`
}

func (PantryItem) TableName() string {
	return "pantry_item"
}

// PantryItemRequest defines the request body for adding a pantry item.
type PantryItemRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=64"`
	Amount string `json:"amount" validate:"required,min=1,max=12"`
}
