package models

type Account struct {
	BaseModel

	Name     string `json:"name" gorm:"uniqueIndex" validate:"required"`
	Email    string `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	Password string `json:"-"`
	IsAdmin  bool   `json:"is_admin"`

	Articles []Article `json:"articles" gorm:"foreignKey:AuthorID"`
}
