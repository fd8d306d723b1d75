package models

type Tag struct {
	BaseModel

	Alias string `json:"alias" gorm:"uniqueIndex" validate:"lowercase"`
	Name  string `json:"name" gorm:"uniqueIndex"`

	Articles []Article `json:"articles" gorm:"many2many:article_tags"`
}

type Category struct {
	BaseModel

	Alias       string `json:"alias" gorm:"uniqueIndex" validate:"lowercase"`
	Name        string `json:"name" gorm:"uniqueIndex"`
	Description string `json:"description"`

	Articles []Article `json:"articles" gorm:"foreignKey:CategoryID"`
}
