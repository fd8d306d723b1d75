package models

type Article struct {
	BaseModel

	Title     string `json:"title" validate:"required,max=200"`
	Alias     string `json:"alias" gorm:"uniqueIndex"`
	Content   string `json:"content"`
	Summary   string `json:"summary"`
	Language  string `json:"language"`
	Published bool   `json:"published"`

	MetaTitle       string `json:"meta_title" validate:"max=200"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords" validate:"max=200"`

	Tags       []Tag     `json:"tags" gorm:"many2many:article_tags"`
	CategoryID *uint     `json:"category_id"`
	Category   *Category `json:"category"`

	AuthorID uint    `json:"author_id"`
	Author   Account `json:"author"`
}
