package models

// Course описывает курс из каталога учебного центра.
type Course struct {
	ID          int      `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Subtitle    string   `json:"subtitle" yaml:"subtitle"`
	Category    string   `json:"category" yaml:"category"`
	Duration    string   `json:"duration" yaml:"duration"`
	Students    int      `json:"students" yaml:"students"`
	Rating      float64  `json:"rating" yaml:"rating"`
	Description string   `json:"description" yaml:"description"`
	Curriculum  []string `json:"curriculum" yaml:"curriculum"`
	BrochureURL string   `json:"brochureUrl" yaml:"brochure_url"`
}
