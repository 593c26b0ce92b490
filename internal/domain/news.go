package domain

type NewsStatus string

const (
	NewsStatusDraft     NewsStatus = "draft"
	NewsStatusPublished NewsStatus = "published"
	NewsStatusArchived  NewsStatus = "archived"
)

type NewsArticle struct {
	ID        int32      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Excerpt   string     `json:"excerpt,omitempty"`
	ImageURL  string     `json:"image_url,omitempty"`
	Status    NewsStatus `json:"status"`
	Featured  bool       `json:"featured"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at,omitempty"`
}
