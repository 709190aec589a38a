package models

import "time"

type Post struct {
	ID        string    `db:"id"         json:"id"`
	Title     string    `db:"title"      json:"title"`
	Slug      string    `db:"slug"       json:"slug"`
	Excerpt   string    `db:"excerpt"    json:"excerpt"`
	Author    string    `db:"author"     json:"author"`
	Category  string    `db:"category"   json:"category"`
	Content   string    `db:"content"    json:"content"`
	Featured  bool      `db:"featured"   json:"featured"`
	ImageURL  string    `db:"image_url"  json:"imageUrl"`
	ReadTime  int       `db:"read_time"  json:"readTime"`
	Date      time.Time `db:"date"       json:"date"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// swagger:model CreatePostRequest
type CreatePostRequest struct {
	Title    string     `json:"title"    validate:"required,max=200"       example:"How Bicycles Win"`
	Excerpt  string     `json:"excerpt"  validate:"max=500"                example:"Why moving billboards get noticed"`
	Author   string     `json:"author"   validate:"required,max=100"       example:"Alex Rider"`
	Category string     `json:"category" validate:"max=60"                 example:"Marketing"`
	ImageURL string     `json:"imageUrl" validate:"omitempty,max=2048,url" example:"https://cdn.pedalads.com/hero.jpg"`
	Content  string     `json:"content"  validate:"required"               example:"<p>Bikes go where cars can't.</p>"`
	Featured bool       `json:"featured"`
	Date     *time.Time `json:"date,omitempty"`
}

// UpdatePostRequest is a partial update: a non-nil field is applied, a nil
// field is left untouched.
//
// swagger:model UpdatePostRequest
type UpdatePostRequest struct {
	Title    *string    `json:"title,omitempty"    validate:"omitnil,min=1,max=200"`
	Excerpt  *string    `json:"excerpt,omitempty"  validate:"omitnil,max=500"`
	Author   *string    `json:"author,omitempty"   validate:"omitnil,min=1,max=100"`
	Category *string    `json:"category,omitempty" validate:"omitnil,max=60"`
	ImageURL *string    `json:"imageUrl,omitempty" validate:"omitnil,omitempty,max=2048,url"`
	Content  *string    `json:"content,omitempty"  validate:"omitnil,min=1"`
	Featured *bool      `json:"featured,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
}

// PostPatch is the set of columns an update writes. Slug and ReadTime are
// derived by the service, never taken from the client.
type PostPatch struct {
	Title    *string
	Slug     *string
	Excerpt  *string
	Author   *string
	Category *string
	ImageURL *string
	Content  *string
	ReadTime *int
	Featured *bool
	Date     *time.Time
}

func (p PostPatch) Empty() bool {
	return p.Title == nil && p.Slug == nil && p.Excerpt == nil && p.Author == nil &&
		p.Category == nil && p.ImageURL == nil && p.Content == nil && p.ReadTime == nil &&
		p.Featured == nil && p.Date == nil
}

type PostPage struct {
	Items      []*Post `json:"items"`
	Page       int     `json:"page"`
	PerPage    int     `json:"perPage"`
	Total      int     `json:"total"`
	TotalPages int     `json:"totalPages"`
}
