package blogservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/inkwell/internal/common"
)

type Post struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	// Body holds sanitized rich-text HTML.
	Body   string `json:"body"`
	ImgURL string `json:"img_url"`
	// Date is the display date fixed when the post is created; edits never
	// touch it.
	Date       string    `json:"date"`
	AuthorID   int       `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int       `json:"version"`

	Comments []Comment `json:"comments"`
}

type Comment struct {
	ID         int       `json:"id"`
	Text       string    `json:"text"`
	AuthorID   int       `json:"author_id"`
	AuthorName string    `json:"author_name"`
	PostID     int       `json:"post_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m   *BlogModel
	c   *common.Cache
	now func() time.Time
}
