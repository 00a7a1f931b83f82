package blogservice

import (
	"context"
	"database/sql"
	"time"

	"github.com/sushihentaime/inkwell/internal/common"
)

// dateFormat is the display format fixed on a post at creation time.
const dateFormat = "January 2, 2006"

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c, now: time.Now}
}

type CreatePostRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	ImgURL   string `json:"img_url"`
	AuthorID int    `json:"author_id"`
}

type UpdatePostRequest struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	ImgURL   string `json:"img_url"`
	Version  int    `json:"version"`
}

type CreateCommentRequest struct {
	Text     string `json:"text"`
	AuthorID int    `json:"author_id"`
	PostID   int    `json:"post_id"`
}

// CreatePost creates a new post. The author is always the acting user's
// numeric id and the display date is read from the clock per call, never
// cached process-wide.
func (s *BlogService) CreatePost(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateSubtitle(v, req.Subtitle)
	validateBody(v, req.Body)
	validateImgURL(v, req.ImgURL)
	validateInt(v, req.AuthorID, "author_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	post := Post{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     CleanHTML(req.Body),
		ImgURL:   req.ImgURL,
		Date:     s.now().Format(dateFormat),
		AuthorID: req.AuthorID,
	}

	if err := s.m.insert(ctx, &post); err != nil {
		return nil, err
	}

	s.invalidatePost(post.ID)

	return &post, nil
}

// GetPost returns a post with its author name and comments.
func (s *BlogService) GetPost(ctx context.Context, id int) (*Post, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyPost(id)); ok {
		return cached.(*Post), nil
	}

	post, err := s.m.getPostById(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.m.getCommentsByPostId(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Comments = comments

	s.c.Set(common.CacheKeyPost(id), post)

	return post, nil
}

// GetPosts returns all posts newest first.
func (s *BlogService) GetPosts(ctx context.Context) ([]Post, error) {
	if cached, ok := s.c.Get(common.CacheKeyPosts()); ok {
		return cached.([]Post), nil
	}

	posts, err := s.m.getPosts(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyPosts(), posts)

	return posts, nil
}

// UpdatePost overwrites the mutable fields in place. The id, date and
// author never change on edit.
func (s *BlogService) UpdatePost(ctx context.Context, req *UpdatePostRequest) (*Post, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateSubtitle(v, req.Subtitle)
	validateBody(v, req.Body)
	validateImgURL(v, req.ImgURL)
	validateInt(v, req.ID, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	post := Post{
		ID:       req.ID,
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     CleanHTML(req.Body),
		ImgURL:   req.ImgURL,
		Version:  req.Version,
	}

	if err := s.m.updatePost(ctx, &post); err != nil {
		return nil, err
	}

	s.invalidatePost(post.ID)

	return &post, nil
}

// DeletePost removes a post and, through the cascade, its comments.
func (s *BlogService) DeletePost(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.deletePost(ctx, id); err != nil {
		return err
	}

	s.invalidatePost(id)

	return nil
}

// CreateComment stores a sanitized comment bound to the acting user and the
// post being viewed. Comments are immutable once created.
func (s *BlogService) CreateComment(ctx context.Context, req *CreateCommentRequest) (*Comment, error) {
	v := common.NewValidator()
	validateCommentText(v, req.Text)
	validateInt(v, req.AuthorID, "author_id")
	validateInt(v, req.PostID, "post_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	comment := Comment{
		Text:     CleanHTML(req.Text),
		AuthorID: req.AuthorID,
		PostID:   req.PostID,
	}

	if err := s.m.insertComment(ctx, &comment); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyPost(req.PostID))

	return &comment, nil
}

func (s *BlogService) invalidatePost(id int) {
	s.c.Delete(common.CacheKeyPost(id))
	s.c.Delete(common.CacheKeyPosts())
}
