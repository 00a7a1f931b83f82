package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateTitle = errors.New("duplicate title")
	ErrUserForeignKey = errors.New("author_id does not exist")
	ErrPostForeignKey = errors.New("post_id does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign key constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

// UniqueError is a helper function to check if the error is a unique constraint error.
func UniqueError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func (m *BlogModel) insert(ctx context.Context, p *Post) error {
	query := `
		INSERT INTO posts (title, subtitle, body, img_url, date, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at, version`

	args := []any{p.Title, p.Subtitle, p.Body, p.ImgURL, p.Date, p.AuthorID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.Version)
	if err != nil {
		switch {
		case UniqueError(err, "posts_title_key"):
			return ErrDuplicateTitle
		case ForeignKeyError(err, "posts_author_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// getPostById joins the users table for the author name. Comments are
// fetched separately by getCommentsByPostId.
func (m *BlogModel) getPostById(ctx context.Context, id int) (*Post, error) {
	query := `
		SELECT p.id, p.title, p.subtitle, p.body, p.img_url, p.date, p.author_id, p.created_at, p.updated_at, p.version, u.name
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.id = $1`

	row := m.db.QueryRowContext(ctx, query, id)

	var post Post
	err := row.Scan(&post.ID, &post.Title, &post.Subtitle, &post.Body, &post.ImgURL, &post.Date, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt, &post.Version, &post.AuthorName)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &post, nil
}

// updatePost overwrites the mutable fields only; id, date and author_id are
// never touched after creation.
func (m *BlogModel) updatePost(ctx context.Context, post *Post) error {
	query := `
		UPDATE posts
		SET title = $1, subtitle = $2, body = $3, img_url = $4, updated_at = now(), version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version, updated_at`

	err := m.db.QueryRowContext(ctx, query, post.Title, post.Subtitle, post.Body, post.ImgURL, post.ID, post.Version).Scan(&post.Version, &post.UpdatedAt)
	if err != nil {
		switch {
		case UniqueError(err, "posts_title_key"):
			return ErrDuplicateTitle
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

// deletePost removes the post row; the comments foreign key cascades so no
// orphan comment can survive the delete.
func (m *BlogModel) deletePost(ctx context.Context, id int) error {
	query := `
		DELETE FROM posts
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

// getPosts returns all posts newest first for the home page.
func (m *BlogModel) getPosts(ctx context.Context) ([]Post, error) {
	query := `
		SELECT p.id, p.title, p.subtitle, p.img_url, p.date, p.author_id, p.created_at, p.updated_at, p.version, u.name
		FROM posts p
		JOIN users u ON p.author_id = u.id
		ORDER BY p.created_at DESC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var post Post
		err := rows.Scan(&post.ID, &post.Title, &post.Subtitle, &post.ImgURL, &post.Date, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt, &post.Version, &post.AuthorName)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}
