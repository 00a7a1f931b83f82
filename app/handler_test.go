package main

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func readBody(t *testing.T, res *http.Response) string {
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func countRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	var n int
	err := db.QueryRow(query, args...).Scan(&n)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestAccountFlow(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	t.Run("register a new member", func(t *testing.T) {
		res := ts.postForm(t, "/register", url.Values{
			"name":     {"Alice"},
			"email":    {"alice@example.com"},
			"password": {"pw1"},
		})

		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/", res.Header.Get("Location"))
		assert.Equal(t, url.QueryEscape("You have successfully registered. Happy commenting."), flashCookie(res))
	})

	t.Run("duplicate email is sent to login", func(t *testing.T) {
		ts.get(t, "/log_out")

		res := ts.postForm(t, "/register", url.Values{
			"name":     {"Alice Again"},
			"email":    {"alice@example.com"},
			"password": {"other"},
		})

		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/login", res.Header.Get("Location"))
		assert.Equal(t, url.QueryEscape("User already exists."), flashCookie(res))
	})

	t.Run("login with wrong password", func(t *testing.T) {
		res := ts.postForm(t, "/login", url.Values{
			"email":    {"alice@example.com"},
			"password": {"wrong"},
		})

		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/login", res.Header.Get("Location"))
		assert.Equal(t, url.QueryEscape("Incorrect password."), flashCookie(res))
	})

	t.Run("login with unknown email", func(t *testing.T) {
		res := ts.postForm(t, "/login", url.Values{
			"email":    {"nobody@example.com"},
			"password": {"pw1"},
		})

		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/login", res.Header.Get("Location"))
		assert.Equal(t, url.QueryEscape("Incorrect email."), flashCookie(res))
	})

	t.Run("login as member", func(t *testing.T) {
		res := ts.postForm(t, "/login", url.Values{
			"email":    {"alice@example.com"},
			"password": {"pw1"},
		})

		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/", res.Header.Get("Location"))
		assert.Equal(t, url.QueryEscape("You have successfully logged in."), flashCookie(res))
	})

	t.Run("login as admin", func(t *testing.T) {
		ts.get(t, "/log_out")

		res := ts.postForm(t, "/login", url.Values{
			"email":    {testAdminEmail},
			"password": {testAdminPassword},
		})

		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, url.QueryEscape("Administrator has successfully logged in."), flashCookie(res))
	})

	t.Run("logout clears the session", func(t *testing.T) {
		res := ts.get(t, "/log_out")

		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/", res.Header.Get("Location"))
		assert.Equal(t, url.QueryEscape("You have successfully logged out."), flashCookie(res))

		res = ts.get(t, "/create_post")
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/login", res.Header.Get("Location"))
	})
}

func TestPostLifecycle(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ts.login(t, testAdminEmail, testAdminPassword)

	var postID int64

	t.Run("create a post", func(t *testing.T) {
		res := ts.postForm(t, "/create_post", url.Values{
			"title":    {"First Post"},
			"subtitle": {"A beginning"},
			"body":     {"<p>Hello readers</p><script>alert(1)</script>"},
			"img_url":  {"https://example.com/header.jpg"},
		})

		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/", res.Header.Get("Location"))

		var body, date string
		err := db.QueryRow("SELECT id, body, date FROM posts WHERE title = $1", "First Post").Scan(&postID, &body, &date)
		assert.NoError(t, err)

		assert.Equal(t, "<p>Hello readers</p>", body)
		assert.NotEmpty(t, date)
	})

	t.Run("home page lists the post", func(t *testing.T) {
		res := ts.get(t, "/")

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, readBody(t, res), "First Post")
	})

	t.Run("post page renders the sanitized body", func(t *testing.T) {
		res := ts.get(t, fmt.Sprintf("/post/%d", postID))

		assert.Equal(t, http.StatusOK, res.StatusCode)

		body := readBody(t, res)
		assert.Contains(t, body, "<p>Hello readers</p>")
		assert.NotContains(t, body, "<script>")
	})

	t.Run("duplicate title is rejected", func(t *testing.T) {
		res := ts.postForm(t, "/create_post", url.Values{
			"title":    {"First Post"},
			"subtitle": {"Again"},
			"body":     {"<p>Other</p>"},
			"img_url":  {"https://example.com/other.jpg"},
		})

		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/create_post", res.Header.Get("Location"))
		assert.Equal(t, url.QueryEscape("A post with this title already exists."), flashCookie(res))

		assert.Equal(t, 1, countRows(t, db, "SELECT count(*) FROM posts"))
	})

	t.Run("edit keeps author and date", func(t *testing.T) {
		var authorBefore int64
		var dateBefore string
		err := db.QueryRow("SELECT author_id, date FROM posts WHERE id = $1", postID).Scan(&authorBefore, &dateBefore)
		assert.NoError(t, err)

		res := ts.postForm(t, fmt.Sprintf("/edit_post/%d", postID), url.Values{
			"title":    {"First Post, Revised"},
			"subtitle": {"A better beginning"},
			"body":     {"<p>Hello again</p>"},
			"img_url":  {"https://example.com/header.jpg"},
		})

		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, fmt.Sprintf("/post/%d", postID), res.Header.Get("Location"))

		var title, body, dateAfter string
		var authorAfter int64
		err = db.QueryRow("SELECT title, body, author_id, date FROM posts WHERE id = $1", postID).Scan(&title, &body, &authorAfter, &dateAfter)
		assert.NoError(t, err)

		assert.Equal(t, "First Post, Revised", title)
		assert.Equal(t, "<p>Hello again</p>", body)
		assert.Equal(t, authorBefore, authorAfter)
		assert.Equal(t, dateBefore, dateAfter)
	})

	t.Run("member can comment", func(t *testing.T) {
		ts.get(t, "/log_out")
		ts.register(t, "Bob", "bob@example.com", "pw1")

		res := ts.postForm(t, fmt.Sprintf("/post/%d", postID), url.Values{
			"comment": {"Great read!"},
		})

		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, fmt.Sprintf("/post/%d", postID), res.Header.Get("Location"))

		res = ts.get(t, fmt.Sprintf("/post/%d", postID))
		assert.Contains(t, readBody(t, res), "Great read!")
	})

	t.Run("anonymous comment is redirected to login", func(t *testing.T) {
		ts.get(t, "/log_out")

		before := countRows(t, db, "SELECT count(*) FROM comments")

		res := ts.postForm(t, fmt.Sprintf("/post/%d", postID), url.Values{
			"comment": {"Drive-by comment"},
		})

		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/login", res.Header.Get("Location"))
		assert.Equal(t, before, countRows(t, db, "SELECT count(*) FROM comments"))
	})

	t.Run("delete cascades to comments", func(t *testing.T) {
		ts.login(t, testAdminEmail, testAdminPassword)

		res := ts.get(t, fmt.Sprintf("/delete/%d", postID))
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/", res.Header.Get("Location"))

		assert.Equal(t, 0, countRows(t, db, "SELECT count(*) FROM posts"))
		assert.Equal(t, 0, countRows(t, db, "SELECT count(*) FROM comments"))

		res = ts.get(t, fmt.Sprintf("/post/%d", postID))
		assert.Equal(t, http.StatusNotFound, res.StatusCode)

		res = ts.get(t, "/")
		assert.NotContains(t, readBody(t, res), "First Post")
	})
}

func TestViewPostNotFound(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	res := ts.get(t, "/post/999999")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = ts.get(t, "/post/not-a-number")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestHealthCheck(t *testing.T) {
	app := &application{
		config: &Config{Environment: "test"},
	}

	rr := httptest.NewRecorder()
	app.healthCheckHandler(rr, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "available")
	assert.Contains(t, rr.Body.String(), "test")
}

func TestContactForm(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	res := ts.postForm(t, "/message_sent", url.Values{
		"name":    {"Jane Visitor"},
		"email":   {"jane@example.com"},
		"phone":   {"555-0100"},
		"message": {"Hello there"},
	})

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, readBody(t, res), "Jane Visitor")
}
