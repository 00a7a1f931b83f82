package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sushihentaime/inkwell/internal/blogservice"
	"github.com/sushihentaime/inkwell/internal/common"
	"github.com/sushihentaime/inkwell/internal/mailservice"
	"github.com/sushihentaime/inkwell/internal/userservice"
)

const (
	testAdminName     = "Site Owner"
	testAdminEmail    = "owner@example.com"
	testAdminPassword = "AdminPass1!"
)

type testServer struct {
	*httptest.Server
	client *http.Client
}

func newTestApplication(t *testing.T) (*application, *sql.DB) {
	db := common.TestDB("file://../migrations", t)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	rabbitURI := common.TestRabbitMQ(t)
	broker, err := common.NewMessageBroker(rabbitURI)
	assert.NoError(t, err)

	err = common.SetupContactExchange(broker)
	assert.NoError(t, err)

	cfg := &Config{
		Environment:   "test",
		AdminName:     testAdminName,
		AdminEmail:    testAdminEmail,
		AdminPassword: testAdminPassword,
	}

	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	app := &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(db),
		blogService: blogservice.NewBlogService(db, cache),
		broker:      broker,
		mailService: mailservice.NewMailService(broker, "localhost", "", "", "noreply@example.com", "owner@example.com", 25, logger),
	}

	err = app.parseTemplates()
	assert.NoError(t, err)

	_, err = app.userService.EnsureAdmin(context.Background(), cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	assert.NoError(t, err)

	return app, db
}

// newTestServer wraps the handler in a server whose client keeps cookies
// and never follows redirects, so tests can observe the 303s directly.
func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	assert.NoError(t, err)

	client := ts.Client()
	client.Jar = jar
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &testServer{Server: ts, client: client}
}

func (ts *testServer) get(t *testing.T, path string) *http.Response {
	res, err := ts.client.Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { res.Body.Close() })

	return res
}

func (ts *testServer) postForm(t *testing.T, path string, form url.Values) *http.Response {
	res, err := ts.client.Post(ts.URL+path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { res.Body.Close() })

	return res
}

// login authenticates through the real login handler so the client jar
// carries a valid session cookie afterwards.
func (ts *testServer) login(t *testing.T, email, password string) {
	res := ts.postForm(t, "/login", url.Values{
		"email":    {email},
		"password": {password},
	})

	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/", res.Header.Get("Location"))
}

func (ts *testServer) register(t *testing.T, name, email, password string) {
	res := ts.postForm(t, "/register", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	})

	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/", res.Header.Get("Location"))
}
