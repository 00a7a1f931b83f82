package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthCheckHandler)

	// public pages
	router.HandlerFunc(http.MethodGet, "/", app.homeHandler)
	router.HandlerFunc(http.MethodGet, "/about", app.aboutHandler)
	router.HandlerFunc(http.MethodGet, "/contact", app.contactHandler)
	router.HandlerFunc(http.MethodGet, "/message_sent", app.contactHandler)
	router.HandlerFunc(http.MethodPost, "/message_sent", app.messageSentHandler)

	// posts and comments
	router.HandlerFunc(http.MethodGet, "/post/:id", app.viewPostHandler)
	router.HandlerFunc(http.MethodPost, "/post/:id", app.requireAuthUser(app.createCommentHandler))
	router.HandlerFunc(http.MethodGet, "/create_post", app.requireAdmin(app.createPostFormHandler))
	router.HandlerFunc(http.MethodPost, "/create_post", app.requireAdmin(app.createPostHandler))
	router.HandlerFunc(http.MethodGet, "/edit_post/:id", app.requireAdmin(app.editPostFormHandler))
	router.HandlerFunc(http.MethodPost, "/edit_post/:id", app.requireAdmin(app.editPostHandler))
	router.HandlerFunc(http.MethodGet, "/delete/:id", app.requireAdmin(app.deletePostHandler))

	// accounts
	router.HandlerFunc(http.MethodGet, "/register", app.registerFormHandler)
	router.HandlerFunc(http.MethodPost, "/register", app.registerHandler)
	router.HandlerFunc(http.MethodGet, "/login", app.loginFormHandler)
	router.HandlerFunc(http.MethodPost, "/login", app.loginHandler)
	router.HandlerFunc(http.MethodGet, "/log_out", app.logoutHandler)

	return app.recoverPanic(app.logRequest(app.rateLimit(app.session(router))))
}
