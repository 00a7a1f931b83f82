package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/sushihentaime/inkwell/internal/blogservice"
	"github.com/sushihentaime/inkwell/internal/common"
	"github.com/sushihentaime/inkwell/internal/mailservice"
	"github.com/sushihentaime/inkwell/internal/userservice"
)

func (app *application) homeHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := app.blogService.GetPosts(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.render(w, r, http.StatusOK, "index", map[string]any{"Posts": posts})
}

func (app *application) aboutHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "about", nil)
}

func (app *application) contactHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "contact", nil)
}

// messageSentHandler echoes the submitted contact fields back on a
// confirmation page and hands the message to the broker; email dispatch
// happens asynchronously in the mail service.
func (app *application) messageSentHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	msg := mailservice.ContactMessage{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Phone:   r.PostFormValue("phone"),
		Message: r.PostFormValue("message"),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// a broker hiccup must not lose the confirmation page
	if err := app.broker.Publish(r.Context(), payload, common.ContactMessageKey, common.ContactExchange); err != nil {
		app.logError(r, err)
	}

	app.render(w, r, http.StatusOK, "message_sent", map[string]any{"Contact": msg})
}

func (app *application) viewPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	post, err := app.blogService.GetPost(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.render(w, r, http.StatusOK, "post", map[string]any{"Post": post})
}

func (app *application) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	user := app.getUserContext(r)

	req := &blogservice.CreateCommentRequest{
		Text:     r.PostFormValue("comment"),
		AuthorID: user.ID,
		PostID:   id,
	}

	_, err = app.blogService.CreateComment(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrPostForeignKey):
			app.notFoundResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			app.setFlash(w, validationNotice(err))
			http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusSeeOther)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusSeeOther)
}

func (app *application) createPostFormHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "create_post", map[string]any{"Post": &blogservice.Post{}})
}

func (app *application) createPostHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	req := &blogservice.CreatePostRequest{
		Title:    r.PostFormValue("title"),
		Subtitle: r.PostFormValue("subtitle"),
		Body:     r.PostFormValue("body"),
		ImgURL:   r.PostFormValue("img_url"),
		AuthorID: user.ID,
	}

	_, err := app.blogService.CreatePost(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrDuplicateTitle):
			app.setFlash(w, "A post with this title already exists.")
			http.Redirect(w, r, "/create_post", http.StatusSeeOther)
		case errors.As(err, &common.ValidationError{}):
			app.setFlash(w, validationNotice(err))
			http.Redirect(w, r, "/create_post", http.StatusSeeOther)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) editPostFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	post, err := app.blogService.GetPost(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.render(w, r, http.StatusOK, "edit_post", map[string]any{"Post": post})
}

func (app *application) editPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	post, err := app.blogService.GetPost(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	req := &blogservice.UpdatePostRequest{
		ID:       post.ID,
		Title:    r.PostFormValue("title"),
		Subtitle: r.PostFormValue("subtitle"),
		Body:     r.PostFormValue("body"),
		ImgURL:   r.PostFormValue("img_url"),
		Version:  post.Version,
	}

	_, err = app.blogService.UpdatePost(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrDuplicateTitle):
			app.setFlash(w, "A post with this title already exists.")
			http.Redirect(w, r, fmt.Sprintf("/edit_post/%d", id), http.StatusSeeOther)
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			app.setFlash(w, validationNotice(err))
			http.Redirect(w, r, fmt.Sprintf("/edit_post/%d", id), http.StatusSeeOther)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusSeeOther)
}

func (app *application) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.blogService.DeletePost(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) registerFormHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "register", nil)
}

func (app *application) registerHandler(w http.ResponseWriter, r *http.Request) {
	user, err := app.userService.RegisterUser(r.Context(), r.PostFormValue("name"), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrDuplicateEmail):
			app.setFlash(w, "User already exists.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		case errors.As(err, &common.ValidationError{}):
			app.setFlash(w, validationNotice(err))
			http.Redirect(w, r, "/register", http.StatusSeeOther)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// auto-login the fresh account
	session, err := app.userService.CreateSession(r.Context(), user.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.setSessionCookie(w, session.Plain, session.Expiry)
	app.setFlash(w, "You have successfully registered. Happy commenting.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) loginFormHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "login", nil)
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	user, err := app.userService.Authenticate(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrNotFound):
			app.setFlash(w, "Incorrect email.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		case errors.Is(err, userservice.ErrAuthenticationFailure):
			app.setFlash(w, "Incorrect password.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		case errors.As(err, &common.ValidationError{}):
			app.setFlash(w, validationNotice(err))
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	session, err := app.userService.CreateSession(r.Context(), user.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.setSessionCookie(w, session.Plain, session.Expiry)
	if user.IsAdmin() {
		app.setFlash(w, "Administrator has successfully logged in.")
	} else {
		app.setFlash(w, "You have successfully logged in.")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if err := app.userService.DeleteSession(r.Context(), cookie.Value); err != nil {
			app.logError(r, err)
		}
	}

	app.clearSessionCookie(w)
	app.setFlash(w, "You have successfully logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// validationNotice flattens a ValidationError into a single flash line with
// a stable field order.
func validationNotice(err error) string {
	var validationErr common.ValidationError
	if !errors.As(err, &validationErr) {
		return "Invalid input."
	}

	fields := make([]string, 0, len(validationErr.Errors))
	for field := range validationErr.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s %s", field, validationErr.Errors[field]))
	}

	return strings.Join(parts, "; ")
}
