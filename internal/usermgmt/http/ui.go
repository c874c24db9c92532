package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/notify"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/screen"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/view"
	"github.com/aussiebroadwan/usermgmt/pkg/httpx"
	"github.com/aussiebroadwan/usermgmt/pkg/slogx"
)

// UIHandler serves the HTML screen. Every form posts to an action that
// updates the session's screen and redirects back to the page, which shows
// the outcome as toasts.
type UIHandler struct {
	Renderer *view.Renderer
}

func (h *UIHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	var buf bytes.Buffer
	err := h.Renderer.Render(&buf, view.Page{
		Screen: sess.Screen.Snapshot(),
		Toasts: sess.Feed.Drain(),
	})
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to render page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *UIHandler) HandleGroup(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)
	err := sess.Screen.SelectGroup(r.Context(), r.PostFormValue("group"))
	if errors.Is(err, domain.ErrGroupNotFound) {
		h.reportError(r, sess, err)
	}
	redirectHome(w, r)
}

func (h *UIHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)
	sess.Screen.SetSearchTerm(r.PostFormValue("term"))
	redirectHome(w, r)
}

func (h *UIHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	role, err := domain.ParseRole(r.PostFormValue("role"))
	if err != nil {
		h.reportError(r, sess, err)
		redirectHome(w, r)
		return
	}
	checked, _ := strconv.ParseBool(r.PostFormValue("checked"))

	// The page refreshes while the toggle is pending; nothing waits here.
	if _, err := sess.Screen.StartToggle(context.WithoutCancel(r.Context()), r.PostFormValue("email"), role, checked); err != nil {
		slogx.FromContext(r.Context()).Debug("toggle rejected", "error", err)
	}
	redirectHome(w, r)
}

func (h *UIHandler) HandleOpenDialog(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)
	_ = sess.Screen.OpenAddUserDialog(r.Context())
	redirectHome(w, r)
}

// HandleCloseDialog keeps whatever was typed so reopening the dialog shows it.
func (h *UIHandler) HandleCloseDialog(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	if err := r.ParseForm(); err == nil && r.PostForm.Has("email") {
		sess.Screen.SetDialogEmail(r.PostForm.Get("email"))
		roles, _ := parseRoles(r.PostForm["roles"])
		for _, role := range domain.AllRoles() {
			_ = sess.Screen.SetDialogRole(role, roles.Has(role))
		}
	}
	sess.Screen.CloseAddUserDialog()
	redirectHome(w, r)
}

func (h *UIHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	if err := r.ParseForm(); err != nil {
		h.reportError(r, sess, err)
		redirectHome(w, r)
		return
	}
	roles, err := parseRoles(r.PostForm["roles"])
	if err != nil {
		h.reportError(r, sess, err)
		redirectHome(w, r)
		return
	}

	// Failures are already on the feed; the dialog stays open with the input.
	_, _ = sess.Screen.AddUser(r.Context(), r.PostForm.Get("email"), roles)
	redirectHome(w, r)
}

// reportError puts errors the screen does not report itself on the feed.
func (h *UIHandler) reportError(r *http.Request, sess *screen.Session, err error) {
	slogx.FromContext(r.Context()).Warn("ui action failed", "error", err)
	sess.Feed.Notify(r.Context(), notify.Stamp(notify.Error("%s", apiError(err).Message)))
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
