package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/screen"
	"github.com/aussiebroadwan/usermgmt/pkg/adminsdk"
	"github.com/aussiebroadwan/usermgmt/pkg/httpx"
	"github.com/aussiebroadwan/usermgmt/pkg/slogx"
)

// SessionCookie names the cookie that carries the session id for browsers.
const SessionCookie = "usermgmt_session"

type sessionKey struct{}

// SessionMiddleware resolves the caller's session from the X-Session-ID
// header or the session cookie, creating one when neither names a live
// session. The id is written back on both so either kind of client can keep
// it.
func SessionMiddleware(reg *screen.Registry) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(adminsdk.SessionHeader)
			if id == "" {
				if c, err := r.Cookie(SessionCookie); err == nil {
					id = c.Value
				}
			}

			sess := reg.Get(r.Context(), id)

			w.Header().Set(adminsdk.SessionHeader, sess.ID.String())
			if id != sess.ID.String() {
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    sess.ID.String(),
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := slogx.With(r.Context(), "session_id", sess.ID.String())
			ctx = context.WithValue(ctx, sessionKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session resolved by SessionMiddleware.
func SessionFromContext(ctx context.Context) (*screen.Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(*screen.Session)
	return sess, ok
}

// mustSession is for handlers that are only mounted behind SessionMiddleware.
func mustSession(r *http.Request) *screen.Session {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		panic("usermgmt/http: handler mounted without SessionMiddleware")
	}
	return sess
}
