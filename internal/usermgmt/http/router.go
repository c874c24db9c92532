package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/screen"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/view"
	"github.com/aussiebroadwan/usermgmt/pkg/httpx"
	"github.com/aussiebroadwan/usermgmt/pkg/slogx"

	_ "github.com/aussiebroadwan/usermgmt/api/usermgmt" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// GroupLister provides the group list for /v1/groups.
type GroupLister interface {
	ListGroups(ctx context.Context) ([]domain.Group, error)
}

// Pinger checks the backing database for /readyz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	db       Pinger
	Groups   GroupLister
	Sessions *screen.Registry
	Renderer *view.Renderer
}

func NewRouter(buildVersion string, db Pinger, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		db:           db,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerGroups()
	r.registerScreen()
	r.registerUI()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			User Management Service API
//	@version		0.1.0
//	@description	Per-session user management screen: pick a group, filter its users by email, toggle roles and add users.
//	@description
//	@description	Every /v1/screen request belongs to a session, carried by the usermgmt_session cookie or the X-Session-ID header. A request without one starts a new session.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/usermgmt
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerGroups() {
	h := &GroupsHandler{Groups: r.Groups}

	r.Mux.Handle("GET /v1/groups",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerScreen() {
	h := &ScreenHandler{}
	toggles := &ToggleHandler{}
	users := &CreateUserHandler{}

	read := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.RateLimitByIP(httpx.LenientLimit),
			SessionMiddleware(r.Sessions),
		)
	}
	write := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.RateLimitByIP(httpx.ModerateLimit),
			SessionMiddleware(r.Sessions),
		)
	}

	r.Mux.Handle("GET /v1/screen", read(h.HandleGet))
	r.Mux.Handle("PUT /v1/screen/group", write(h.HandleSelectGroup))
	r.Mux.Handle("PUT /v1/screen/search", read(h.HandleSearch))
	r.Mux.Handle("POST /v1/screen/dialog", write(h.HandleOpenDialog))
	r.Mux.Handle("DELETE /v1/screen/dialog", write(h.HandleCloseDialog))
	r.Mux.Handle("GET /v1/screen/notifications", read(h.HandleNotifications))
	r.Mux.Handle("POST /v1/screen/toggles", write(toggles.ServeHTTP))
	r.Mux.Handle("POST /v1/screen/users", write(users.ServeHTTP))
}

func (r *Router) registerUI() {
	h := &UIHandler{Renderer: r.Renderer}

	page := httpx.Chain(http.HandlerFunc(h.HandlePage),
		httpx.RateLimitByIP(httpx.LenientLimit),
		SessionMiddleware(r.Sessions),
	)
	action := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.RateLimitByIP(httpx.ModerateLimit),
			SessionMiddleware(r.Sessions),
		)
	}

	r.Mux.Handle("GET /{$}", page)
	r.Mux.Handle("POST /ui/group", action(h.HandleGroup))
	r.Mux.Handle("POST /ui/search", action(h.HandleSearch))
	r.Mux.Handle("POST /ui/toggle", action(h.HandleToggle))
	r.Mux.Handle("POST /ui/dialog/open", action(h.HandleOpenDialog))
	r.Mux.Handle("POST /ui/dialog/close", action(h.HandleCloseDialog))
	r.Mux.Handle("POST /ui/users", action(h.HandleCreateUser))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.db),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
