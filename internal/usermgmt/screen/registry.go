package screen

import (
	"context"
	"sync"
	"time"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/notify"
	"github.com/aussiebroadwan/usermgmt/pkg/idx"
	"github.com/aussiebroadwan/usermgmt/pkg/slogx"
)

// Session pairs a screen with the feed its notifications are delivered to.
type Session struct {
	ID     idx.ID
	Screen *Screen
	Feed   *notify.Feed

	lastSeen time.Time
}

// Registry keeps one Session per browser or API client.
type Registry struct {
	// NewScreen builds the screen for a fresh session, wired to n.
	NewScreen func(n notify.Notifier) *Screen
	// Notifier, when set, also receives every session's notifications.
	Notifier notify.Notifier
	FeedSize int

	now func() time.Time

	mu       sync.Mutex
	sessions map[idx.ID]*Session
}

func NewRegistry(newScreen func(notify.Notifier) *Screen) *Registry {
	return &Registry{
		NewScreen: newScreen,
		FeedSize:  notify.DefaultFeedSize,
		now:       time.Now,
		sessions:  make(map[idx.ID]*Session),
	}
}

// Get returns the session for id, creating one when id is empty, malformed
// or unknown. The screen is initialised before it is handed out; a failed
// initialisation has already been reported on the session's feed and is
// retried on the next Get.
func (r *Registry) Get(ctx context.Context, id string) *Session {
	r.mu.Lock()
	sess := r.lookup(id)
	if sess == nil {
		feed := notify.NewFeed(r.FeedSize)
		sess = &Session{
			ID:   idx.New(),
			Feed: feed,
		}
		sess.Screen = r.NewScreen(notify.Tee(feed, r.Notifier))
		r.sessions[sess.ID] = sess
		slogx.FromContext(ctx).Debug("session created", "session_id", sess.ID)
	}
	sess.lastSeen = r.now()
	r.mu.Unlock()

	if err := sess.Screen.Init(ctx); err != nil {
		slogx.FromContext(ctx).Warn("screen init failed", "session_id", sess.ID, "error", err)
	}
	return sess
}

// lookup must be called with mu held.
func (r *Registry) lookup(id string) *Session {
	parsed, err := idx.Parse(id)
	if err != nil {
		return nil
	}
	return r.sessions[parsed]
}

// Evict drops sessions not seen for longer than idle. Sessions with toggles
// still in flight are kept.
func (r *Registry) Evict(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, sess := range r.sessions {
		if sess.lastSeen.After(cutoff) || sess.Screen.PendingCount() > 0 {
			continue
		}
		delete(r.sessions, id)
		n++
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Wait blocks until every toggle started in any session has resolved.
func (r *Registry) Wait() {
	r.mu.Lock()
	screens := make([]*Screen, 0, len(r.sessions))
	for _, sess := range r.sessions {
		screens = append(screens, sess.Screen)
	}
	r.mu.Unlock()

	for _, s := range screens {
		s.Wait()
	}
}
