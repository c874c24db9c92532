package notify

import (
	"context"
	"sync"
)

// DefaultFeedSize bounds a feed nobody drains.
const DefaultFeedSize = 50

// Feed queues notifications until a presentation layer drains them. When the
// feed is full the oldest entry is dropped.
type Feed struct {
	mu    sync.Mutex
	items []Notification
	size  int
}

func NewFeed(size int) *Feed {
	if size <= 0 {
		size = DefaultFeedSize
	}
	return &Feed{size: size}
}

func (f *Feed) Notify(_ context.Context, n Notification) {
	n = Stamp(n)

	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.items) == f.size {
		copy(f.items, f.items[1:])
		f.items = f.items[:len(f.items)-1]
	}
	f.items = append(f.items, n)
}

// Drain returns queued notifications oldest first and empties the feed.
func (f *Feed) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := f.items
	f.items = nil
	return out
}

func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
