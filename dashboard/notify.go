package dashboard

import (
	"sync"
	"time"
)

// Notification levels.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
	NoticeInfo    = "info"
)

// DefaultNoticeTTL is how long a toast stays visible.
const DefaultNoticeTTL = 3 * time.Second

type Notice struct {
	Level   string
	Message string
}

// Notifier holds the transient toast notifications. Each notice dismisses
// itself after the TTL.
type Notifier struct {
	TTL time.Duration

	mu      sync.Mutex
	nextID  int
	notices map[int]Notice
}

// Push shows a notice and schedules its dismissal.
func (n *Notifier) Push(level, message string) {
	n.mu.Lock()
	if n.notices == nil {
		n.notices = map[int]Notice{}
	}
	n.nextID++
	id := n.nextID
	n.notices[id] = Notice{Level: level, Message: message}
	n.mu.Unlock()

	ttl := n.TTL
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	time.AfterFunc(ttl, func() {
		n.mu.Lock()
		delete(n.notices, id)
		n.mu.Unlock()
	})
}

// Active returns the notices currently on screen, oldest first.
func (n *Notifier) Active() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()

	active := []Notice{}
	for id := 1; id <= n.nextID; id++ {
		if notice, ok := n.notices[id]; ok {
			active = append(active, notice)
		}
	}
	return active
}
