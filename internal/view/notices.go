package view

import (
	"sync"

	"github.com/nfrund/examwhispers/internal/domain"
)

// maxNotices bounds the queue for tabs that never fetch their notices.
const maxNotices = 16

// Notices queues transient notifications until the next render drains them.
type Notices struct {
	mu      sync.Mutex
	pending []domain.Notice
}

func NewNotices() *Notices {
	return &Notices{}
}

// ShowMessage queues a notification.
func (n *Notices) ShowMessage(text string, kind domain.MessageKind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.pending = append(n.pending, domain.Notice{Text: text, Kind: kind})
	if len(n.pending) > maxNotices {
		n.pending = n.pending[len(n.pending)-maxNotices:]
	}
}

// Drain returns the queued notices in order and empties the queue.
func (n *Notices) Drain() []domain.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := n.pending
	n.pending = nil
	return out
}

// Pending returns a copy of the queue without clearing it.
func (n *Notices) Pending() []domain.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Notice(nil), n.pending...)
}
