package identity

import (
	"sync"
	"testing"

	"github.com/nfrund/examwhispers/internal/domain"
	"github.com/nfrund/examwhispers/internal/pubsub"
	"github.com/stretchr/testify/require"
)

// newTestSessions wires a tracker to a fresh in-process bus.
func newTestSessions(t *testing.T) *Sessions {
	t.Helper()

	bus := pubsub.NewBus()
	sessions, err := NewSessions(bus, bus)
	require.NoError(t, err)

	t.Cleanup(func() {
		sessions.Close()
		_ = bus.Close()
	})
	return sessions
}

// stateRecorder collects every value an auth-state observer receives.
type stateRecorder struct {
	mu    sync.Mutex
	calls []*domain.User
}

func (r *stateRecorder) observe(user *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, user)
}

func (r *stateRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *stateRecorder) last() *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[len(r.calls)-1]
}
