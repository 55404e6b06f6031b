package authview

import (
	"context"
	"testing"
	"time"

	"github.com/nfrund/examwhispers/internal/domain"
	"github.com/nfrund/examwhispers/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GetReusesSessions(t *testing.T) {
	provider := newFakeProvider()
	m := NewManager(provider, nil, nil)
	defer m.Close()

	a := m.Get("s1")
	b := m.Get("s1")
	c := m.Get("s2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 2, provider.observerCount())

	m.Close()
	assert.Zero(t, m.Len())
	assert.Zero(t, provider.observerCount())
}

func TestManager_PushesRenderedView(t *testing.T) {
	provider := newFakeProvider()
	pub := &recordingPublisher{}
	m := NewManager(provider, pub, nil)
	defer m.Close()

	s := m.Get("s1")
	require.Len(t, pub.rendered(), 1, "initial auth state is pushed")

	provider.emit(&domain.User{UID: "u1", Email: "a@b.co"})

	rendered := pub.rendered()
	require.Len(t, rendered, 2)
	last := rendered[1]
	assert.Equal(t, "s1", last.SessionID)
	assert.Contains(t, last.HTML, `hx-swap-oob="true"`)
	assert.Contains(t, last.HTML, `<section id="page-home" class="active page">`)

	assert.Equal(t, view.PageHome, s.Pages.Active())
}

func TestSession_ViewDrainsNotices(t *testing.T) {
	m := NewManager(newFakeProvider(), nil, nil)
	defer m.Close()

	s := m.Get("s1")
	_, err := s.Controller.Submit(context.Background(), "", "")
	require.ErrorIs(t, err, domain.ErrMissingInput)

	first := s.View()
	assert.Equal(t, []domain.Notice{{Text: MsgMissingInput, Kind: domain.MessageError}}, first.Notices)
	assert.Empty(t, s.View().Notices)
}

func TestManager_Refresh(t *testing.T) {
	pub := &recordingPublisher{}
	m := NewManager(newFakeProvider(), pub, nil)
	defer m.Close()

	assert.False(t, m.Refresh("unknown"))
	assert.Empty(t, pub.rendered())

	m.Get("s1")
	require.True(t, m.Refresh("s1"))

	rendered := pub.rendered()
	require.Len(t, rendered, 2)
	assert.Equal(t, rendered[0].HTML, rendered[1].HTML)
}

func TestManager_Sweep(t *testing.T) {
	provider := newFakeProvider()
	m := NewManager(provider, nil, nil)
	defer m.Close()

	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m.Get("idle")
	m.Get("open-tab")
	m.Get("recent")
	require.Equal(t, 3, provider.observerCount())

	now = now.Add(45 * time.Minute)
	m.Touch("recent")

	connected := func(id string) int {
		if id == "open-tab" {
			return 1
		}
		return 0
	}
	removed := m.Sweep(30*time.Minute, connected)

	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 2, provider.observerCount(), "the evicted view no longer observes auth state")
	assert.False(t, m.Refresh("idle"))
	assert.True(t, m.Refresh("open-tab"))
}

func TestManager_Remove(t *testing.T) {
	provider := newFakeProvider()
	m := NewManager(provider, nil, nil)
	defer m.Close()

	first := m.Get("s1")
	require.True(t, m.Remove("s1"))
	assert.False(t, m.Remove("s1"))
	assert.Zero(t, provider.observerCount())

	assert.NotSame(t, first, m.Get("s1"), "a later request builds a fresh view")
	assert.Equal(t, 1, provider.observerCount())
}

func TestManager_RunSweeperStopsWithContext(t *testing.T) {
	m := NewManager(newFakeProvider(), nil, nil)
	defer m.Close()
	m.Get("s1")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.RunSweeper(ctx, 5*time.Millisecond, 0, nil)
		close(done)
	}()

	assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
