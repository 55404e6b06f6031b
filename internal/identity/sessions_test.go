package identity

import (
	"context"
	"testing"
	"time"

	"github.com/nfrund/examwhispers/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_ObserveFiresImmediately(t *testing.T) {
	sessions := newTestSessions(t)
	ctx := context.Background()

	require.NoError(t, sessions.Set(ctx, "s1", &domain.User{UID: "u1", Email: "a@b.co"}))

	var rec stateRecorder
	unsubscribe := sessions.Observe("s1", rec.observe)
	defer unsubscribe()

	require.Equal(t, 1, rec.count())
	require.NotNil(t, rec.last())
	assert.Equal(t, "u1", rec.last().UID)
}

func TestSessions_TransitionsReachOnlyTheirSession(t *testing.T) {
	sessions := newTestSessions(t)
	ctx := context.Background()

	var one, two stateRecorder
	defer sessions.Observe("s1", one.observe)()
	defer sessions.Observe("s2", two.observe)()

	require.Nil(t, one.last(), "nobody is signed in yet")

	require.NoError(t, sessions.Set(ctx, "s1", &domain.User{UID: "u1"}))
	assert.Eventually(t, func() bool { return one.count() == 2 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "u1", one.last().UID)

	require.NoError(t, sessions.Set(ctx, "s1", nil))
	assert.Eventually(t, func() bool { return one.count() == 3 }, time.Second, 10*time.Millisecond)
	assert.Nil(t, one.last())

	assert.Equal(t, 1, two.count(), "other sessions only saw their initial state")
	assert.Nil(t, sessions.Current("s1"))
}

func TestSessions_Unsubscribe(t *testing.T) {
	sessions := newTestSessions(t)
	ctx := context.Background()

	var rec stateRecorder
	unsubscribe := sessions.Observe("s1", rec.observe)
	unsubscribe()

	require.NoError(t, sessions.Set(ctx, "s1", &domain.User{UID: "u1"}))

	assert.Never(t, func() bool { return rec.count() > 1 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestSessions_CurrentReturnsCopy(t *testing.T) {
	sessions := newTestSessions(t)
	require.NoError(t, sessions.Set(context.Background(), "s1", &domain.User{UID: "u1"}))

	u := sessions.Current("s1")
	u.UID = "mutated"

	assert.Equal(t, "u1", sessions.Current("s1").UID)
}
