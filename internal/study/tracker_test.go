package study

import (
	"context"
	"testing"
	"time"

	"github.com/nfrund/examwhispers/internal/domain"
	"github.com/nfrund/examwhispers/internal/pubsub"
	"github.com/nfrund/examwhispers/internal/storage"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPublisher struct {
	msgs []pubsub.Message
}

func (p *memPublisher) Publish(ctx context.Context, msg pubsub.Message) error {
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *memPublisher) Close() error { return nil }

func newTestTracker(t *testing.T) (*Tracker, afero.Fs, *memPublisher) {
	t.Helper()
	fs := afero.NewMemMapFs()
	pub := &memPublisher{}
	tr := NewTracker(storage.NewAferoStore(fs), pub)
	tr.now = func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }
	return tr, fs, pub
}

func TestTracker_LogAndAll(t *testing.T) {
	tr, _, pub := newTestTracker(t)
	ctx := context.Background()

	assert.Empty(t, tr.All(ctx), "missing file reads as empty")

	_, err := tr.Log(ctx, "s1", "What is air?", "A mixture of gases.", nil)
	require.NoError(t, err)

	attempt := Grade(CannedTutor{}.GenerateQuiz("air"), "Oxygen")
	_, err = tr.Log(ctx, "s1", "What is air?", "Nitrogen", &attempt)
	require.NoError(t, err)

	history := tr.All(ctx)
	require.Len(t, history, 2)
	assert.Equal(t, "What is air?", history[0].Question)
	assert.Nil(t, history[0].QuizAttempt)
	require.NotNil(t, history[1].QuizAttempt)
	assert.False(t, history[1].QuizAttempt.IsCorrect)
	assert.Equal(t, time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC), history[1].Timestamp)

	require.Len(t, pub.msgs, 2)
	assert.Equal(t, TopicHistoryLogged.Name(), pub.msgs[0].Topic)
	assert.Equal(t, "s1", pub.msgs[0].SessionID)
}

func TestTracker_CorruptFileReadsAsEmpty(t *testing.T) {
	tr, fs, _ := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, afero.WriteFile(fs, HistoryFile, []byte("{not json"), 0o644))
	assert.Empty(t, tr.All(ctx))

	_, err := tr.Log(ctx, "s1", "q", "a", nil)
	require.NoError(t, err)
	assert.Len(t, tr.All(ctx), 1, "logging replaces the corrupt document")
}

func TestTracker_Clear(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()

	_, err := tr.Log(ctx, "s1", "q", "a", nil)
	require.NoError(t, err)

	require.NoError(t, tr.Clear(ctx))
	assert.Empty(t, tr.All(ctx))
	assert.NoError(t, tr.Clear(ctx), "clearing twice is fine")
}

func TestCannedTutor(t *testing.T) {
	tutor := CannedTutor{}

	assert.Equal(t, "Air is a mixture of gases like nitrogen and oxygen. You asked: 'why?'", tutor.Ask(" why? "))

	q := tutor.GenerateQuiz("anything")
	assert.Len(t, q.Options, 4)
	assert.Contains(t, q.Options, q.Answer)

	assert.True(t, Grade(q, "Nitrogen").IsCorrect)
	assert.Equal(t, domain.QuizAttempt{
		QuizQuestion:   q.Question,
		SelectedOption: "Hydrogen",
		CorrectAnswer:  "Nitrogen",
	}, Grade(q, "Hydrogen"))
}

type brokenTutor struct{ CannedTutor }

func (brokenTutor) GenerateQuiz(string) domain.Quiz {
	return domain.Quiz{Question: "q", Options: []string{"a", "b"}, Answer: "z"}
}

func TestGenerateQuiz(t *testing.T) {
	q, err := GenerateQuiz(CannedTutor{}, "air")
	require.NoError(t, err)
	assert.Equal(t, "Nitrogen", q.Answer)

	_, err = GenerateQuiz(brokenTutor{}, "air")
	assert.ErrorIs(t, err, domain.ErrInvalidQuiz)
}
