package study

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/nfrund/examwhispers/internal/domain"
	"github.com/nfrund/examwhispers/internal/pubsub"
	"github.com/nfrund/examwhispers/internal/storage"
)

// HistoryFile is the document the tracker keeps its entries in.
const HistoryFile = "history.json"

// TopicHistoryLogged is published after an entry is appended.
var TopicHistoryLogged = pubsub.NewEvent[domain.HistoryEntry](
	"study.history.logged",
	"A question, answer or quiz attempt was added to the study history",
)

// Tracker appends study sessions to a JSON history document.
type Tracker struct {
	mu        sync.Mutex
	store     storage.Store
	publisher pubsub.Publisher
	now       func() time.Time
	logger    *slog.Logger
}

// NewTracker creates a tracker. A nil publisher disables the logged event.
func NewTracker(store storage.Store, publisher pubsub.Publisher) *Tracker {
	return &Tracker{
		store:     store,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    slog.Default().With("service", "study"),
	}
}

// Log appends an entry, stamping it with the current time.
func (t *Tracker) Log(ctx context.Context, sessionID, question, answer string, attempt *domain.QuizAttempt) (domain.HistoryEntry, error) {
	entry := domain.HistoryEntry{
		Timestamp:   t.now(),
		Question:    question,
		Answer:      answer,
		QuizAttempt: attempt,
	}

	t.mu.Lock()
	history := t.read(ctx)
	history = append(history, entry)
	err := storage.WriteJSON(ctx, t.store, HistoryFile, history)
	t.mu.Unlock()
	if err != nil {
		return domain.HistoryEntry{}, err
	}

	if t.publisher != nil {
		if err := pubsub.Publish(ctx, t.publisher, TopicHistoryLogged, sessionID, entry); err != nil {
			t.logger.Warn("Failed to publish history entry", "error", err)
		}
	}
	return entry, nil
}

// All returns every logged entry, oldest first.
func (t *Tracker) All(ctx context.Context) []domain.HistoryEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.read(ctx)
}

// Clear removes the history document.
func (t *Tracker) Clear(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.Delete(ctx, HistoryFile)
}

// read treats a missing or unreadable document as an empty history.
func (t *Tracker) read(ctx context.Context) []domain.HistoryEntry {
	var history []domain.HistoryEntry
	err := storage.ReadJSON(ctx, t.store, HistoryFile, &history)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return []domain.HistoryEntry{}
	case err != nil:
		t.logger.Warn("History is corrupted, starting with an empty history", "error", err)
		return []domain.HistoryEntry{}
	}
	return history
}
