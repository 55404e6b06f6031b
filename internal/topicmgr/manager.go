package topicmgr

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	ErrInvalidTopic   = errors.New("invalid topic")
	ErrDuplicateTopic = errors.New("topic already registered")
)

// Manager is the catalogue of registered topics. It is safe for concurrent use.
type Manager struct {
	mu     sync.RWMutex
	topics map[string]Topic
}

func NewManager() *Manager {
	return &Manager{topics: make(map[string]Topic)}
}

// Register validates topic and adds it. Errors wrap ErrInvalidTopic or
// ErrDuplicateTopic.
func (m *Manager) Register(topic Topic) error {
	if err := ValidateDefinition(topic); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTopic, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	name := topic.Name()
	if _, taken := m.topics[name]; taken {
		return fmt.Errorf("%w: %s", ErrDuplicateTopic, name)
	}
	m.topics[name] = topic
	return nil
}

// MustRegister is Register for package-level declarations.
func (m *Manager) MustRegister(topic Topic) {
	if err := m.Register(topic); err != nil {
		panic(err)
	}
}

func (m *Manager) Get(name string) (Topic, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.topics[name]
	return t, ok
}

// List returns all topics sorted by name.
func (m *Manager) List() []Topic {
	return m.matching(func(Topic) bool { return true })
}

func (m *Manager) ListByModule(module string) []Topic {
	return m.matching(func(t Topic) bool { return t.Module() == module })
}

func (m *Manager) ListByScope(scope TopicScope) []Topic {
	return m.matching(func(t Topic) bool { return t.Scope() == scope })
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.topics)
}

func (m *Manager) matching(keep func(Topic) bool) []Topic {
	m.mu.RLock()
	out := make([]Topic, 0, len(m.topics))
	for _, t := range m.topics {
		if keep(t) {
			out = append(out, t)
		}
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b Topic) int { return strings.Compare(a.Name(), b.Name()) })
	return out
}

var (
	defaultOnce sync.Once
	defaultMgr  *Manager
)

// Default is the process-wide catalogue that pubsub events register with.
func Default() *Manager {
	defaultOnce.Do(func() { defaultMgr = NewManager() })
	return defaultMgr
}
