package authview

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/nfrund/examwhispers/internal/domain"
	"github.com/nfrund/examwhispers/internal/pubsub"
)

// fakeProvider notifies observers synchronously and records every call.
type fakeProvider struct {
	mu sync.Mutex

	current   *domain.User
	observers map[int]domain.AuthStateFunc
	nextID    int

	signInErr  error
	createErr  error
	signOutErr error

	// gate, when set, holds provider calls until it is closed.
	gate chan struct{}
	// silent suppresses observer notifications on success.
	silent bool

	signInCalls  int
	createCalls  int
	signOutCalls int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{observers: make(map[int]domain.AuthStateFunc)}
}

func (p *fakeProvider) wait() {
	p.mu.Lock()
	gate := p.gate
	p.mu.Unlock()
	if gate != nil {
		<-gate
	}
}

func (p *fakeProvider) SignIn(ctx context.Context, sessionID string, creds domain.Credentials) (*domain.User, error) {
	p.mu.Lock()
	p.signInCalls++
	err := p.signInErr
	p.mu.Unlock()

	p.wait()
	if err != nil {
		return nil, err
	}
	return p.setUser(&domain.User{UID: "uid-" + creds.Email, Email: creds.Email}), nil
}

func (p *fakeProvider) CreateAccount(ctx context.Context, sessionID string, creds domain.Credentials) (*domain.User, error) {
	p.mu.Lock()
	p.createCalls++
	err := p.createErr
	p.mu.Unlock()

	p.wait()
	if err != nil {
		return nil, err
	}
	return p.setUser(&domain.User{UID: "new-" + creds.Email, Email: creds.Email}), nil
}

func (p *fakeProvider) SignOut(ctx context.Context, sessionID string) error {
	p.mu.Lock()
	p.signOutCalls++
	err := p.signOutErr
	p.mu.Unlock()

	if err != nil {
		return err
	}
	p.setUser(nil)
	return nil
}

func (p *fakeProvider) CurrentUser(sessionID string) *domain.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *fakeProvider) OnAuthStateChanged(sessionID string, fn domain.AuthStateFunc) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.observers[id] = fn
	current := p.current
	p.mu.Unlock()

	fn(current)
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.observers, id)
	}
}

func (p *fakeProvider) setUser(u *domain.User) *domain.User {
	p.mu.Lock()
	p.current = u
	var fns []domain.AuthStateFunc
	if !p.silent {
		for _, fn := range p.observers {
			fns = append(fns, fn)
		}
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(u)
	}
	return u
}

// emit pushes a transition as if it came from elsewhere, e.g. another tab.
func (p *fakeProvider) emit(u *domain.User) {
	p.setUser(u)
}

func (p *fakeProvider) calls() (signIn, create, signOut int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.signInCalls, p.createCalls, p.signOutCalls
}

func (p *fakeProvider) observerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.observers)
}

// recordingPublisher keeps published messages in memory.
type recordingPublisher struct {
	mu   sync.Mutex
	msgs []pubsub.Message
}

func (r *recordingPublisher) Publish(ctx context.Context, msg pubsub.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recordingPublisher) Close() error { return nil }

func (r *recordingPublisher) rendered() []Rendered {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Rendered, 0, len(r.msgs))
	for _, m := range r.msgs {
		var ev Rendered
		if err := json.Unmarshal(m.Payload, &ev); err == nil {
			out = append(out, ev)
		}
	}
	return out
}
