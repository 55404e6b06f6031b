package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nfrund/examwhispers/internal/domain"
	"github.com/nfrund/examwhispers/internal/storage"
)

// AccountsFile is the document the local provider keeps its accounts in.
const AccountsFile = "accounts.json"

// MinPasswordLength matches the hosted provider's weak-password threshold.
const MinPasswordLength = 6

type account struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName,omitempty"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

type accountsDoc struct {
	Accounts []account `json:"accounts"`
}

// LocalProvider is a self-contained identity provider backed by a JSON
// document of bcrypt-hashed accounts. It reports failures with the same
// messages as the hosted provider so the auth view cannot tell them apart.
type LocalProvider struct {
	mu       sync.Mutex
	store    storage.Store
	sessions *Sessions
	cost     int
	logger   *slog.Logger
}

// LocalOption configures a LocalProvider.
type LocalOption func(*LocalProvider)

// WithBcryptCost overrides the hashing cost, mostly so tests run quickly.
func WithBcryptCost(cost int) LocalOption {
	return func(p *LocalProvider) { p.cost = cost }
}

// NewLocalProvider creates a provider that stores accounts in store. Tools that
// only call Register may pass nil sessions.
func NewLocalProvider(store storage.Store, sessions *Sessions, opts ...LocalOption) *LocalProvider {
	p := &LocalProvider{
		store:    store,
		sessions: sessions,
		cost:     bcrypt.DefaultCost,
		logger:   slog.Default().With("provider", "local"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SignIn checks the credentials and binds the account to the session.
func (p *LocalProvider) SignIn(ctx context.Context, sessionID string, creds domain.Credentials) (*domain.User, error) {
	email, err := normalizeEmail(creds.Email)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	doc, err := p.load(ctx)
	p.mu.Unlock()
	if err != nil {
		return nil, domain.NewProviderError("internal-error", err)
	}

	acct, ok := doc.find(email)
	if !ok {
		return nil, domain.NewProviderError("invalid-credential", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, domain.NewProviderError("invalid-credential", err)
	}

	user := acct.user()
	if err := p.sessions.Set(ctx, sessionID, user); err != nil {
		p.logger.Error("Failed to publish sign-in", "session_id", sessionID, "error", err)
	}
	return user, nil
}

// CreateAccount registers a new account and signs the session into it.
func (p *LocalProvider) CreateAccount(ctx context.Context, sessionID string, creds domain.Credentials) (*domain.User, error) {
	user, err := p.Register(ctx, creds)
	if err != nil {
		return nil, err
	}
	if err := p.sessions.Set(ctx, sessionID, user); err != nil {
		p.logger.Error("Failed to publish sign-up", "session_id", sessionID, "error", err)
	}
	return user, nil
}

// Register creates an account without touching any session. The CLI uses it
// to seed accounts.
func (p *LocalProvider) Register(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	email, err := normalizeEmail(creds.Email)
	if err != nil {
		return nil, err
	}
	if len(creds.Password) < MinPasswordLength {
		return nil, domain.NewProviderErrorWithDetail("weak-password",
			fmt.Sprintf("Password should be at least %d characters", MinPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), p.cost)
	if err != nil {
		return nil, domain.NewProviderError("internal-error", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	doc, err := p.load(ctx)
	if err != nil {
		return nil, domain.NewProviderError("internal-error", err)
	}
	if _, exists := doc.find(email); exists {
		return nil, domain.NewProviderError("email-already-in-use", nil)
	}

	acct := account{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	doc.Accounts = append(doc.Accounts, acct)
	if err := storage.WriteJSON(ctx, p.store, AccountsFile, doc); err != nil {
		return nil, domain.NewProviderError("internal-error", err)
	}

	p.logger.Info("Account created", "uid", acct.UID)
	return acct.user(), nil
}

// SignOut clears the session's user. It never fails for the local backend.
func (p *LocalProvider) SignOut(ctx context.Context, sessionID string) error {
	if err := p.sessions.Set(ctx, sessionID, nil); err != nil {
		p.logger.Error("Failed to publish sign-out", "session_id", sessionID, "error", err)
	}
	return nil
}

func (p *LocalProvider) CurrentUser(sessionID string) *domain.User {
	return p.sessions.Current(sessionID)
}

func (p *LocalProvider) OnAuthStateChanged(sessionID string, fn domain.AuthStateFunc) func() {
	return p.sessions.Observe(sessionID, fn)
}

func (p *LocalProvider) load(ctx context.Context) (*accountsDoc, error) {
	doc := &accountsDoc{}
	err := storage.ReadJSON(ctx, p.store, AccountsFile, doc)
	if errors.Is(err, storage.ErrNotFound) {
		return doc, nil
	}
	return doc, err
}

func (d *accountsDoc) find(email string) (account, bool) {
	for _, a := range d.Accounts {
		if a.Email == email {
			return a, true
		}
	}
	return account{}, false
}

func (a account) user() *domain.User {
	return &domain.User{UID: a.UID, Email: a.Email, DisplayName: a.DisplayName}
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil || addr.Address != strings.TrimSpace(raw) {
		return "", domain.NewProviderError("invalid-email", err)
	}
	return strings.ToLower(addr.Address), nil
}
