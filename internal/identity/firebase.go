package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nfrund/examwhispers/internal/domain"
)

// DefaultFirebaseAuthURL is the Identity Toolkit endpoint used by hosted projects.
const DefaultFirebaseAuthURL = "https://identitytoolkit.googleapis.com"

// restErrorCodes maps Identity Toolkit REST error codes to the auth/<code>
// identifiers the browser SDK reports.
var restErrorCodes = map[string]string{
	"EMAIL_NOT_FOUND":             "user-not-found",
	"INVALID_PASSWORD":            "wrong-password",
	"INVALID_LOGIN_CREDENTIALS":   "invalid-credential",
	"USER_DISABLED":               "user-disabled",
	"EMAIL_EXISTS":                "email-already-in-use",
	"OPERATION_NOT_ALLOWED":       "operation-not-allowed",
	"TOO_MANY_ATTEMPTS_TRY_LATER": "too-many-requests",
	"INVALID_EMAIL":               "invalid-email",
	"MISSING_EMAIL":               "missing-email",
	"MISSING_PASSWORD":            "missing-password",
	"WEAK_PASSWORD":               "weak-password",
	"INVALID_API_KEY":             "api-key-not-valid",
	"API_KEY_INVALID":             "api-key-not-valid",
}

// FirebaseProvider signs sessions in against Firebase Authentication's REST API.
// Sign-out is local: the hosted service keeps no per-browser state for us.
type FirebaseProvider struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	sessions *Sessions
	logger   *slog.Logger
}

// NewFirebaseProvider creates a provider. An empty baseURL selects the hosted endpoint.
func NewFirebaseProvider(apiKey, baseURL string, sessions *Sessions) *FirebaseProvider {
	if baseURL == "" {
		baseURL = DefaultFirebaseAuthURL
	}
	return &FirebaseProvider{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: 15 * time.Second},
		sessions: sessions,
		logger:   slog.Default().With("provider", "firebase"),
	}
}

type passwordRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type passwordResponse struct {
	IDToken     string `json:"idToken"`
	Email       string `json:"email"`
	LocalID     string `json:"localId"`
	DisplayName string `json:"displayName"`
}

type restError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *FirebaseProvider) SignIn(ctx context.Context, sessionID string, creds domain.Credentials) (*domain.User, error) {
	return p.authenticate(ctx, sessionID, "signInWithPassword", creds)
}

func (p *FirebaseProvider) CreateAccount(ctx context.Context, sessionID string, creds domain.Credentials) (*domain.User, error) {
	return p.authenticate(ctx, sessionID, "signUp", creds)
}

func (p *FirebaseProvider) SignOut(ctx context.Context, sessionID string) error {
	if err := p.sessions.Set(ctx, sessionID, nil); err != nil {
		p.logger.Error("Failed to publish sign-out", "session_id", sessionID, "error", err)
	}
	return nil
}

func (p *FirebaseProvider) CurrentUser(sessionID string) *domain.User {
	return p.sessions.Current(sessionID)
}

func (p *FirebaseProvider) OnAuthStateChanged(sessionID string, fn domain.AuthStateFunc) func() {
	return p.sessions.Observe(sessionID, fn)
}

func (p *FirebaseProvider) authenticate(ctx context.Context, sessionID, method string, creds domain.Credentials) (*domain.User, error) {
	body, err := json.Marshal(passwordRequest{
		Email:             creds.Email,
		Password:          creds.Password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, domain.NewProviderError("internal-error", err)
	}

	endpoint := fmt.Sprintf("%s/v1/accounts:%s?key=%s", p.baseURL, method, url.QueryEscape(p.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewProviderError("internal-error", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("Identity Toolkit request failed", "method", method, "error", err)
		return nil, domain.NewProviderError("network-request-failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var rerr restError
		if err := json.NewDecoder(resp.Body).Decode(&rerr); err != nil {
			return nil, domain.NewProviderError("internal-error", err)
		}
		return nil, mapRESTError(rerr.Error.Message)
	}

	var out passwordResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, domain.NewProviderError("internal-error", err)
	}

	user := userFromToken(out)
	if err := p.sessions.Set(ctx, sessionID, user); err != nil {
		p.logger.Error("Failed to publish auth state", "session_id", sessionID, "error", err)
	}
	return user, nil
}

// mapRESTError turns "WEAK_PASSWORD : Password should be at least 6 characters"
// into the SDK's "Firebase: Password should be at least 6 characters (auth/weak-password)."
func mapRESTError(message string) *domain.ProviderError {
	code, detail, _ := strings.Cut(message, ":")
	code = strings.TrimSpace(code)
	detail = strings.TrimSpace(detail)

	sdkCode, ok := restErrorCodes[code]
	if !ok {
		sdkCode = "internal-error"
	}
	if detail != "" {
		return domain.NewProviderErrorWithDetail(sdkCode, strings.TrimSuffix(detail, "."))
	}
	return domain.NewProviderError(sdkCode, nil)
}

// userFromToken prefers the idToken's claims over the response fields.
// The signature is not verified.
func userFromToken(resp passwordResponse) *domain.User {
	user := &domain.User{
		UID:         resp.LocalID,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
	}
	if resp.IDToken == "" {
		return user
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(resp.IDToken, claims); err != nil {
		return user
	}
	if uid, ok := claims["user_id"].(string); ok && uid != "" {
		user.UID = uid
	} else if sub, err := claims.GetSubject(); err == nil && sub != "" {
		user.UID = sub
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		user.Email = email
	}
	if name, ok := claims["name"].(string); ok && name != "" {
		user.DisplayName = name
	}
	return user
}
