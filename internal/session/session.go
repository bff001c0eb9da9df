package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/golang-jwt/jwt/v5"

	"sublate/internal/services"
)

// accountClaimNamespace is the JWT claim namespace carrying the ChatGPT
// account ID inside OAuth access tokens.
const accountClaimNamespace = "https://api.openai.com/auth"

// expiryWarningWindow is how close to expiry a token must be before Validate
// reports it as expiring soon.
const expiryWarningWindow = time.Hour

// Credentials holds the OAuth material extracted during authentication.
type Credentials struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresAt    string `json:"expiresAt,omitempty"`
	AccountID    string `json:"accountId,omitempty"`
}

// Session is the on-disk credential file written by the auth helper.
type Session struct {
	Provider    string      `json:"provider"`
	Timestamp   string      `json:"timestamp,omitempty"`
	Credentials Credentials `json:"credentials"`
	ExpiresAt   string      `json:"expiresAt,omitempty"`
}

// Status summarizes the validity of a session at a point in time.
type Status struct {
	HasExpiry    bool
	ExpiresAt    time.Time
	TimeLeft     time.Duration
	ExpiringSoon bool
}

// Load reads and decodes a session file.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "session", "load", fmt.Sprintf("session file not found: %s", path), err)
		}
		return nil, services.Wrap(services.ErrConfiguration, "session", "load", "failed to read session file", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "session", "load", "invalid session file format", err)
	}
	return &sess, nil
}

// Save writes the session atomically, guarded by a sibling lock file so
// concurrent runs do not interleave writes.
func Save(path string, sess *Session) error {
	if sess == nil {
		return services.Wrap(services.ErrValidation, "session", "save", "session is required", nil)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquire session lock: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}

// Validate checks token expiry against now. An expired token returns an
// error; a missing or unparseable expiry is treated as valid with no expiry
// information.
func (s *Session) Validate(now time.Time) (Status, error) {
	raw := s.expiresAtRaw()
	if raw == "" {
		return Status{}, nil
	}

	expiry, err := parseTimestamp(raw)
	if err != nil {
		return Status{}, nil
	}

	status := Status{
		HasExpiry: true,
		ExpiresAt: expiry,
		TimeLeft:  expiry.Sub(now),
	}
	if !expiry.After(now) {
		return status, services.Wrap(services.ErrValidation, "session", "validate", fmt.Sprintf("session token expired at %s", raw), nil)
	}
	status.ExpiringSoon = status.TimeLeft < expiryWarningWindow
	return status, nil
}

// AccessToken returns the OAuth access token.
func (s *Session) AccessToken() (string, error) {
	token := strings.TrimSpace(s.Credentials.AccessToken)
	if token == "" {
		return "", services.Wrap(services.ErrConfiguration, "session", "access token", "session file has no access token", nil)
	}
	return token, nil
}

// AccountID returns the ChatGPT account ID. It prefers the value stored in
// the credentials and falls back to decoding the access token JWT, where the
// ID lives under the api.openai.com auth claim namespace.
func (s *Session) AccountID() string {
	if id := strings.TrimSpace(s.Credentials.AccountID); id != "" {
		return id
	}
	return accountIDFromToken(s.Credentials.AccessToken)
}

func accountIDFromToken(token string) string {
	if strings.Count(token, ".") != 2 {
		return ""
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	// The token is decoded only to read claims; the API validates it.
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}

	auth, ok := claims[accountClaimNamespace].(map[string]any)
	if !ok {
		return ""
	}
	id, _ := auth["chatgpt_account_id"].(string)
	return id
}

// expiresAtRaw prefers the credential-level expiry over the file-level one,
// since the former comes directly from the token exchange.
func (s *Session) expiresAtRaw() string {
	if raw := strings.TrimSpace(s.Credentials.ExpiresAt); raw != "" {
		return raw
	}
	return strings.TrimSpace(s.ExpiresAt)
}

// parseTimestamp accepts RFC 3339 as well as ISO 8601 with a "+00:00" style
// offset and no trailing zone designator.
func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999-07:00", "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
