package session

import (
	"encoding/gob"
	"fmt"
	"net/http"

	"marketplace-console/pkg/utils"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	cookieName = "console_session"

	keySessionID  = "sid"
	keyRole       = "role"
	keyCredential = "credential"
)

// FlashMessage is shown once on the next rendered page.
type FlashMessage struct {
	Type    string // success | error | info
	Message string
}

func init() {
	gob.Register(FlashMessage{})
}

// State is what the console session cookie carries.
type State struct {
	SessionID  string
	Role       string
	Credential string // backend Cookie header value
}

func (s State) Authenticated() bool {
	return s.SessionID != "" && s.Credential != ""
}

// Manager owns the encrypted console session cookie.
type Manager struct {
	store sessions.Store
	log   *zap.Logger
}

func NewManager(config utils.SessionConfig, log *zap.Logger) *Manager {
	secret, ok := utils.DecodeKey(config.Key)
	if !ok {
		log.Warn("SESSION_KEY not set or shorter than 32 bytes, using a random key. Sessions will not survive a restart.")
		secret = utils.RandomKey(32)
	}

	store := sessions.NewCookieStore(
		utils.DeriveKey(secret, "cookie-hash", 64),
		utils.DeriveKey(secret, "cookie-block", 32),
	)
	store.Options.HttpOnly = true
	store.Options.Secure = config.CookieSecure
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.Path = "/"
	if config.MaxAge > 0 {
		store.MaxAge(int(config.MaxAge.Seconds()))
	}

	return NewManagerWithStore(store, log)
}

func NewManagerWithStore(store sessions.Store, log *zap.Logger) *Manager {
	return &Manager{store: store, log: log.With(zap.String("component", "session"))}
}

func (m *Manager) session(r *http.Request) *sessions.Session {
	sess, err := m.store.Get(r, cookieName)
	if err != nil {
		// tampered or rotated key: start from an empty session
		m.log.Debug("Discarding unreadable session cookie", zap.Error(err))
	}
	return sess
}

// Load never fails; an unreadable cookie is an anonymous session.
func (m *Manager) Load(r *http.Request) State {
	sess := m.session(r)
	str := func(k string) string {
		v, _ := sess.Values[k].(string)
		return v
	}
	return State{
		SessionID:  str(keySessionID),
		Role:       str(keyRole),
		Credential: str(keyCredential),
	}
}

// Start replaces any previous session with a fresh id.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request, role, credential string) (State, error) {
	sess := m.session(r)
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	st := State{SessionID: uuid.NewString(), Role: role, Credential: credential}
	sess.Values[keySessionID] = st.SessionID
	sess.Values[keyRole] = st.Role
	sess.Values[keyCredential] = st.Credential
	if err := sess.Save(r, w); err != nil {
		return State{}, fmt.Errorf("save session: %w", err)
	}
	return st, nil
}

func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	sess := m.session(r)
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	sess := m.session(r)
	sess.AddFlash(FlashMessage{Type: kind, Message: message})
	if err := sess.Save(r, w); err != nil {
		m.log.Warn("Failed to save flash", zap.Error(err))
	}
}

// Flashes pops pending flash messages.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []FlashMessage {
	sess := m.session(r)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		m.log.Warn("Failed to clear flashes", zap.Error(err))
	}
	messages := make([]FlashMessage, 0, len(raw))
	for _, f := range raw {
		if fm, ok := f.(FlashMessage); ok {
			messages = append(messages, fm)
		}
	}
	return messages
}
