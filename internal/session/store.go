// Package session keeps each visitor's session in their own signed and
// encrypted cookie, so no session state is shared between users.
package session

import (
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/dormdash/campus-eats/internal/models"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const (
	keyID       = "id"
	keyLoggedIn = "logged_in"
	keyRole     = "role"
	keyUsername = "username"
	keyCarts    = "carts"
)

func init() {
	gob.Register(models.Carts{})
}

// Options configures the cookie store
type Options struct {
	Name     string
	HashKey  []byte
	BlockKey []byte
	MaxAge   int
	Secure   bool
}

// Store loads and saves models.Session values
type Store struct {
	store sessions.Store
	name  string
}

// NewStore creates a cookie-backed store. Missing keys are generated, which
// means sessions do not survive a restart.
func NewStore(opts Options) *Store {
	hashKey := opts.HashKey
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(64)
	}
	blockKey := opts.BlockKey
	if len(blockKey) == 0 {
		blockKey = securecookie.GenerateRandomKey(32)
	}
	name := opts.Name
	if name == "" {
		name = "dormdash-session"
	}

	cs := sessions.NewCookieStore(hashKey, blockKey)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   opts.MaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Store{store: cs, name: name}
}

// Load returns the request's session. A missing, undecodable or inconsistent
// cookie yields the default logged-out session.
func (s *Store) Load(r *http.Request) models.Session {
	raw, err := s.store.Get(r, s.name)
	if err != nil || raw.IsNew {
		return models.NewSession()
	}

	loggedIn, _ := raw.Values[keyLoggedIn].(bool)
	if !loggedIn {
		return models.NewSession()
	}

	roleValue, _ := raw.Values[keyRole].(string)
	role, err := models.ParseRole(roleValue)
	if err != nil {
		return models.NewSession()
	}

	id, _ := raw.Values[keyID].(string)
	username, _ := raw.Values[keyUsername].(string)

	sess := models.Session{
		ID:       id,
		LoggedIn: true,
		Role:     role,
		Username: username,
	}
	if !sess.Valid() {
		return models.NewSession()
	}
	return sess
}

// Save writes sess to the response cookie. Logged-out sessions clear the cookie.
func (s *Store) Save(w http.ResponseWriter, r *http.Request, sess models.Session) error {
	if !sess.LoggedIn {
		return s.Clear(w, r)
	}
	if !sess.Valid() {
		return fmt.Errorf("refusing to save invalid session")
	}

	raw, _ := s.store.Get(r, s.name)
	raw.Values[keyID] = sess.ID
	raw.Values[keyLoggedIn] = true
	raw.Values[keyRole] = string(sess.Role)
	raw.Values[keyUsername] = sess.Username

	if err := raw.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear expires the session cookie
func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	raw, _ := s.store.Get(r, s.name)
	for k := range raw.Values {
		delete(raw.Values, k)
	}
	raw.Options.MaxAge = -1

	if err := raw.Save(r, w); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// LoadCarts returns the carts kept in the request's session cookie
func (s *Store) LoadCarts(r *http.Request) models.Carts {
	raw, err := s.store.Get(r, s.name)
	if err != nil || raw.IsNew {
		return models.Carts{}
	}

	carts, ok := raw.Values[keyCarts].(models.Carts)
	if !ok {
		return models.Carts{}
	}
	return carts
}

// SaveCarts writes carts next to the session values already in the cookie
func (s *Store) SaveCarts(w http.ResponseWriter, r *http.Request, carts models.Carts) error {
	raw, _ := s.store.Get(r, s.name)
	if len(carts) == 0 {
		delete(raw.Values, keyCarts)
	} else {
		raw.Values[keyCarts] = carts
	}

	if err := raw.Save(r, w); err != nil {
		return fmt.Errorf("failed to save carts: %w", err)
	}
	return nil
}
