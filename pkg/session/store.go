// Package session persists Demand API token pairs in the OS keyring so a
// session can outlive a single process.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/dynata/demandapi/pkg/demand"
)

const keyringService = "demandapi"

// ErrNotFound is returned by Load when no session is stored for the key.
var ErrNotFound = errors.New("no stored session")

// Store saves sessions under a key derived from the API host and username.
type Store struct {
	service string
}

// NewStore returns a Store using the default keyring service name.
func NewStore() *Store {
	return &Store{service: keyringService}
}

// Key returns the keyring entry name for a host and user. Trailing slashes
// and case differences in the host do not produce distinct keys.
func Key(baseHost, username string) string {
	host := strings.TrimSpace(baseHost)
	host = strings.TrimRight(host, "/")
	host = strings.ToLower(host)
	return host + "|" + username
}

// Save stores the session, replacing any previous one.
func (s *Store) Save(key string, sess demand.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}
	if err := keyring.Set(s.service, key, string(data)); err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}
	return nil
}

// Load returns the stored session, or ErrNotFound.
func (s *Store) Load(key string) (demand.Session, error) {
	data, err := keyring.Get(s.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return demand.Session{}, ErrNotFound
	}
	if err != nil {
		return demand.Session{}, fmt.Errorf("error loading session: %w", err)
	}

	var sess demand.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return demand.Session{}, fmt.Errorf("error decoding session: %w", err)
	}
	return sess, nil
}

// Delete removes the stored session. Deleting a missing session is not an
// error.
func (s *Store) Delete(key string) error {
	err := keyring.Delete(s.service, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}
