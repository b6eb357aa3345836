// Package prefs remembers per-user filter selections between visits,
// so returning to a list page restores the filters that were active
// last time. Preferences are a convenience, never a requirement: any
// failure to read or write degrades to "no saved selection" and the
// page still renders.
package prefs

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Key names a saved filter selection: "<entity>-<filter>-filter",
// e.g. "users-role-filter".
func Key(entity, filter string) string {
	return entity + "-" + filter + "-filter"
}

// Store persists filter selections per signed-in session.
type Store interface {
	// Get returns the saved values for entity/filter, or nil when
	// nothing is saved or the saved value is unreadable.
	Get(r *http.Request, entity, filter string) []string
	// Set saves values for entity/filter. An empty slice removes
	// the key entirely.
	Set(w http.ResponseWriter, r *http.Request, entity, filter string, values []string)
	// Remove deletes the saved selection for entity/filter.
	Remove(w http.ResponseWriter, r *http.Request, entity, filter string)
}

const sessionName = "opadmin-prefs"

// SessionStore keeps selections in a cookie session. Values are
// stored as JSON arrays keyed by Key(entity, filter).
type SessionStore struct {
	store sessions.Store
	log   *zap.Logger
}

// NewSessionStore wraps a cookie store. logger may be nil.
func NewSessionStore(store sessions.Store, logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{store: store, log: logger}
}

func (s *SessionStore) Get(r *http.Request, entity, filter string) []string {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		s.log.Warn("prefs session unreadable", zap.Error(err))
		return nil
	}
	raw, ok := sess.Values[Key(entity, filter)].(string)
	if !ok || raw == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		s.log.Warn("saved filter corrupt, ignoring",
			zap.String("key", Key(entity, filter)),
			zap.Error(err))
		return nil
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

func (s *SessionStore) Set(w http.ResponseWriter, r *http.Request, entity, filter string, values []string) {
	if len(values) == 0 {
		s.Remove(w, r, entity, filter)
		return
	}
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		// Stale or corrupt cookie; Get returns a fresh session
		// alongside the error, which we can still write to.
		s.log.Warn("prefs session reset", zap.Error(err))
	}
	raw, err := json.Marshal(values)
	if err != nil {
		s.log.Warn("could not encode filter selection", zap.Error(err))
		return
	}
	sess.Values[Key(entity, filter)] = string(raw)
	if err := sess.Save(r, w); err != nil {
		s.log.Warn("could not save filter selection", zap.Error(err))
	}
}

func (s *SessionStore) Remove(w http.ResponseWriter, r *http.Request, entity, filter string) {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		s.log.Warn("prefs session reset", zap.Error(err))
	}
	if _, ok := sess.Values[Key(entity, filter)]; !ok {
		return
	}
	delete(sess.Values, Key(entity, filter))
	if err := sess.Save(r, w); err != nil {
		s.log.Warn("could not clear filter selection", zap.Error(err))
	}
}
