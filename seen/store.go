// Package seen keeps a durable record of when each nick last spoke.
package seen

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/OCipriano/ircbot/internal/fsstore"
)

const (
	fileVersion = 1
	timeLayout  = "2006-01-02 15:04:05"
)

type seenFile struct {
	Version int               `json:"version"`
	Nicks   map[string]string `json:"nicks"`
}

// Store persists nick -> last-seen timestamps in a single JSON file.
// Every write goes through an atomic replace, so a crash never leaves a
// half-written store behind.
type Store struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewStore(path string) *Store {
	return &Store{
		path: strings.TrimSpace(path),
		now:  time.Now,
	}
}

func (s *Store) Ensure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fsstore.EnsureDir(filepath.Dir(s.path), 0)
}

// Record stamps nick with the current time.
func (s *Store) Record(nick string) error {
	nick = strings.TrimSpace(nick)
	if nick == "" {
		return fmt.Errorf("seen: empty nick")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.loadLocked()
	if err != nil {
		return err
	}
	file.Nicks[nick] = s.now().Format(timeLayout)
	return fsstore.WriteJSONAtomic(s.path, file, fsstore.FileOptions{})
}

// LastSeen returns the user-facing last-seen text for nick. Lookup failures
// and unknown nicks both produce the "never seen" text; this method is only
// ever shown to chat users.
func (s *Store) LastSeen(nick string) string {
	nick = strings.TrimSpace(nick)

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.loadLocked()
	if err == nil {
		if ts, ok := file.Nicks[nick]; ok {
			return fmt.Sprintf("%s foi visto pela última vez em %s", nick, ts)
		}
	}
	return fmt.Sprintf("%s nunca foi visto.", nick)
}

func (s *Store) loadLocked() (seenFile, error) {
	file := seenFile{Version: fileVersion, Nicks: map[string]string{}}
	if _, err := fsstore.ReadJSON(s.path, &file); err != nil {
		return file, err
	}
	if file.Nicks == nil {
		file.Nicks = map[string]string{}
	}
	return file, nil
}
