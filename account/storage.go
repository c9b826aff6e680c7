package account

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// FileStore implements Store on top of a key = value state file
type FileStore struct {
	fs   afero.Fs
	path string

	mu       sync.RWMutex
	username string
	loggedIn bool
}

// NewFileStore loads the state file at path. A missing file is an empty
// state; it is created on the first write.
func NewFileStore(fs afero.Fs, path string) (*FileStore, error) {
	s := &FileStore{fs: fs, path: path}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("could not read account state: %w", err)
	}

	conf := parseConf(data)
	s.username = conf["username"]
	s.loggedIn = conf["logged_in"] == "true"
	return s, nil
}

// Path returns the location of the state file
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

func (s *FileStore) SetUsername(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.username = username
	return s.writeLocked()
}

func (s *FileStore) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

func (s *FileStore) SetLoggedIn(loggedIn bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loggedIn = loggedIn
	return s.writeLocked()
}

func (s *FileStore) writeLocked() error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("could not create state directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# pioauth account state\n\n")
	b.WriteString(fmt.Sprintf("username = %s\n", s.username))
	b.WriteString(fmt.Sprintf("logged_in = %t\n", s.loggedIn))

	if err := afero.WriteFile(s.fs, s.path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("could not write account state: %w", err)
	}
	return nil
}

func parseConf(data []byte) map[string]string {
	result := make(map[string]string)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if k, v, ok := strings.Cut(line, "="); ok {
			result[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return result
}
