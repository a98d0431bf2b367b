package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalDialer stands in for the FTP host in development: every login gets a
// home directory named after the user under baseDir.
type LocalDialer struct {
	baseDir string
}

// NewLocalDialer ensures the base directory exists and returns a handle.
func NewLocalDialer(baseDir string) (*LocalDialer, error) {
	if baseDir == "" {
		baseDir = "./remote"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create local remote directory: %w", err)
	}
	return &LocalDialer{baseDir: baseDir}, nil
}

// Addr identifies the backing directory in logs.
func (d *LocalDialer) Addr() string {
	return "file://" + d.baseDir
}

// Dial opens a session rooted at the user's home directory.
func (d *LocalDialer) Dial(ctx context.Context, creds Credentials) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	user := filepath.Base(filepath.Clean("/" + creds.User))
	if user == "/" || user == "." {
		return nil, fmt.Errorf("login on %s: empty user", d.Addr())
	}
	home := filepath.Join(d.baseDir, user)
	if err := os.MkdirAll(home, 0o755); err != nil {
		return nil, fmt.Errorf("prepare home for %s: %w", d.Addr(), err)
	}
	return &localSession{home: home}, nil
}

type localSession struct {
	home string
}

func (s *localSession) EnsureDir(dir string) error {
	if err := os.MkdirAll(s.resolve(dir), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

func (s *localSession) DirExists(dir string) (bool, error) {
	info, err := os.Stat(s.resolve(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", dir, err)
	}
	return info.IsDir(), nil
}

// Store copies from reader into the target file, replacing any previous copy.
func (s *localSession) Store(path string, r io.Reader) error {
	file, err := os.Create(s.resolve(path))
	if err != nil {
		return fmt.Errorf("stor %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck
	if _, err := io.Copy(file, r); err != nil {
		return fmt.Errorf("stor %s: %w", path, err)
	}
	return nil
}

func (s *localSession) Close() error {
	return nil
}

// resolve keeps every path inside the home directory.
func (s *localSession) resolve(rel string) string {
	clean := filepath.Clean("/" + strings.TrimLeft(rel, "/"))
	return filepath.Join(s.home, clean)
}
