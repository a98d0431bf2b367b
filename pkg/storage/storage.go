// Package storage opens sessions against the remote store that receives
// client documents. Each category logs in with its own account, so sessions
// are always opened per upload and never shared.
package storage

import (
	"context"
	"io"
)

// Credentials authenticate one login on the remote store.
type Credentials struct {
	User     string
	Password string
}

// Session is one authenticated connection. Paths are relative to the login's
// home directory.
type Session interface {
	EnsureDir(dir string) error
	DirExists(dir string) (bool, error)
	Store(path string, r io.Reader) error
	Close() error
}

// Dialer opens sessions.
type Dialer interface {
	Dial(ctx context.Context, creds Credentials) (Session, error)
	Addr() string
}
