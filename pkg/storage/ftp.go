package storage

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/noah-isme/fileflow-portal-api/pkg/config"
)

type ftpConn interface {
	CurrentDir() (string, error)
	ChangeDir(path string) error
	MakeDir(path string) error
	Stor(path string, r io.Reader) error
	Quit() error
}

// FTPDialer connects to the process-wide FTP host. Host, port and TLS mode are
// shared by every category; only the login differs.
type FTPDialer struct {
	host        string
	port        int
	secure      bool
	tlsInsecure bool
	timeout     time.Duration
}

// NewFTPDialer builds a dialer from configuration.
func NewFTPDialer(cfg config.FTPConfig) *FTPDialer {
	port := cfg.Port
	if port <= 0 {
		port = 21
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &FTPDialer{
		host:        cfg.Host,
		port:        port,
		secure:      cfg.Secure,
		tlsInsecure: cfg.TLSInsecure,
		timeout:     timeout,
	}
}

// Addr returns host:port.
func (d *FTPDialer) Addr() string {
	return net.JoinHostPort(d.host, strconv.Itoa(d.port))
}

// Dial connects, upgrades to explicit TLS when configured, and logs in.
func (d *FTPDialer) Dial(ctx context.Context, creds Credentials) (Session, error) {
	opts := []ftp.DialOption{
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(d.timeout),
	}
	if d.secure {
		opts = append(opts, ftp.DialWithExplicitTLS(&tls.Config{
			ServerName:         d.host,
			InsecureSkipVerify: d.tlsInsecure, //nolint:gosec // opt-in for self-signed FTPS servers
			MinVersion:         tls.VersionTLS12,
		}))
	}

	conn, err := ftp.Dial(d.Addr(), opts...)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", d.Addr(), err)
	}
	if err := conn.Login(creds.User, creds.Password); err != nil {
		_ = conn.Quit()
		return nil, fmt.Errorf("login on %s: %w", d.Addr(), err)
	}
	return &ftpSession{conn: conn}, nil
}

type ftpSession struct {
	conn ftpConn
}

// EnsureDir creates every missing segment of dir. A segment that fails to
// create but exists afterwards was made by a concurrent upload and is fine.
func (s *ftpSession) EnsureDir(dir string) error {
	current := ""
	for _, segment := range strings.Split(strings.Trim(dir, "/"), "/") {
		if segment == "" {
			continue
		}
		if current == "" {
			current = segment
		} else {
			current = current + "/" + segment
		}
		exists, err := s.DirExists(current)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := s.conn.MakeDir(current); err != nil {
			if ok, checkErr := s.DirExists(current); checkErr == nil && ok {
				continue
			}
			return fmt.Errorf("mkdir %s: %w", current, err)
		}
	}
	return nil
}

// DirExists probes dir by entering it and returning to the previous working
// directory. A 550 reply means the directory is not there (yet).
func (s *ftpSession) DirExists(dir string) (bool, error) {
	cwd, err := s.conn.CurrentDir()
	if err != nil {
		return false, fmt.Errorf("pwd: %w", err)
	}
	if err := s.conn.ChangeDir(dir); err != nil {
		if isUnavailable(err) {
			return false, nil
		}
		return false, fmt.Errorf("cwd %s: %w", dir, err)
	}
	if err := s.conn.ChangeDir(cwd); err != nil {
		return true, fmt.Errorf("cwd back to %s: %w", cwd, err)
	}
	return true, nil
}

func (s *ftpSession) Store(path string, r io.Reader) error {
	if err := s.conn.Stor(path, r); err != nil {
		return fmt.Errorf("stor %s: %w", path, err)
	}
	return nil
}

func (s *ftpSession) Close() error {
	return s.conn.Quit()
}

func isUnavailable(err error) bool {
	var protoErr *textproto.Error
	return errors.As(err, &protoErr) && protoErr.Code == ftp.StatusFileUnavailable
}
