package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDialerSessionLifecycle(t *testing.T) {
	base := t.TempDir()
	dialer, err := NewLocalDialer(base)
	require.NoError(t, err)

	sess, err := dialer.Dial(context.Background(), Credentials{User: "planilha", Password: "x"})
	require.NoError(t, err)
	defer sess.Close() //nolint:errcheck

	exists, err := sess.DirExists("ACME")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, sess.EnsureDir("ACME"))
	exists, err = sess.DirExists("ACME")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, sess.Store("ACME/relatorio.xlsx", bytes.NewReader([]byte("data"))))
	raw, err := os.ReadFile(filepath.Join(base, "planilha", "ACME", "relatorio.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(raw))
}

func TestLocalDialerConfinesPaths(t *testing.T) {
	base := t.TempDir()
	dialer, err := NewLocalDialer(base)
	require.NoError(t, err)

	sess, err := dialer.Dial(context.Background(), Credentials{User: "../nfe"})
	require.NoError(t, err)
	require.NoError(t, sess.EnsureDir("../../escape"))

	_, err = os.Stat(filepath.Join(base, "nfe", "escape"))
	assert.NoError(t, err)

	_, err = dialer.Dial(context.Background(), Credentials{})
	assert.Error(t, err)
}
