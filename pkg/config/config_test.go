package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryAccountsFromEnvironment(t *testing.T) {
	t.Setenv("FTP_USER_NFS_TOMADO", "tomado")
	t.Setenv("FTP_PASS_NFS_TOMADO", "s3cret")
	t.Setenv("FTP_USER_SPED", "sped")
	t.Setenv("FTP_USER_PLANILHA", "   ")

	v := viper.New()
	v.AutomaticEnv()

	accounts := categoryAccounts(v, os.Environ())
	require.Contains(t, accounts, "nfs-tomado")
	assert.Equal(t, FTPCredentials{User: "tomado", Password: "s3cret"}, accounts["nfs-tomado"])
	assert.Equal(t, "sped", accounts["sped"].User)
	assert.Empty(t, accounts["sped"].Password)
	assert.NotContains(t, accounts, "planilha")
}

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("FTP_HOST", "ftp.example.com")
	t.Setenv("FTP_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, "ftp.example.com", cfg.FTP.Host)
	assert.Equal(t, 21, cfg.FTP.Port)
	assert.True(t, cfg.FTP.Secure)
	assert.Equal(t, 5, cfg.FTP.DirPollAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.FTP.DirPollInterval)
	assert.Equal(t, "auth.users", cfg.Auth.UsersTable)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 5, cfg.Upload.RecordRetries)
	assert.Equal(t, 5*time.Second, cfg.Upload.RecordRetryDelay)
	assert.Empty(t, cfg.FTP.LocalDir)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Second, parseDuration("", time.Second))
	assert.Equal(t, time.Second, parseDuration("nope", time.Second))
	assert.Equal(t, 2*time.Minute, parseDuration("2m", time.Second))
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"http://a", "http://b"}, splitAndTrim(" http://a, ,http://b "))
}
