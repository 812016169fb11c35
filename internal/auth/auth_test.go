package auth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelhouse/reelhouse-server/internal/domain"
)

func testKey() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	key, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, key, keyLength)

	again, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, key, again)

	info, err := os.Stat(filepath.Join(dir, "auth.key"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadOrGenerateKey_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.key"), []byte("nothex"), 0o600))

	_, err := LoadOrGenerateKey(dir)
	assert.Error(t, err)
}

func TestDecodeKey(t *testing.T) {
	key, err := DecodeKey(" " + strings.Repeat("ab", 32) + "\n")
	require.NoError(t, err)
	assert.Len(t, key, keyLength)

	_, err = DecodeKey(strings.Repeat("zz", 32))
	assert.Error(t, err)
}

func TestNewTokenService_RejectsShortKey(t *testing.T) {
	_, err := NewTokenService([]byte("short"), time.Minute)
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	svc, err := NewTokenService(testKey(), 15*time.Minute)
	require.NoError(t, err)

	user := &domain.User{Entity: domain.Entity{ID: "usr-1"}, Username: "alice"}
	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "v4.local."))

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "usr-1", claims.Subject)
	assert.True(t, strings.HasPrefix(claims.TokenID, "tok-"))
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	svc, err := NewTokenService(testKey(), time.Minute)
	require.NoError(t, err)

	issued := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issued }
	token, err := svc.GenerateAccessToken(&domain.User{Entity: domain.Entity{ID: "usr-1"}})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	svc, err := NewTokenService(testKey(), time.Minute)
	require.NoError(t, err)
	token, err := svc.GenerateAccessToken(&domain.User{Entity: domain.Entity{ID: "usr-1"}})
	require.NoError(t, err)

	other, err := NewTokenService([]byte("fedcba9876543210fedcba9876543210"), time.Minute)
	require.NoError(t, err)
	_, err = other.VerifyAccessToken(token)
	assert.Error(t, err)

	_, err = svc.VerifyAccessToken("garbage")
	assert.Error(t, err)
}
