package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"threadbound/internal/services"
)

func TestSessionMintAndValidate(t *testing.T) {
	auth := &services.AuthService{Password: "s3cret", Secret: "signing-key"}
	now := time.Now()

	cookie := auth.MintSession(now)
	assert.True(t, auth.ValidSession(cookie, now))
	assert.True(t, auth.ValidSession(cookie, now.Add(23*time.Hour)))
	assert.False(t, auth.ValidSession(cookie, now.Add(25*time.Hour)), "expired cookie must fail")
}

func TestSessionTamperedSignature(t *testing.T) {
	auth := &services.AuthService{Password: "s3cret", Secret: "signing-key"}
	cookie := auth.MintSession(time.Now())

	ts, _, ok := strings.Cut(cookie, ".")
	require.True(t, ok)
	assert.False(t, auth.ValidSession(ts+"."+strings.Repeat("0", 64), time.Now()))
	assert.False(t, auth.ValidSession("garbage", time.Now()))

	other := &services.AuthService{Password: "s3cret", Secret: "different-key"}
	assert.False(t, other.ValidSession(cookie, time.Now()))
}

func TestCheckPasswordPlain(t *testing.T) {
	auth := &services.AuthService{Password: "s3cret", Secret: "s3cret"}
	assert.True(t, auth.CheckPassword("s3cret"))
	assert.False(t, auth.CheckPassword("wrong"))
}

func TestCheckPasswordBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2!"), bcrypt.DefaultCost)
	require.NoError(t, err)

	auth := &services.AuthService{Password: string(hash), Secret: "signing-key"}
	assert.True(t, auth.CheckPassword("hunter2!"))
	assert.False(t, auth.CheckPassword("hunter3!"))
}

func TestAuthDisabledWhenNoPassword(t *testing.T) {
	auth := &services.AuthService{}
	assert.False(t, auth.Enabled())
	assert.True(t, auth.CheckPassword("anything"))
}
