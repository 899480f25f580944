package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// SessionTTL bounds how long a minted admin cookie stays valid.
const SessionTTL = 24 * time.Hour

// AuthService gates the admin surface. Two credentials coexist: a signed
// session cookie (timestamp.signature) and HTTP Basic, where only the
// password is checked. An empty password disables auth entirely, an explicit
// escape hatch for local development.
type AuthService struct {
	Password string
	Secret   string
}

func (s *AuthService) Enabled() bool { return s.Password != "" }

// CheckPassword compares in constant time. A configured value starting with
// "$2" is treated as a bcrypt hash so deployments need not keep the plaintext
// in the environment.
func (s *AuthService) CheckPassword(candidate string) bool {
	if !s.Enabled() {
		return true
	}
	if strings.HasPrefix(s.Password, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(s.Password), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.Password), []byte(candidate)) == 1
}

// MintSession returns "unixts.hex(hmac-sha256(unixts))".
func (s *AuthService) MintSession(now time.Time) string {
	ts := strconv.FormatInt(now.Unix(), 10)
	return ts + "." + s.sign(ts)
}

// ValidSession checks the cookie signature in constant time and enforces the
// TTL window.
func (s *AuthService) ValidSession(cookie string, now time.Time) bool {
	ts, sig, ok := strings.Cut(cookie, ".")
	if !ok {
		return false
	}
	issued, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return false
	}
	age := now.Unix() - issued
	if age < 0 || age > int64(SessionTTL.Seconds()) {
		return false
	}
	return hmac.Equal([]byte(s.sign(ts)), []byte(sig))
}

func (s *AuthService) sign(ts string) string {
	mac := hmac.New(sha256.New, []byte(s.Secret))
	mac.Write([]byte(ts))
	return hex.EncodeToString(mac.Sum(nil))
}
