package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"
)

// CookieName is the session cookie name.
const CookieName = "session_id"

var errBadCookieValue = errors.New("malformed or tampered session cookie")

// SignSessionID returns "id.sig" where sig is an HMAC-SHA256 of the session
// id under secret. The session id itself stays opaque; the signature only
// stops forged or truncated cookie values from reaching the session store.
func SignSessionID(sessionID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(sessionID))
	sig := base64.URLEncoding.EncodeToString(mac.Sum(nil))
	return sessionID + "." + sig
}

// VerifySessionID splits and checks a signed cookie value, returning the
// embedded session id.
func VerifySessionID(value, secret string) (string, error) {
	id, encSig, found := strings.Cut(value, ".")
	if !found {
		return "", errBadCookieValue
	}
	sig, err := base64.URLEncoding.DecodeString(encSig)
	if err != nil {
		return "", errBadCookieValue
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(id))
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return "", errBadCookieValue
	}
	return id, nil
}

// NewSessionCookie builds the http-only session cookie carrying the signed
// session id. Secure is configuration-driven so local HTTP development works.
func NewSessionCookie(signedID string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    signedID,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie overwrites the session cookie with an immediately
// expiring empty one.
func ExpiredSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
