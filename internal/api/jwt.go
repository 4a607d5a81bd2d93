package api

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ericogr/pocket-arena/internal/constants"
)

var (
	errTokenFormat    = errors.New("invalid token format")
	errTokenSignature = errors.New("invalid signature")
	errTokenExpired   = errors.New("token expired")
)

type sessionClaims struct {
	Sub  string `json:"sub"` // email
	Name string `json:"name"`
	Iat  int64  `json:"iat"`
	Exp  int64  `json:"exp"`
}

var (
	devSecretOnce sync.Once
	devSecret     []byte
	devSecretErr  error
)

// sessionSecret reads SESSION_SECRET. Without it an in-memory secret is
// generated once, so sessions do not survive a restart.
func sessionSecret() ([]byte, error) {
	if secret := os.Getenv(constants.EnvSessionSecret); secret != "" {
		return []byte(secret), nil
	}
	devSecretOnce.Do(func() {
		devSecret = make([]byte, 32)
		if _, err := crand.Read(devSecret); err != nil {
			devSecretErr = errors.New("failed to generate dev session secret")
		}
	})
	return devSecret, devSecretErr
}

var b64 = base64.RawURLEncoding

func signHS256(data string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(data))
	return b64.EncodeToString(mac.Sum(nil))
}

// createSessionToken mints an HS256 JWT for the trainer.
func createSessionToken(email, name string, ttl time.Duration, now time.Time) (string, error) {
	secret, err := sessionSecret()
	if err != nil {
		return "", err
	}
	hdr, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(sessionClaims{Sub: email, Name: name, Iat: now.Unix(), Exp: now.Add(ttl).Unix()})
	if err != nil {
		return "", err
	}
	unsigned := b64.EncodeToString(hdr) + "." + b64.EncodeToString(body)
	return unsigned + "." + signHS256(unsigned, secret), nil
}

func parseSessionToken(token string, now time.Time) (*sessionClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errTokenFormat
	}
	secret, err := sessionSecret()
	if err != nil {
		return nil, err
	}
	unsigned := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(signHS256(unsigned, secret)), []byte(parts[2])) {
		return nil, errTokenSignature
	}
	payload, err := b64.DecodeString(parts[1])
	if err != nil {
		return nil, errTokenFormat
	}
	var claims sessionClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, errTokenFormat
	}
	if claims.Sub == "" {
		return nil, errTokenFormat
	}
	if now.Unix() > claims.Exp {
		return nil, errTokenExpired
	}
	return &claims, nil
}
