package api

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tyoppar01/pokemon-battle-v3/internal/constants"
)

type jwtClaims struct {
	Sub  string `json:"sub"`  // trainer id
	Name string `json:"name"` // trainer name when the token was issued
	Iat  int64  `json:"iat"`
	Exp  int64  `json:"exp"`
	Jti  string `json:"jti"`
}

var (
	devSecretMu sync.Mutex
	devSecret   []byte
)

func getSessionSecret() ([]byte, error) {
	secret := os.Getenv(constants.EnvTokenSecret)
	if secret != "" {
		return []byte(secret), nil
	}
	// Generate an in-memory secret for development if not set
	devSecretMu.Lock()
	defer devSecretMu.Unlock()
	if len(devSecret) == 0 {
		b := make([]byte, 32)
		if _, err := crand.Read(b); err != nil {
			return nil, errors.New("failed to generate dev session secret")
		}
		devSecret = b
	}
	return devSecret, nil
}

func b64url(data []byte) string {
	return strings.TrimRight(base64.URLEncoding.EncodeToString(data), "=")
}

func b64urlDecode(s string) ([]byte, error) {
	// pad to multiple of 4
	if m := len(s) % 4; m != 0 {
		s += strings.Repeat("=", 4-m)
	}
	return base64.URLEncoding.DecodeString(s)
}

func signHS256(data string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(data))
	return b64url(mac.Sum(nil))
}

// createSessionToken mints a bearer token for a trainer and returns it with
// its expiry.
func createSessionToken(userID, name string, ttl time.Duration) (string, time.Time, error) {
	secret, err := getSessionSecret()
	if err != nil {
		return "", time.Time{}, err
	}
	header := map[string]string{"alg": "HS256", "typ": "JWT"}
	hdrJSON, _ := json.Marshal(header)
	now := time.Now()
	exp := now.Add(ttl)
	claims := jwtClaims{Sub: userID, Name: name, Iat: now.Unix(), Exp: exp.Unix(), Jti: uuid.NewString()}
	clJSON, _ := json.Marshal(claims)
	unsigned := fmt.Sprintf("%s.%s", b64url(hdrJSON), b64url(clJSON))
	return unsigned + "." + signHS256(unsigned, secret), exp, nil
}

func parseAndValidateSession(token string) (*jwtClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errors.New("invalid token format")
	}
	secret, err := getSessionSecret()
	if err != nil {
		return nil, err
	}
	unsigned := parts[0] + "." + parts[1]
	expected := signHS256(unsigned, secret)
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return nil, errors.New("invalid signature")
	}
	payloadBytes, err := b64urlDecode(parts[1])
	if err != nil {
		return nil, err
	}
	var claims jwtClaims
	if err := json.Unmarshal(payloadBytes, &claims); err != nil {
		return nil, err
	}
	if claims.Sub == "" {
		return nil, errors.New("token has no subject")
	}
	if time.Now().Unix() > claims.Exp {
		return nil, errors.New("token expired")
	}
	return &claims, nil
}
