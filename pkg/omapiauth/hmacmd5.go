package omapiauth

import (
	"crypto/hmac"
	"crypto/md5" //nolint:gosec // mandated by the OMAPI wire algorithm, not a choice
	"encoding/base64"
	"fmt"

	"github.com/canonical/omapiclient/pkg/omapiwire"
)

const hmacMD5Algorithm = "hmac-md5.SIG-ALG.REG.INT."

// HMACMD5Authenticator signs messages with HMAC-MD5 under a shared key.
// Its AuthID is 0 until the handshake assigns the server's id for it.
type HMACMD5Authenticator struct {
	user   string
	key    []byte
	authid uint32
}

// NewHMACMD5 constructs an authenticator for user, decoding key from its
// Base64 wire form.
func NewHMACMD5(user, base64Key string) (*HMACMD5Authenticator, error) {
	key, err := base64.StdEncoding.DecodeString(base64Key)
	if err != nil {
		return nil, fmt.Errorf("omapiauth: decoding hmac-md5 key: %w", err)
	}
	return &HMACMD5Authenticator{user: user, key: key}, nil
}

func (a *HMACMD5Authenticator) AuthID() uint32 { return a.authid }

// SetAuthID records the server-assigned id for this authenticator. It is
// called exactly once, by the handshake that opened it.
func (a *HMACMD5Authenticator) SetAuthID(id uint32) { a.authid = id }

func (a *HMACMD5Authenticator) AuthLen() int { return md5.Size }

func (a *HMACMD5Authenticator) Algorithm() string { return hmacMD5Algorithm }

func (a *HMACMD5Authenticator) AuthObject() omapiwire.Dictionary {
	return omapiwire.Dictionary{
		{Key: []byte("name"), Value: []byte(a.user)},
		{Key: []byte("algorithm"), Value: []byte(a.Algorithm())},
	}
}

func (a *HMACMD5Authenticator) Sign(data []byte) ([]byte, error) {
	mac := hmac.New(md5.New, a.key)
	if _, err := mac.Write(data); err != nil {
		return nil, err
	}
	return mac.Sum(nil), nil
}
