package omapiauth

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestNullAuthenticator(t *testing.T) {
	a := NewNull()
	if a.AuthID() != 0 {
		t.Fatalf("got authid %d, want 0", a.AuthID())
	}
	if a.AuthLen() != 0 {
		t.Fatalf("got authlen %d, want 0", a.AuthLen())
	}
	sig, err := a.Sign([]byte("anything"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(sig) != 0 {
		t.Fatalf("got signature %v, want empty", sig)
	}
}

func TestHMACMD5AuthenticatorSignLength(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef"))
	a, err := NewHMACMD5("omapi_key", key)
	if err != nil {
		t.Fatalf("NewHMACMD5: %v", err)
	}
	sig, err := a.Sign([]byte("some message bytes"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(sig) != a.AuthLen() {
		t.Fatalf("got signature length %d, want %d", len(sig), a.AuthLen())
	}
}

func TestHMACMD5AuthenticatorDeterministic(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte("shared-secret-16"))
	a, err := NewHMACMD5("omapi_key", key)
	if err != nil {
		t.Fatalf("NewHMACMD5: %v", err)
	}
	data := []byte("signing form bytes")
	sig1, err := a.Sign(data)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	sig2, err := a.Sign(data)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !bytes.Equal(sig1, sig2) {
		t.Fatalf("signing the same bytes twice produced different signatures")
	}
}

func TestHMACMD5AuthenticatorBadBase64(t *testing.T) {
	if _, err := NewHMACMD5("user", "not valid base64!!"); err == nil {
		t.Fatalf("expected an error for malformed base64 key")
	}
}

func TestHMACMD5AuthObject(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef"))
	a, err := NewHMACMD5("omapi_key", key)
	if err != nil {
		t.Fatalf("NewHMACMD5: %v", err)
	}
	obj := a.AuthObject()
	name, ok := obj.Get([]byte("name"))
	if !ok || string(name) != "omapi_key" {
		t.Fatalf("got name %q, %v", name, ok)
	}
	alg, ok := obj.Get([]byte("algorithm"))
	if !ok || string(alg) != hmacMD5Algorithm {
		t.Fatalf("got algorithm %q, %v", alg, ok)
	}
}

func TestHMACMD5SetAuthID(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef"))
	a, err := NewHMACMD5("omapi_key", key)
	if err != nil {
		t.Fatalf("NewHMACMD5: %v", err)
	}
	a.SetAuthID(42)
	if a.AuthID() != 42 {
		t.Fatalf("got authid %d, want 42", a.AuthID())
	}
}
