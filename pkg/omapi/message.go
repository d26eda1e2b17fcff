package omapi

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"

	"github.com/canonical/omapiclient/pkg/omapiauth"
	"github.com/canonical/omapiclient/pkg/omapiwire"
)

// OMAPI opcodes.
const (
	OpOpen    uint32 = 1
	OpRefresh uint32 = 2
	OpUpdate  uint32 = 3
	OpNotify  uint32 = 4
	OpStatus  uint32 = 5
	OpDelete  uint32 = 6
)

// Message is the in-memory representation of one OMAPI PDU, plus the
// algorithms that serialize, sign, and verify it.
type Message struct {
	omapiwire.Frame
}

func newMessage() *Message {
	return &Message{Frame: omapiwire.Frame{Signature: []byte{}}}
}

func generateTID() (uint32, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// Open builds an OMAPI OPEN message for the given object typename.
func Open(typename string) (*Message, error) {
	m := newMessage()
	m.Opcode = OpOpen
	m.MessageDict = append(m.MessageDict, omapiwire.DictEntry{
		Key:   []byte("type"),
		Value: []byte(typename),
	})
	tid, err := generateTID()
	if err != nil {
		return nil, err
	}
	m.TID = tid
	return m, nil
}

// DeleteMessage builds an OMAPI DELETE message for the given handle.
func DeleteMessage(handle uint32) (*Message, error) {
	m := newMessage()
	m.Opcode = OpDelete
	m.Handle = handle
	tid, err := generateTID()
	if err != nil {
		return nil, err
	}
	m.TID = tid
	return m, nil
}

// UpdateMessage builds an OMAPI UPDATE message for the given handle.
func UpdateMessage(handle uint32) (*Message, error) {
	m := newMessage()
	m.Opcode = OpUpdate
	m.Handle = handle
	tid, err := generateTID()
	if err != nil {
		return nil, err
	}
	m.TID = tid
	return m, nil
}

// AsString serializes the message. When forSigning is true, the leading
// authid and trailing signature are omitted — the exact form that gets
// passed to an Authenticator's Sign.
func (m *Message) AsString(forSigning bool) ([]byte, error) {
	buf := omapiwire.NewOutBuffer()
	if err := m.Frame.Encode(buf, forSigning); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Sign computes this message's signature under auth and records auth's
// id as the message's authid.
func (m *Message) Sign(auth omapiauth.Authenticator) error {
	m.AuthID = auth.AuthID()
	m.Signature = make([]byte, auth.AuthLen())
	data, err := m.AsString(true)
	if err != nil {
		return err
	}
	sig, err := auth.Sign(data)
	if err != nil {
		return err
	}
	if len(sig) != auth.AuthLen() {
		return newOmapiError("authenticator produced a %d-byte signature, want %d", len(sig), auth.AuthLen())
	}
	m.Signature = sig
	return nil
}

// Verify looks up this message's authid in authenticators and checks
// that authenticator's signature over the signing form matches the
// received signature. An unknown authid verifies as false.
func (m *Message) Verify(authenticators map[uint32]omapiauth.Authenticator) bool {
	auth, ok := authenticators[m.AuthID]
	if !ok {
		return false
	}
	data, err := m.AsString(true)
	if err != nil {
		return false
	}
	sig, err := auth.Sign(data)
	if err != nil {
		return false
	}
	return bytes.Equal(sig, m.Signature)
}

// IsResponse reports whether m is the response to request.
func (m *Message) IsResponse(request *Message) bool {
	return m.RID == request.TID
}

// UpdateObject removes any existing obj entry whose key appears in
// update, then appends update's entries in order.
func (m *Message) UpdateObject(update omapiwire.Dictionary) {
	m.Obj = m.Obj.Update(update)
}
