package omapiwire

import "encoding/binary"

// OutBuffer is an append-only byte accumulator used to build one PDU. It
// enforces SizeLimit on every write.
type OutBuffer struct {
	buf []byte
}

// NewOutBuffer returns an empty OutBuffer.
func NewOutBuffer() *OutBuffer {
	return &OutBuffer{}
}

// Add appends raw bytes.
func (b *OutBuffer) Add(data []byte) error {
	if len(b.buf)+len(data) > SizeLimit {
		return ErrSizeLimit
	}
	b.buf = append(b.buf, data...)
	return nil
}

// AddNet32Int appends v as 4 bytes, big-endian.
func (b *OutBuffer) AddNet32Int(v uint32) error {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return b.Add(tmp[:])
}

// AddNet16Int appends v as 2 bytes, big-endian.
func (b *OutBuffer) AddNet16Int(v uint16) error {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	return b.Add(tmp[:])
}

// AddNet32String appends a 4-byte big-endian length prefix followed by s.
func (b *OutBuffer) AddNet32String(s []byte) error {
	if uint64(len(s)) >= 1<<32 {
		return ErrSizeLimit
	}
	if err := b.AddNet32Int(uint32(len(s))); err != nil {
		return err
	}
	return b.Add(s)
}

// AddNet16String appends a 2-byte big-endian length prefix followed by s.
func (b *OutBuffer) AddNet16String(s []byte) error {
	if len(s) >= 1<<16 {
		return ErrSizeLimit
	}
	if err := b.AddNet16Int(uint16(len(s))); err != nil {
		return err
	}
	return b.Add(s)
}

// AddBinDict appends the wire form of a Dictionary: each entry as a
// net16string key followed by a net32string value, terminated by the
// two-byte zero-length-key marker.
func (b *OutBuffer) AddBinDict(d Dictionary) error {
	for _, e := range d {
		if err := b.AddNet16String(e.Key); err != nil {
			return err
		}
		if err := b.AddNet32String(e.Value); err != nil {
			return err
		}
	}
	return b.Add([]byte{0, 0})
}

// Bytes returns the accumulated bytes.
func (b *OutBuffer) Bytes() []byte {
	return b.buf
}

// Consume drops the first n bytes, as used when this buffer is reused as
// a ring by a parser.
func (b *OutBuffer) Consume(n int) {
	b.buf = b.buf[n:]
}
