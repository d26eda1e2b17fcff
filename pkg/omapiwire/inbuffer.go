package omapiwire

import "encoding/binary"

// InBuffer is an incrementally fed pull-parser over an OMAPI byte stream.
// Callers Feed bytes as they arrive from the transport; each Parse*
// method either returns a decoded value and advances past it, or reports
// that more bytes are needed (ok == false) and leaves the buffer
// untouched so the same call can be retried once more data has been fed.
type InBuffer struct {
	buf       []byte
	totalSize int
}

// NewInBuffer returns an empty InBuffer.
func NewInBuffer() *InBuffer {
	return &InBuffer{}
}

// Feed appends newly received bytes and checks the running size meter.
func (b *InBuffer) Feed(data []byte) error {
	b.buf = append(b.buf, data...)
	b.totalSize += len(data)
	if b.totalSize > SizeLimit {
		return ErrSizeLimit
	}
	return nil
}

// ResetSize re-baselines the size meter to the bytes currently
// unparsed. Call this after each complete PDU has been consumed so the
// limit bounds any single PDU rather than the connection's lifetime.
func (b *InBuffer) ResetSize() {
	b.totalSize = len(b.buf)
}

func parseFixed(buf []byte, n int) ([]byte, int, bool) {
	if len(buf) < n {
		return nil, 0, false
	}
	out := make([]byte, n)
	copy(out, buf[:n])
	return out, n, true
}

func parseNet16Int(buf []byte) (uint16, int, bool) {
	data, n, ok := parseFixed(buf, 2)
	if !ok {
		return 0, 0, false
	}
	return binary.BigEndian.Uint16(data), n, true
}

func parseNet32Int(buf []byte) (uint32, int, bool) {
	data, n, ok := parseFixed(buf, 4)
	if !ok {
		return 0, 0, false
	}
	return binary.BigEndian.Uint32(data), n, true
}

func parseNet16String(buf []byte) ([]byte, int, bool) {
	length, n, ok := parseNet16Int(buf)
	if !ok {
		return nil, 0, false
	}
	data, m, ok := parseFixed(buf[n:], int(length))
	if !ok {
		return nil, 0, false
	}
	return data, n + m, true
}

func parseNet32String(buf []byte) ([]byte, int, bool) {
	length, n, ok := parseNet32Int(buf)
	if !ok {
		return nil, 0, false
	}
	data, m, ok := parseFixed(buf[n:], int(length))
	if !ok {
		return nil, 0, false
	}
	return data, n + m, true
}

func parseBinDict(buf []byte) (Dictionary, int, bool) {
	var entries Dictionary
	off := 0
	for {
		key, n, ok := parseNet16String(buf[off:])
		if !ok {
			return nil, 0, false
		}
		if len(key) == 0 {
			off += n
			break
		}
		value, m, ok := parseNet32String(buf[off+n:])
		if !ok {
			return nil, 0, false
		}
		entries = append(entries, DictEntry{Key: key, Value: value})
		off += n + m
	}
	return entries, off, true
}

func parseStartup(buf []byte) (version uint32, headerSize uint32, consumed int, ok bool) {
	v, n, ok := parseNet32Int(buf)
	if !ok {
		return 0, 0, 0, false
	}
	h, m, ok := parseNet32Int(buf[n:])
	if !ok {
		return 0, 0, 0, false
	}
	return v, h, n + m, true
}

func parseFrame(buf []byte) (*Frame, int, bool) {
	off := 0

	authid, n, ok := parseNet32Int(buf[off:])
	if !ok {
		return nil, 0, false
	}
	off += n

	authlen, n, ok := parseNet32Int(buf[off:])
	if !ok {
		return nil, 0, false
	}
	off += n

	opcode, n, ok := parseNet32Int(buf[off:])
	if !ok {
		return nil, 0, false
	}
	off += n

	handle, n, ok := parseNet32Int(buf[off:])
	if !ok {
		return nil, 0, false
	}
	off += n

	tid, n, ok := parseNet32Int(buf[off:])
	if !ok {
		return nil, 0, false
	}
	off += n

	rid, n, ok := parseNet32Int(buf[off:])
	if !ok {
		return nil, 0, false
	}
	off += n

	messageDict, n, ok := parseBinDict(buf[off:])
	if !ok {
		return nil, 0, false
	}
	off += n

	objDict, n, ok := parseBinDict(buf[off:])
	if !ok {
		return nil, 0, false
	}
	off += n

	signature, n, ok := parseFixed(buf[off:], int(authlen))
	if !ok {
		return nil, 0, false
	}
	off += n

	return &Frame{
		AuthID:      authid,
		Opcode:      opcode,
		Handle:      handle,
		TID:         tid,
		RID:         rid,
		MessageDict: messageDict,
		Obj:         objDict,
		Signature:   signature,
	}, off, true
}

// ParseStartup attempts to decode the two-field startup frame
// (protocol_version, header_size). ok is false when more bytes are
// needed; the buffer is left untouched in that case.
func (b *InBuffer) ParseStartup() (version uint32, headerSize uint32, ok bool) {
	version, headerSize, n, ok := parseStartup(b.buf)
	if !ok {
		return 0, 0, false
	}
	b.buf = b.buf[n:]
	return version, headerSize, true
}

// ParseFrame attempts to decode one full message frame: the six-field
// header, the message and obj dictionaries, and exactly authlen bytes of
// signature. ok is false when more bytes are needed; the buffer is left
// untouched in that case.
func (b *InBuffer) ParseFrame() (*Frame, bool) {
	frame, n, ok := parseFrame(b.buf)
	if !ok {
		return nil, false
	}
	b.buf = b.buf[n:]
	return frame, true
}
