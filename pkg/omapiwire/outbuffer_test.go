package omapiwire

import (
	"bytes"
	"testing"
)

func TestOutBufferAddBinDict(t *testing.T) {
	buf := NewOutBuffer()
	d := Dictionary{{Key: []byte("foo"), Value: []byte("bar")}}
	if err := buf.AddBinDict(d); err != nil {
		t.Fatalf("AddBinDict: %v", err)
	}
	want := []byte{0x00, 0x03, 'f', 'o', 'o', 0x00, 0x00, 0x00, 0x03, 'b', 'a', 'r', 0x00, 0x00}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % x, want % x", buf.Bytes(), want)
	}
}

func TestOutBufferIntRoundTrip(t *testing.T) {
	buf := NewOutBuffer()
	if err := buf.AddNet32Int(0xdeadbeef); err != nil {
		t.Fatalf("AddNet32Int: %v", err)
	}
	if err := buf.AddNet16Int(0xbeef); err != nil {
		t.Fatalf("AddNet16Int: %v", err)
	}

	in := NewInBuffer()
	if err := in.Feed(buf.Bytes()); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	got32, n, ok := parseNet32Int(in.buf)
	if !ok {
		t.Fatalf("parseNet32Int: need more data")
	}
	if got32 != 0xdeadbeef {
		t.Fatalf("got %x, want %x", got32, 0xdeadbeef)
	}
	got16, _, ok := parseNet16Int(in.buf[n:])
	if !ok {
		t.Fatalf("parseNet16Int: need more data")
	}
	if got16 != 0xbeef {
		t.Fatalf("got %x, want %x", got16, 0xbeef)
	}
}

func TestOutBufferSizeLimit(t *testing.T) {
	buf := NewOutBuffer()
	big := make([]byte, SizeLimit+1)
	if err := buf.Add(big); err != ErrSizeLimit {
		t.Fatalf("got %v, want ErrSizeLimit", err)
	}
	if len(buf.Bytes()) != 0 {
		t.Fatalf("buffer state corrupted after failed write: %d bytes", len(buf.Bytes()))
	}
}

func TestOutBufferNet16StringTooLong(t *testing.T) {
	buf := NewOutBuffer()
	if err := buf.AddNet16String(make([]byte, 1<<16)); err != ErrSizeLimit {
		t.Fatalf("got %v, want ErrSizeLimit", err)
	}
}

func TestOutBufferConsume(t *testing.T) {
	buf := NewOutBuffer()
	_ = buf.Add([]byte("hello world"))
	buf.Consume(6)
	if !bytes.Equal(buf.Bytes(), []byte("world")) {
		t.Fatalf("got %q, want %q", buf.Bytes(), "world")
	}
}
