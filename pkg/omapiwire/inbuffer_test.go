package omapiwire

import (
	"bytes"
	"math/rand"
	"testing"
)

// TestParseBinDictRoundTrip is property P1: for every dictionary with
// well-formed keys and values, decoding what was encoded yields the same
// dictionary.
func TestParseBinDictRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		n := rng.Intn(5)
		d := make(Dictionary, 0, n)
		for j := 0; j < n; j++ {
			key := make([]byte, 1+rng.Intn(10))
			rng.Read(key)
			value := make([]byte, rng.Intn(20))
			rng.Read(value)
			d = append(d, DictEntry{Key: key, Value: value})
		}

		out := NewOutBuffer()
		if err := out.AddBinDict(d); err != nil {
			t.Fatalf("AddBinDict: %v", err)
		}

		got, n2, ok := parseBinDict(out.Bytes())
		if !ok {
			t.Fatalf("parseBinDict: need more data")
		}
		if n2 != len(out.Bytes()) {
			t.Fatalf("consumed %d, want %d", n2, len(out.Bytes()))
		}
		if len(got) != len(d) {
			t.Fatalf("got %d entries, want %d", len(got), len(d))
		}
		for k := range d {
			if !bytes.Equal(got[k].Key, d[k].Key) || !bytes.Equal(got[k].Value, d[k].Value) {
				t.Fatalf("entry %d: got %+v, want %+v", k, got[k], d[k])
			}
		}
	}
}

// TestParseResumable verifies that a parser fed one byte at a time never
// errors, and eventually produces the value once enough bytes arrive —
// property that the InBuffer never blocks and reports "need more data"
// instead.
func TestParseResumable(t *testing.T) {
	out := NewOutBuffer()
	_ = out.AddNet32Int(1234)
	whole := out.Bytes()

	in := NewInBuffer()
	var got uint32
	var ok bool
	for i, b := range whole {
		if err := in.Feed([]byte{b}); err != nil {
			t.Fatalf("Feed: %v", err)
		}
		got, _, ok = parseNet32Int(in.buf)
		if ok {
			if i != len(whole)-1 {
				t.Fatalf("parsed early, after %d/%d bytes", i+1, len(whole))
			}
			break
		}
	}
	if !ok {
		t.Fatalf("never parsed")
	}
	if got != 1234 {
		t.Fatalf("got %d, want 1234", got)
	}
}

func TestInBufferSizeLimit(t *testing.T) {
	in := NewInBuffer()
	if err := in.Feed(make([]byte, SizeLimit)); err != nil {
		t.Fatalf("Feed at limit: %v", err)
	}
	if err := in.Feed([]byte{0}); err != ErrSizeLimit {
		t.Fatalf("got %v, want ErrSizeLimit", err)
	}
}

func TestInBufferResetSize(t *testing.T) {
	in := NewInBuffer()
	if err := in.Feed(make([]byte, SizeLimit)); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	// ResetSize re-baselines to the unparsed bytes, so drop what was fed
	// as a completed parse would.
	in.buf = in.buf[len(in.buf):]
	in.ResetSize()
	if err := in.Feed(make([]byte, SizeLimit)); err != nil {
		t.Fatalf("Feed after reset should not trip the limit: %v", err)
	}
}

func TestParseFrameRoundTrip(t *testing.T) {
	f := &Frame{
		AuthID:      0,
		Opcode:      1,
		Handle:      2,
		TID:         3,
		RID:         4,
		MessageDict: Dictionary{{Key: []byte("type"), Value: []byte("host")}},
		Obj:         Dictionary{{Key: []byte("ip-address"), Value: []byte{10, 0, 0, 1}}},
		Signature:   []byte{},
	}

	out := NewOutBuffer()
	if err := f.Encode(out, false); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	in := NewInBuffer()
	if err := in.Feed(out.Bytes()); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	got, ok := in.ParseFrame()
	if !ok {
		t.Fatalf("ParseFrame: need more data")
	}
	if got.AuthID != f.AuthID || got.Opcode != f.Opcode || got.Handle != f.Handle ||
		got.TID != f.TID || got.RID != f.RID {
		t.Fatalf("header mismatch: got %+v, want %+v", got, f)
	}
	if len(got.MessageDict) != 1 || string(got.MessageDict[0].Key) != "type" {
		t.Fatalf("message dict mismatch: %+v", got.MessageDict)
	}
	if v, ok := got.Obj.Get([]byte("ip-address")); !ok || !bytes.Equal(v, []byte{10, 0, 0, 1}) {
		t.Fatalf("obj dict mismatch: %+v", got.Obj)
	}
}

func TestParseFrameNeedsMoreData(t *testing.T) {
	f := &Frame{Opcode: 1, TID: 9}
	out := NewOutBuffer()
	_ = f.Encode(out, false)
	whole := out.Bytes()

	in := NewInBuffer()
	// Feed everything but the last byte: must report "need more data"
	// and must not have consumed anything.
	if err := in.Feed(whole[:len(whole)-1]); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if _, ok := in.ParseFrame(); ok {
		t.Fatalf("ParseFrame succeeded on truncated input")
	}
	if len(in.buf) != len(whole)-1 {
		t.Fatalf("buffer was mutated on failed parse: %d bytes", len(in.buf))
	}

	if err := in.Feed(whole[len(whole)-1:]); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if _, ok := in.ParseFrame(); !ok {
		t.Fatalf("ParseFrame failed once all bytes were fed")
	}
}

func TestDictionaryUpdate(t *testing.T) {
	d := Dictionary{
		{Key: []byte("a"), Value: []byte("1")},
		{Key: []byte("b"), Value: []byte("2")},
	}
	updated := d.Update(Dictionary{{Key: []byte("b"), Value: []byte("3")}})
	if len(updated) != 2 {
		t.Fatalf("got %d entries, want 2", len(updated))
	}
	if string(updated[0].Key) != "a" {
		t.Fatalf("first entry should be untouched 'a', got %q", updated[0].Key)
	}
	if string(updated[1].Key) != "b" || string(updated[1].Value) != "3" {
		t.Fatalf("updated entry wrong: %+v", updated[1])
	}
}

func TestDictionaryGetLastWins(t *testing.T) {
	d := Dictionary{
		{Key: []byte("k"), Value: []byte("first")},
		{Key: []byte("k"), Value: []byte("second")},
	}
	v, ok := d.Get([]byte("k"))
	if !ok || string(v) != "second" {
		t.Fatalf("got %q, %v, want \"second\", true", v, ok)
	}
}
