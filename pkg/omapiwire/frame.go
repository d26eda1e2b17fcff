package omapiwire

// Frame is the decoded form of one OMAPI message envelope: the six
// 32-bit header fields, the two embedded dictionaries, and the trailing
// signature. It carries no signing or verification logic of its own;
// that belongs to the higher-level message type built on top of it.
type Frame struct {
	AuthID      uint32
	Opcode      uint32
	Handle      uint32
	TID         uint32
	RID         uint32
	MessageDict Dictionary
	Obj         Dictionary
	Signature   []byte
}

// Encode serializes the frame. When forSigning is true, the leading
// AuthID field and the trailing Signature bytes are both omitted — this
// is the exact byte sequence an Authenticator signs. The authlen length
// prefix (derived from len(Signature)) is always included.
func (f *Frame) Encode(buf *OutBuffer, forSigning bool) error {
	if !forSigning {
		if err := buf.AddNet32Int(f.AuthID); err != nil {
			return err
		}
	}
	if err := buf.AddNet32Int(uint32(len(f.Signature))); err != nil {
		return err
	}
	if err := buf.AddNet32Int(f.Opcode); err != nil {
		return err
	}
	if err := buf.AddNet32Int(f.Handle); err != nil {
		return err
	}
	if err := buf.AddNet32Int(f.TID); err != nil {
		return err
	}
	if err := buf.AddNet32Int(f.RID); err != nil {
		return err
	}
	if err := buf.AddBinDict(f.MessageDict); err != nil {
		return err
	}
	if err := buf.AddBinDict(f.Obj); err != nil {
		return err
	}
	if !forSigning {
		if err := buf.Add(f.Signature); err != nil {
			return err
		}
	}
	return nil
}
