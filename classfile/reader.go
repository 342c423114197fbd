package classfile

import (
	"bytes"
	"encoding/binary"
	"io"
)

// reader is a big-endian cursor with a sticky error. Once a read fails every
// subsequent read returns zero values, so decoders check err once per record.
type reader struct {
	r        io.Reader
	err      error
	consumed int64
}

func newReader(r io.Reader) *reader {
	return &reader{r: r}
}

func newBytesReader(b []byte) *reader {
	return &reader{r: bytes.NewReader(b)}
}

func (r *reader) read(buf []byte) {
	if r.err != nil {
		return
	}
	n, err := io.ReadFull(r.r, buf)
	r.consumed += int64(n)
	if err != nil {
		r.err = ErrTruncated
	}
}

func (r *reader) readU1() uint8 {
	var buf [1]byte
	r.read(buf[:])
	return buf[0]
}

func (r *reader) readU2() uint16 {
	var buf [2]byte
	r.read(buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (r *reader) readU4() uint32 {
	var buf [4]byte
	r.read(buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

// readBytes reads exactly n bytes. The buffer grows with the data actually
// available, so a bogus length on a short stream cannot force a huge
// allocation up front.
func (r *reader) readBytes(n uint32) []byte {
	if r.err != nil {
		return nil
	}
	var buf bytes.Buffer
	copied, err := io.CopyN(&buf, r.r, int64(n))
	r.consumed += copied
	if err != nil {
		r.err = ErrTruncated
		return nil
	}
	return buf.Bytes()
}

func (r *reader) malformed(context string, err error) *MalformedClassError {
	return &MalformedClassError{Offset: r.consumed, Context: context, Err: err}
}
