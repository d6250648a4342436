package lcf

import (
	"fmt"
	"io"
)

// Signatures of the three container kinds.
const (
	SigDatabase = "LcfDataBase"
	SigMapUnit  = "LcfMapUnit"
	SigMapTree  = "LcfMapTree"
)

// Chunk is one tagged block of a container.
type Chunk struct {
	ID   int
	Data []byte
}

// Reader walks a container byte stream. It never copies payloads, the
// returned chunk data aliases the input buffer.
type Reader struct {
	data []byte
	off  int
}

// NewReader returns a reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadSignature consumes the length-prefixed signature at the start of
// a container.
func (r *Reader) ReadSignature() (string, error) {
	if r.off >= len(r.data) {
		return "", r.eof()
	}
	n := int(r.data[r.off])
	r.off++
	raw, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// ReadInt decodes a big-endian base-128 number. The high bit of each
// byte flags a continuation.
func (r *Reader) ReadInt() (int, error) {
	value := 0
	for i := 0; ; i++ {
		if r.off >= len(r.data) {
			return 0, r.eof()
		}
		if i == 5 {
			return 0, fmt.Errorf("offset %d: number too long", r.off)
		}
		b := r.data[r.off]
		r.off++
		value = value<<7 | int(b&0x7F)
		if b&0x80 == 0 {
			return value, nil
		}
	}
}

// ReadBytes consumes the next n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > len(r.data)-r.off {
		return nil, r.eof()
	}
	raw := r.data[r.off : r.off+n]
	r.off += n
	return raw, nil
}

// ReadChunk reads the next chunk tag. The second result is false at the
// end of the stream or at a terminator tag, both end a chunk list.
func (r *Reader) ReadChunk() (Chunk, bool, error) {
	if r.off >= len(r.data) {
		return Chunk{}, false, nil
	}
	id, err := r.ReadInt()
	if err != nil {
		return Chunk{}, false, err
	}
	if id == 0 {
		return Chunk{}, false, nil
	}
	size, err := r.ReadInt()
	if err != nil {
		return Chunk{}, false, err
	}
	data, err := r.ReadBytes(size)
	if err != nil {
		return Chunk{}, false, fmt.Errorf("chunk 0x%02X: %w", id, err)
	}
	return Chunk{ID: id, Data: data}, true, nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Offset returns the current read position.
func (r *Reader) Offset() int {
	return r.off
}

func (r *Reader) eof() error {
	return fmt.Errorf("offset %d: %w", r.off, io.ErrUnexpectedEOF)
}

// Reader returns a sub-reader over the chunk payload.
func (c Chunk) Reader() *Reader {
	return NewReader(c.Data)
}

// Int decodes the whole chunk payload as a single number.
func (c Chunk) Int() (int, error) {
	return NewReader(c.Data).ReadInt()
}
