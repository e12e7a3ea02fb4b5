package journal

import (
	"encoding/binary"
)

// Wire primitive sizes. All integers are little-endian; strings and byte
// blobs are prefixed with a u32 byte length.
const (
	U8Size        = 1 // struct version / compat version fields
	U32Size       = 4 // discriminators, payload lengths, i32 results
	U64Size       = 8 // offsets, lengths, op tids, snap ids
	LenPrefixSize = 4 // string / blob length prefix
)

// buffer is an append-only encode target.
type buffer struct {
	data []byte
}

func (b *buffer) u8(v uint8) {
	b.data = append(b.data, v)
}

func (b *buffer) u32(v uint32) {
	b.data = binary.LittleEndian.AppendUint32(b.data, v)
}

func (b *buffer) u64(v uint64) {
	b.data = binary.LittleEndian.AppendUint64(b.data, v)
}

func (b *buffer) i32(v int32) {
	b.u32(uint32(v))
}

func (b *buffer) i64(v int64) {
	b.u64(uint64(v))
}

func (b *buffer) str(s string) {
	b.u32(uint32(len(s))) //nolint:gosec
	b.data = append(b.data, s...)
}

func (b *buffer) blob(p []byte) {
	b.u32(uint32(len(p))) //nolint:gosec
	b.data = append(b.data, p...)
}

// decoder is a bounds-checked cursor over a payload byte slice. Field
// reads fail with a CodecError naming the field and the offset at which
// the payload ran out.
type decoder struct {
	data []byte
	off  int
}

func newDecoder(data []byte) *decoder {
	return &decoder{data: data}
}

// remaining reports the number of unconsumed bytes.
func (d *decoder) remaining() int {
	return len(d.data) - d.off
}

func (d *decoder) need(want int, field string) error {
	if have := d.remaining(); have < want {
		return &CodecError{
			Kind:  CodecTruncated,
			Field: field,
			At:    d.off,
			Want:  want,
			Have:  have,
			Err:   ErrCodecTruncated,
		}
	}
	return nil
}

func (d *decoder) u8(field string) (uint8, error) {
	if err := d.need(U8Size, field); err != nil {
		return 0, err
	}
	v := d.data[d.off]
	d.off += U8Size
	return v, nil
}

func (d *decoder) u32(field string) (uint32, error) {
	if err := d.need(U32Size, field); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(d.data[d.off : d.off+U32Size])
	d.off += U32Size
	return v, nil
}

func (d *decoder) u64(field string) (uint64, error) {
	if err := d.need(U64Size, field); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(d.data[d.off : d.off+U64Size])
	d.off += U64Size
	return v, nil
}

func (d *decoder) i32(field string) (int32, error) {
	v, err := d.u32(field)
	return int32(v), err //nolint:gosec
}

func (d *decoder) i64(field string) (int64, error) {
	v, err := d.u64(field)
	return int64(v), err //nolint:gosec
}

func (d *decoder) str(field string) (string, error) {
	n, err := d.u32(field)
	if err != nil {
		return "", err
	}
	if err := d.need(int(n), field); err != nil {
		return "", err
	}
	v := string(d.data[d.off : d.off+int(n)])
	d.off += int(n)
	return v, nil
}

// blob reads a length-prefixed byte sequence into freshly allocated
// memory. The decoded value never aliases the input slice. A zero-length
// blob decodes as nil.
func (d *decoder) blob(field string) ([]byte, error) {
	n, err := d.u32(field)
	if err != nil {
		return nil, err
	}
	if err := d.need(int(n), field); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	v := make([]byte, n)
	copy(v, d.data[d.off:d.off+int(n)])
	d.off += int(n)
	return v, nil
}
