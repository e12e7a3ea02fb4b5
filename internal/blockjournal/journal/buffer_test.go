package journal

import (
	"testing"

	tst "github.com/julianstephens/go-utils/tests"
)

// Wire primitive tests run inside the package; the buffer and decoder are
// deliberately unexported.

// TestStringPrefixing tests the u32 length prefix on strings
func TestStringPrefixing(t *testing.T) {
	b := &buffer{}
	b.str("snap")

	tst.RequireDeepEqual(t, b.data, []byte{0x04, 0x00, 0x00, 0x00, 's', 'n', 'a', 'p'})

	d := newDecoder(b.data)
	s, err := d.str("snap_name")
	tst.RequireNoError(t, err)
	tst.RequireDeepEqual(t, s, "snap")
	tst.RequireDeepEqual(t, d.remaining(), 0)
}

// TestEmptyBlobDecodesNil tests that a zero-length blob round-trips to nil
func TestEmptyBlobDecodesNil(t *testing.T) {
	b := &buffer{}
	b.blob(nil)

	d := newDecoder(b.data)
	p, err := d.blob("data")
	tst.RequireNoError(t, err)
	tst.AssertTrue(t, p == nil, "expected nil blob")
}

// TestSignedEncoding tests the two's-complement mapping of signed fields
func TestSignedEncoding(t *testing.T) {
	b := &buffer{}
	b.i32(-1)
	b.i64(-2)

	d := newDecoder(b.data)
	v32, err := d.i32("result")
	tst.RequireNoError(t, err)
	tst.RequireDeepEqual(t, v32, int32(-1))

	v64, err := d.i64("pool_id")
	tst.RequireNoError(t, err)
	tst.RequireDeepEqual(t, v64, int64(-2))
}

// TestDecoderStringTruncated tests a string whose declared length exceeds
// the remaining bytes
func TestDecoderStringTruncated(t *testing.T) {
	b := &buffer{}
	b.str("image_id")
	data := b.data[:len(b.data)-3]

	d := newDecoder(data)
	_, err := d.str("image_id")
	tst.AssertTrue(t, err != nil, "expected truncation error")

	ce, ok := err.(*CodecError)
	tst.AssertTrue(t, ok, "expected CodecError")
	tst.RequireDeepEqual(t, ce.Kind, CodecTruncated)
	tst.RequireDeepEqual(t, ce.Field, "image_id")
}
