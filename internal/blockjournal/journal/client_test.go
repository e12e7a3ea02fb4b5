package journal_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/alecthomas/assert/v2"
	tst "github.com/julianstephens/go-utils/tests"

	"github.com/julianstephens/blockjournal/internal/blockjournal/journal"
)

// TestMirrorPeerRoundTrip tests encode/decode of a populated mirror peer
// registration
func TestMirrorPeerRoundTrip(t *testing.T) {
	data := journal.ClientData{ClientMeta: &journal.MirrorPeerClientMeta{
		ClusterId: "cluster_id",
		PoolId:    123,
		ImageId:   "image_id",
	}}

	decoded, err := journal.DecodeClientData(data.Encode())
	tst.RequireNoError(t, err)

	tst.RequireDeepEqual(t, decoded.ClientMetaType(), journal.MirrorPeerClientMetaType)
	tst.RequireDeepEqual(t, decoded, data)
}

// TestMirrorPeerDumpFields tests that dump emits the peer fields verbatim
func TestMirrorPeerDumpFields(t *testing.T) {
	data := journal.ClientData{ClientMeta: &journal.MirrorPeerClientMeta{
		ClusterId: "cluster_id",
		PoolId:    123,
		ImageId:   "image_id",
	}}

	f := &journal.RecordFormatter{}
	data.Dump(f)

	tst.RequireDeepEqual(t, f.Fields, []journal.Field{
		{Name: "client_meta_type", Value: "Mirror Peer"},
		{Name: "cluster_id", Value: "cluster_id"},
		{Name: "pool_id", Value: int64(123)},
		{Name: "image_id", Value: "image_id"},
	})
}

// TestImageClientMetaRoundTrip tests the master image registration
func TestImageClientMetaRoundTrip(t *testing.T) {
	data := journal.ClientData{ClientMeta: &journal.ImageClientMeta{TagClass: 123}}

	decoded, err := journal.DecodeClientData(data.Encode())
	tst.RequireNoError(t, err)

	meta, ok := decoded.ClientMeta.(*journal.ImageClientMeta)
	tst.AssertTrue(t, ok, "expected ImageClientMeta")
	tst.RequireDeepEqual(t, meta.TagClass, uint64(123))
}

// TestCliClientMetaRoundTrip tests the empty CLI registration payload
func TestCliClientMetaRoundTrip(t *testing.T) {
	data := journal.ClientData{ClientMeta: &journal.CliClientMeta{}}
	encoded := data.Encode()

	// envelope header + discriminator only
	tst.RequireDeepEqual(t, len(encoded), journal.EnvelopeHeaderSize+4)

	decoded, err := journal.DecodeClientData(encoded)
	tst.RequireNoError(t, err)
	tst.RequireDeepEqual(t, decoded.ClientMetaType(), journal.CliClientMetaType)
}

// TestUnknownClientMetaDiscriminator tests forward compatibility with a
// client-meta type this build does not know
func TestUnknownClientMetaDiscriminator(t *testing.T) {
	payload := make([]byte, 4, 12)
	binary.LittleEndian.PutUint32(payload, 77)
	payload = append(payload, bytes.Repeat([]byte{0x55}, 8)...)

	buf := new(bytes.Buffer)
	buf.WriteByte(1)
	buf.WriteByte(1)
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(payload))) //nolint:gosec
	buf.Write(payload)

	decoded, err := journal.DecodeClientData(buf.Bytes())
	tst.RequireNoError(t, err)

	_, ok := decoded.ClientMeta.(*journal.UnknownClientMeta)
	tst.AssertTrue(t, ok, "expected UnknownClientMeta placeholder")
	tst.RequireDeepEqual(t, decoded.ClientMetaType(), journal.ClientMetaType(77))
	assert.Equal(t, "Unknown (77)", decoded.ClientMetaType().String())

	assert.Panics(t, func() {
		_ = decoded.Encode()
	})
}

// TestClientMetaTypeStrings tests the diagnostic mnemonics
func TestClientMetaTypeStrings(t *testing.T) {
	assert.Equal(t, "Master Image", journal.ImageClientMetaType.String())
	assert.Equal(t, "Mirror Peer", journal.MirrorPeerClientMetaType.String())
	assert.Equal(t, "CLI Tool", journal.CliClientMetaType.String())
	assert.Equal(t, "Unknown (3)", journal.ClientMetaType(3).String())
}

// TestClientDataTruncatedPayload tests a mirror peer payload cut short
func TestClientDataTruncatedPayload(t *testing.T) {
	data := journal.ClientData{ClientMeta: &journal.MirrorPeerClientMeta{
		ClusterId: "cluster_id",
		PoolId:    123,
		ImageId:   "image_id",
	}}
	encoded := data.Encode()

	// shorten the payload and fix up the declared length so the failure is
	// a field-level truncation rather than an envelope one
	short := encoded[:len(encoded)-4]
	binary.LittleEndian.PutUint32(short[2:6], uint32(len(short)-journal.EnvelopeHeaderSize)) //nolint:gosec

	_, err := journal.DecodeClientData(short)
	tst.AssertTrue(t, err != nil, "expected error for truncated payload")
	tst.AssertTrue(t, journal.IsTruncation(err), "expected truncation error")
}
