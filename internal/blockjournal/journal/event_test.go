package journal_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	tst "github.com/julianstephens/go-utils/tests"

	"github.com/julianstephens/blockjournal/internal/blockjournal/journal"
)

// encodeEventEnvelope hand-builds an event entry envelope so tests can
// exercise decode without going through Encode.
func encodeEventEnvelope(structV, compatV uint8, payload []byte) []byte {
	buf := new(bytes.Buffer)
	buf.WriteByte(structV)
	buf.WriteByte(compatV)
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(payload))) //nolint:gosec
	buf.Write(payload)
	return buf.Bytes()
}

// TestAioDiscardRoundTrip tests encode/decode of a populated discard event
func TestAioDiscardRoundTrip(t *testing.T) {
	entry := journal.EventEntry{Event: &journal.AioDiscardEvent{Offset: 123, Length: 345}}

	decoded, err := journal.DecodeEventEntry(entry.Encode())
	tst.RequireNoError(t, err)

	tst.RequireDeepEqual(t, decoded.EventType(), journal.EventTypeAioDiscard)
	tst.RequireDeepEqual(t, decoded, entry)
}

// TestAioWriteRoundTrip tests that write payload data survives a round trip
func TestAioWriteRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("1"), 32)
	entry := journal.EventEntry{Event: &journal.AioWriteEvent{Offset: 123, Length: 456, Data: data}}

	decoded, err := journal.DecodeEventEntry(entry.Encode())
	tst.RequireNoError(t, err)

	ev, ok := decoded.Event.(*journal.AioWriteEvent)
	tst.AssertTrue(t, ok, "expected AioWriteEvent")
	tst.RequireDeepEqual(t, ev.Offset, uint64(123))
	tst.RequireDeepEqual(t, ev.Length, uint64(456))
	tst.RequireDeepEqual(t, len(ev.Data), 32)
	tst.RequireDeepEqual(t, ev.Data, data)
}

// TestAioWriteDataIsCopied tests that decoded write data does not alias the input buffer
func TestAioWriteDataIsCopied(t *testing.T) {
	entry := journal.EventEntry{Event: &journal.AioWriteEvent{Offset: 0, Length: 4, Data: []byte("abcd")}}
	encoded := entry.Encode()

	decoded, err := journal.DecodeEventEntry(encoded)
	tst.RequireNoError(t, err)

	for i := range encoded {
		encoded[i] = 0xFF
	}

	ev := decoded.Event.(*journal.AioWriteEvent)
	tst.RequireDeepEqual(t, ev.Data, []byte("abcd"))
}

// TestSnapRenameRoundTrip tests the source snap id and destination name
func TestSnapRenameRoundTrip(t *testing.T) {
	entry := journal.EventEntry{Event: &journal.SnapRenameEvent{
		SnapBase: journal.SnapBase{OpBase: journal.OpBase{OpTid: 456}, SnapName: "snap"},
		SnapId:   1,
	}}

	decoded, err := journal.DecodeEventEntry(entry.Encode())
	tst.RequireNoError(t, err)

	ev, ok := decoded.Event.(*journal.SnapRenameEvent)
	tst.AssertTrue(t, ok, "expected SnapRenameEvent")
	tst.RequireDeepEqual(t, ev.SnapId, uint64(1))
	tst.RequireDeepEqual(t, ev.SnapName, "snap")
	tst.RequireDeepEqual(t, ev.OpTid, uint64(456))
}

// TestOpFinishDuplicateOpTidOnWire tests that the op id appears twice in the
// encoded payload (base copy + explicit copy) and both survive a round trip
func TestOpFinishDuplicateOpTidOnWire(t *testing.T) {
	entry := journal.EventEntry{Event: journal.NewOpFinishEvent(123, -1)}
	encoded := entry.Encode()

	// envelope header (6) + discriminator (4) + op_tid (8) + op_tid (8) + result (4)
	tst.RequireDeepEqual(t, len(encoded), 30)

	payload := encoded[journal.EnvelopeHeaderSize:]
	tst.RequireDeepEqual(t, binary.LittleEndian.Uint32(payload[0:4]), uint32(journal.EventTypeOpFinish))
	tst.RequireDeepEqual(t, binary.LittleEndian.Uint64(payload[4:12]), uint64(123))
	tst.RequireDeepEqual(t, binary.LittleEndian.Uint64(payload[12:20]), uint64(123))
	tst.RequireDeepEqual(t, binary.LittleEndian.Uint32(payload[20:24]), uint32(0xFFFFFFFF))

	decoded, err := journal.DecodeEventEntry(encoded)
	tst.RequireNoError(t, err)

	ev := decoded.Event.(*journal.OpFinishEvent)
	tst.RequireDeepEqual(t, ev.OpBase.OpTid, uint64(123))
	tst.RequireDeepEqual(t, ev.OpTid, uint64(123))
	tst.RequireDeepEqual(t, ev.Result, int32(-1))
	tst.RequireDeepEqual(t, bytes.Compare(decoded.Encode(), encoded), 0)
}

// TestUnknownEventDiscriminator tests that an out-of-catalog discriminator
// decodes to the placeholder without error and retains the raw value
func TestUnknownEventDiscriminator(t *testing.T) {
	payload := make([]byte, 4)
	binary.LittleEndian.PutUint32(payload, 9999)
	encoded := encodeEventEnvelope(1, 1, payload)

	decoded, err := journal.DecodeEventEntry(encoded)
	tst.RequireNoError(t, err)

	_, ok := decoded.Event.(*journal.UnknownEvent)
	tst.AssertTrue(t, ok, "expected UnknownEvent placeholder")
	tst.RequireDeepEqual(t, decoded.EventType(), journal.EventType(9999))
	assert.Equal(t, "Unknown (9999)", decoded.EventType().String())
}

// TestUnknownEventSkipsPayload tests that an unrecognized discriminator's
// payload bytes are skipped via the envelope's declared length
func TestUnknownEventSkipsPayload(t *testing.T) {
	payload := make([]byte, 4, 20)
	binary.LittleEndian.PutUint32(payload, 9999)
	payload = append(payload, bytes.Repeat([]byte{0xAB}, 16)...)
	encoded := encodeEventEnvelope(1, 1, payload)

	decoded, err := journal.DecodeEventEntry(encoded)
	tst.RequireNoError(t, err)
	tst.RequireDeepEqual(t, decoded.EventType(), journal.EventType(9999))
}

// TestEncodePlaceholderPanics tests that re-encoding a decoded placeholder
// is treated as a programming error
func TestEncodePlaceholderPanics(t *testing.T) {
	payload := make([]byte, 4)
	binary.LittleEndian.PutUint32(payload, 9999)
	decoded, err := journal.DecodeEventEntry(encodeEventEnvelope(1, 1, payload))
	tst.RequireNoError(t, err)

	assert.Panics(t, func() {
		_ = decoded.Encode()
	})
}

// TestEventEntryTruncatedPayload tests a payload decoder running out of
// declared bytes
func TestEventEntryTruncatedPayload(t *testing.T) {
	payload := make([]byte, 8)
	binary.LittleEndian.PutUint32(payload, uint32(journal.EventTypeAioDiscard))
	// only 4 of the 16 field bytes present
	encoded := encodeEventEnvelope(1, 1, payload)

	_, err := journal.DecodeEventEntry(encoded)
	tst.AssertTrue(t, err != nil, "expected error for truncated payload")
	tst.AssertTrue(t, journal.IsTruncation(err), "expected truncation error")

	var ce *journal.CodecError
	tst.AssertTrue(t, errors.As(err, &ce), "expected CodecError")
	tst.RequireDeepEqual(t, ce.Field, "offset")
}

// TestEventTypeStrings tests the diagnostic mnemonics
func TestEventTypeStrings(t *testing.T) {
	assert.Equal(t, "AioDiscard", journal.EventTypeAioDiscard.String())
	assert.Equal(t, "AioWrite", journal.EventTypeAioWrite.String())
	assert.Equal(t, "AioFlush", journal.EventTypeAioFlush.String())
	assert.Equal(t, "OpFinish", journal.EventTypeOpFinish.String())
	assert.Equal(t, "SnapCreate", journal.EventTypeSnapCreate.String())
	assert.Equal(t, "SnapRemove", journal.EventTypeSnapRemove.String())
	assert.Equal(t, "SnapRename", journal.EventTypeSnapRename.String())
	assert.Equal(t, "SnapProtect", journal.EventTypeSnapProtect.String())
	assert.Equal(t, "SnapUnprotect", journal.EventTypeSnapUnprotect.String())
	assert.Equal(t, "SnapRollback", journal.EventTypeSnapRollback.String())
	assert.Equal(t, "Rename", journal.EventTypeRename.String())
	assert.Equal(t, "Resize", journal.EventTypeResize.String())
	assert.Equal(t, "Flatten", journal.EventTypeFlatten.String())
	assert.Equal(t, "Unknown (13)", journal.EventType(13).String())
}
