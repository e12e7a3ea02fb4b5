package journal

import "fmt"

// EventType discriminates the event payload variants. Values are part of
// the wire contract: the catalog is append-only and existing values are
// never reassigned.
type EventType uint32

const (
	EventTypeAioDiscard EventType = iota
	EventTypeAioWrite
	EventTypeAioFlush
	EventTypeOpFinish
	EventTypeSnapCreate
	EventTypeSnapRemove
	EventTypeSnapRename
	EventTypeSnapProtect
	EventTypeSnapUnprotect
	EventTypeSnapRollback
	EventTypeRename
	EventTypeResize
	EventTypeFlatten
)

func (t EventType) String() string {
	switch t {
	case EventTypeAioDiscard:
		return "AioDiscard"
	case EventTypeAioWrite:
		return "AioWrite"
	case EventTypeAioFlush:
		return "AioFlush"
	case EventTypeOpFinish:
		return "OpFinish"
	case EventTypeSnapCreate:
		return "SnapCreate"
	case EventTypeSnapRemove:
		return "SnapRemove"
	case EventTypeSnapRename:
		return "SnapRename"
	case EventTypeSnapProtect:
		return "SnapProtect"
	case EventTypeSnapUnprotect:
		return "SnapUnprotect"
	case EventTypeSnapRollback:
		return "SnapRollback"
	case EventTypeRename:
		return "Rename"
	case EventTypeResize:
		return "Resize"
	case EventTypeFlatten:
		return "Flatten"
	default:
		return fmt.Sprintf("Unknown (%d)", uint32(t))
	}
}

// Event is one recorded operation in the journal. The encode/decode
// methods are unexported so the variant catalog stays closed: new shapes
// are added here, with a new discriminator, never registered at runtime.
type Event interface {
	// EventType returns the variant's canonical discriminator, derived
	// from the concrete type rather than stored.
	EventType() EventType

	// Dump emits the variant's fields to f for diagnostics.
	Dump(f Formatter)

	encode(b *buffer)
	decode(version uint8, d *decoder) error
}

// OpBase carries the operation id shared by every management-op event.
// Shared field groups are composed by embedding, not inherited.
type OpBase struct {
	OpTid uint64
}

func (o *OpBase) encode(b *buffer) {
	b.u64(o.OpTid)
}

func (o *OpBase) decode(version uint8, d *decoder) error {
	var err error
	o.OpTid, err = d.u64("op_tid")
	return err
}

func (o *OpBase) Dump(f Formatter) {
	f.DumpUnsigned("op_tid", o.OpTid)
}

// SnapBase extends OpBase with the snapshot name shared by the snapshot
// management events.
type SnapBase struct {
	OpBase
	SnapName string
}

func (s *SnapBase) encode(b *buffer) {
	s.OpBase.encode(b)
	b.str(s.SnapName)
}

func (s *SnapBase) decode(version uint8, d *decoder) error {
	if err := s.OpBase.decode(version, d); err != nil {
		return err
	}
	var err error
	s.SnapName, err = d.str("snap_name")
	return err
}

func (s *SnapBase) Dump(f Formatter) {
	s.OpBase.Dump(f)
	f.DumpString("snap_name", s.SnapName)
}

// AioDiscardEvent records a discard of a byte extent.
type AioDiscardEvent struct {
	Offset uint64
	Length uint64
}

func (e *AioDiscardEvent) EventType() EventType { return EventTypeAioDiscard }

func (e *AioDiscardEvent) encode(b *buffer) {
	b.u64(e.Offset)
	b.u64(e.Length)
}

func (e *AioDiscardEvent) decode(version uint8, d *decoder) error {
	var err error
	if e.Offset, err = d.u64("offset"); err != nil {
		return err
	}
	e.Length, err = d.u64("length")
	return err
}

func (e *AioDiscardEvent) Dump(f Formatter) {
	f.DumpUnsigned("offset", e.Offset)
	f.DumpUnsigned("length", e.Length)
}

// AioWriteEvent records a write of payload bytes at a byte extent. Data is
// owned by the event; decode copies it out of the input buffer.
type AioWriteEvent struct {
	Offset uint64
	Length uint64
	Data   []byte
}

func (e *AioWriteEvent) EventType() EventType { return EventTypeAioWrite }

func (e *AioWriteEvent) encode(b *buffer) {
	b.u64(e.Offset)
	b.u64(e.Length)
	b.blob(e.Data)
}

func (e *AioWriteEvent) decode(version uint8, d *decoder) error {
	var err error
	if e.Offset, err = d.u64("offset"); err != nil {
		return err
	}
	if e.Length, err = d.u64("length"); err != nil {
		return err
	}
	e.Data, err = d.blob("data")
	return err
}

func (e *AioWriteEvent) Dump(f Formatter) {
	f.DumpUnsigned("offset", e.Offset)
	f.DumpUnsigned("length", e.Length)
}

// AioFlushEvent is a marker with no payload.
type AioFlushEvent struct{}

func (e *AioFlushEvent) EventType() EventType { return EventTypeAioFlush }

func (e *AioFlushEvent) encode(b *buffer) {}

func (e *AioFlushEvent) decode(version uint8, d *decoder) error { return nil }

func (e *AioFlushEvent) Dump(f Formatter) {}

// OpFinishEvent records completion of a management op. The op id is
// encoded twice, once through OpBase and once explicitly; the duplicate is
// preserved verbatim for wire compatibility with existing logs.
type OpFinishEvent struct {
	OpBase
	OpTid  uint64
	Result int32
}

// NewOpFinishEvent sets both copies of the op id from a single value.
func NewOpFinishEvent(opTid uint64, result int32) *OpFinishEvent {
	return &OpFinishEvent{
		OpBase: OpBase{OpTid: opTid},
		OpTid:  opTid,
		Result: result,
	}
}

func (e *OpFinishEvent) EventType() EventType { return EventTypeOpFinish }

func (e *OpFinishEvent) encode(b *buffer) {
	e.OpBase.encode(b)
	b.u64(e.OpTid)
	b.i32(e.Result)
}

func (e *OpFinishEvent) decode(version uint8, d *decoder) error {
	if err := e.OpBase.decode(version, d); err != nil {
		return err
	}
	var err error
	if e.OpTid, err = d.u64("op_tid"); err != nil {
		return err
	}
	e.Result, err = d.i32("result")
	return err
}

func (e *OpFinishEvent) Dump(f Formatter) {
	e.OpBase.Dump(f)
	f.DumpUnsigned("op_tid", e.OpTid)
	f.DumpInt("result", int64(e.Result))
}

// SnapCreateEvent records snapshot creation.
type SnapCreateEvent struct {
	SnapBase
}

func (e *SnapCreateEvent) EventType() EventType { return EventTypeSnapCreate }

// SnapRemoveEvent records snapshot removal.
type SnapRemoveEvent struct {
	SnapBase
}

func (e *SnapRemoveEvent) EventType() EventType { return EventTypeSnapRemove }

// SnapProtectEvent records snapshot protection.
type SnapProtectEvent struct {
	SnapBase
}

func (e *SnapProtectEvent) EventType() EventType { return EventTypeSnapProtect }

// SnapUnprotectEvent records snapshot unprotection.
type SnapUnprotectEvent struct {
	SnapBase
}

func (e *SnapUnprotectEvent) EventType() EventType { return EventTypeSnapUnprotect }

// SnapRollbackEvent records a rollback of the image to a snapshot.
type SnapRollbackEvent struct {
	SnapBase
}

func (e *SnapRollbackEvent) EventType() EventType { return EventTypeSnapRollback }

// SnapRenameEvent records a snapshot rename. SnapName is the destination
// name; SnapId identifies the source snapshot.
type SnapRenameEvent struct {
	SnapBase
	SnapId uint64
}

func (e *SnapRenameEvent) EventType() EventType { return EventTypeSnapRename }

func (e *SnapRenameEvent) encode(b *buffer) {
	e.SnapBase.encode(b)
	b.u64(e.SnapId)
}

func (e *SnapRenameEvent) decode(version uint8, d *decoder) error {
	if err := e.SnapBase.decode(version, d); err != nil {
		return err
	}
	var err error
	e.SnapId, err = d.u64("snap_id")
	return err
}

func (e *SnapRenameEvent) Dump(f Formatter) {
	e.SnapBase.Dump(f)
	f.DumpUnsigned("src_snap_id", e.SnapId)
	f.DumpString("dest_snap_name", e.SnapName)
}

// RenameEvent records an image rename.
type RenameEvent struct {
	OpBase
	ImageName string
}

func (e *RenameEvent) EventType() EventType { return EventTypeRename }

func (e *RenameEvent) encode(b *buffer) {
	e.OpBase.encode(b)
	b.str(e.ImageName)
}

func (e *RenameEvent) decode(version uint8, d *decoder) error {
	if err := e.OpBase.decode(version, d); err != nil {
		return err
	}
	var err error
	e.ImageName, err = d.str("image_name")
	return err
}

func (e *RenameEvent) Dump(f Formatter) {
	e.OpBase.Dump(f)
	f.DumpString("image_name", e.ImageName)
}

// ResizeEvent records an image resize to Size bytes.
type ResizeEvent struct {
	OpBase
	Size uint64
}

func (e *ResizeEvent) EventType() EventType { return EventTypeResize }

func (e *ResizeEvent) encode(b *buffer) {
	e.OpBase.encode(b)
	b.u64(e.Size)
}

func (e *ResizeEvent) decode(version uint8, d *decoder) error {
	if err := e.OpBase.decode(version, d); err != nil {
		return err
	}
	var err error
	e.Size, err = d.u64("size")
	return err
}

func (e *ResizeEvent) Dump(f Formatter) {
	e.OpBase.Dump(f)
	f.DumpUnsigned("size", e.Size)
}

// FlattenEvent records a flatten of the image onto its parent.
type FlattenEvent struct {
	OpBase
}

func (e *FlattenEvent) EventType() EventType { return EventTypeFlatten }

// UnknownEvent is the inert placeholder produced when decoding a
// discriminator this build does not recognize. It retains the raw
// discriminator value and nothing else; the envelope's declared length
// bounds how many payload bytes get skipped. It is a decode-only artifact
// and must never be re-encoded.
type UnknownEvent struct {
	Type EventType
}

func (e *UnknownEvent) EventType() EventType { return e.Type }

func (e *UnknownEvent) encode(b *buffer) {
	panic("journal: encode of placeholder event")
}

func (e *UnknownEvent) decode(version uint8, d *decoder) error { return nil }

func (e *UnknownEvent) Dump(f Formatter) {}

// Envelope versioning for event entries. Only the envelope carries version
// metadata; payload shapes have none, so changing an existing variant's
// fields requires a new discriminator instead.
const (
	eventEntryVersion       = 1
	eventEntryCompatVersion = 1
)

// EventEntry owns exactly one event variant. Decoding replaces the held
// value wholesale.
type EventEntry struct {
	Event Event
}

// EventType returns the discriminator of the held variant.
func (e EventEntry) EventType() EventType {
	return e.Event.EventType()
}

// Encode serializes the entry: version envelope, discriminator, then the
// variant's own fields. Encoding a placeholder (or an empty entry) panics;
// placeholders are decode-only artifacts and re-serializing one would emit
// bytes this build cannot vouch for.
func (e EventEntry) Encode() []byte {
	return encodeEnvelope(eventEntryVersion, eventEntryCompatVersion, func(b *buffer) {
		b.u32(uint32(e.Event.EventType()))
		e.Event.encode(b)
	})
}

// Dump emits the discriminator mnemonic followed by the variant's fields.
func (e EventEntry) Dump(f Formatter) {
	f.DumpString("event_type", e.EventType().String())
	e.Event.Dump(f)
}

// newEvent default-constructs the variant for a discriminator. The switch
// is the closed dispatch catalog; unrecognized values map to the
// placeholder so readers older than the writer can skip the record.
func newEvent(t EventType) Event {
	switch t {
	case EventTypeAioDiscard:
		return &AioDiscardEvent{}
	case EventTypeAioWrite:
		return &AioWriteEvent{}
	case EventTypeAioFlush:
		return &AioFlushEvent{}
	case EventTypeOpFinish:
		return &OpFinishEvent{}
	case EventTypeSnapCreate:
		return &SnapCreateEvent{}
	case EventTypeSnapRemove:
		return &SnapRemoveEvent{}
	case EventTypeSnapRename:
		return &SnapRenameEvent{}
	case EventTypeSnapProtect:
		return &SnapProtectEvent{}
	case EventTypeSnapUnprotect:
		return &SnapUnprotectEvent{}
	case EventTypeSnapRollback:
		return &SnapRollbackEvent{}
	case EventTypeRename:
		return &RenameEvent{}
	case EventTypeResize:
		return &ResizeEvent{}
	case EventTypeFlatten:
		return &FlattenEvent{}
	default:
		return &UnknownEvent{Type: t}
	}
}

// DecodeEventEntry decodes one event entry from data. An unrecognized
// discriminator is not an error: the entry holds an UnknownEvent and the
// payload bytes are skipped via the envelope's declared length.
func DecodeEventEntry(data []byte) (EventEntry, error) {
	structV, d, err := decodeEnvelope(data, eventEntryVersion)
	if err != nil {
		return EventEntry{}, err
	}

	tag, err := d.u32("event_type")
	if err != nil {
		return EventEntry{}, err
	}

	ev := newEvent(EventType(tag))
	if err := ev.decode(structV, d); err != nil {
		return EventEntry{}, err
	}
	return EventEntry{Event: ev}, nil
}
