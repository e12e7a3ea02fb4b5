package journal

import "fmt"

// ClientMetaType discriminates the per-consumer metadata variants. Values
// are part of the wire contract; the catalog is append-only.
type ClientMetaType uint32

const (
	ImageClientMetaType ClientMetaType = iota
	MirrorPeerClientMetaType
	CliClientMetaType
)

func (t ClientMetaType) String() string {
	switch t {
	case ImageClientMetaType:
		return "Master Image"
	case MirrorPeerClientMetaType:
		return "Mirror Peer"
	case CliClientMetaType:
		return "CLI Tool"
	default:
		return fmt.Sprintf("Unknown (%d)", uint32(t))
	}
}

// ClientMeta is one registered consumer's bookmark/identity state. The
// catalog is closed the same way Event is.
type ClientMeta interface {
	ClientMetaType() ClientMetaType
	Dump(f Formatter)

	encode(b *buffer)
	decode(version uint8, d *decoder) error
}

// ImageClientMeta identifies the image's own (master) journal client and
// the tag class it allocates from.
type ImageClientMeta struct {
	TagClass uint64
}

func (m *ImageClientMeta) ClientMetaType() ClientMetaType { return ImageClientMetaType }

func (m *ImageClientMeta) encode(b *buffer) {
	b.u64(m.TagClass)
}

func (m *ImageClientMeta) decode(version uint8, d *decoder) error {
	var err error
	m.TagClass, err = d.u64("tag_class")
	return err
}

func (m *ImageClientMeta) Dump(f Formatter) {
	f.DumpUnsigned("tag_class", m.TagClass)
}

// MirrorPeerClientMeta identifies a remote mirroring peer and the image it
// replays into.
type MirrorPeerClientMeta struct {
	ClusterId string
	PoolId    int64
	ImageId   string
}

func (m *MirrorPeerClientMeta) ClientMetaType() ClientMetaType { return MirrorPeerClientMetaType }

func (m *MirrorPeerClientMeta) encode(b *buffer) {
	b.str(m.ClusterId)
	b.i64(m.PoolId)
	b.str(m.ImageId)
}

func (m *MirrorPeerClientMeta) decode(version uint8, d *decoder) error {
	var err error
	if m.ClusterId, err = d.str("cluster_id"); err != nil {
		return err
	}
	if m.PoolId, err = d.i64("pool_id"); err != nil {
		return err
	}
	m.ImageId, err = d.str("image_id")
	return err
}

func (m *MirrorPeerClientMeta) Dump(f Formatter) {
	f.DumpString("cluster_id", m.ClusterId)
	f.DumpInt("pool_id", m.PoolId)
	f.DumpString("image_id", m.ImageId)
}

// CliClientMeta marks a registration made by a command-line tool; it
// carries no payload.
type CliClientMeta struct{}

func (m *CliClientMeta) ClientMetaType() ClientMetaType { return CliClientMetaType }

func (m *CliClientMeta) encode(b *buffer) {}

func (m *CliClientMeta) decode(version uint8, d *decoder) error { return nil }

func (m *CliClientMeta) Dump(f Formatter) {}

// UnknownClientMeta is the decode-only placeholder for unrecognized
// client-meta discriminators. Must never be re-encoded.
type UnknownClientMeta struct {
	Type ClientMetaType
}

func (m *UnknownClientMeta) ClientMetaType() ClientMetaType { return m.Type }

func (m *UnknownClientMeta) encode(b *buffer) {
	panic("journal: encode of placeholder client meta")
}

func (m *UnknownClientMeta) decode(version uint8, d *decoder) error { return nil }

func (m *UnknownClientMeta) Dump(f Formatter) {}

const (
	clientDataVersion       = 1
	clientDataCompatVersion = 1
)

// ClientData owns exactly one client-meta variant. Decoding replaces the
// held value wholesale.
type ClientData struct {
	ClientMeta ClientMeta
}

// ClientMetaType returns the discriminator of the held variant.
func (c ClientData) ClientMetaType() ClientMetaType {
	return c.ClientMeta.ClientMetaType()
}

// Encode serializes the client data. Encoding a placeholder panics.
func (c ClientData) Encode() []byte {
	return encodeEnvelope(clientDataVersion, clientDataCompatVersion, func(b *buffer) {
		b.u32(uint32(c.ClientMeta.ClientMetaType()))
		c.ClientMeta.encode(b)
	})
}

// Dump emits the discriminator mnemonic followed by the variant's fields.
func (c ClientData) Dump(f Formatter) {
	f.DumpString("client_meta_type", c.ClientMetaType().String())
	c.ClientMeta.Dump(f)
}

func newClientMeta(t ClientMetaType) ClientMeta {
	switch t {
	case ImageClientMetaType:
		return &ImageClientMeta{}
	case MirrorPeerClientMetaType:
		return &MirrorPeerClientMeta{}
	case CliClientMetaType:
		return &CliClientMeta{}
	default:
		return &UnknownClientMeta{Type: t}
	}
}

// DecodeClientData decodes one client-data record. An unrecognized
// discriminator yields UnknownClientMeta without error.
func DecodeClientData(data []byte) (ClientData, error) {
	structV, d, err := decodeEnvelope(data, clientDataVersion)
	if err != nil {
		return ClientData{}, err
	}

	tag, err := d.u32("client_meta_type")
	if err != nil {
		return ClientData{}, err
	}

	meta := newClientMeta(ClientMetaType(tag))
	if err := meta.decode(structV, d); err != nil {
		return ClientData{}, err
	}
	return ClientData{ClientMeta: meta}, nil
}
