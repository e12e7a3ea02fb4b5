package journal

// TagData marks a journal epoch boundary: which cluster/pool/image owns
// the epoch and the (tag, entry) position it forked from, used to detect
// history splits across failover and promotion. It is a flat record; no
// discriminator and no version envelope, matching the historical encoder.
type TagData struct {
	ClusterId           string
	PoolId              int64
	ImageId             string
	PredecessorTagTid   uint64
	PredecessorEntryTid uint64
}

// Encode serializes the tag data.
func (t TagData) Encode() []byte {
	b := &buffer{}
	b.str(t.ClusterId)
	b.i64(t.PoolId)
	b.str(t.ImageId)
	b.u64(t.PredecessorTagTid)
	b.u64(t.PredecessorEntryTid)
	return b.data
}

// Dump emits the tag fields for diagnostics.
func (t TagData) Dump(f Formatter) {
	f.DumpString("cluster_id", t.ClusterId)
	f.DumpInt("pool_id", t.PoolId)
	f.DumpString("image_id", t.ImageId)
	f.DumpUnsigned("predecessor_tag_tid", t.PredecessorTagTid)
	f.DumpUnsigned("predecessor_entry_tid", t.PredecessorEntryTid)
}

// DecodeTagData decodes one tag record. Trailing bytes are rejected:
// without a version envelope there is no declared length to skip against,
// so extra bytes mean corruption rather than a newer writer.
func DecodeTagData(data []byte) (TagData, error) {
	d := newDecoder(data)
	var t TagData
	var err error

	if t.ClusterId, err = d.str("cluster_id"); err != nil {
		return TagData{}, err
	}
	if t.PoolId, err = d.i64("pool_id"); err != nil {
		return TagData{}, err
	}
	if t.ImageId, err = d.str("image_id"); err != nil {
		return TagData{}, err
	}
	if t.PredecessorTagTid, err = d.u64("predecessor_tag_tid"); err != nil {
		return TagData{}, err
	}
	if t.PredecessorEntryTid, err = d.u64("predecessor_entry_tid"); err != nil {
		return TagData{}, err
	}

	if d.remaining() != 0 {
		return TagData{}, &CodecError{
			Kind:  CodecCorrupt,
			Field: "record_length",
			At:    d.off,
			Want:  d.off,
			Have:  len(data),
			Err:   ErrCodecCorrupt,
		}
	}
	return t, nil
}
