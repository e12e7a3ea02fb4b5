package journal

import "bytes"

// Fixture catalogs for round-trip self tests. The tables are hand
// maintained: every variant added to a catalog must also gain a default
// and a populated instance here (markers and placeholder-adjacent shapes
// excepted, matching the historical tables).

// EventEntryFixtures returns representative instances of every event
// variant.
func EventEntryFixtures() []EventEntry {
	return []EventEntry{
		{Event: &AioDiscardEvent{}},
		{Event: &AioDiscardEvent{Offset: 123, Length: 345}},

		{Event: &AioWriteEvent{}},
		{Event: &AioWriteEvent{Offset: 123, Length: 456, Data: bytes.Repeat([]byte("1"), 32)}},

		{Event: &AioFlushEvent{}},

		{Event: NewOpFinishEvent(123, -1)},

		{Event: &SnapCreateEvent{}},
		{Event: &SnapCreateEvent{SnapBase: SnapBase{OpBase: OpBase{OpTid: 234}, SnapName: "snap"}}},

		{Event: &SnapRemoveEvent{}},
		{Event: &SnapRemoveEvent{SnapBase: SnapBase{OpBase: OpBase{OpTid: 345}, SnapName: "snap"}}},

		{Event: &SnapRenameEvent{}},
		{Event: &SnapRenameEvent{SnapBase: SnapBase{OpBase: OpBase{OpTid: 456}, SnapName: "snap"}, SnapId: 1}},

		{Event: &SnapProtectEvent{}},
		{Event: &SnapProtectEvent{SnapBase: SnapBase{OpBase: OpBase{OpTid: 567}, SnapName: "snap"}}},

		{Event: &SnapUnprotectEvent{}},
		{Event: &SnapUnprotectEvent{SnapBase: SnapBase{OpBase: OpBase{OpTid: 678}, SnapName: "snap"}}},

		{Event: &SnapRollbackEvent{}},
		{Event: &SnapRollbackEvent{SnapBase: SnapBase{OpBase: OpBase{OpTid: 789}, SnapName: "snap"}}},

		{Event: &RenameEvent{}},
		{Event: &RenameEvent{OpBase: OpBase{OpTid: 890}, ImageName: "image name"}},

		{Event: &ResizeEvent{}},
		{Event: &ResizeEvent{OpBase: OpBase{OpTid: 901}, Size: 1234}},

		{Event: &FlattenEvent{OpBase: OpBase{OpTid: 123}}},
	}
}

// ClientDataFixtures returns representative instances of every client-meta
// variant.
func ClientDataFixtures() []ClientData {
	return []ClientData{
		{ClientMeta: &ImageClientMeta{}},
		{ClientMeta: &ImageClientMeta{TagClass: 123}},

		{ClientMeta: &MirrorPeerClientMeta{}},
		{ClientMeta: &MirrorPeerClientMeta{ClusterId: "cluster_id", PoolId: 123, ImageId: "image_id"}},

		{ClientMeta: &CliClientMeta{}},
	}
}

// TagDataFixtures returns representative tag records.
func TagDataFixtures() []TagData {
	return []TagData{
		{},
		{ClusterId: "cluster_id", PoolId: 123, ImageId: "image_id"},
	}
}
