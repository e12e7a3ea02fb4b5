package cli

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/go-utils/checksum"
	"github.com/julianstephens/go-utils/cliutil"
	"github.com/julianstephens/go-utils/jsonutil"

	"github.com/julianstephens/blockjournal/internal/blockjournal/journal"
	"github.com/julianstephens/blockjournal/internal/logger"
)

// readRecord loads record bytes from a hex argument, or from a file when
// the argument starts with '@'. Whitespace in the hex input is ignored so
// dumps copied out of logs work as-is.
func readRecord(input string) ([]byte, error) {
	s := input
	if strings.HasPrefix(input, "@") {
		raw, err := os.ReadFile(strings.TrimPrefix(input, "@"))
		if err != nil {
			return nil, err
		}
		s = string(raw)
	}
	s = strings.Join(strings.Fields(s), "")
	return hex.DecodeString(s)
}

// printRecord renders the dumped fields as JSON followed by a size/CRC32C
// fingerprint line for cross-checking records between sites.
func printRecord(f *journal.RecordFormatter, raw []byte) error {
	out, err := jsonutil.Marshal(f.Map())
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	fmt.Printf("size=%d crc32c=%08x\n", len(raw), checksum.CRC32C(raw))
	return nil
}

// EventCmd decodes and dumps one event entry.
type EventCmd struct {
	Input string `arg:"" help:"Hex-encoded event entry, or @path to a file containing hex"`
}

func (c *EventCmd) Run(lg logger.Logger) error {
	raw, err := readRecord(c.Input)
	if err != nil {
		cliutil.PrintError("Failed to read record input")
		return err
	}

	entry, err := journal.DecodeEventEntry(raw)
	if err != nil {
		cliutil.PrintError("Failed to decode event entry")
		return err
	}

	if _, ok := entry.Event.(*journal.UnknownEvent); ok {
		lg.Warn("unrecognized event discriminator", "value", uint32(entry.EventType()))
	}
	lg.Debug("decoded event entry", "type", entry.EventType().String(), "size", len(raw))

	f := &journal.RecordFormatter{}
	entry.Dump(f)
	return printRecord(f, raw)
}

// ClientCmd decodes and dumps one client-metadata record.
type ClientCmd struct {
	Input string `arg:"" help:"Hex-encoded client data record, or @path to a file containing hex"`
}

func (c *ClientCmd) Run(lg logger.Logger) error {
	raw, err := readRecord(c.Input)
	if err != nil {
		cliutil.PrintError("Failed to read record input")
		return err
	}

	data, err := journal.DecodeClientData(raw)
	if err != nil {
		cliutil.PrintError("Failed to decode client data")
		return err
	}

	if _, ok := data.ClientMeta.(*journal.UnknownClientMeta); ok {
		lg.Warn("unrecognized client meta discriminator", "value", uint32(data.ClientMetaType()))
	}
	lg.Debug("decoded client data", "type", data.ClientMetaType().String(), "size", len(raw))

	f := &journal.RecordFormatter{}
	data.Dump(f)
	return printRecord(f, raw)
}

// TagCmd decodes and dumps one tag lineage record.
type TagCmd struct {
	Input string `arg:"" help:"Hex-encoded tag record, or @path to a file containing hex"`
}

func (c *TagCmd) Run(lg logger.Logger) error {
	raw, err := readRecord(c.Input)
	if err != nil {
		cliutil.PrintError("Failed to read record input")
		return err
	}

	tag, err := journal.DecodeTagData(raw)
	if err != nil {
		cliutil.PrintError("Failed to decode tag data")
		return err
	}
	lg.Debug("decoded tag data", "size", len(raw))

	f := &journal.RecordFormatter{}
	tag.Dump(f)
	return printRecord(f, raw)
}

// FixturesCmd prints the fixture catalogs as hex plus dump output, for
// generating cross-version test vectors.
type FixturesCmd struct {
	Kind string `help:"Catalog to print" default:"all" enum:"event,client,tag,all"`
}

func (c *FixturesCmd) Run(lg logger.Logger) error {
	if c.Kind == "event" || c.Kind == "all" {
		for _, entry := range journal.EventEntryFixtures() {
			raw := entry.Encode()
			f := &journal.RecordFormatter{}
			entry.Dump(f)
			fmt.Printf("event %s\n", hex.EncodeToString(raw))
			if err := printRecord(f, raw); err != nil {
				return err
			}
		}
	}
	if c.Kind == "client" || c.Kind == "all" {
		for _, data := range journal.ClientDataFixtures() {
			raw := data.Encode()
			f := &journal.RecordFormatter{}
			data.Dump(f)
			fmt.Printf("client %s\n", hex.EncodeToString(raw))
			if err := printRecord(f, raw); err != nil {
				return err
			}
		}
	}
	if c.Kind == "tag" || c.Kind == "all" {
		for _, tag := range journal.TagDataFixtures() {
			raw := tag.Encode()
			f := &journal.RecordFormatter{}
			tag.Dump(f)
			fmt.Printf("tag %s\n", hex.EncodeToString(raw))
			if err := printRecord(f, raw); err != nil {
				return err
			}
		}
	}

	lg.Debug("printed fixture catalog", "kind", c.Kind)
	return nil
}
