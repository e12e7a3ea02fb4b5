package journal

import (
	"encoding/binary"
	"io"
)

// EnvelopeHeaderSize is the fixed prefix written ahead of every versioned
// payload: struct version (u8), minimum compatible version (u8), payload
// length (u32).
const EnvelopeHeaderSize = U8Size + U8Size + U32Size

// MaxPayloadSize bounds the declared payload length of a single record.
// A write event carries at most one full object of data, so anything past
// this is corruption rather than a legitimately huge record.
const MaxPayloadSize = 64 * 1024 * 1024

// encodeEnvelope writes the version header, runs fn to append the payload,
// then backpatches the length placeholder with the payload's actual size.
func encodeEnvelope(structV, compatV uint8, fn func(*buffer)) []byte {
	b := &buffer{}
	b.u8(structV)
	b.u8(compatV)
	lenAt := len(b.data)
	b.u32(0) // placeholder, backpatched below
	start := len(b.data)
	fn(b)
	binary.LittleEndian.PutUint32(b.data[lenAt:lenAt+U32Size], uint32(len(b.data)-start)) //nolint:gosec
	return b.data
}

// decodeEnvelope validates the version header against maxVersion and
// returns the struct version plus a cursor bounded to the declared
// payload. Payload bytes the caller's decoder does not consume are
// silently discarded (newer writers may append trailing fields); bytes
// beyond the declared envelope extent are rejected, since this API
// decodes exactly one record.
func decodeEnvelope(data []byte, maxVersion uint8) (uint8, *decoder, error) {
	if len(data) < EnvelopeHeaderSize {
		return 0, nil, &ParseError{
			Kind: KindTruncated,
			Want: EnvelopeHeaderSize,
			Have: len(data),
			Err:  io.ErrUnexpectedEOF,
		}
	}

	structV := data[0]
	compatV := data[1]
	if compatV > maxVersion {
		return 0, nil, &ParseError{
			Kind:    KindIncompatibleVersion,
			StructV: structV,
			Compat:  compatV,
			Want:    int(compatV),
			Have:    int(maxVersion),
			Err:     ErrIncompatibleVersion,
		}
	}

	declaredLen := binary.LittleEndian.Uint32(data[U8Size+U8Size : EnvelopeHeaderSize])
	if declaredLen > MaxPayloadSize {
		return 0, nil, &ParseError{
			Kind:        KindCorrupt,
			StructV:     structV,
			Compat:      compatV,
			DeclaredLen: declaredLen,
			Want:        MaxPayloadSize,
			Have:        int(declaredLen),
			Err:         ErrCorrupt,
		}
	}

	wantTotal := EnvelopeHeaderSize + int(declaredLen)
	if len(data) < wantTotal {
		return 0, nil, &ParseError{
			Kind:        KindTruncated,
			StructV:     structV,
			Compat:      compatV,
			DeclaredLen: declaredLen,
			Want:        wantTotal,
			Have:        len(data),
			Err:         io.ErrUnexpectedEOF,
		}
	}
	if len(data) != wantTotal {
		return 0, nil, &ParseError{
			Kind:        KindCorrupt,
			StructV:     structV,
			Compat:      compatV,
			DeclaredLen: declaredLen,
			Want:        wantTotal,
			Have:        len(data),
			Err:         ErrCorrupt,
		}
	}

	return structV, newDecoder(data[EnvelopeHeaderSize:wantTotal]), nil
}
