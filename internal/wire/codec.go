// Package wire implements the length-prefixed big-integer vector codec
// shared by the client, aggregator, and holder. There is exactly one
// implementation of this framing, imported by all three parties, unlike
// the reference implementation which duplicated it per executable.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// MaxPayloadBytes bounds the total frame size ReadVector will accept,
// so a corrupt or hostile length prefix cannot force an unbounded
// allocation.
const MaxPayloadBytes = 256 * 1024 * 1024

// ErrFraming wraps any error caused by malformed wire framing, as
// distinct from an underlying transport error.
var ErrFraming = errors.New("wire: malformed frame")

// WriteVector writes nums as one frame: a little-endian uint32 total
// length, then each number as [little-endian uint32 len][len bytes of
// big-endian magnitude]. Zero is encoded as a zero-length record.
func WriteVector(w io.Writer, nums []*big.Int) error {
	var body []byte
	var lenBuf [4]byte
	for _, n := range nums {
		b := n.Bytes()
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(b)))
		body = append(body, lenBuf[:]...)
		body = append(body, b...)
	}

	var total [4]byte
	binary.LittleEndian.PutUint32(total[:], uint32(len(body)))
	if _, err := w.Write(total[:]); err != nil {
		return fmt.Errorf("wire: writing frame length: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("wire: writing frame body: %w", err)
	}
	return nil
}

// ReadVector reads one frame written by WriteVector.
func ReadVector(r io.Reader) ([]*big.Int, error) {
	var total [4]byte
	if _, err := io.ReadFull(r, total[:]); err != nil {
		return nil, fmt.Errorf("wire: reading frame length: %w", err)
	}
	totalLength := binary.LittleEndian.Uint32(total[:])
	if totalLength > MaxPayloadBytes {
		return nil, fmt.Errorf("%w: frame length %d exceeds max %d", ErrFraming, totalLength, MaxPayloadBytes)
	}

	body := make([]byte, totalLength)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("wire: reading frame body: %w", err)
	}

	var nums []*big.Int
	offset := 0
	for offset < len(body) {
		if offset+4 > len(body) {
			return nil, fmt.Errorf("%w: truncated record length", ErrFraming)
		}
		recLen := int(binary.LittleEndian.Uint32(body[offset : offset+4]))
		offset += 4
		if offset+recLen > len(body) {
			return nil, fmt.Errorf("%w: record of length %d overruns buffer", ErrFraming, recLen)
		}
		nums = append(nums, new(big.Int).SetBytes(body[offset:offset+recLen]))
		offset += recLen
	}
	return nums, nil
}
