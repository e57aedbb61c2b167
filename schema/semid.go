package schema

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/strict-types/strict-encoding-sub000/strict"
	"github.com/zeebo/blake3"
)

// SemID is the semantic id of a type: the keyed BLAKE3 hash of the
// deterministic CBOR encoding of its type tree. Two types with equal
// trees share an id regardless of how their Go types are spelled.
type SemID [32]byte

// semIDKey is the ASCII domain name zero-padded to 32 bytes.
var semIDKey = [32]byte{
	's', 't', 'r', 'i', 'c', 't', '.', 's', 'c', 'h', 'e', 'm', 'a', '.',
	's', 'e', 'm', 'i', 'd', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

var ErrInvalidSemID = errors.New("schema: invalid semantic id")

// ComputeSemID hashes the canonical form of tree.
func ComputeSemID(tree *strict.TypeNode) (SemID, error) {
	data, err := MarshalCBOR(tree)
	if err != nil {
		return SemID{}, err
	}
	hasher, err := blake3.NewKeyed(semIDKey[:])
	if err != nil {
		panic("schema: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var id SemID
	copy(id[:], hasher.Sum(nil))
	return id, nil
}

func (id SemID) String() string { return hex.EncodeToString(id[:]) }
func (id SemID) IsZero() bool   { return id == SemID{} }

// ParseSemID reads the hex form produced by String.
func ParseSemID(s string) (SemID, error) {
	var id SemID
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != len(id) {
		return SemID{}, fmt.Errorf("%w: %q", ErrInvalidSemID, s)
	}
	copy(id[:], b)
	return id, nil
}

func (id SemID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *SemID) UnmarshalText(text []byte) error {
	v, err := ParseSemID(string(text))
	if err != nil {
		return err
	}
	*id = v
	return nil
}
