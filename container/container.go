package container

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/strict-types/strict-encoding-sub000/schema"
	"github.com/strict-types/strict-encoding-sub000/strict"
	"github.com/zeebo/blake3"
)

const (
	HeaderLen  = 128
	NameMaxLen = 26
)

// Magic opens every container.
var Magic = [4]byte{'S', 'T', 'E', 'N'}

var (
	ErrShortHeader      = errors.New("container: short header")
	ErrInvalidMagic     = errors.New("container: invalid magic")
	ErrNameTooLong      = errors.New("container: name longer than 26 bytes")
	ErrPayloadTooLarge  = errors.New("container: payload too large")
	ErrChecksumMismatch = errors.New("container: payload checksum mismatch")
	ErrSemIDMismatch    = errors.New("container: semantic id mismatch")
)

// Header is the fixed file header. Lib and Type are empty for values of
// unnamed types.
type Header struct {
	MaxLen   uint64
	Lib      string
	Type     string
	SemID    schema.SemID
	Checksum [32]byte
}

// Container is a header with its payload.
type Container struct {
	Header  Header
	Payload []byte
}

// Limits constrains the payload size accepted on read.
type Limits struct {
	MaxPayloadBytes uint64
}

func DefaultLimits() Limits {
	return Limits{MaxPayloadBytes: strict.MaxU24}
}

var checksumKey = [32]byte{
	's', 't', 'r', 'i', 'c', 't', '.', 'c', 'o', 'n', 't', 'a', 'i', 'n', 'e', 'r', '.',
	'c', 'h', 'e', 'c', 'k', 's', 'u', 'm', 0, 0, 0, 0, 0, 0, 0,
}

// Checksum is the keyed BLAKE3 hash stored in the header.
func Checksum(payload []byte) [32]byte {
	hasher, err := blake3.NewKeyed(checksumKey[:])
	if err != nil {
		panic("container: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(payload)
	var sum [32]byte
	copy(sum[:], hasher.Sum(nil))
	return sum
}

func EncodeHeader(h Header) ([]byte, error) {
	if len(h.Lib) > NameMaxLen || len(h.Type) > NameMaxLen {
		return nil, fmt.Errorf("%w: %q.%q", ErrNameTooLong, h.Lib, h.Type)
	}
	buf := make([]byte, HeaderLen)
	copy(buf[0:4], Magic[:])
	binary.LittleEndian.PutUint64(buf[4:12], h.MaxLen)
	copy(buf[12:38], h.Lib)
	copy(buf[38:64], h.Type)
	copy(buf[64:96], h.SemID[:])
	copy(buf[96:128], h.Checksum[:])
	return buf, nil
}

func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderLen {
		return Header{}, ErrShortHeader
	}
	if !bytes.Equal(b[0:4], Magic[:]) {
		return Header{}, fmt.Errorf("%w: % x", ErrInvalidMagic, b[0:4])
	}
	h := Header{
		MaxLen: binary.LittleEndian.Uint64(b[4:12]),
		Lib:    string(bytes.TrimRight(b[12:38], "\x00")),
		Type:   string(bytes.TrimRight(b[38:64], "\x00")),
	}
	copy(h.SemID[:], b[64:96])
	copy(h.Checksum[:], b[96:128])
	return h, nil
}

// Seal encodes v and builds its header. maxLen caps the payload and is
// recorded in the header.
func Seal(v strict.Encoder, maxLen uint64) (Container, error) {
	tree, err := strict.Describe(v)
	if err != nil {
		return Container{}, err
	}
	id, err := schema.ComputeSemID(tree)
	if err != nil {
		return Container{}, err
	}
	payload, err := strict.Serialize(v, intLimit(maxLen))
	if err != nil {
		return Container{}, err
	}
	h := Header{MaxLen: maxLen, SemID: id, Checksum: Checksum(payload)}
	if tree.TypeKey() != "" {
		h.Lib, h.Type = tree.Lib, tree.Name
	}
	return Container{Header: h, Payload: payload}, nil
}

func WriteContainer(w io.Writer, c Container) error {
	if uint64(len(c.Payload)) > c.Header.MaxLen {
		return ErrPayloadTooLarge
	}
	hb, err := EncodeHeader(c.Header)
	if err != nil {
		return err
	}
	if _, err := w.Write(hb); err != nil {
		return err
	}
	_, err = w.Write(c.Payload)
	return err
}

// ReadContainer reads a header and the payload which extends to the end
// of r. The payload is bounded by the header's MaxLen and by limits,
// and its checksum is verified.
func ReadContainer(r io.Reader, limits Limits) (Container, error) {
	var hb [HeaderLen]byte
	if _, err := io.ReadFull(r, hb[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Container{}, ErrShortHeader
		}
		return Container{}, err
	}
	h, err := DecodeHeader(hb[:])
	if err != nil {
		log.Debug().Err(err).Msg("container: header rejected")
		return Container{}, err
	}

	limit := min(h.MaxLen, limits.MaxPayloadBytes)
	payload, err := io.ReadAll(io.LimitReader(r, int64(min(limit, math.MaxInt64-1))+1))
	if err != nil {
		return Container{}, err
	}
	if uint64(len(payload)) > limit {
		return Container{}, fmt.Errorf("%w: more than %d bytes", ErrPayloadTooLarge, limit)
	}
	if Checksum(payload) != h.Checksum {
		log.Error().Str("lib", h.Lib).Str("type", h.Type).Int("bytes", len(payload)).Msg("container: checksum mismatch")
		return Container{}, ErrChecksumMismatch
	}
	return Container{Header: h, Payload: payload}, nil
}

// Write seals v and writes it to w.
func Write(w io.Writer, v strict.Encoder, maxLen uint64) error {
	c, err := Seal(v, maxLen)
	if err != nil {
		return err
	}
	return WriteContainer(w, c)
}

// Read reads a container from r and decodes its payload into v. When
// expect is not nil the header must carry its semantic id.
func Read(r io.Reader, v strict.Decoder, expect *schema.Type, limits Limits) (Header, error) {
	c, err := ReadContainer(r, limits)
	if err != nil {
		return Header{}, err
	}
	if err := c.Verify(expect); err != nil {
		return c.Header, err
	}
	if err := strict.Deserialize(c.Payload, v, intLimit(c.Header.MaxLen)); err != nil {
		return c.Header, err
	}
	return c.Header, nil
}

// Verify checks the header against an expected type. A nil type
// accepts any header.
func (c Container) Verify(expect *schema.Type) error {
	if expect == nil || c.Header.SemID == expect.ID {
		return nil
	}
	log.Debug().Str("want", expect.ID.String()).Str("got", c.Header.SemID.String()).Msg("container: semantic id mismatch")
	return fmt.Errorf("%w: header has %s, %s is %s", ErrSemIDMismatch, c.Header.SemID, expect.Key(), expect.ID)
}

func WriteFile(path string, v strict.Encoder, maxLen uint64) error {
	c, err := Seal(v, maxLen)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteContainer(f, c); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Debug().Str("path", path).Str("type", c.Header.Lib+"."+c.Header.Type).Int("bytes", len(c.Payload)).Msg("container: written")
	return nil
}

func ReadFile(path string, v strict.Decoder, expect *schema.Type, limits Limits) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()
	return Read(f, v, expect, limits)
}

// InspectFile reads and checks a container without decoding its
// payload.
func InspectFile(path string, limits Limits) (Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return Container{}, err
	}
	defer f.Close()
	return ReadContainer(f, limits)
}

func intLimit(n uint64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}
