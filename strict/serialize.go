package strict

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

// Encode writes v to w, refusing to emit more than limit bytes, and
// returns the number of bytes written.
func Encode(w io.Writer, v Encoder, limit int) (int, error) {
	sw := NewWriter(w, limit)
	if err := sw.Encode(v); err != nil {
		return sw.Count(), err
	}
	return sw.Count(), nil
}

// Decode reads one value from r into v. Bytes following the value are
// left unread.
func Decode(r io.Reader, v Decoder, limit int) error {
	return NewReader(r, limit).Decode(v)
}

// Serialize returns the encoding of v.
func Serialize(v Encoder, limit int) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Encode(&buf, v, limit); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SerializedLen returns the length of the encoding of v without
// keeping the bytes.
func SerializedLen(v Encoder, limit int) (int, error) {
	return Encode(io.Discard, v, limit)
}

// Deserialize decodes data into v and requires that every byte of
// data belongs to the value.
func Deserialize(data []byte, v Decoder, limit int) error {
	r := NewReader(bytes.NewReader(data), limit)
	if err := r.Decode(v); err != nil {
		return err
	}
	if n := r.Count(); n != len(data) {
		return fmt.Errorf("%w: %d of %d bytes left", ErrDataNotEntirelyConsumed, len(data)-n, len(data))
	}
	return nil
}

// SerializeToFile writes the encoding of v to path, replacing any
// existing file.
func SerializeToFile(path string, v Encoder, limit int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	n, err := Encode(bw, v, limit)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("strict: serialize to file failed")
		return err
	}
	log.Debug().Str("path", path).Int("bytes", n).Msg("strict: value written")
	return nil
}

// DeserializeFromFile decodes the content of path into v. The file
// must hold exactly one value.
func DeserializeFromFile(path string, v Decoder, limit int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	r := NewReader(br, limit)
	if err := r.Decode(v); err != nil {
		log.Debug().Err(err).Str("path", path).Int("offset", r.Count()).Msg("strict: deserialize from file failed")
		return err
	}
	if _, err := br.ReadByte(); err == nil {
		return fmt.Errorf("%w: trailing bytes after offset %d in %s", ErrDataNotEntirelyConsumed, r.Count(), path)
	} else if !errors.Is(err, io.EOF) {
		return err
	}
	log.Debug().Str("path", path).Int("bytes", r.Count()).Msg("strict: value read")
	return nil
}
