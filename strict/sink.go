package strict

import (
	"errors"
	"fmt"
	"io"
)

// limitWriter counts bytes written and refuses writes past its limit.
type limitWriter struct {
	w     io.Writer
	count int
	limit int
}

func (lw *limitWriter) Write(p []byte) (int, error) {
	if len(p) > lw.limit-lw.count {
		return 0, fmt.Errorf("%w: writing %d bytes at offset %d exceeds limit %d", ErrSizeLimit, len(p), lw.count, lw.limit)
	}
	n, err := lw.w.Write(p)
	lw.count += n
	return n, err
}

// limitReader counts bytes consumed and refuses reads past its limit.
type limitReader struct {
	r     io.Reader
	count int
	limit int
}

// reserve fails when n more bytes would exceed the read limit.
func (lr *limitReader) reserve(n int) error {
	if n > lr.limit-lr.count {
		return fmt.Errorf("%w: reading %d bytes at offset %d exceeds limit %d", ErrSizeLimit, n, lr.count, lr.limit)
	}
	return nil
}

func (lr *limitReader) readFull(p []byte) error {
	if err := lr.reserve(len(p)); err != nil {
		return err
	}
	n, err := io.ReadFull(lr.r, p)
	lr.count += n
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: %w", ErrTruncated, io.ErrUnexpectedEOF)
		}
		return err
	}
	return nil
}
