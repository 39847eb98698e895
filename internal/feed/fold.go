// Package feed parses the static timetable feeds (routes and stops) as they
// stream in from upstream.
//
// Every parser is an io.Writer. Chunks of any size may be written; each
// complete line is handled as soon as its terminating '\n' arrives and the
// partial tail is kept until the next Write. The result is the same however
// the stream was split. The first line of a feed is a header and is never
// parsed, and bytes after the final '\n' are never parsed either.
//
// Lines that cannot be used are skipped without error: with carry-forward
// columns an empty field is indistinguishable from a malformed one.
package feed

import "bytes"

const (
	staticDelim = ';'
	listSep     = ','
)

// lineFold accumulates raw feed bytes and hands every complete line after the
// header to handle. With discard set, handled lines are dropped from the
// buffer and only the unterminated tail is kept.
type lineFold struct {
	buf           []byte
	consumed      int
	headerSkipped bool
	discard       bool
	handle        func(line []byte)
}

func (f *lineFold) Write(p []byte) (int, error) {
	f.buf = append(f.buf, p...)
	for {
		i := bytes.IndexByte(f.buf[f.consumed:], '\n')
		if i < 0 {
			break
		}
		end := f.consumed + i
		line := f.buf[f.consumed:end]
		f.consumed = end + 1

		if !f.headerSkipped {
			f.headerSkipped = true
			continue
		}
		f.handle(line)
	}
	if f.discard && f.consumed > 0 {
		f.buf = append(f.buf[:0], f.buf[f.consumed:]...)
		f.consumed = 0
	}
	return len(p), nil
}

// Bytes returns every byte written so far, including an unterminated tail.
// A discarding fold only has the tail left.
// The slice is owned by the parser; callers caching it must not write to the
// parser afterwards.
func (f *lineFold) Bytes() []byte {
	return f.buf
}

func (f *lineFold) grow(n int) {
	if n > 0 {
		f.buf = make([]byte, 0, n)
	}
}
