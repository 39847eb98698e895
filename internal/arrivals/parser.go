// Package arrivals parses the batched real-time departures response.
//
// A response is a sequence of blocks, one per requested stop:
//
//	stop,5001
//	tram,1,43260,43200,Kopli,62,Z
//	bus,5,43500,43500,Pirita,300,
//
// Anything before the first block, such as the column header, is ignored.
package arrivals

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"tltstops.dev/internal/models"
	"tltstops.dev/internal/scanner"
)

var (
	// ErrDecode is returned when the response is not valid UTF-8 text.
	ErrDecode = errors.New("arrivals response is not valid text")
	// ErrMalformedLine is returned for departure lines missing a required
	// column or carrying an unparsable time.
	ErrMalformedLine = errors.New("malformed arrival line")
	// ErrUnknownStop is returned for blocks whose stop is not in the stop index.
	ErrUnknownStop = errors.New("unknown stop in arrivals response")
)

const (
	delim        = ','
	lowEntryCode = "Z"
	typeCol      = 0
	numberCol    = 1
	secondsCol   = 2
	entryCodeCol = 6
)

var blockStart = []byte("stop,")

// StoreFunc receives every successfully parsed block, keyed by siri id.
type StoreFunc func(siriID string, arrivals *models.StopArrivals)

// Parser turns a departures response into per-stop arrivals. Times in the
// response are seconds since local midnight in Location of the day Now
// falls on.
type Parser struct {
	Location *time.Location
	Now      func() time.Time
}

// Parse splits payload into blocks and hands each to store as soon as it
// is parsed. The first failing block stops parsing; blocks stored before it
// stay stored.
func (p *Parser) Parse(payload []byte, stops models.StopIndex, store StoreFunc) error {
	if !utf8.Valid(payload) {
		return ErrDecode
	}

	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	reference := now().In(loc)

	for _, block := range splitBlocks(payload) {
		siriID, arrivals, err := parseBlock(block, stops, loc, reference)
		if err != nil {
			return err
		}
		if arrivals != nil {
			store(siriID, arrivals)
		}
	}
	return nil
}

// splitBlocks returns every block starting with "stop," at the beginning of
// payload or of a line.
func splitBlocks(payload []byte) [][]byte {
	var starts []int
	for i := 0; i < len(payload); {
		j := bytes.Index(payload[i:], blockStart)
		if j < 0 {
			break
		}
		pos := i + j
		if pos == 0 || payload[pos-1] == '\n' {
			starts = append(starts, pos)
		}
		i = pos + len(blockStart)
	}

	blocks := make([][]byte, 0, len(starts))
	for k, start := range starts {
		end := len(payload)
		if k+1 < len(starts) {
			end = starts[k+1]
		}
		blocks = append(blocks, payload[start:end])
	}
	return blocks
}

// parseBlock returns a nil result for fragments without a line break.
func parseBlock(block []byte, stops models.StopIndex, loc *time.Location, reference time.Time) (string, *models.StopArrivals, error) {
	nl := bytes.IndexByte(block, '\n')
	if nl < 0 {
		return "", nil, nil
	}
	header, body := block[:nl], block[nl+1:]

	siriID := string(bytes.TrimSpace(header[bytes.IndexByte(header, delim)+1:]))
	stop, ok := stops.Lookup(siriID)
	if !ok {
		return "", nil, fmt.Errorf("stop %q: %w", siriID, ErrUnknownStop)
	}

	result := models.NewStopArrivals(stop.ID, stop.Name)
	for len(body) > 0 {
		var line []byte
		if i := bytes.IndexByte(body, '\n'); i >= 0 {
			line, body = body[:i], body[i+1:]
		} else {
			line, body = body, nil
		}
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		transportType, number, arrival, err := parseLine(line, loc, reference)
		if err != nil {
			return "", nil, fmt.Errorf("stop %q: %w", siriID, err)
		}
		result.Add(transportType, number, arrival)
	}
	return siriID, result, nil
}

func parseLine(line []byte, loc *time.Location, reference time.Time) (string, string, models.Arrival, error) {
	cols := scanner.Columns(line, delim, typeCol, numberCol, secondsCol, entryCodeCol)
	rawType, rawNumber, rawSeconds, rawCode := cols[0], cols[1], cols[2], cols[3]

	if rawType == nil || rawNumber == nil || rawSeconds == nil {
		return "", "", models.Arrival{}, fmt.Errorf("%w: %q: missing column", ErrMalformedLine, line)
	}
	seconds, err := strconv.Atoi(string(rawSeconds))
	if err != nil || seconds < 0 {
		return "", "", models.Arrival{}, fmt.Errorf("%w: %q: bad time %q", ErrMalformedLine, line, rawSeconds)
	}
	at, err := LocalToUTC(loc, reference, seconds)
	if err != nil {
		return "", "", models.Arrival{}, err
	}

	arrival := models.Arrival{Kind: models.RegularEntry, Time: at.Format(time.RFC3339)}
	if string(rawCode) == lowEntryCode {
		arrival.Kind = models.LowEntry
	}
	return string(rawType), string(rawNumber), arrival, nil
}
