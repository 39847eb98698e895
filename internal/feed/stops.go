package feed

import (
	"tltstops.dev/internal/models"
	"tltstops.dev/internal/scanner"
)

// Stop feed columns.
const (
	stopIDCol     = 0
	stopSiriIDCol = 1
	stopNameCol   = 5
)

// StopParser builds a StopIndex from the stop feed. Each record is stored
// under both its id and its siri id. An empty name inherits the last name
// seen.
type StopParser struct {
	lineFold
	index    models.StopIndex
	lastName string
}

// NewStopParser returns an empty parser. sizeHint preallocates the raw
// buffer and may be zero.
func NewStopParser(sizeHint int) *StopParser {
	p := &StopParser{index: make(models.StopIndex)}
	p.grow(sizeHint)
	p.handle = p.parseLine
	return p
}

func (p *StopParser) parseLine(line []byte) {
	cols := scanner.Columns(line, staticDelim, stopIDCol, stopSiriIDCol, stopNameCol)
	rawID, rawSiriID, rawName := cols[0], cols[1], cols[2]

	name := p.lastName
	if rawName != nil {
		name = string(rawName)
	}
	if name == "" {
		return
	}
	p.lastName = name

	if rawID == nil || rawSiriID == nil {
		return
	}

	stop := &models.StopRecord{ID: string(rawID), SiriID: string(rawSiriID), Name: name}
	p.index[stop.ID] = stop
	p.index[stop.SiriID] = stop
}

// Index returns the stops parsed so far.
func (p *StopParser) Index() models.StopIndex {
	return p.index
}

// ParseStops builds a StopIndex from a complete, previously fetched stop feed.
func ParseStops(raw []byte) models.StopIndex {
	p := NewStopParser(0)
	_, _ = p.Write(raw)
	return p.Index()
}
