package feed

import (
	"slices"

	"tltstops.dev/internal/scanner"
)

// TypeParser collects the distinct transport types of the route feed. Unlike
// RouteParser it does not carry values forward: lines without a type are
// ignored. It runs next to a RouteParser on the same stream, so it does not
// keep the lines it has handled.
type TypeParser struct {
	lineFold
	types map[string]struct{}
}

func NewTypeParser(sizeHint int) *TypeParser {
	p := &TypeParser{types: make(map[string]struct{}, 8)}
	p.discard = true
	p.grow(sizeHint)
	p.handle = p.parseLine
	return p
}

func (p *TypeParser) parseLine(line []byte) {
	if t := scanner.Column(line, staticDelim, routeTypeCol); t != nil {
		p.types[string(t)] = struct{}{}
	}
}

// Types returns the distinct types seen so far, sorted.
func (p *TypeParser) Types() []string {
	types := make([]string, 0, len(p.types))
	for t := range p.types {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// ParseTypes lists the distinct transport types of a complete route feed.
func ParseTypes(raw []byte) []string {
	p := NewTypeParser(0)
	_, _ = p.Write(raw)
	return p.Types()
}
