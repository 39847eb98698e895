package feed

import (
	"tltstops.dev/internal/models"
	"tltstops.dev/internal/scanner"
)

// Route feed columns.
const (
	routeNumberCol    = 0
	routeTypeCol      = 3
	routeDirectionCol = 10
	routeStopsCol     = 13
)

// RouteParser builds a RouteIndex from the route feed. Empty type and number
// columns inherit the value of the last line that had one.
type RouteParser struct {
	lineFold
	index      models.RouteIndex
	lastType   string
	lastNumber string
}

// NewRouteParser returns an empty parser. sizeHint preallocates the raw
// buffer and may be zero.
func NewRouteParser(sizeHint int) *RouteParser {
	p := &RouteParser{index: make(models.RouteIndex)}
	p.grow(sizeHint)
	p.handle = p.parseLine
	return p
}

func (p *RouteParser) parseLine(line []byte) {
	cols := scanner.Columns(line, staticDelim, routeNumberCol, routeTypeCol, routeDirectionCol, routeStopsCol)
	rawNumber, rawType, rawDirection, rawStops := cols[0], cols[1], cols[2], cols[3]

	routeType := p.lastType
	if rawType != nil {
		routeType = string(rawType)
	}
	if routeType == "" {
		return
	}
	p.lastType = routeType

	number := p.lastNumber
	if rawNumber != nil {
		number = string(rawNumber)
	}
	if number == "" {
		return
	}
	p.lastNumber = number

	if rawDirection == nil || rawStops == nil {
		return
	}

	routes, ok := p.index[routeType]
	if !ok {
		routes = make(map[string]*models.RouteGroup)
		p.index[routeType] = routes
	}
	group, ok := routes[number]
	if !ok {
		group = models.NewRouteGroup(routeType, number)
		routes[number] = group
	}
	group.Directions[string(rawDirection)] = scanner.SplitList(rawStops, listSep)
}

// Index returns the routes parsed so far.
func (p *RouteParser) Index() models.RouteIndex {
	return p.index
}

// ParseRoutes builds a RouteIndex from a complete, previously fetched route feed.
func ParseRoutes(raw []byte) models.RouteIndex {
	p := NewRouteParser(0)
	_, _ = p.Write(raw)
	return p.Index()
}
