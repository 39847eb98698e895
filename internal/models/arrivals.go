package models

import "encoding/json"

// EntryKind tells regular vehicles apart from low-floor ones.
type EntryKind uint8

const (
	RegularEntry EntryKind = iota
	LowEntry
)

// Arrival is a single departure from a stop. Time is an RFC 3339 UTC timestamp.
type Arrival struct {
	Kind EntryKind
	Time string
}

type arrivalJSON struct {
	Time       string `json:"time"`
	IsLowEntry bool   `json:"isLowEntry,omitempty"`
}

// MarshalJSON renders {"time": ...} for regular entries and adds
// "isLowEntry": true for low-entry vehicles.
func (a Arrival) MarshalJSON() ([]byte, error) {
	return json.Marshal(arrivalJSON{Time: a.Time, IsLowEntry: a.Kind == LowEntry})
}

func (a *Arrival) UnmarshalJSON(data []byte) error {
	var raw arrivalJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.Time = raw.Time
	a.Kind = RegularEntry
	if raw.IsLowEntry {
		a.Kind = LowEntry
	}
	return nil
}

// StopArrivals holds the upcoming departures of one stop grouped by
// transport type and route number, in feed order.
type StopArrivals struct {
	ID       string                          `json:"id"`
	Name     string                          `json:"name"`
	Arrivals map[string]map[string][]Arrival `json:"arrivals"`
}

func NewStopArrivals(id, name string) *StopArrivals {
	return &StopArrivals{
		ID:       id,
		Name:     name,
		Arrivals: make(map[string]map[string][]Arrival),
	}
}

// Add appends an arrival for the given transport type and route number.
func (s *StopArrivals) Add(transportType, number string, arrival Arrival) {
	routes, ok := s.Arrivals[transportType]
	if !ok {
		routes = make(map[string][]Arrival)
		s.Arrivals[transportType] = routes
	}
	routes[number] = append(routes[number], arrival)
}

// ArrivalsResponse lists arrivals in request order; unknown stops are null.
type ArrivalsResponse struct {
	Stops []*StopArrivals `json:"stops"`
}
