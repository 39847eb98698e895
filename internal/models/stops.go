package models

import "encoding/json"

// StopRecord is a stop as listed in the static stop feed. Records are never
// mutated after parsing, so a *StopRecord can be shared freely.
type StopRecord struct {
	ID     string `json:"id"`
	SiriID string `json:"siriId"`
	Name   string `json:"name"`
}

// StopIndex resolves a stop by either its timetable id or its siri id; both
// keys point at the same record.
type StopIndex map[string]*StopRecord

// Lookup returns the stop known under id, if any.
func (idx StopIndex) Lookup(id string) (*StopRecord, bool) {
	stop, ok := idx[id]
	return stop, ok
}

// StopEntry is one stop of a route direction. It serializes as a two-element
// array: ["1001", "Stop Name"].
type StopEntry struct {
	ID   string
	Name string
}

func (e StopEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{e.ID, e.Name})
}

func (e *StopEntry) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	e.ID, e.Name = pair[0], pair[1]
	return nil
}
