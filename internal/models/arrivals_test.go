package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrivalJSON(t *testing.T) {
	t.Run("regular entry has only time", func(t *testing.T) {
		data, err := json.Marshal(Arrival{Kind: RegularEntry, Time: "2025-10-20T12:00:00Z"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"time":"2025-10-20T12:00:00Z"}`, string(data))
	})

	t.Run("low entry is flagged", func(t *testing.T) {
		data, err := json.Marshal(Arrival{Kind: LowEntry, Time: "2025-10-20T12:00:00Z"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"time":"2025-10-20T12:00:00Z","isLowEntry":true}`, string(data))
	})

	t.Run("decodes both shapes", func(t *testing.T) {
		var arrivals []Arrival
		err := json.Unmarshal([]byte(`[{"time":"a"},{"time":"b","isLowEntry":true}]`), &arrivals)
		require.NoError(t, err)
		assert.Equal(t, []Arrival{{Kind: RegularEntry, Time: "a"}, {Kind: LowEntry, Time: "b"}}, arrivals)
	})
}

func TestStopArrivalsAdd(t *testing.T) {
	stop := NewStopArrivals("1001", "Balti jaam")
	stop.Add("tram", "1", Arrival{Time: "t1"})
	stop.Add("bus", "5", Arrival{Time: "t2", Kind: LowEntry})
	stop.Add("tram", "1", Arrival{Time: "t3"})

	assert.Equal(t, []Arrival{{Time: "t1"}, {Time: "t3"}}, stop.Arrivals["tram"]["1"])
	assert.Equal(t, []Arrival{{Time: "t2", Kind: LowEntry}}, stop.Arrivals["bus"]["5"])

	data, err := json.Marshal(ArrivalsResponse{Stops: []*StopArrivals{stop, nil}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"stops":[
		{"id":"1001","name":"Balti jaam","arrivals":{
			"tram":{"1":[{"time":"t1"},{"time":"t3"}]},
			"bus":{"5":[{"time":"t2","isLowEntry":true}]}
		}},
		null
	]}`, string(data))
}

func TestStopEntryJSON(t *testing.T) {
	data, err := json.Marshal([]StopEntry{{ID: "1001", Name: "Stop Name"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[["1001","Stop Name"]]`, string(data))

	var decoded []StopEntry
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []StopEntry{{ID: "1001", Name: "Stop Name"}}, decoded)
}

func TestStopIndexLookup(t *testing.T) {
	record := &StopRecord{ID: "1001", SiriID: "5001", Name: "Stop Name"}
	idx := StopIndex{"1001": record, "5001": record}

	byID, ok := idx.Lookup("1001")
	require.True(t, ok)
	bySiri, ok := idx.Lookup("5001")
	require.True(t, ok)
	assert.Same(t, byID, bySiri)

	_, ok = idx.Lookup("9999")
	assert.False(t, ok)
}
