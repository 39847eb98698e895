package models

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponse(t *testing.T) {
	testCode := http.StatusCreated
	testData := map[string]string{"key": "value"}
	testText := "Resource Created"

	currentTimeBeforeCall := time.Now().UnixNano() / int64(time.Millisecond)
	response := NewResponse(testCode, testData, testText)
	currentTimeAfterCall := time.Now().UnixNano() / int64(time.Millisecond)

	assert.Equal(t, testCode, response.Code, "Response code should match input")
	assert.Equal(t, testData, response.Data, "Response data should match input")
	assert.Equal(t, testText, response.Text, "Response text should match input")
	assert.Equal(t, 2, response.Version, "Response version should be 2")
	assert.GreaterOrEqual(t, response.CurrentTime, currentTimeBeforeCall)
	assert.LessOrEqual(t, response.CurrentTime, currentTimeAfterCall)
}

func TestNewOKResponse(t *testing.T) {
	testData := []string{"bus", "tram"}

	response := NewOKResponse(testData)

	assert.Equal(t, http.StatusOK, response.Code, "Response code should be StatusOK")
	assert.Equal(t, "OK", response.Text, "Response text should be 'OK'")
	assert.Equal(t, testData, response.Data, "Response data should match input")
	assert.Equal(t, 2, response.Version, "Response version should be 2")
	assert.InDelta(t, time.Now().UnixNano()/int64(time.Millisecond), response.CurrentTime, 100)
}

func TestResponseModelJSON(t *testing.T) {
	response := NewOKResponse([]string{"bus"})

	jsonData, err := json.Marshal(response)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(jsonData, &decoded))

	assert.Equal(t, float64(200), decoded["code"])
	assert.Equal(t, "OK", decoded["text"])
	assert.Equal(t, float64(2), decoded["version"])
	assert.Equal(t, []interface{}{"bus"}, decoded["data"])
}

func TestNewHealthStatus(t *testing.T) {
	at := time.Date(2025, 10, 20, 15, 0, 0, 0, time.FixedZone("EEST", 3*3600))
	status := NewHealthStatus(at, "0.1.0")

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "2025-10-20T12:00:00Z", status.Timestamp)
	assert.Equal(t, "0.1.0", status.Version)
}
