package feed

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypes(t *testing.T) {
	assert.Equal(t, []string{"bus", "tram", "trolley"}, ParseTypes([]byte(routeFeed)))
}

func TestTypeParserIgnoresHeaderAndEmptyTypes(t *testing.T) {
	types := ParseTypes([]byte("a;b;c;Transport\n1;;;;\n2;;; \n3;;;ferry\n"))
	assert.Equal(t, []string{"ferry"}, types)
}

func TestTypeParserChunkInvariance(t *testing.T) {
	content := []byte(routeFeed)
	want := ParseTypes(content)

	for i := 0; i <= len(content); i++ {
		p := NewTypeParser(0)
		writeChunks(t, p, content[:i], content[i:])
		require.Equal(t, want, p.Types(), "split at byte %d", i)
	}

	p := NewTypeParser(0)
	_, err := io.Copy(p, iotest.OneByteReader(bytes.NewReader(content)))
	require.NoError(t, err)
	assert.Equal(t, want, p.Types())
}

func TestEmptyFeed(t *testing.T) {
	assert.Empty(t, ParseRoutes(nil))
	assert.Empty(t, ParseStops([]byte("header only\n")))
	assert.Empty(t, ParseTypes([]byte("no newline at all")))
}

func TestTypeParserKeepsOnlyTheTail(t *testing.T) {
	p := NewTypeParser(0)
	writeChunks(t, p, []byte("a;b;c;Transport\n1;;;bus\n2;;;tr"))
	assert.Equal(t, []byte("2;;;tr"), p.Bytes())
	assert.Equal(t, []string{"bus"}, p.Types())

	writeChunks(t, p, []byte("am\n"))
	assert.Empty(t, p.Bytes())
	assert.Equal(t, []string{"bus", "tram"}, p.Types())

	longest := 0
	for _, line := range strings.Split(routeFeed, "\n") {
		longest = max(longest, len(line))
	}
	p = NewTypeParser(0)
	for i := range len(routeFeed) {
		writeChunks(t, p, []byte{routeFeed[i]})
		require.LessOrEqual(t, len(p.Bytes()), longest)
	}
	assert.Equal(t, []string{"bus", "tram", "trolley"}, p.Types())
}
