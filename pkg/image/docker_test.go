package image

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrain(t *testing.T) {
	// Successful stream
	in := `{"stream":"Step 1/2 : FROM alpine"}
{"stream":"Successfully built 3f2a8b1c4d5e"}
`
	err := drain(io.NopCloser(strings.NewReader(in)))
	require.NoError(t, err)

	// Empty stream
	err = drain(io.NopCloser(strings.NewReader("")))
	require.NoError(t, err)

	// The daemon reports failures as messages inside the 200 stream
	in = `{"stream":"Step 1/2 : FROM alpine"}
{"errorDetail":{"message":"The command '/bin/sh -c make' returned a non-zero code: 2"},"error":"The command '/bin/sh -c make' returned a non-zero code: 2"}
`
	err = drain(io.NopCloser(strings.NewReader(in)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-zero code: 2")

	// Push denied mid-upload
	in = `{"status":"Preparing","id":"3f2a8b1c4d5e"}
{"errorDetail":{"message":"denied: not authorized"},"error":"denied: not authorized"}
`
	err = drain(io.NopCloser(strings.NewReader(in)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "denied")

	// Truncated stream
	err = drain(io.NopCloser(strings.NewReader(`{"stream":"Step`)))
	require.Error(t, err)
}
