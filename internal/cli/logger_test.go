package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLoggerFormats(t *testing.T) {
	var text, jsonOut bytes.Buffer

	newLogger(&text, true, false).Info("pushed", "count", 2)
	newLogger(&jsonOut, false, false).Info("pushed", "count", 2)

	assert.Contains(t, text.String(), "msg=pushed count=2")
	assert.Contains(t, jsonOut.String(), `"level":"INFO","msg":"pushed","count":2`)
}

func TestNewLoggerVerbose(t *testing.T) {
	var quiet, verbose bytes.Buffer

	newLogger(&quiet, true, false).Debug("detail")
	newLogger(&verbose, true, true).Debug("detail")

	assert.Empty(t, quiet.String())
	assert.Contains(t, verbose.String(), "level=DEBUG msg=detail")
}
