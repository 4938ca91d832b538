package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Script(t *testing.T) {
	w := new(bytes.Buffer)
	err := run(w, 4096, "a 64;a 128;f 0;a 32;r 1 256;z 4 8")
	require.NoError(t, err)

	out := w.String()
	assert.Equal(t, 6, strings.Count(out, "free_blocks="))
	assert.Contains(t, out, "step 0: a 64")
	assert.Contains(t, out, "step 5: z 4 8")
}

func TestRun_AllocateFailureSurfacesAsError(t *testing.T) {
	w := new(bytes.Buffer)
	err := run(w, 256, "a 100000")
	assert.Error(t, err)
}

func TestRun_RegionTooSmall(t *testing.T) {
	w := new(bytes.Buffer)
	err := run(w, 4, "")
	assert.Error(t, err)
}

func TestRun_UnknownOp(t *testing.T) {
	w := new(bytes.Buffer)
	err := run(w, 4096, "q 1")
	assert.Error(t, err)
}

func TestRun_FreeOutOfRange(t *testing.T) {
	w := new(bytes.Buffer)
	err := run(w, 4096, "f 0")
	assert.Error(t, err)
}
