package sink_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AndrewDonelson/vitals/internal/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink_WriteAndReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "health.json")
	f := sink.NewFile(path)

	require.NoError(t, f.Write(context.Background(), time.Now(), []byte(`{"a":1}`)))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, f.Write(context.Background(), time.Now(), []byte(`{"a":2}`)))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(got))

	// No temp file left behind after a successful rename.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, f.Close())
}

func TestFileSink_WriteError(t *testing.T) {
	f := sink.NewFile(filepath.Join(t.TempDir(), "missing", "health.json"))
	err := f.Write(context.Background(), time.Now(), []byte("{}"))
	assert.Error(t, err)
}
