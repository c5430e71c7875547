package codec_test

import (
	"testing"

	"github.com/AndrewDonelson/vitals/internal/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	Timestamp int64   `json:"ts" msgpack:"ts"`
	Value     float64 `json:"value" msgpack:"value"`
}

func TestJSONCodec(t *testing.T) {
	c := codec.JSON{}
	orig := point{Timestamp: 1704067200, Value: 3.5}
	b, err := c.Marshal(orig)
	require.NoError(t, err)

	var got point
	require.NoError(t, c.Unmarshal(b, &got))
	assert.Equal(t, orig, got)
	assert.Equal(t, "json", c.Name())
}

func TestMsgPackCodec(t *testing.T) {
	c := codec.MsgPack{}
	orig := point{Timestamp: 1704067200, Value: 42}
	b, err := c.Marshal(orig)
	require.NoError(t, err)

	var got point
	require.NoError(t, c.Unmarshal(b, &got))
	assert.Equal(t, orig, got)
	assert.Equal(t, "msgpack", c.Name())
}
