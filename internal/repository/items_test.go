package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeItems(t *testing.T) {
	raw, err := encodeItems(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)

	raw, err = encodeItems([]string{"stretch", "run"})
	require.NoError(t, err)
	assert.Equal(t, `["stretch","run"]`, raw)
}

func TestDecodeItemsDegradesGracefully(t *testing.T) {
	assert.Equal(t, []string{"stretch", "run"}, decodeItems(`["stretch","run"]`))
	assert.Equal(t, []string{}, decodeItems(""))
	assert.Equal(t, []string{}, decodeItems("null"))
	assert.Equal(t, []string{}, decodeItems("{not json"))
	assert.Equal(t, []string{}, decodeItems(`{"a":1}`))
}
