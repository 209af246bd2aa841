package discriminator

import (
	"crypto/sha256"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscriminatorMarshalJSON(t *testing.T) {
	data, err := json.Marshal(Discriminator{9})
	require.NoError(t, err)
	assert.Equal(t, "[9]", string(data))

	data, err = json.Marshal(Discriminator{1, 255, 0})
	require.NoError(t, err)
	assert.Equal(t, "[1,255,0]", string(data), "must not fall back to base64")
}

func TestDiscriminatorMarshalInStruct(t *testing.T) {
	data, err := json.Marshal(Entry{Name: "deposit", Discriminator: Discriminator{3}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"deposit","discriminator":[3]}`, string(data))
}

func TestDiscriminatorUnmarshalJSON(t *testing.T) {
	var d Discriminator
	require.NoError(t, json.Unmarshal([]byte(`[11, 0, 200]`), &d))
	assert.Equal(t, Discriminator{11, 0, 200}, d)
}

func TestDiscriminatorUnmarshalOutOfRange(t *testing.T) {
	var d Discriminator
	err := json.Unmarshal([]byte(`[256]`), &d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	err = json.Unmarshal([]byte(`[-1]`), &d)
	require.Error(t, err)
}

func TestDiscriminatorUnmarshalWrongType(t *testing.T) {
	var d Discriminator
	require.Error(t, json.Unmarshal([]byte(`"AQ=="`), &d))
	require.Error(t, json.Unmarshal([]byte(`[1.5]`), &d))
}

func TestDiscriminatorString(t *testing.T) {
	assert.Equal(t, "[1]", Discriminator{1}.String())
	assert.Equal(t, "[1, 2, 3]", Discriminator{1, 2, 3}.String())
	assert.Equal(t, "[]", Discriminator{}.String())
}

func TestDiscriminatorHexAndInts(t *testing.T) {
	d := Discriminator{0xaf, 0x01}
	assert.Equal(t, "af01", d.Hex())
	assert.Equal(t, []int{175, 1}, d.Ints())
}

func TestDiscriminatorEqual(t *testing.T) {
	assert.True(t, Discriminator{4}.Equal(Discriminator{4}))
	assert.False(t, Discriminator{4}.Equal(Discriminator{4, 0}))
	assert.False(t, Discriminator{4}.Equal(nil))
}

func TestAnchor(t *testing.T) {
	sum := sha256.Sum256([]byte("global:initialize"))

	d := Anchor("initialize")

	require.Len(t, d, AnchorSize)
	assert.Equal(t, Discriminator(sum[:8]), d)
}

func TestAnchorKnownValue(t *testing.T) {
	// Anchor's well-known discriminator for "initialize".
	assert.Equal(t, "afaf6d1f0d989bed", Anchor("initialize").Hex())
}

func TestAnchorDistinctNames(t *testing.T) {
	assert.NotEqual(t, Anchor("swapBaseIn"), Anchor("swapBaseOut"))
}
