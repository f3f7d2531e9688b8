package playable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdditionalData_GetString(t *testing.T) {
	a := AdditionalData{"key": "value", "num": float64(5)}

	s, ok := a.GetString("key")
	assert.True(t, ok)
	assert.Equal(t, "value", s)

	_, ok = a.GetString("num")
	assert.False(t, ok)
}

func TestAdditionalData_GetInt(t *testing.T) {
	a := AdditionalData{"num": float64(5), "key": "value"}

	n, ok := a.GetInt("num")
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	_, ok = a.GetInt("key")
	assert.False(t, ok)
}

func TestAdditionalData_GetBool(t *testing.T) {
	a := AdditionalData{"vote": true, "key": "value"}

	b, ok := a.GetBool("vote")
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = a.GetBool("key")
	assert.False(t, ok)
}

func TestSimpleLogMessage(t *testing.T) {
	msg := SimpleLogMessage(5, "{} played %s", "a card")
	assert.Equal(t, []int64{5}, msg.PlayerIDs)
	assert.Equal(t, "{} played a card", msg.Message)
	assert.NotEmpty(t, msg.UUID)

	msg = SimpleLogMessage(0, "the round starts")
	assert.Nil(t, msg.PlayerIDs)
}
