package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomName(t *testing.T) {
	name := GetRandomName()
	parts := strings.Split(name, " ")
	assert.Equal(t, 2, len(parts))
	assert.Contains(t, adjectives, parts[0])
	assert.Contains(t, cardWords, parts[1])
}
