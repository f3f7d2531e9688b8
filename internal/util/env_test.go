package util

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	assert.NoError(t, os.Setenv("WZN_TEST_KEY", "value"))
	defer func() { _ = os.Unsetenv("WZN_TEST_KEY") }()

	assert.Equal(t, "value", Getenv("WZN_TEST_KEY", "default"))
	assert.Equal(t, "default", Getenv("WZN_TEST_KEY_MISSING", "default"))
}
