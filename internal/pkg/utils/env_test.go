package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("MOMENTUM_TEST_SET", "value")
	t.Setenv("MOMENTUM_TEST_EMPTY", "")

	require.Equal(t, "value", GetEnv("MOMENTUM_TEST_SET", "fallback"))
	require.Equal(t, "fallback", GetEnv("MOMENTUM_TEST_EMPTY", "fallback"))
	require.Equal(t, "fallback", GetEnv("MOMENTUM_TEST_UNSET", "fallback"))
}
