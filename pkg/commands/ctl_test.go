// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	key := "TEST_KEY"
	fallback := "default_value"

	// Test when the environment variable is not set
	value := getEnv(key, fallback)
	assert.Equal(t, fallback, value)

	// Test when the environment variable is set
	expectedValue := "expected_value"
	os.Setenv(key, expectedValue)
	value = getEnv(key, fallback)
	assert.Equal(t, expectedValue, value)

	// Clean up
	os.Unsetenv(key)
}

func TestGetEnvTyped(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT64", "9000000000")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_BAD", "x")

	assert.Equal(t, 42, getEnvInt("TEST_INT", 1))
	assert.Equal(t, 1, getEnvInt("TEST_BAD", 1))
	assert.Equal(t, int64(9000000000), getEnvInt64("TEST_INT64", 1))
	assert.Equal(t, int64(1), getEnvInt64("TEST_MISSING", 1))
	assert.True(t, getEnvBool("TEST_BOOL", false))
	assert.False(t, getEnvBool("TEST_BAD", false))
}

func TestGetEnvStringSlice(t *testing.T) {
	def := []string{"*.txt"}
	assert.Equal(t, def, getEnvStringSlice("TEST_SLICE", def))

	t.Setenv("TEST_SLICE", "sd*.txt, nvme*.json ,")
	assert.Equal(t, []string{"sd*.txt", "nvme*.json"}, getEnvStringSlice("TEST_SLICE", def))

	t.Setenv("TEST_SLICE", " , ")
	assert.Equal(t, def, getEnvStringSlice("TEST_SLICE", def))
}

func TestSetUpLogs(t *testing.T) {
	assert.NoError(t, setUpLogs("debug"))
	assert.Error(t, setUpLogs("loud"))
	assert.NoError(t, setUpLogs("warn"))
}
