package guard_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	notConstructed := errors.New("command not constructed")

	testCases := []struct {
		name     string
		guard    guard.ConstructorGuard
		err      error
		expected error
	}{
		{name: "constructed ignores custom error", guard: guard.NewConstructorGuard(), err: notConstructed},
		{name: "constructed ignores nil error", guard: guard.NewConstructorGuard()},
		{name: "zero value returns custom error", err: notConstructed, expected: notConstructed},
		{name: "zero value falls back to default", expected: guard.ErrDefaultConstructorGuard},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.guard.Validate(tc.err)
			if tc.expected == nil {
				require.NoError(t, err)
				return
			}
			assert.Equal(t, tc.expected, err)
		})
	}
}

func TestConstructorGuard_EmbeddedByValue(t *testing.T) {
	type command struct {
		guard guard.ConstructorGuard
		id    string
	}

	built := command{guard: guard.NewConstructorGuard(), id: "a"}
	copied := built

	require.NoError(t, built.guard.Validate(nil))
	require.NoError(t, copied.guard.Validate(nil))

	var zero command
	assert.Equal(t, guard.ErrDefaultConstructorGuard, zero.guard.Validate(nil))
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	done := make(chan struct{})

	for range 50 {
		go func() {
			defer func() { done <- struct{}{} }()
			for range 100 {
				assert.NoError(t, g.Validate(nil))
			}
		}()
	}

	for range 50 {
		<-done
	}
}
