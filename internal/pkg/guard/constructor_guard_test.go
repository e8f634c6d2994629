package guard_test

import (
	"errors"
	"testing"

	"logistics/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotConstructed = errors.New("object must be created via its constructor")

type guardedObject struct {
	value string
	guard guard.ConstructorGuard
}

func newGuardedObject(value string) guardedObject {
	return guardedObject{
		value: value,
		guard: guard.NewConstructorGuard(),
	}
}

func (o guardedObject) Validate() error {
	return o.guard.Validate(errNotConstructed)
}

func TestConstructorGuard_ConstructedObjectIsValid(t *testing.T) {
	obj := newGuardedObject("payload")

	require.NoError(t, obj.Validate())
	assert.Equal(t, "payload", obj.value)
}

func TestConstructorGuard_ZeroValueFailsValidation(t *testing.T) {
	var obj guardedObject

	err := obj.Validate()
	require.Error(t, err)
	assert.Equal(t, errNotConstructed, err)
}

func TestConstructorGuard_DirectInitializationFailsValidation(t *testing.T) {
	obj := guardedObject{value: "bypassed"}

	require.Error(t, obj.Validate())
}

func TestConstructorGuard_NilValidationErrorFallsBackToDefault(t *testing.T) {
	var g guard.ConstructorGuard

	err := g.Validate(nil)
	require.Error(t, err)
	assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
}

func TestConstructorGuard_ValidateOnConstructedGuardReturnsNil(t *testing.T) {
	g := guard.NewConstructorGuard()

	require.NoError(t, g.Validate(errNotConstructed))
	require.NoError(t, g.Validate(nil))
}
