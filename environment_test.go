// environment_test.go
package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Environment_DeclareAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Declare("a", NumberValue(1))

	v, err := env.Get("a")
	require.NoError(t, err)
	assert.Equal(t, NumberValue(1), v)
}

func Test_Environment_GetUndefined(t *testing.T) {
	env := NewEnvironment()
	_, err := env.Get("missing")
	assert.EqualError(t, err, "Undefined variable 'missing'.")
}

func Test_Environment_AssignUndefined(t *testing.T) {
	env := NewEnvironment()
	err := env.Assign("missing", NumberValue(1))
	assert.EqualError(t, err, "Undefined variable 'missing'.")
}

func Test_Environment_AssignOuterScope(t *testing.T) {
	env := NewEnvironment()
	env.Declare("a", NumberValue(1))

	env.PushScope()
	require.NoError(t, env.Assign("a", NumberValue(2)))
	env.PopScope()

	v, err := env.Get("a")
	require.NoError(t, err)
	assert.Equal(t, NumberValue(2), v)
}

func Test_Environment_ShadowingRestoredOnPop(t *testing.T) {
	env := NewEnvironment()
	env.Declare("a", NumberValue(1))

	env.PushScope()
	env.Declare("a", NumberValue(2))
	v, err := env.Get("a")
	require.NoError(t, err)
	assert.Equal(t, NumberValue(2), v)
	env.PopScope()

	v, err = env.Get("a")
	require.NoError(t, err)
	assert.Equal(t, NumberValue(1), v)
}

func Test_Environment_InnerBindingsDestroyedOnPop(t *testing.T) {
	env := NewEnvironment()
	env.PushScope()
	env.Declare("local", BoolValue(true))
	env.PopScope()

	_, err := env.Get("local")
	assert.EqualError(t, err, "Undefined variable 'local'.")
}

func Test_Environment_GlobalScopeNeverPopped(t *testing.T) {
	env := NewEnvironment()
	env.Declare("a", NumberValue(1))
	env.PopScope()
	env.PopScope()

	v, err := env.Get("a")
	require.NoError(t, err)
	assert.Equal(t, NumberValue(1), v)
}

func Test_Environment_RedeclareSameScope(t *testing.T) {
	env := NewEnvironment()
	env.Declare("a", NumberValue(1))
	env.Declare("a", StringValue("two"))

	v, err := env.Get("a")
	require.NoError(t, err)
	assert.Equal(t, StringValue("two"), v)
}
