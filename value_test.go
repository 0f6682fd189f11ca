// value_test.go
package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Value_Truthiness(t *testing.T) {
	assert.False(t, None.IsTruthy())
	assert.False(t, BoolValue(false).IsTruthy())
	assert.True(t, BoolValue(true).IsTruthy())
	assert.True(t, NumberValue(0).IsTruthy())
	assert.True(t, NumberValue(-1).IsTruthy())
	assert.True(t, StringValue("").IsTruthy())
	assert.True(t, StringValue("false").IsTruthy())
}

func Test_Value_Equality(t *testing.T) {
	assert.True(t, None.Equals(None))
	assert.True(t, BoolValue(true).Equals(BoolValue(true)))
	assert.False(t, BoolValue(true).Equals(BoolValue(false)))
	assert.True(t, NumberValue(1.5).Equals(NumberValue(1.5)))
	assert.False(t, NumberValue(1).Equals(NumberValue(2)))
	assert.True(t, StringValue("a").Equals(StringValue("a")))
	assert.False(t, StringValue("a").Equals(StringValue("b")))

	// No coercion across kinds.
	assert.False(t, NumberValue(0).Equals(BoolValue(false)))
	assert.False(t, NumberValue(1).Equals(StringValue("1")))
	assert.False(t, None.Equals(BoolValue(false)))

	// Callables never compare equal, not even to themselves.
	c := CallableValue(&Callable{Kind: NativeFunction, Name: "clock"})
	assert.False(t, c.Equals(c))
}

func Test_Value_String(t *testing.T) {
	assert.Equal(t, "nil", None.String())
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, "false", BoolValue(false).String())
	assert.Equal(t, "123", NumberValue(123).String())
	assert.Equal(t, "123.45", NumberValue(123.45).String())
	assert.Equal(t, "-0.5", NumberValue(-0.5).String())
	assert.Equal(t, "hello", StringValue("hello").String())
	assert.Equal(t, "<native fn>", CallableValue(&Callable{Kind: NativeFunction, Name: "clock"}).String())
	assert.Equal(t, "<fn add>", CallableValue(&Callable{Kind: UserFunction, Name: "add"}).String())
}

func Test_Value_FromLiteral(t *testing.T) {
	assert.Equal(t, None, FromLiteral(NoneLit()))
	assert.Equal(t, BoolValue(true), FromLiteral(BoolLit(true)))
	assert.Equal(t, NumberValue(2.5), FromLiteral(NumberLit(2.5)))
	assert.Equal(t, StringValue("x"), FromLiteral(StringLit("x")))
}
