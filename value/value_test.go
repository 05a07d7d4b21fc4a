package value

import "testing"

import "github.com/stretchr/testify/require"

func TestEqualsIsTypeStrict(t *testing.T) {
	require.False(t, Number(1).Equals(Bool(true)))
	require.False(t, Bool(false).Equals(Nil))
	require.True(t, Number(1).Equals(Number(1)))
	require.True(t, String("a").Equals(String("a")))
	require.False(t, String("a").Equals(String("b")))
}

func TestTruthiness(t *testing.T) {
	require.False(t, Nil.Truthy())
	require.False(t, Bool(false).Truthy())
	require.True(t, Bool(true).Truthy())
	require.True(t, Number(0).Truthy())
	require.True(t, String("").Truthy())
}

func TestFalseyIsComplementOfTruthy(t *testing.T) {
	for _, v := range []Value{Nil, Bool(false), Bool(true), Number(0), Number(1), String("")} {
		require.Equal(t, !v.Truthy(), v.Falsey())
	}
}

func TestStringRendering(t *testing.T) {
	require.Equal(t, "nil", Nil.String())
	require.Equal(t, "true", Bool(true).String())
	require.Equal(t, "false", Bool(false).String())
	require.Equal(t, "hello", String("hello").String())
	require.Equal(t, "3.5", Number(3.5).String())
}
