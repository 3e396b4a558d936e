package memo_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/on-the-ground/deferred_go/memo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_ComputesOncePerKey(t *testing.T) {
	calls := map[string]int{}
	table := memo.NewTable(8, func(key string) (string, error) {
		calls[key]++
		return "v:" + key, nil
	})

	for i := 0; i < 3; i++ {
		v, err := table.Get("a")
		require.NoError(t, err)
		assert.Equal(t, "v:a", v)
	}
	v, err := table.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "v:b", v)

	assert.Equal(t, 1, calls["a"])
	assert.Equal(t, 1, calls["b"])
	assert.Equal(t, 2, table.Len())
}

func TestTable_FailureIsNotCached(t *testing.T) {
	attempts := 0
	table := memo.NewTable(8, func(key int) (int, error) {
		attempts++
		if attempts == 1 {
			return 0, errors.New("transient")
		}
		return key * 2, nil
	})

	_, err := table.Get(21)
	assert.EqualError(t, err, "transient")

	v, err := table.Get(21)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 2, attempts)

	// success is cached from here on
	v, err = table.Get(21)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 2, attempts)
}

func TestTable_RotationEvictsOldGeneration(t *testing.T) {
	calls := map[string]int{}
	table := memo.NewTable(1, func(key string) (string, error) {
		calls[key]++
		return key, nil
	})

	// "a" fills the head generation
	_, err := table.Get("a")
	require.NoError(t, err)

	// "b" rotates; "a" survives in the tail generation
	_, err = table.Get("b")
	require.NoError(t, err)
	_, err = table.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1, calls["a"])

	// "c" rotates again, discarding the generation holding "a"
	_, err = table.Get("c")
	require.NoError(t, err)
	_, err = table.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 2, calls["a"])
}

func TestTable_Forget(t *testing.T) {
	calls := 0
	table := memo.NewTable(8, func(key string) (int, error) {
		calls++
		return calls, nil
	})

	v, err := table.Get("k")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	table.Forget("k")
	assert.Equal(t, 0, table.Len())

	v, err = table.Get("k")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestTable_ConstructorConstraints(t *testing.T) {
	assert.Panics(t, func() {
		memo.NewTable[string, int](0, func(string) (int, error) { return 0, nil })
	})
	assert.Panics(t, func() {
		memo.NewTable[string, int](1, nil)
	})
}

func TestMemoize_WrapsFunction(t *testing.T) {
	calls := 0
	square := memo.Memoize(func(n int) (int, error) {
		calls++
		if n < 0 {
			return 0, fmt.Errorf("negative input: %d", n)
		}
		return n * n, nil
	}, 16)

	v, err := square(9)
	require.NoError(t, err)
	assert.Equal(t, 81, v)

	v, err = square(9)
	require.NoError(t, err)
	assert.Equal(t, 81, v)
	assert.Equal(t, 1, calls)

	_, err = square(-1)
	assert.EqualError(t, err, "negative input: -1")
}
