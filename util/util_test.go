package util

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformSlice(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, TransformSlice([]int{1, 2, 3}, strconv.Itoa))
	assert.Equal(t, []string{}, TransformSlice([]int{}, strconv.Itoa))
}

func TestCanonicalMapIter(t *testing.T) {
	m := map[string]string{"z": "1", "a": "2", "m": "3"}

	keys := []string{}
	values := []string{}
	for k, v := range CanonicalMapIter(m) {
		keys = append(keys, k)
		values = append(values, v)
	}
	assert.Equal(t, []string{"a", "m", "z"}, keys)
	assert.Equal(t, []string{"2", "3", "1"}, values)
}

func TestCanonicalMapIterEmpty(t *testing.T) {
	count := 0
	for range CanonicalMapIter(map[string]int{}) {
		count++
	}
	assert.Equal(t, 0, count)
}

func TestCanonicalMapIterEarlyStop(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2, "c": 3}
	keys := []string{}
	for k := range CanonicalMapIter(m) {
		keys = append(keys, k)
		if len(keys) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, keys)
}
