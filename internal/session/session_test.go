package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreSetGet(t *testing.T) {
	s := NewStore()

	_, found := s.Get("MISSING")
	assert.False(t, found)

	s.Set("FOO", "bar")
	value, found := s.Get("FOO")
	assert.True(t, found)
	assert.Equal(t, "bar", value)
	assert.True(t, s.Has("FOO"))
}

func TestStoreLastWriteWins(t *testing.T) {
	s := NewStore()
	s.Set("REGION", "us-east-1")
	s.Set("REGION", "eu-west-1")

	value, found := s.Get("REGION")
	assert.True(t, found)
	assert.Equal(t, "eu-west-1", value)
	assert.Equal(t, 1, s.Len())
}

func TestStoreEmptyValueIsBound(t *testing.T) {
	s := NewStore()
	s.Set("EMPTY", "")

	value, found := s.Get("EMPTY")
	assert.True(t, found)
	assert.Equal(t, "", value)
	assert.True(t, s.Has("EMPTY"))
}

func TestStoreRemove(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Remove("ABSENT"))

	s.Set("FOO", "bar")
	assert.True(t, s.Remove("FOO"))
	assert.False(t, s.Has("FOO"))
	assert.False(t, s.Remove("FOO"))
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	assert.Equal(t, 0, s.Clear())

	s.Set("A", "1")
	s.Set("B", "2")
	s.Set("C", "3")
	assert.Equal(t, 3, s.Clear())
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has("A"))
}

func TestStoreAllReturnsSnapshot(t *testing.T) {
	s := NewStore()
	s.Set("FOO", "bar")

	snapshot := s.All()
	snapshot["FOO"] = "mutated"
	snapshot["NEW"] = "value"

	value, _ := s.Get("FOO")
	assert.Equal(t, "bar", value)
	assert.False(t, s.Has("NEW"))
	assert.Equal(t, map[string]string{"FOO": "bar"}, s.All())
}
