package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntList_Value(t *testing.T) {
	v, err := IntList{0, 6}.Value()
	assert.NoError(t, err)
	assert.Equal(t, "[0,6]", v)

	v, err = IntList(nil).Value()
	assert.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestIntList_Scan(t *testing.T) {
	var l IntList
	assert.NoError(t, l.Scan([]byte("[1,2,3]")))
	assert.Equal(t, IntList{1, 2, 3}, l)

	assert.NoError(t, l.Scan("[5]"))
	assert.Equal(t, IntList{5}, l)

	assert.NoError(t, l.Scan(nil))
	assert.Empty(t, l)

	assert.Error(t, l.Scan(42))
}

func TestIntList_Contains(t *testing.T) {
	l := IntList{0, 6}
	assert.True(t, l.Contains(0))
	assert.True(t, l.Contains(6))
	assert.False(t, l.Contains(3))
	assert.False(t, IntList{}.Contains(0))
}
