package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	assert.NoError(t, Combine(nil, nil))

	first := errors.New("first")
	second := errors.New("second")
	err := Combine(first, nil, second)
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
}

func TestNewError(t *testing.T) {
	assert.EqualError(t, NewErrorf("bad port %d", 0), "bad port 0")
	assert.EqualError(t, NewError("bad", "port"), "bad port\n")
}

func TestRecover(t *testing.T) {
	assert.NotPanics(t, func() {
		defer Recover("test")
		panic("boom")
	})
}
