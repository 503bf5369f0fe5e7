package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, pageOffset(1, 10))
	assert.Equal(t, 30, pageOffset(4, 10))
	assert.Equal(t, 0, pageOffset(0, 10))
	assert.Equal(t, 0, pageOffset(-1, 10))
}
