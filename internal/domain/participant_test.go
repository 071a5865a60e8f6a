package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetDisplayName(t *testing.T) {
	p := NewParticipant("p1")
	assert.Empty(t, p.DisplayName)

	assert.NoError(t, p.SetDisplayName("Alice"))
	assert.Equal(t, "Alice", p.DisplayName)

	// Last write wins, including writing back to empty.
	assert.NoError(t, p.SetDisplayName(""))
	assert.Empty(t, p.DisplayName)
}

func TestSetDisplayNameTooLong(t *testing.T) {
	p := NewParticipant("p1")
	err := p.SetDisplayName(strings.Repeat("x", MaxDisplayNameLen+1))
	assert.ErrorIs(t, err, ErrDisplayNameTooLong)
	assert.Empty(t, p.DisplayName)
}
