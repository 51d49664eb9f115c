package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemberValidate(t *testing.T) {
	valid := Member{FirstName: "Awa", LastName: "Diop", Phone: "77 000 00 01"}
	assert.NoError(t, valid.Validate(false))

	for _, m := range []Member{
		{LastName: "Diop", Phone: "77"},
		{FirstName: "Awa", Phone: "77"},
		{FirstName: "Awa", LastName: "Diop", Phone: "   "},
		{FirstName: "Awa", LastName: "Diop", Phone: "+"},
		{FirstName: "Awa", LastName: "Diop", Phone: "abc"},
	} {
		err := m.Validate(false)
		assert.True(t, errors.Is(err, ErrValidationFailed), "member %+v", m)
	}

	err := valid.Validate(true)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "neighborhood")
}

func TestMemberTrimmed(t *testing.T) {
	m := Member{FirstName: " Awa ", Notes: "\tok\n"}.Trimmed()
	assert.Equal(t, "Awa", m.FirstName)
	assert.Equal(t, "ok", m.Notes)
}
