package jobboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerValidate(t *testing.T) {
	t.Run("constructed manager passes", func(t *testing.T) {
		m := NewRepositoryManager(nil, nil)
		assert.NoError(t, m.Validate())
	})

	t.Run("missing collections are reported", func(t *testing.T) {
		assert.Error(t, mngr{}.Validate())
		assert.Error(t, mngr{users: &users{}}.Validate())
		assert.Error(t, mngr{users: &users{}, jobs: &jobs{}}.Validate())
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(assert.AnError))
}
