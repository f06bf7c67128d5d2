package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "Bearer ******wxyz", MaskToken("Bearer abcdefwxyz"))
	assert.Equal(t, "******wxyz", MaskToken("abcdefwxyz"))
	assert.Equal(t, "***", MaskToken("abc"))
	assert.Empty(t, MaskToken("   "))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "a***@factorg.cl", MaskEmail("ana.@factorg.cl"))
	assert.Equal(t, "j******@example.com", MaskEmail("jperez1@example.com"))
	assert.Equal(t, "*****", MaskEmail("nomai"))
}
