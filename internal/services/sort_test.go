package services

import (
	"testing"

	"github.com/dmitrijs2005/factorg/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNaturalLess(t *testing.T) {
	assert.True(t, NaturalLess("A2", "A10"))
	assert.False(t, NaturalLess("A10", "A2"))
	assert.True(t, NaturalLess("9", "10"))
	assert.True(t, NaturalLess("a", "a1"))
	assert.True(t, NaturalLess("abc", "ABD"), "comparison ignores case")
	assert.False(t, NaturalLess("007", "7"))
	assert.False(t, NaturalLess("7", "007"))
}

func TestSortAdminCodes(t *testing.T) {
	in := []models.AdminCode{
		{ID: 1, Code: "b1"},
		{ID: 2, Code: "A10"},
		{ID: 3, Code: "10"},
		{ID: 4, Code: "A2"},
		{ID: 5, Code: "9"},
	}

	got := SortAdminCodes(in)

	var codes []string
	for _, c := range got {
		codes = append(codes, c.Code)
	}
	if diff := cmp.Diff([]string{"9", "10", "A2", "A10", "b1"}, codes); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "b1", in[0].Code, "input must stay untouched")
}
