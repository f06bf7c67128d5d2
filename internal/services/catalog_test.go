package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_AdminCodesCachedAndSorted(t *testing.T) {
	fc := &fakeClient{Codes: []models.AdminCode{{Code: "A10"}, {Code: "A2"}}}
	cat := NewCatalog(fc, time.Minute)

	for i := 0; i < 3; i++ {
		codes, err := cat.AdminCodes(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "A2", codes[0].Code)
	}
	assert.Equal(t, 1, fc.CodesCalls)
}

func TestCatalog_ZeroTTLDisablesCache(t *testing.T) {
	fc := &fakeClient{Codes: []models.AdminCode{}}
	cat := NewCatalog(fc, 0)

	_, _ = cat.AdminCodes(context.Background())
	_, _ = cat.AdminCodes(context.Background())
	assert.Equal(t, 2, fc.CodesCalls)
}

func TestCatalog_ErrorsAreNotCached(t *testing.T) {
	fc := &fakeClient{BusinessesErr: client.ErrUnavailable}
	cat := NewCatalog(fc, time.Minute)

	_, err := cat.Businesses(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)

	fc.BusinessesErr = nil
	fc.Businesses = []models.Business{{ID: 1}}
	got, err := cat.Businesses(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 2, fc.BusinessCalls)
}

func TestCatalog_ForgetBusinesses(t *testing.T) {
	fc := &fakeClient{Businesses: []models.Business{{ID: 1}}}
	cat := NewCatalog(fc, time.Minute)

	_, _ = cat.Businesses(context.Background())
	_, _ = cat.Businesses(context.Background())
	cat.ForgetBusinesses()
	_, _ = cat.Businesses(context.Background())
	assert.Equal(t, 2, fc.BusinessCalls)
}
