package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/factorg/internal/cache"
	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/models"
)

const catalogKey = "all"

// Catalog serves the admin-code and business catalogs through a TTL cache.
type Catalog struct {
	client     client.Client
	ttl        time.Duration
	codes      cache.Cache[string, []models.AdminCode]
	businesses cache.Cache[string, []models.Business]
	categories cache.Cache[string, []models.Category]
}

func NewCatalog(c client.Client, ttl time.Duration) *Catalog {
	return &Catalog{
		client:     c,
		ttl:        ttl,
		codes:      cache.New[string, []models.AdminCode](ttl),
		businesses: cache.New[string, []models.Business](ttl),
		categories: cache.New[string, []models.Category](ttl),
	}
}

// AdminCodes returns the admin codes in natural cod_admin order.
func (c *Catalog) AdminCodes(ctx context.Context) ([]models.AdminCode, error) {
	return cache.GetOrLoad(ctx, c.codes, catalogKey, c.ttl, func(ctx context.Context) ([]models.AdminCode, error) {
		codes, err := c.client.AdminCodes(ctx)
		if err != nil {
			return nil, err
		}
		return SortAdminCodes(codes), nil
	})
}

func (c *Catalog) Categories(ctx context.Context) ([]models.Category, error) {
	return cache.GetOrLoad(ctx, c.categories, catalogKey, c.ttl, c.client.Categories)
}

func (c *Catalog) Businesses(ctx context.Context) ([]models.Business, error) {
	return cache.GetOrLoad(ctx, c.businesses, catalogKey, c.ttl, c.client.ListBusinesses)
}

// ForgetBusinesses drops the cached businesses after a create.
func (c *Catalog) ForgetBusinesses() {
	c.businesses.Delete(catalogKey)
}
