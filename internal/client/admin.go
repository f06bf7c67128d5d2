package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/factorg/internal/models"
)

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := c.getJSON(ctx, "/usuarios", nil, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int, update models.UserUpdate) error {
	if err := c.doJSON(ctx, http.MethodPut, idPath("/usuarios/%d", id), nil, update, nil); err != nil {
		return fmt.Errorf("update user %d: %w", id, err)
	}
	return nil
}

func (c *HTTPClient) ListBusinesses(ctx context.Context) ([]models.Business, error) {
	list := []models.Business{}
	if err := c.getJSON(ctx, "/negocios", nil, &list); err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	return list, nil
}

func (c *HTTPClient) SelectableBusinesses(ctx context.Context) ([]models.Business, error) {
	list := []models.Business{}
	if err := c.getJSON(ctx, "/negocios/select", nil, &list); err != nil {
		return nil, fmt.Errorf("selectable businesses: %w", err)
	}
	return list, nil
}

func (c *HTTPClient) CreateBusiness(ctx context.Context, b models.NewBusiness) (*models.Business, error) {
	var created models.Business
	if err := c.doJSON(ctx, http.MethodPost, "/negocios", nil, b, &created); err != nil {
		return nil, fmt.Errorf("create business: %w", err)
	}
	return &created, nil
}

func (c *HTTPClient) ChooseBusiness(ctx context.Context, businessID int) (string, error) {
	var out struct {
		BusinessName string `json:"negocio_nombre"`
	}
	body := map[string]int{"negocio_id": businessID}
	if err := c.doJSON(ctx, http.MethodPut, "/me/negocio", nil, body, &out); err != nil {
		return "", fmt.Errorf("choose business: %w", err)
	}
	return out.BusinessName, nil
}
