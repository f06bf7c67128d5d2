package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/factorg/internal/audit"
	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/common"
	"github.com/dmitrijs2005/factorg/internal/logging"
	"github.com/dmitrijs2005/factorg/internal/models"
	"golang.org/x/sync/errgroup"
)

// RecentAuditEntries is how many audit rows the users page shows.
const RecentAuditEntries = 20

// Roles lists the assignable roles in display order.
var Roles = []string{common.RoleUser, common.RoleAdmin, common.RoleSuperAdmin}

type UsersView struct {
	Users      []models.User
	Businesses []models.Business
	Activity   []audit.Entry
}

// UserForm is one row of the users table as submitted.
type UserForm struct {
	Role         string
	CanDashboard bool
	CanUpload    bool
	CanTables    bool
	Active       bool
	BusinessID   string
}

// Update validates the form and builds the request body.
func (f UserForm) Update() (models.UserUpdate, error) {
	role := strings.ToUpper(strings.TrimSpace(f.Role))
	known := false
	for _, r := range Roles {
		if r == role {
			known = true
			break
		}
	}
	if !known {
		return models.UserUpdate{}, invalid("rol", "Rol inválido.")
	}

	businessID, err := ParseOptionalID(f.BusinessID)
	if err != nil {
		return models.UserUpdate{}, err
	}

	return models.UserUpdate{
		Role:         role,
		CanDashboard: f.CanDashboard,
		CanUpload:    f.CanUpload,
		CanTables:    f.CanTables,
		Active:       f.Active,
		BusinessID:   businessID,
	}, nil
}

// AdminService backs the users and businesses administration pages.
type AdminService interface {
	Users(ctx context.Context) (*UsersView, error)
	UpdateUser(ctx context.Context, id int, form UserForm) error
	Businesses(ctx context.Context) ([]models.Business, error)
	CreateBusiness(ctx context.Context, form BusinessForm) (*models.Business, error)
}

type adminService struct {
	client  client.Client
	catalog *Catalog
	store   audit.Recorder
	audit   recorder
	logger  logging.Logger
}

func NewAdminService(c client.Client, catalog *Catalog, rec audit.Recorder, logger logging.Logger) AdminService {
	if rec == nil {
		rec = audit.Noop{}
	}
	return &adminService{
		client:  c,
		catalog: catalog,
		store:   rec,
		audit:   newRecorder(rec, logger),
		logger:  logger,
	}
}

func (s *adminService) Users(ctx context.Context) (*UsersView, error) {
	v := &UsersView{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		v.Users, err = s.client.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		v.Businesses, err = s.catalog.Businesses(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		if v.Activity, err = s.store.Recent(gctx, RecentAuditEntries); err != nil {
			s.logger.Warn(gctx, "audit log unavailable", "error", err)
			v.Activity = []audit.Entry{}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}
	return v, nil
}

func (s *adminService) UpdateUser(ctx context.Context, id int, form UserForm) error {
	update, err := form.Update()
	if err != nil {
		return err
	}
	if err := s.client.UpdateUser(ctx, id, update); err != nil {
		return err
	}
	s.audit.record(ctx, audit.ActionUpdateUser, "usuario:"+strconv.Itoa(id), describeUpdate(update))
	return nil
}

func (s *adminService) Businesses(ctx context.Context) ([]models.Business, error) {
	return s.catalog.Businesses(ctx)
}

func (s *adminService) CreateBusiness(ctx context.Context, form BusinessForm) (*models.Business, error) {
	payload, err := form.Payload()
	if err != nil {
		return nil, err
	}
	b, err := s.client.CreateBusiness(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.catalog.ForgetBusinesses()
	s.audit.record(ctx, audit.ActionCreateBusiness, "negocio:"+strconv.Itoa(b.ID), b.Name)
	return b, nil
}

func describeUpdate(u models.UserUpdate) string {
	business := "-"
	if u.BusinessID != nil {
		business = strconv.Itoa(*u.BusinessID)
	}
	return fmt.Sprintf("rol=%s dashboard=%t subir=%t tablas=%t activo=%t negocio=%s",
		u.Role, u.CanDashboard, u.CanUpload, u.CanTables, u.Active, business)
}
