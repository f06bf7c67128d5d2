package services

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/factorg/internal/audit"
	"github.com/dmitrijs2005/factorg/internal/auth"
	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/logging"
	"github.com/dmitrijs2005/factorg/internal/models"
)

const msgBusinessAlreadySet = "Ya tienes un negocio asignado."

type ProfileView struct {
	User              *models.User
	Businesses        []models.Business
	CanChooseBusiness bool
}

// ProfileService backs the profile page: choosing a business once and
// changing the password.
type ProfileService interface {
	Load(ctx context.Context) (*ProfileView, error)
	ChooseBusiness(ctx context.Context, raw string) (string, error)
	ChangePassword(ctx context.Context, accessToken, password, confirm string) error
}

type profileService struct {
	client   client.Client
	provider auth.Provider
	audit    recorder
	logger   logging.Logger
}

func NewProfileService(c client.Client, p auth.Provider, rec audit.Recorder, logger logging.Logger) ProfileService {
	return &profileService{client: c, provider: p, audit: newRecorder(rec, logger), logger: logger}
}

func (s *profileService) Load(ctx context.Context) (*ProfileView, error) {
	me, err := s.client.Me(ctx)
	if err != nil {
		return nil, err
	}

	v := &ProfileView{User: me, Businesses: []models.Business{}}
	if me.BusinessID != nil {
		return v, nil
	}

	v.CanChooseBusiness = true
	if v.Businesses, err = s.client.SelectableBusinesses(ctx); err != nil {
		s.logger.Warn(ctx, "selectable businesses unavailable", "error", err)
		v.Businesses = []models.Business{}
	}
	return v, nil
}

// ChooseBusiness assigns the caller's business and returns its name. It is
// refused once a business is set.
func (s *profileService) ChooseBusiness(ctx context.Context, raw string) (string, error) {
	id, err := ParseSelection(raw, "negocio_id", "Selecciona un negocio.")
	if err != nil {
		return "", err
	}

	me, err := s.client.Me(ctx)
	if err != nil {
		return "", err
	}
	if me.BusinessID != nil {
		return "", &UserError{Msg: msgBusinessAlreadySet}
	}

	name, err := s.client.ChooseBusiness(ctx, id)
	if err != nil {
		return "", err
	}
	s.audit.record(ctx, audit.ActionChooseBusiness, "negocio:"+strconv.Itoa(id), name)
	return name, nil
}

func (s *profileService) ChangePassword(ctx context.Context, accessToken, password, confirm string) error {
	if err := ValidatePasswordChange(password, confirm); err != nil {
		return err
	}
	if err := s.provider.UpdatePassword(ctx, accessToken, password); err != nil {
		return &UserError{Msg: "No se pudo actualizar la contraseña.", Err: err}
	}
	s.audit.record(ctx, audit.ActionChangePassword, "usuario:"+client.Email(ctx), "")
	return nil
}
