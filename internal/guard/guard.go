// Package guard decides which panel features a user may reach and builds the
// navigation that matches those decisions.
package guard

import (
	"github.com/dmitrijs2005/factorg/internal/common"
	"github.com/dmitrijs2005/factorg/internal/models"
)

type Feature int

const (
	FeatureDashboard Feature = iota
	FeatureUpload
	FeatureTables
	FeatureAdmin
	FeatureProfile
)

func (f Feature) String() string {
	switch f {
	case FeatureDashboard:
		return "dashboard"
	case FeatureUpload:
		return "upload"
	case FeatureTables:
		return "tables"
	case FeatureAdmin:
		return "admin"
	case FeatureProfile:
		return "profile"
	}
	return "unknown"
}

// Allowed reports whether u may use f. A nil user (profile not loaded) is
// treated as a plain USUARIO with default permissions. SUPERADMIN bypasses
// every per-feature flag.
func Allowed(u *models.User, f Feature) bool {
	if f == FeatureProfile {
		return true
	}
	if u == nil {
		return f == FeatureDashboard
	}
	if u.Role == common.RoleSuperAdmin {
		return true
	}

	switch f {
	case FeatureDashboard:
		return u.DashboardAllowed()
	case FeatureUpload:
		return u.CanUpload
	case FeatureTables:
		return u.CanTables
	}
	return false
}

// Role returns the user's role, USUARIO when unknown.
func Role(u *models.User) string {
	if u == nil || u.Role == "" {
		return common.RoleUser
	}
	return u.Role
}

// NavItem is one sidebar link.
type NavItem struct {
	Label   string
	Path    string
	Feature Feature
}

var navigation = []NavItem{
	{Label: "Dashboard", Path: "/", Feature: FeatureDashboard},
	{Label: "Subir XML", Path: "/subir", Feature: FeatureUpload},
	{Label: "Productos", Path: "/leerProd", Feature: FeatureTables},
	{Label: "Facturas", Path: "/leerFact", Feature: FeatureTables},
	{Label: "Admin Usuarios", Path: "/admin/usuarios", Feature: FeatureAdmin},
	{Label: "Admin Negocios", Path: "/admin/negocios", Feature: FeatureAdmin},
	{Label: "Mi Perfil", Path: "/perfil", Feature: FeatureProfile},
}

// NavItems lists the links u may follow, in sidebar order.
func NavItems(u *models.User) []NavItem {
	items := make([]NavItem, 0, len(navigation))
	for _, item := range navigation {
		if Allowed(u, item.Feature) {
			items = append(items, item)
		}
	}
	return items
}

// Home is where a signed-in user lands: the first allowed link.
func Home(u *models.User) string {
	return NavItems(u)[0].Path
}
