package models

// User is a panel account as seen by /auth/me and /usuarios.
type User struct {
	ID           int     `json:"id"`
	Email        string  `json:"email"`
	Username     *string `json:"username,omitempty"`
	Role         string  `json:"rol"`
	CanDashboard *bool   `json:"puede_ver_dashboard,omitempty"`
	CanUpload    bool    `json:"puede_subir_xml"`
	CanTables    bool    `json:"puede_ver_tablas"`
	Active       bool    `json:"activo"`
	BusinessID   *int    `json:"negocio_id,omitempty"`
	BusinessName *string `json:"negocio_nombre,omitempty"`
}

// DashboardAllowed treats a missing puede_ver_dashboard as granted.
func (u User) DashboardAllowed() bool {
	return u.CanDashboard == nil || *u.CanDashboard
}

// UserUpdate is the body of PUT /usuarios/{id}. NegocioID nil clears the business.
type UserUpdate struct {
	Role         string `json:"rol"`
	CanDashboard bool   `json:"puede_ver_dashboard"`
	CanUpload    bool   `json:"puede_subir_xml"`
	CanTables    bool   `json:"puede_ver_tablas"`
	Active       bool   `json:"activo"`
	BusinessID   *int   `json:"negocio_id"`
}
