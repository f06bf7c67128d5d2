package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/factorg/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const passwordSymbols = `.,!@#$%^&*()_-+=[]{};':"\|<>/?`

// Registration is the sign-up form.
type Registration struct {
	Name     string
	Email    string
	Password string
}

// Validate checks the sign-up rules: name and email required, email shaped
// x@y.z, password of at least 8 characters mixing lower, upper, digit and symbol.
func (r Registration) Validate() error {
	errs := fieldErrors{}

	if strings.TrimSpace(r.Name) == "" {
		errs["nombre"] = "El nombre es obligatorio."
	}

	email := strings.TrimSpace(r.Email)
	switch {
	case email == "":
		errs["email"] = "El correo es obligatorio."
	case !emailPattern.MatchString(email):
		errs["email"] = "Ingresa un correo electrónico válido."
	}

	switch {
	case r.Password == "":
		errs["password"] = "La contraseña es obligatoria."
	case !StrongPassword(r.Password):
		errs["password"] = "Debe tener al menos 8 caracteres, una mayúscula, una minúscula, un número y un símbolo (ej: . , !)."
	}

	return errs.err()
}

// StrongPassword reports whether p satisfies the registration policy.
func StrongPassword(p string) bool {
	if len([]rune(p)) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// ValidatePasswordChange checks the profile password form.
func ValidatePasswordChange(password, confirm string) error {
	if len([]rune(password)) < 6 {
		return invalid("password", "La contraseña debe tener al menos 6 caracteres.")
	}
	if password != confirm {
		return invalid("confirm", "Las contraseñas no coinciden.")
	}
	return nil
}

// BusinessForm is the create-business form as typed.
type BusinessForm struct {
	Name      string
	RUT       string
	LegalName string
	Email     string
	Address   string
}

// Payload validates the form and returns the create body; blank optional
// fields become null.
func (f BusinessForm) Payload() (models.NewBusiness, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return models.NewBusiness{}, invalid("nombre", "El nombre del negocio es obligatorio.")
	}
	return models.NewBusiness{
		Name:      name,
		RUT:       optional(f.RUT),
		LegalName: optional(f.LegalName),
		Email:     optional(f.Email),
		Address:   optional(f.Address),
	}, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ParsePercentage reads a non-negative number; a comma decimal separator is accepted.
func ParsePercentage(raw string) (float64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalid("porcentaje_adicional", "Ingresa un porcentaje válido (número mayor o igual a 0).")
	}
	return v, nil
}

// ParseOthers reads the integer "otros" value; anything unparsable is 0.
func ParseOthers(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return v
}

// ParseSelection reads a required id chosen from a select; field names the
// form field for the error message.
func ParseSelection(raw, field, msg string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return 0, invalid(field, msg)
	}
	return v, nil
}

// ParseOptionalID reads an id where blank means none.
func ParseOptionalID(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, invalid("negocio_id", "Negocio inválido.")
	}
	return &v, nil
}
