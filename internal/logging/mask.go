package logging

import "strings"

// MaskToken hides everything but the last 4 characters of a credential.
// A leading "Bearer " scheme is preserved.
func MaskToken(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if scheme, token, ok := strings.Cut(value, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return "Bearer " + maskLast4(strings.TrimSpace(token))
	}
	return maskLast4(value)
}

// MaskEmail keeps the first character of the local part and the domain.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok || local == "" {
		return maskLast4(email)
	}
	return local[:1] + strings.Repeat("*", len(local)-1) + "@" + domain
}

func maskLast4(value string) string {
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}
