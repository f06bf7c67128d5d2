// Package models mirrors the records exchanged with the invoice backend.
//
// JSON tags carry the backend's wire names; optional values are pointers so
// that "absent" and "zero" stay distinguishable when rendering.
package models
