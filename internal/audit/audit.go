// Package audit records write actions performed through the panel.
package audit

import (
	"context"
	"time"
)

// Actions recorded by the panel.
const (
	ActionUploadXML       = "upload_xml"
	ActionDeleteInvoice   = "delete_invoice"
	ActionAssignBusiness  = "assign_business"
	ActionRenameProduct   = "rename_product"
	ActionDeleteProduct   = "delete_product"
	ActionSetPercentage   = "set_additional_percentage"
	ActionSetOthers       = "set_others"
	ActionAssignAdminCode = "assign_admin_code"
	ActionUpdateUser      = "update_user"
	ActionCreateBusiness  = "create_business"
	ActionChooseBusiness  = "choose_business"
	ActionChangePassword  = "change_password"
)

type Entry struct {
	ID        int64
	CreatedAt time.Time
	Actor     string
	Action    string
	Target    string
	Detail    string
	RequestID string
}

// Recorder stores audit entries.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// Noop drops entries. Used when no audit DSN is configured.
type Noop struct{}

func (Noop) Record(ctx context.Context, e Entry) error { return nil }

func (Noop) Recent(ctx context.Context, limit int) ([]Entry, error) { return []Entry{}, nil }
