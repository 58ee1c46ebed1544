// Package audit records the writes administrators make through the
// dashboard into the shared transactions log.
package audit

import (
	"context"

	"smartdash/internal/models"
	"smartdash/internal/repositories"

	"go.uber.org/zap"
)

// Audit actions.
const (
	ActionBusinessUpdated   = "business_updated"
	ActionBusinessStatus    = "business_status_changed"
	ActionBusinessDeleted   = "business_deleted"
	ActionBranchUpdated     = "branch_updated"
	ActionBranchStatus      = "branch_status_changed"
	ActionBranchDeleted     = "branch_deleted"
	ActionEmployeeUpdated   = "employee_updated"
	ActionEmployeeStatus    = "employee_status_changed"
	ActionEmployeeDeleted   = "employee_deleted"
	ActionEmployeeAvatar    = "employee_avatar_uploaded"
	ActionPaymentApproved   = "payment_approved"
	ActionPaymentRejected   = "payment_rejected"
	ActionPaymentDeleted    = "payment_deleted"
	ActionLogDeleted        = "log_deleted"
	ActionSettingsUpdated   = "settings_updated"
	ActionProfileUpdated    = "profile_updated"
	ActionPasswordChanged   = "password_changed"
	ActionProfileAvatar     = "profile_avatar_uploaded"
	ActionSuperAdminCreated = "super_admin_created"
)

// Entry is one audit record.
type Entry struct {
	Action     string
	ActorID    string
	BusinessID string
	BranchID   string
	Metadata   models.JSON
}

// Invalidator drops derived data after a write.
type Invalidator interface {
	InvalidateDashboard(ctx context.Context) error
}

// Recorder persists audit entries and invalidates the cached dashboard.
type Recorder struct {
	logs        repositories.LogRepository
	invalidator Invalidator
	log         *zap.Logger
}

// NewRecorder builds a Recorder. invalidator may be nil.
func NewRecorder(logs repositories.LogRepository, invalidator Invalidator, log *zap.Logger) *Recorder {
	return &Recorder{logs: logs, invalidator: invalidator, log: log}
}

// Record stores e. A failed audit write is logged and does not fail the
// administrator's change, which has already been applied.
func (r *Recorder) Record(ctx context.Context, e Entry) {
	entry := &models.Log{
		Action:     e.Action,
		UserID:     e.ActorID,
		BusinessID: e.BusinessID,
		BranchID:   e.BranchID,
		Metadata:   e.Metadata,
	}
	if err := r.logs.Create(ctx, entry); err != nil {
		r.log.Error("failed to record audit entry",
			zap.String("action", e.Action),
			zap.String("actor_id", e.ActorID),
			zap.Error(err),
		)
	}

	if r.invalidator != nil {
		if err := r.invalidator.InvalidateDashboard(ctx); err != nil {
			r.log.Warn("failed to invalidate dashboard cache", zap.Error(err))
		}
	}
}
