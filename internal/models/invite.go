package models

import "time"

const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusRejected = "rejected"
	InviteStatusExpired  = "expired"
)

const DefaultInviteTTL = 7 * 24 * time.Hour

type Invite struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	PlanID      uint       `gorm:"not null;index" json:"plan_id"`
	Email       string     `gorm:"not null" json:"email"`
	Token       string     `gorm:"uniqueIndex;not null" json:"token"`
	InvitedBy   uint       `gorm:"not null" json:"invited_by"`
	Status      string     `gorm:"not null;default:pending" json:"status"`
	ExpiresAt   time.Time  `gorm:"not null" json:"expires_at"`
	AcceptedBy  *uint      `json:"accepted_by,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EffectiveStatus reports a pending invite whose deadline has passed as expired,
// whether or not the stored status was rewritten.
func (invite Invite) EffectiveStatus(now time.Time) string {
	if invite.Status == InviteStatusPending && !now.Before(invite.ExpiresAt) {
		return InviteStatusExpired
	}
	return invite.Status
}

func (invite Invite) IsActionable(now time.Time) bool {
	return invite.EffectiveStatus(now) == InviteStatusPending
}
