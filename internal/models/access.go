package models

import "time"

const (
	AccessRoleViewer = "viewer"
	AccessRoleEditor = "editor"
	AccessRoleAdmin  = "admin"
)

// Access grants a non-owner collaborator a role on a plan. Owners never have a row.
type Access struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PlanID    uint      `gorm:"not null;uniqueIndex:uidx_access_plan_user" json:"plan_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_access_plan_user" json:"user_id"`
	Role      string    `gorm:"not null;default:viewer" json:"role"`
	GrantedBy uint      `gorm:"not null" json:"granted_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (Access) TableName() string {
	return "accesses"
}

func CanEditWithRole(role string) bool {
	return role == AccessRoleEditor || role == AccessRoleAdmin
}
