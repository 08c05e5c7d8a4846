package models

import "gorm.io/gorm"

// ComplaintHistory is the append-only audit trail of status transitions.
// Rows are never updated or deleted once written.
type ComplaintHistory struct {
	gorm.Model
	ComplaintID uint   `json:"complaint_id" gorm:"index;not null"`
	ActionBy    uint   `json:"action_by"` // admin user id
	OldStatus   string `json:"old_status"`
	NewStatus   string `json:"new_status"`
	Note        string `json:"note"`
}
