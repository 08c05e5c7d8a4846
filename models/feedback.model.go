package models

import "gorm.io/gorm"

// Feedback holds one rating per (complaint, user) pair, writable only once
// the complaint has reached a terminal status.
type Feedback struct {
	gorm.Model
	ComplaintID uint   `json:"complaint_id" gorm:"uniqueIndex:idx_feedback_complaint_user;not null"`
	UserID      uint   `json:"user_id" gorm:"uniqueIndex:idx_feedback_complaint_user;not null"`
	Rating      int    `json:"rating"`
	Comments    string `json:"comments"`
}
