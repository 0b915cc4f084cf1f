package trust

import (
	"time"
)

// TrustProfile holds the moderation-owned subset of a user account.
// SuspendedUntil is the sole authoritative gate for "may this user write";
// InfractionsCount is advisory only and never drives escalation.
type TrustProfile struct {
	UserID           string     `json:"user_id" gorm:"column:user_id;primaryKey"`
	Nick             string     `json:"nick" gorm:"column:nick"`
	TutorEmail       string     `json:"tutor_email" gorm:"column:tutor_email"`
	SuspendedUntil   *time.Time `json:"suspended_until,omitempty" gorm:"column:suspended_until"`
	InfractionsCount int        `json:"infractions_count" gorm:"column:infractions_count"`
	StrikesResetAt   *time.Time `json:"strikes_reset_at,omitempty" gorm:"column:strikes_reset_at"`
	CreatedAt        time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (TrustProfile) TableName() string {
	return "trust_profiles"
}

// Suspended reports whether the profile is currently suspended.
func (p *TrustProfile) Suspended(now time.Time) bool {
	return p.SuspendedUntil != nil && p.SuspendedUntil.After(now)
}

// StrikeWindowStart returns the anchor from which strikes are counted: the
// trailing window start, moved forward if an administrative lift reset it.
func (p *TrustProfile) StrikeWindowStart(now time.Time, window time.Duration) time.Time {
	start := now.Add(-window)
	if p.StrikesResetAt != nil && p.StrikesResetAt.After(start) {
		return *p.StrikesResetAt
	}
	return start
}
