package domain

import "time"

type MembershipStatus string

const (
	MembershipActive    MembershipStatus = "active"
	MembershipFrozen    MembershipStatus = "frozen"
	MembershipCancelled MembershipStatus = "cancelled"
	MembershipInactive  MembershipStatus = "inactive"
)

type Account struct {
	UserID              string
	RemainingCredits    int
	MembershipStatus    MembershipStatus
	MembershipStartDate *time.Time
	UpdatedAt           time.Time
}

// CheckMembership reports why the account may not book at now, or nil.
// Checks run in priority order: cancelled, frozen, inactive, not started.
// An empty status is treated as active.
func (a *Account) CheckMembership(now time.Time) error {
	switch a.MembershipStatus {
	case MembershipCancelled:
		return ErrMembershipCancelled
	case MembershipFrozen:
		return ErrMembershipFrozen
	case MembershipInactive:
		return ErrMembershipInactive
	}

	if a.MembershipStartDate != nil && now.Before(*a.MembershipStartDate) {
		return ErrMembershipNotStarted
	}

	return nil
}

func (a *Account) CanBook() bool {
	return a.RemainingCredits > 0
}
