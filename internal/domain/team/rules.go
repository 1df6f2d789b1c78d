package team

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTeamFull             = errors.New("team is full")
	ErrDuplicateInviteCode  = errors.New("invite code already in use")
	ErrPolicyDenied         = errors.New("row policy denied access")
	ErrAggregateUnavailable = errors.New("member profile aggregate unavailable")
)

const maxNameLength = 80

// HasCapacity reports whether one more member fits. Size zero means the
// team is uncapped.
func HasCapacity(size, memberCount int) bool {
	if size <= UnlimitedSize {
		return true
	}
	return memberCount < size
}

func ValidateNew(t Team) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if len(t.Name) > maxNameLength {
		return fmt.Errorf("team name exceeds %d characters", maxNameLength)
	}
	if t.Size < 0 {
		return fmt.Errorf("team size cannot be negative")
	}
	if strings.TrimSpace(t.EventID) == "" {
		return fmt.Errorf("event id is required")
	}
	if strings.TrimSpace(t.OwnerUserID) == "" {
		return fmt.Errorf("owner user id is required")
	}
	return nil
}
