package team

import "time"

type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// UnlimitedSize marks a team without a capacity cap.
const UnlimitedSize = 0

type Team struct {
	ID          string
	EventID     string
	OwnerUserID string
	Name        string
	Size        int
	InviteCode  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Membership struct {
	TeamID    string
	UserID    string
	Role      Role
	JoinedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type MemberProfile struct {
	UserID    string
	FirstName string
	LastName  string
	AvatarURL string
	Role      Role
}
