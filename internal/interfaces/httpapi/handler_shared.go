package httpapi

import (
	"context"
	"time"

	"github.com/amar93190/Team-up/internal/domain/event"
	"github.com/amar93190/Team-up/internal/domain/team"
)

type createTeamRequest struct {
	EventID string `json:"event_id" validate:"required"`
	Name    string `json:"name" validate:"required,max=80"`
	Size    int    `json:"size" validate:"gte=0,lte=64"`
}

type joinTeamRequest struct {
	InviteCode string `json:"invite_code" validate:"required,min=6,max=32"`
}

type setFavoriteRequest struct {
	Favorite bool `json:"favorite"`
}

type notifyTeamCreatedRequest struct {
	TeamID      string `json:"team_id" validate:"required"`
	EventID     string `json:"event_id"`
	OwnerUserID string `json:"owner_user_id"`
	Name        string `json:"name"`
}

type notifyMemberJoinedRequest struct {
	TeamID  string `json:"team_id" validate:"required"`
	EventID string `json:"event_id"`
	UserID  string `json:"user_id" validate:"required"`
	Role    string `json:"role"`
}

type teamDTO struct {
	ID           string `json:"id"`
	EventID      string `json:"event_id,omitempty"`
	OwnerUserID  string `json:"owner_user_id"`
	Name         string `json:"name"`
	Size         int    `json:"size"`
	InviteCode   string `json:"invite_code"`
	CreatedAtUTC string `json:"created_at_utc"`
	UpdatedAtUTC string `json:"updated_at_utc"`
}

type membershipDTO struct {
	TeamID      string `json:"team_id"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
	JoinedAtUTC string `json:"joined_at_utc"`
}

type joinTeamDTO struct {
	Team       teamDTO       `json:"team"`
	Membership membershipDTO `json:"membership"`
}

type memberProfileDTO struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Role      string `json:"role"`
}

type eventDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	StartsAtUTC string `json:"starts_at_utc"`
	EndsAtUTC   string `json:"ends_at_utc,omitempty"`
}

func teamToDTO(ctx context.Context, v team.Team) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	return teamDTO{
		ID:           v.ID,
		EventID:      v.EventID,
		OwnerUserID:  v.OwnerUserID,
		Name:         v.Name,
		Size:         v.Size,
		InviteCode:   v.InviteCode,
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAtUTC: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func membershipToDTO(ctx context.Context, v team.Membership) membershipDTO {
	ctx, span := startSpan(ctx, "httpapi.membershipToDTO")
	defer span.End()

	return membershipDTO{
		TeamID:      v.TeamID,
		UserID:      v.UserID,
		Role:        string(v.Role),
		JoinedAtUTC: v.JoinedAt.UTC().Format(time.RFC3339),
	}
}

func memberProfileToDTO(ctx context.Context, v team.MemberProfile) memberProfileDTO {
	ctx, span := startSpan(ctx, "httpapi.memberProfileToDTO")
	defer span.End()

	return memberProfileDTO{
		UserID:    v.UserID,
		FirstName: v.FirstName,
		LastName:  v.LastName,
		AvatarURL: v.AvatarURL,
		Role:      string(v.Role),
	}
}

func eventToDTO(ctx context.Context, v event.Event) eventDTO {
	ctx, span := startSpan(ctx, "httpapi.eventToDTO")
	defer span.End()

	dto := eventDTO{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Location:    v.Location,
		StartsAtUTC: v.StartsAt.UTC().Format(time.RFC3339),
	}
	if !v.EndsAt.IsZero() {
		dto.EndsAtUTC = v.EndsAt.UTC().Format(time.RFC3339)
	}
	return dto
}
