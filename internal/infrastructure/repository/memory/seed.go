package memory

import (
	"time"

	"github.com/amar93190/Team-up/internal/domain/event"
	"github.com/amar93190/Team-up/internal/domain/team"
	"github.com/amar93190/Team-up/internal/domain/user"
)

// Well-known ids for local runs and tests.
const (
	EventIDCityRun    = "evt-city-run"
	EventIDBeachClean = "evt-beach-cleanup"
	EventIDHackNight  = "evt-hack-night"

	TeamIDRoadrunners = "team-roadrunners"
	InviteCodeSeeded  = "RR23XK"

	UserIDSeedOwner  = "user-owner"
	UserIDSeedMember = "user-member"
)

var seedBase = time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)

func SeedEventRepository() *EventRepository {
	repo := NewEventRepository()

	events := []event.Event{
		{
			ID:        EventIDCityRun,
			Name:      "City Run 10K",
			Location:  "Lyon",
			StartsAt:  seedBase.AddDate(0, 1, 0),
			EndsAt:    seedBase.AddDate(0, 1, 0).Add(4 * time.Hour),
			CreatedAt: seedBase,
			UpdatedAt: seedBase,
		},
		{
			ID:        EventIDBeachClean,
			Name:      "Beach Cleanup",
			Location:  "Marseille",
			StartsAt:  seedBase.AddDate(0, 2, 0),
			EndsAt:    seedBase.AddDate(0, 2, 0).Add(6 * time.Hour),
			CreatedAt: seedBase,
			UpdatedAt: seedBase,
		},
		{
			ID:        EventIDHackNight,
			Name:      "Hack Night",
			Location:  "Paris",
			StartsAt:  seedBase.AddDate(0, 0, 7),
			EndsAt:    seedBase.AddDate(0, 0, 7).Add(12 * time.Hour),
			CreatedAt: seedBase,
			UpdatedAt: seedBase,
		},
	}
	for _, e := range events {
		repo.PutEvent(e)
	}

	registrations := []event.Registration{
		{EventID: EventIDCityRun, UserID: UserIDSeedOwner, Status: event.RegistrationApproved, CreatedAt: seedBase, UpdatedAt: seedBase},
		{EventID: EventIDHackNight, UserID: UserIDSeedOwner, Status: event.RegistrationApproved, CreatedAt: seedBase, UpdatedAt: seedBase},
		{EventID: EventIDBeachClean, UserID: UserIDSeedOwner, Status: event.RegistrationPending, CreatedAt: seedBase, UpdatedAt: seedBase},
		{EventID: EventIDCityRun, UserID: UserIDSeedMember, Status: event.RegistrationApproved, CreatedAt: seedBase, UpdatedAt: seedBase},
	}
	for _, reg := range registrations {
		repo.PutRegistration(reg)
	}

	return repo
}

func SeedTeamRepository() *TeamRepository {
	repo := NewTeamRepository()

	repo.teams[TeamIDRoadrunners] = team.Team{
		ID:          TeamIDRoadrunners,
		EventID:     EventIDCityRun,
		OwnerUserID: UserIDSeedOwner,
		Name:        "Roadrunners",
		Size:        4,
		InviteCode:  InviteCodeSeeded,
		CreatedAt:   seedBase,
		UpdatedAt:   seedBase,
	}
	repo.byCode[InviteCodeSeeded] = TeamIDRoadrunners
	repo.members[TeamIDRoadrunners] = map[string]team.Membership{
		UserIDSeedOwner: {
			TeamID:    TeamIDRoadrunners,
			UserID:    UserIDSeedOwner,
			Role:      team.RoleOwner,
			JoinedAt:  seedBase,
			CreatedAt: seedBase,
			UpdatedAt: seedBase,
		},
	}

	for _, p := range SeedProfiles() {
		repo.SetProfile(p)
	}

	return repo
}

func SeedProfileRepository() *ProfileRepository {
	repo := NewProfileRepository()
	for _, p := range SeedProfiles() {
		repo.Put(p)
	}
	return repo
}

func SeedProfiles() []user.Profile {
	return []user.Profile{
		{UserID: UserIDSeedOwner, FirstName: "Nora", LastName: "Martin", AvatarURL: "https://cdn.example.com/a/nora.png", UpdatedAt: seedBase},
		{UserID: UserIDSeedMember, FirstName: "Paul", LastName: "Girard", AvatarURL: "https://cdn.example.com/a/paul.png", UpdatedAt: seedBase},
	}
}
