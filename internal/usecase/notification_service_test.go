package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/amar93190/Team-up/internal/infrastructure/repository/memory"
)

type recordingPushSender struct {
	mu     sync.Mutex
	pushes map[string][]Push
}

func newRecordingPushSender() *recordingPushSender {
	return &recordingPushSender{pushes: make(map[string][]Push)}
}

func (s *recordingPushSender) SendPush(_ context.Context, userID string, p Push) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushes[userID] = append(s.pushes[userID], p)
	return nil
}

func (s *recordingPushSender) recipients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.pushes))
	for id := range s.pushes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func TestNotificationService_NotifyTeamCreated(t *testing.T) {
	sender := newRecordingPushSender()
	service := NewNotificationService(memory.SeedTeamRepository(), sender, nil)

	delivered, err := service.NotifyTeamCreated(t.Context(), memory.TeamIDRoadrunners)
	if err != nil {
		t.Fatalf("notify team created: %v", err)
	}
	if delivered != 1 {
		t.Fatalf("expected one delivery, got %d", delivered)
	}

	got := sender.recipients()
	if len(got) != 1 || got[0] != memory.UserIDSeedOwner {
		t.Fatalf("expected push to the owner, got %v", got)
	}
	if p := sender.pushes[memory.UserIDSeedOwner][0]; !strings.Contains(p.Body, memory.InviteCodeSeeded) {
		t.Fatalf("expected invite code in body, got %q", p.Body)
	}
}

func TestNotificationService_NotifyMemberJoined_ExcludesJoiner(t *testing.T) {
	repo := memory.SeedTeamRepository()
	sender := newRecordingPushSender()
	service := NewNotificationService(repo, sender, nil)

	if _, err := repo.Join(t.Context(), memory.TeamIDRoadrunners, memory.UserIDSeedMember); err != nil {
		t.Fatalf("join: %v", err)
	}

	delivered, err := service.NotifyMemberJoined(t.Context(), memory.TeamIDRoadrunners, memory.UserIDSeedMember)
	if err != nil {
		t.Fatalf("notify member joined: %v", err)
	}
	if delivered != 1 {
		t.Fatalf("expected one delivery, got %d", delivered)
	}

	got := sender.recipients()
	if len(got) != 1 || got[0] != memory.UserIDSeedOwner {
		t.Fatalf("expected push to the remaining roster only, got %v", got)
	}
}

func TestNotificationService_NotifyMemberJoined_UnknownTeam(t *testing.T) {
	service := NewNotificationService(memory.SeedTeamRepository(), newRecordingPushSender(), nil)

	_, err := service.NotifyMemberJoined(t.Context(), "team-missing", memory.UserIDSeedMember)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
