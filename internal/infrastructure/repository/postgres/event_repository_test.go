package postgres

import (
	"strings"
	"testing"
)

func TestApprovedEventsQuery(t *testing.T) {
	t.Run("status predicate on modern stores", func(t *testing.T) {
		query, args, err := approvedEventsQuery("user-1", true)
		if err != nil {
			t.Fatalf("build query: %v", err)
		}
		if !strings.Contains(query, "er.status") {
			t.Fatalf("expected status predicate, got %q", query)
		}
		if len(args) != 2 || args[0] != "user-1" || args[1] != "approved" {
			t.Fatalf("unexpected args: %v", args)
		}
	})

	t.Run("fallback drops the status predicate", func(t *testing.T) {
		query, args, err := approvedEventsQuery("user-1", false)
		if err != nil {
			t.Fatalf("build query: %v", err)
		}
		if strings.Contains(query, "er.status") {
			t.Fatalf("expected no status predicate, got %q", query)
		}
		if !strings.Contains(query, "er.user_id") {
			t.Fatalf("expected user filter to survive, got %q", query)
		}
		if len(args) != 1 || args[0] != "user-1" {
			t.Fatalf("unexpected args: %v", args)
		}
	})
}
