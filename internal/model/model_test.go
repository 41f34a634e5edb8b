package model

import (
	"errors"
	"testing"
)

func TestCanPerform(t *testing.T) {
	cases := []struct {
		role   Role
		action Action
		want   bool
	}{
		{RoleAdmin, ActionManageUsers, true},
		{RoleAdmin, ActionReviewSuggestions, true},
		{RoleReviewer, ActionReviewSuggestions, true},
		{RoleReviewer, ActionManageUsers, false},
		{RoleReviewer, ActionViewAuditLog, false},
		{RoleViewer, ActionReviewSuggestions, false},
		{RoleViewer, ActionEditLinks, false},
		{RoleViewer, ActionGenerateSuggestions, false},
		{Role("unknown"), ActionReviewSuggestions, false},
	}

	for _, c := range cases {
		if got := CanPerform(c.role, c.action); got != c.want {
			t.Errorf("CanPerform(%q, %d) = %v, want %v", c.role, c.action, got, c.want)
		}
	}
}

func TestBulkReviewResultProcessed(t *testing.T) {
	r := BulkReviewResult{Accepted: 2, Rejected: 3, Failed: 1}
	if r.Processed() != 5 {
		t.Errorf("expected 5 processed, got %d", r.Processed())
	}
}

func TestErrorTaxonomy(t *testing.T) {
	var authErr *AuthError
	var err error = &AuthError{Message: "token expired"}
	if !errors.As(err, &authErr) {
		t.Fatal("expected errors.As to match AuthError")
	}
	if authErr.Error() != "token expired" {
		t.Errorf("unexpected message: %q", authErr.Error())
	}

	if (&NotFoundError{Resource: "requirement"}).Error() != "requirement not found" {
		t.Error("unexpected NotFoundError message")
	}
	if (&APIError{Status: 500}).Error() != "server returned status 500" {
		t.Error("unexpected APIError message")
	}
}
