// Package model defines the core data types shared across tracetriage.
package model

import "time"

// Role is the server-assigned role of a user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleReviewer Role = "reviewer"
	RoleViewer   Role = "viewer"
)

// Action is a user-visible operation that may be role-gated.
type Action int

const (
	ActionReviewSuggestions Action = iota
	ActionGenerateSuggestions
	ActionEditRequirements
	ActionEditTestCases
	ActionEditLinks
	ActionManageUsers
	ActionViewAuditLog
)

// CanPerform is the single capability check consulted by every command and
// view. Gating here is purely cosmetic; the server re-checks every request.
func CanPerform(role Role, action Action) bool {
	switch action {
	case ActionManageUsers, ActionViewAuditLog:
		return role == RoleAdmin
	case ActionReviewSuggestions, ActionGenerateSuggestions,
		ActionEditRequirements, ActionEditTestCases, ActionEditLinks:
		return role == RoleAdmin || role == RoleReviewer
	default:
		return false
	}
}

// User is the authenticated account returned by /auth/me.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// SuggestionStatus is the review state of a suggestion.
type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionAccepted SuggestionStatus = "accepted"
	SuggestionRejected SuggestionStatus = "rejected"
)

// ReviewDecision is the reviewer's verdict on a pending suggestion.
type ReviewDecision string

const (
	DecisionAccepted ReviewDecision = "accepted"
	DecisionRejected ReviewDecision = "rejected"
)

// Suggestion is a server-proposed requirement/test-case association.
// The client only ever operates on pending suggestions; a reviewed
// suggestion is terminal.
type Suggestion struct {
	ID              string           `json:"id"`
	RequirementID   string           `json:"requirement_id"`
	TestCaseID      string           `json:"test_case_id"`
	SimilarityScore float64          `json:"similarity_score"`
	Method          string           `json:"suggestion_method"`
	Reason          string           `json:"suggestion_reason,omitempty"`
	Status          SuggestionStatus `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	ReviewedAt      *time.Time       `json:"reviewed_at,omitempty"`
	ReviewedBy      string           `json:"reviewed_by,omitempty"`
	Feedback        string           `json:"feedback,omitempty"`
}

// Requirement is a titled, typed, prioritized record under traceability.
type Requirement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	Status      string    `json:"status,omitempty"`
	Module      string    `json:"module,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TestCase mirrors Requirement on the verification side.
type TestCase struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	Status      string    `json:"status,omitempty"`
	Module      string    `json:"module,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LinkType categorizes a confirmed association.
type LinkType string

const (
	LinkCovers    LinkType = "covers"
	LinkVerifies  LinkType = "verifies"
	LinkValidates LinkType = "validates"
	LinkRelated   LinkType = "related"
)

// LinkSource records how a link came to exist.
type LinkSource string

const (
	SourceManual      LinkSource = "manual"
	SourceAISuggested LinkSource = "ai_suggested"
	SourceAIConfirmed LinkSource = "ai_confirmed"
	SourceImported    LinkSource = "imported"
)

// Link is a confirmed requirement/test-case association.
type Link struct {
	ID            string     `json:"id"`
	RequirementID string     `json:"requirement_id"`
	TestCaseID    string     `json:"test_case_id"`
	LinkType      LinkType   `json:"link_type"`
	Source        LinkSource `json:"source"`
	Confidence    *float64   `json:"confidence,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CreatedBy     string     `json:"created_by,omitempty"`
}

// Notification is a per-user message; read/unread is the only field the
// client ever mutates.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Page carries pagination metadata on list responses.
type Page struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// BulkReviewResult is the per-item outcome count of a bulk review.
type BulkReviewResult struct {
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
	Failed   int `json:"failed"`
}

// Processed returns the number of suggestions the server acted on.
func (r BulkReviewResult) Processed() int {
	return r.Accepted + r.Rejected
}

// MatrixRow is one requirement row of the traceability matrix.
type MatrixRow struct {
	RequirementID string   `json:"requirement_id"`
	Title         string   `json:"title"`
	TestCaseIDs   []string `json:"test_case_ids"`
	Covered       bool     `json:"covered"`
}

// Matrix is the server-computed coverage matrix.
type Matrix struct {
	Rows            []MatrixRow `json:"rows"`
	Requirements    int         `json:"requirements"`
	Covered         int         `json:"covered"`
	CoveragePercent float64     `json:"coverage_percent"`
}

// Metrics holds the aggregate dashboard numbers.
type Metrics struct {
	Requirements       int     `json:"requirements"`
	TestCases          int     `json:"test_cases"`
	Links              int     `json:"links"`
	PendingSuggestions int     `json:"pending_suggestions"`
	CoveragePercent    float64 `json:"coverage_percent"`
}

// SuggestionAnalytics summarizes historical review outcomes.
type SuggestionAnalytics struct {
	Generated      int     `json:"generated"`
	Accepted       int     `json:"accepted"`
	Rejected       int     `json:"rejected"`
	AcceptanceRate float64 `json:"acceptance_rate"`
	MeanScore      float64 `json:"mean_score"`
}

// AuditEntry is one row of the admin audit log.
type AuditEntry struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id,omitempty"`
	Details      string    `json:"details,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
