package dto

import "empylo_backend/internal/models"

// CreateCircleRequest arrives as multipart form data, optionally with a
// circle image. MemberEmails is comma-separated.
type CreateCircleRequest struct {
	CircleName        string `json:"circleName" form:"circleName" binding:"required"`
	CircleDescription string `json:"circleDescription" form:"circleDescription"`
	CircleStatus      string `json:"circleStatus" form:"circleStatus" validate:"is-circle-status"`
	MemberEmails      string `json:"memberEmails" form:"memberEmails"`
}

// UpdateCircleRequest partially merges circle fields; membership
// reconciliation is append-only.
type UpdateCircleRequest struct {
	CircleName        *string `json:"circleName" form:"circleName"`
	CircleDescription *string `json:"circleDescription" form:"circleDescription"`
	CircleStatus      *string `json:"circleStatus" form:"circleStatus" validate:"is-circle-status"`
	MemberEmails      *string `json:"memberEmails" form:"memberEmails"`
}

type AddCircleMemberRequest struct {
	UserID   uint `json:"userId" binding:"required"`
	CircleID uint `json:"circleId" binding:"required"`
}

// ImportPolicy selects the batch-import reconciliation policy.
type ImportPolicy string

const (
	// ImportStrict silently ignores unresolved emails.
	ImportStrict ImportPolicy = "strict"
	// ImportErrorOnMissing fails the whole batch when any email is
	// unregistered.
	ImportErrorOnMissing ImportPolicy = "errorOnMissing"
	// ImportAutoProvision creates placeholder accounts for unresolved
	// emails, then adds everyone.
	ImportAutoProvision ImportPolicy = "autoProvision"
)

// BatchImportResult reports what one spreadsheet import did.
type BatchImportResult struct {
	TotalRows    int      `json:"totalRows"`
	MembersAdded int      `json:"membersAdded"`
	UsersCreated int      `json:"usersCreated"`
	Skipped      []string `json:"skipped,omitempty"`
}

// CircleWithMembers is the share-link join response shape.
type CircleWithMembers struct {
	Circle  models.Circle         `json:"circle"`
	Members []models.CircleMember `json:"members"`
}
