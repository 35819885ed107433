package dto

// CreateAssessmentRequest creates an assessment with its whole subtree.
type CreateAssessmentRequest struct {
	Title          string               `json:"title" binding:"required"`
	Description    string               `json:"description"`
	AssessmentType string               `json:"assessmentType" binding:"required" validate:"is-assessment-type"`
	Topics         []CreateTopicRequest `json:"topics"`
}

type CreateTopicRequest struct {
	Name      string                  `json:"name" binding:"required"`
	Questions []CreateQuestionRequest `json:"questions"`
}

type CreateQuestionRequest struct {
	Text string `json:"text" binding:"required"`
}

// UpdateAssessmentRequest replaces top-level fields; when Topics is
// non-nil the subtree is replaced wholesale.
type UpdateAssessmentRequest struct {
	Title          *string              `json:"title"`
	Description    *string              `json:"description"`
	AssessmentType *string              `json:"assessmentType" validate:"is-assessment-type"`
	Topics         []CreateTopicRequest `json:"topics"`
}

type SaveAnswerRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Text       string `json:"text" binding:"required"`
}

// AssessmentFilter selects by type plus an optional exact date
// (YYYY-MM-DD) or week number of the current year.
type AssessmentFilter struct {
	AssessmentType string `json:"assessmentType" form:"assessmentType" binding:"required" validate:"is-assessment-type"`
	Date           string `json:"date" form:"date"`
	WeekNumber     int    `json:"weekNumber" form:"weekNumber"`
}
