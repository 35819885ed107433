package services

import (
	"testing"
	"time"

	"empylo_backend/internal/models"
	"empylo_backend/internal/repositories"
	"empylo_backend/internal/services/dto"
	"empylo_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAssessmentService() AssessmentService {
	return NewAssessmentService(
		repositories.NewAssessmentRepository(),
		repositories.NewUserRepository(),
	)
}

func seedAssessment(t *testing.T, db *gorm.DB, svc AssessmentService, title string, at models.AssessmentType) *models.Assessment {
	t.Helper()
	assessment, err := svc.CreateAssessment(db, &dto.CreateAssessmentRequest{
		Title:          title,
		AssessmentType: string(at),
		Topics: []dto.CreateTopicRequest{
			{
				Name: "Mood",
				Questions: []dto.CreateQuestionRequest{
					{Text: "How do you feel today?"},
					{Text: "Did you sleep well?"},
				},
			},
		},
	})
	require.NoError(t, err)
	return assessment
}

func TestCreateAssessmentSubtree(t *testing.T) {
	db := openTestDB(t)
	svc := newAssessmentService()

	created := seedAssessment(t, db, svc, "Daily check-in", models.AssessmentTypeDaily)

	fetched, err := svc.GetAssessment(db, created.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Topics, 1)
	assert.Equal(t, "Mood", fetched.Topics[0].Name)
	assert.Len(t, fetched.Topics[0].Questions, 2)
}

func TestUpdateAssessmentReplacesTopics(t *testing.T) {
	db := openTestDB(t)
	svc := newAssessmentService()

	created := seedAssessment(t, db, svc, "Weekly review", models.AssessmentTypeWeekly)

	title := "Weekly review v2"
	updated, err := svc.UpdateAssessment(db, created.ID, &dto.UpdateAssessmentRequest{
		Title: &title,
		Topics: []dto.CreateTopicRequest{
			{Name: "Energy", Questions: []dto.CreateQuestionRequest{{Text: "Energy level?"}}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Weekly review v2", updated.Title)
	require.Len(t, updated.Topics, 1)
	assert.Equal(t, "Energy", updated.Topics[0].Name)
	assert.Len(t, updated.Topics[0].Questions, 1)

	// The old subtree is gone, not orphaned.
	var topicCount int64
	require.NoError(t, db.Model(&models.Topic{}).Where("assessment_id = ?", created.ID).Count(&topicCount).Error)
	assert.EqualValues(t, 1, topicCount)
}

func TestUpdateAssessmentWithoutTopicsKeepsSubtree(t *testing.T) {
	db := openTestDB(t)
	svc := newAssessmentService()

	created := seedAssessment(t, db, svc, "Keep topics", models.AssessmentTypeDaily)

	desc := "updated description"
	updated, err := svc.UpdateAssessment(db, created.ID, &dto.UpdateAssessmentRequest{
		Description: &desc,
	})
	require.NoError(t, err)

	assert.Equal(t, "updated description", updated.Description)
	require.Len(t, updated.Topics, 1)
	assert.Len(t, updated.Topics[0].Questions, 2)
}

func TestDeleteAssessmentCascades(t *testing.T) {
	db := openTestDB(t)
	svc := newAssessmentService()

	user := seedUser(t, db, "answers@example.com", nil)
	created := seedAssessment(t, db, svc, "To delete", models.AssessmentTypeDaily)

	questionID := created.Topics[0].Questions[0].ID
	_, err := svc.SaveAnswer(db, user.ID, &dto.SaveAnswerRequest{QuestionID: questionID, Text: "Fine"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAssessment(db, created.ID))

	var answerCount int64
	require.NoError(t, db.Model(&models.Answer{}).Count(&answerCount).Error)
	assert.Zero(t, answerCount)

	_, err = svc.GetAssessment(db, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrAssessmentNotFound)
}

func TestFilterAssessmentsByDate(t *testing.T) {
	db := openTestDB(t)
	svc := newAssessmentService()

	created := seedAssessment(t, db, svc, "Dated", models.AssessmentTypeDaily)
	seedAssessment(t, db, svc, "Weekly other", models.AssessmentTypeWeekly)

	target := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	require.NoError(t, db.Model(&models.Assessment{}).Where("id = ?", created.ID).
		Update("created_at", target).Error)

	got, err := svc.FilterAssessments(db, &dto.AssessmentFilter{
		AssessmentType: string(models.AssessmentTypeDaily),
		Date:           "2026-03-10",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, created.ID, got[0].ID)

	got, err = svc.FilterAssessments(db, &dto.AssessmentFilter{
		AssessmentType: string(models.AssessmentTypeDaily),
		Date:           "2026-03-11",
	})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.FilterAssessments(db, &dto.AssessmentFilter{
		AssessmentType: string(models.AssessmentTypeDaily),
		Date:           "10-03-2026",
	})
	assert.Error(t, err)
}

func TestFilterRangeWeekWindows(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	from, to, ranged, err := filterRange(&dto.AssessmentFilter{AssessmentType: "daily", WeekNumber: 1}, now)
	require.NoError(t, err)
	require.True(t, ranged)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, time.January, 8, 0, 0, 0, 0, time.UTC), to)

	from, to, ranged, err = filterRange(&dto.AssessmentFilter{AssessmentType: "daily", WeekNumber: 2}, now)
	require.NoError(t, err)
	require.True(t, ranged)
	assert.Equal(t, time.Date(2026, time.January, 8, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), to)

	_, _, ranged, err = filterRange(&dto.AssessmentFilter{AssessmentType: "daily"}, now)
	require.NoError(t, err)
	assert.False(t, ranged)
}

func TestSaveAnswerUnknownQuestion(t *testing.T) {
	db := openTestDB(t)
	svc := newAssessmentService()
	user := seedUser(t, db, "noq@example.com", nil)

	_, err := svc.SaveAnswer(db, user.ID, &dto.SaveAnswerRequest{QuestionID: 12345, Text: "x"})
	assert.ErrorIs(t, err, apperrors.ErrQuestionNotFound)
}

func TestAnswersForAssessmentAndUser(t *testing.T) {
	db := openTestDB(t)
	svc := newAssessmentService()

	user := seedUser(t, db, "responder@example.com", nil)
	daily := seedAssessment(t, db, svc, "Daily", models.AssessmentTypeDaily)
	weekly := seedAssessment(t, db, svc, "Weekly", models.AssessmentTypeWeekly)

	_, err := svc.SaveAnswer(db, user.ID, &dto.SaveAnswerRequest{
		QuestionID: daily.Topics[0].Questions[0].ID,
		Text:       "Pretty good",
	})
	require.NoError(t, err)
	_, err = svc.SaveAnswer(db, user.ID, &dto.SaveAnswerRequest{
		QuestionID: weekly.Topics[0].Questions[0].ID,
		Text:       "Solid week",
	})
	require.NoError(t, err)

	forDaily, err := svc.AnswersForAssessment(db, daily.ID)
	require.NoError(t, err)
	require.Len(t, forDaily, 1)
	assert.Equal(t, "Pretty good", forDaily[0].Text)

	all, err := svc.AnswersForUser(db, user.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyWeekly, err := svc.AnswersForUser(db, user.ID, &dto.AssessmentFilter{
		AssessmentType: string(models.AssessmentTypeWeekly),
	})
	require.NoError(t, err)
	require.Len(t, onlyWeekly, 1)
	assert.Equal(t, "Solid week", onlyWeekly[0].Text)
}
