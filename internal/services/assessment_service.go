package services

import (
	"time"

	"empylo_backend/internal/models"
	"empylo_backend/internal/repositories"
	"empylo_backend/internal/services/dto"
	"empylo_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// AssessmentService owns the assessment tree and answer collection.
type AssessmentService interface {
	CreateAssessment(db *gorm.DB, req *dto.CreateAssessmentRequest) (*models.Assessment, error)
	GetAssessment(db *gorm.DB, assessmentID uint) (*models.Assessment, error)
	ListAssessments(db *gorm.DB) ([]models.Assessment, error)
	UpdateAssessment(db *gorm.DB, assessmentID uint, req *dto.UpdateAssessmentRequest) (*models.Assessment, error)
	DeleteAssessment(db *gorm.DB, assessmentID uint) error
	FilterAssessments(db *gorm.DB, filter *dto.AssessmentFilter) ([]models.Assessment, error)

	SaveAnswer(db *gorm.DB, userID uint, req *dto.SaveAnswerRequest) (*models.Answer, error)
	AnswersForAssessment(db *gorm.DB, assessmentID uint) ([]models.Answer, error)
	AnswersForUser(db *gorm.DB, userID uint, filter *dto.AssessmentFilter) ([]models.Answer, error)
	AllAnswers(db *gorm.DB) ([]models.Answer, error)
}

type AssessmentServiceImpl struct {
	assessmentRepo repositories.AssessmentRepository
	userRepo       repositories.UserRepository
}

func NewAssessmentService(
	assessmentRepo repositories.AssessmentRepository,
	userRepo repositories.UserRepository,
) AssessmentService {
	return &AssessmentServiceImpl{
		assessmentRepo: assessmentRepo,
		userRepo:       userRepo,
	}
}

func buildTopics(reqs []dto.CreateTopicRequest) []models.Topic {
	topics := make([]models.Topic, 0, len(reqs))
	for _, t := range reqs {
		topic := models.Topic{Name: t.Name}
		for _, q := range t.Questions {
			topic.Questions = append(topic.Questions, models.Question{Text: q.Text})
		}
		topics = append(topics, topic)
	}
	return topics
}

func (s *AssessmentServiceImpl) CreateAssessment(db *gorm.DB, req *dto.CreateAssessmentRequest) (*models.Assessment, error) {
	assessment := &models.Assessment{
		Title:          req.Title,
		Description:    req.Description,
		AssessmentType: models.AssessmentType(req.AssessmentType),
		Topics:         buildTopics(req.Topics),
	}
	if err := s.assessmentRepo.Create(db, assessment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return assessment, nil
}

func (s *AssessmentServiceImpl) GetAssessment(db *gorm.DB, assessmentID uint) (*models.Assessment, error) {
	assessment, err := s.assessmentRepo.FindByID(db, assessmentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAssessmentNotFound) {
			return nil, apperrors.ErrAssessmentNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return assessment, nil
}

func (s *AssessmentServiceImpl) ListAssessments(db *gorm.DB) ([]models.Assessment, error) {
	assessments, err := s.assessmentRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return assessments, nil
}

// UpdateAssessment merges top-level fields. A non-nil Topics list
// replaces the whole subtree.
func (s *AssessmentServiceImpl) UpdateAssessment(db *gorm.DB, assessmentID uint, req *dto.UpdateAssessmentRequest) (*models.Assessment, error) {
	assessment, err := s.assessmentRepo.FindByID(db, assessmentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAssessmentNotFound) {
			return nil, apperrors.ErrAssessmentNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Title != nil {
		assessment.Title = *req.Title
	}
	if req.Description != nil {
		assessment.Description = *req.Description
	}
	if req.AssessmentType != nil {
		assessment.AssessmentType = models.AssessmentType(*req.AssessmentType)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if req.Topics != nil {
			var topicIDs []uint
			if err := tx.Model(&models.Topic{}).Where("assessment_id = ?", assessmentID).
				Pluck("id", &topicIDs).Error; err != nil {
				return err
			}
			if len(topicIDs) > 0 {
				if err := tx.Where("topic_id IN ?", topicIDs).Delete(&models.Question{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", topicIDs).Delete(&models.Topic{}).Error; err != nil {
					return err
				}
			}
			assessment.Topics = buildTopics(req.Topics)
		}
		return s.assessmentRepo.Update(tx, assessment)
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrAssessmentNotFound) {
			return nil, apperrors.ErrAssessmentNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return s.GetAssessment(db, assessmentID)
}

func (s *AssessmentServiceImpl) DeleteAssessment(db *gorm.DB, assessmentID uint) error {
	err := s.assessmentRepo.Delete(db, assessmentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAssessmentNotFound) {
			return apperrors.ErrAssessmentNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// filterRange resolves the filter's date or week number to a half-open
// [from, to) window. The week window is counted from January 1 of the
// current year in seven-day steps.
func filterRange(filter *dto.AssessmentFilter, now time.Time) (from, to time.Time, ok bool, err error) {
	if filter.Date != "" {
		day, perr := time.ParseInLocation("2006-01-02", filter.Date, time.UTC)
		if perr != nil {
			return from, to, false, apperrors.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
		}
		return day, day.AddDate(0, 0, 1), true, nil
	}
	if filter.WeekNumber > 0 {
		jan1 := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		from = jan1.AddDate(0, 0, 7*(filter.WeekNumber-1))
		return from, from.AddDate(0, 0, 7), true, nil
	}
	return from, to, false, nil
}

// FilterAssessments lists by type, optionally narrowed to a single day
// or to a week of the current year.
func (s *AssessmentServiceImpl) FilterAssessments(db *gorm.DB, filter *dto.AssessmentFilter) ([]models.Assessment, error) {
	t := models.AssessmentType(filter.AssessmentType)

	from, to, ranged, err := filterRange(filter, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	var assessments []models.Assessment
	if ranged {
		assessments, err = s.assessmentRepo.FindByTypeAndRange(db, t, from, to)
	} else {
		assessments, err = s.assessmentRepo.FindByType(db, t)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return assessments, nil
}

func (s *AssessmentServiceImpl) SaveAnswer(db *gorm.DB, userID uint, req *dto.SaveAnswerRequest) (*models.Answer, error) {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.assessmentRepo.FindQuestion(db, req.QuestionID); err != nil {
		if apperrors.Is(err, repositories.ErrQuestionNotFound) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	answer := &models.Answer{
		Text:       req.Text,
		QuestionID: req.QuestionID,
		UserID:     userID,
	}
	if err := s.assessmentRepo.SaveAnswer(db, answer); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return answer, nil
}

func (s *AssessmentServiceImpl) AnswersForAssessment(db *gorm.DB, assessmentID uint) ([]models.Answer, error) {
	if _, err := s.assessmentRepo.FindByID(db, assessmentID); err != nil {
		if apperrors.Is(err, repositories.ErrAssessmentNotFound) {
			return nil, apperrors.ErrAssessmentNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	answers, err := s.assessmentRepo.FindAnswersForAssessment(db, assessmentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return answers, nil
}

// AnswersForUser lists a user's answers, optionally narrowed by type
// plus a date or week window. A nil filter returns everything.
func (s *AssessmentServiceImpl) AnswersForUser(db *gorm.DB, userID uint, filter *dto.AssessmentFilter) ([]models.Answer, error) {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if filter == nil || filter.AssessmentType == "" {
		answers, err := s.assessmentRepo.FindAnswersForUser(db, userID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		return answers, nil
	}

	from, to, ranged, err := filterRange(filter, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !ranged {
		// Type alone: widen the window to everything.
		from = time.Time{}
		to = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	}

	answers, err := s.assessmentRepo.FindAnswersForUserInRange(db, userID, models.AssessmentType(filter.AssessmentType), from, to)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return answers, nil
}

func (s *AssessmentServiceImpl) AllAnswers(db *gorm.DB) ([]models.Answer, error) {
	answers, err := s.assessmentRepo.FindAllAnswers(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return answers, nil
}
