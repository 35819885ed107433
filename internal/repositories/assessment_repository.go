package repositories

import (
	"errors"
	"time"

	"empylo_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrQuestionNotFound   = errors.New("question not found")
)

type AssessmentRepository interface {
	Create(db *gorm.DB, assessment *models.Assessment) error
	FindByID(db *gorm.DB, id uint) (*models.Assessment, error)
	FindAll(db *gorm.DB) ([]models.Assessment, error)
	FindByType(db *gorm.DB, t models.AssessmentType) ([]models.Assessment, error)
	FindByTypeAndRange(db *gorm.DB, t models.AssessmentType, from, to time.Time) ([]models.Assessment, error)
	Update(db *gorm.DB, assessment *models.Assessment) error
	Delete(db *gorm.DB, id uint) error

	// Answers
	FindQuestion(db *gorm.DB, questionID uint) (*models.Question, error)
	SaveAnswer(db *gorm.DB, answer *models.Answer) error
	FindAnswersForAssessment(db *gorm.DB, assessmentID uint) ([]models.Answer, error)
	FindAnswersForUser(db *gorm.DB, userID uint) ([]models.Answer, error)
	FindAnswersForUserInRange(db *gorm.DB, userID uint, t models.AssessmentType, from, to time.Time) ([]models.Answer, error)
	FindAllAnswers(db *gorm.DB) ([]models.Answer, error)
}

type AssessmentRepositoryImpl struct{}

func NewAssessmentRepository() AssessmentRepository {
	return &AssessmentRepositoryImpl{}
}

func (r *AssessmentRepositoryImpl) Create(db *gorm.DB, assessment *models.Assessment) error {
	return db.Create(assessment).Error
}

func (r *AssessmentRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Assessment, error) {
	var assessment models.Assessment
	err := db.Preload("Topics.Questions").First(&assessment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, err
	}
	return &assessment, nil
}

func (r *AssessmentRepositoryImpl) FindAll(db *gorm.DB) ([]models.Assessment, error) {
	var assessments []models.Assessment
	err := db.Preload("Topics.Questions").Order("id").Find(&assessments).Error
	return assessments, err
}

func (r *AssessmentRepositoryImpl) FindByType(db *gorm.DB, t models.AssessmentType) ([]models.Assessment, error) {
	var assessments []models.Assessment
	err := db.Preload("Topics.Questions").
		Where("assessment_type = ?", t).
		Order("id").
		Find(&assessments).Error
	return assessments, err
}

// FindByTypeAndRange filters on creation time, [from, to).
func (r *AssessmentRepositoryImpl) FindByTypeAndRange(db *gorm.DB, t models.AssessmentType, from, to time.Time) ([]models.Assessment, error) {
	var assessments []models.Assessment
	err := db.Preload("Topics.Questions").
		Where("assessment_type = ? AND created_at >= ? AND created_at < ?", t, from, to).
		Order("id").
		Find(&assessments).Error
	return assessments, err
}

func (r *AssessmentRepositoryImpl) Update(db *gorm.DB, assessment *models.Assessment) error {
	result := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(assessment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssessmentNotFound
	}
	return nil
}

// Delete removes the assessment with its whole subtree.
func (r *AssessmentRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var topicIDs []uint
		if err := tx.Model(&models.Topic{}).Where("assessment_id = ?", id).
			Pluck("id", &topicIDs).Error; err != nil {
			return err
		}

		if len(topicIDs) > 0 {
			var questionIDs []uint
			if err := tx.Model(&models.Question{}).Where("topic_id IN ?", topicIDs).
				Pluck("id", &questionIDs).Error; err != nil {
				return err
			}
			if len(questionIDs) > 0 {
				if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.Answer{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", questionIDs).Delete(&models.Question{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("id IN ?", topicIDs).Delete(&models.Topic{}).Error; err != nil {
				return err
			}
		}

		result := tx.Where("id = ?", id).Delete(&models.Assessment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAssessmentNotFound
		}
		return nil
	})
}

func (r *AssessmentRepositoryImpl) FindQuestion(db *gorm.DB, questionID uint) (*models.Question, error) {
	var question models.Question
	err := db.First(&question, "id = ?", questionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (r *AssessmentRepositoryImpl) SaveAnswer(db *gorm.DB, answer *models.Answer) error {
	return db.Create(answer).Error
}

func (r *AssessmentRepositoryImpl) FindAnswersForAssessment(db *gorm.DB, assessmentID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := db.Joins("JOIN questions ON questions.id = answers.question_id").
		Joins("JOIN topics ON topics.id = questions.topic_id").
		Where("topics.assessment_id = ?", assessmentID).
		Preload("User").
		Order("answers.id").
		Find(&answers).Error
	return answers, err
}

func (r *AssessmentRepositoryImpl) FindAnswersForUser(db *gorm.DB, userID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := db.Where("user_id = ?", userID).Order("id").Find(&answers).Error
	return answers, err
}

// FindAnswersForUserInRange filters by assessment type and answer
// creation time, [from, to).
func (r *AssessmentRepositoryImpl) FindAnswersForUserInRange(db *gorm.DB, userID uint, t models.AssessmentType, from, to time.Time) ([]models.Answer, error) {
	var answers []models.Answer
	err := db.Joins("JOIN questions ON questions.id = answers.question_id").
		Joins("JOIN topics ON topics.id = questions.topic_id").
		Joins("JOIN assessments ON assessments.id = topics.assessment_id").
		Where("answers.user_id = ? AND assessments.assessment_type = ?", userID, t).
		Where("answers.created_at >= ? AND answers.created_at < ?", from, to).
		Order("answers.id").
		Find(&answers).Error
	return answers, err
}

func (r *AssessmentRepositoryImpl) FindAllAnswers(db *gorm.DB) ([]models.Answer, error) {
	var answers []models.Answer
	err := db.Preload("User").Order("id").Find(&answers).Error
	return answers, err
}
