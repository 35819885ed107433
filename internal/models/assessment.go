package models

// Assessment is the root of the assessment tree:
// Assessment -> Topic -> Question -> Answer.
type Assessment struct {
	BaseModel
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `json:"description"`
	AssessmentType AssessmentType `gorm:"type:varchar(20);not null" json:"assessmentType"`

	Topics []Topic `gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE" json:"topics,omitempty"`
}

type Topic struct {
	BaseModel
	Name         string `gorm:"not null" json:"name"`
	AssessmentID uint   `gorm:"not null;index" json:"assessmentId"`

	Questions []Question `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type Question struct {
	BaseModel
	Text    string `gorm:"not null" json:"text"`
	TopicID uint   `gorm:"not null;index" json:"topicId"`

	Answers []Answer `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

type Answer struct {
	BaseModel
	Text       string `gorm:"not null" json:"text"`
	QuestionID uint   `gorm:"not null;index" json:"questionId"`
	UserID     uint   `gorm:"not null;index" json:"userId"`

	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Question *Question `gorm:"foreignKey:QuestionID" json:"-"`
}
