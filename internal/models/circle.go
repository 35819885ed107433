package models

type Circle struct {
	BaseModel
	CircleName        string       `gorm:"not null" json:"circleName"`
	CircleDescription string       `json:"circleDescription"`
	CircleImg         string       `json:"circleImg"`
	CircleStatus      CircleStatus `gorm:"type:varchar(20);default:'active'" json:"circleStatus"`
	CircleShareLink   string       `gorm:"uniqueIndex;not null" json:"circleShareLink"`
	CircleNos         int          `json:"circleNos"`
	CircleScoreDetail string       `json:"circleScoreDetail"`
	WellbeingScore    float64      `json:"wellbeingScore"`
	ActivityLevel     string       `json:"activityLevel"`

	CircleOwnerID uint           `gorm:"not null;index" json:"circleOwnerId"`
	Members       []CircleMember `gorm:"foreignKey:CircleID" json:"members,omitempty"`
}

// CircleMember joins users to circles. The composite unique index makes
// concurrent share-link joins collapse to one row. Removal deletes the
// row outright so a removed user can rejoin.
type CircleMember struct {
	BaseModel
	UserID   uint `gorm:"not null;uniqueIndex:idx_circle_user" json:"userId"`
	CircleID uint `gorm:"not null;uniqueIndex:idx_circle_user" json:"circleId"`

	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Circle *Circle `gorm:"foreignKey:CircleID" json:"-"`
}
