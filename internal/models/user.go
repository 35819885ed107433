package models

import "time"

// User is both a personal account and, via CompanyID, a member of a
// company roster. Deletion is by flag only; rows are never removed.
type User struct {
	BaseModel
	Email       string      `gorm:"uniqueIndex;not null" json:"email"`
	Password    string      `gorm:"not null" json:"-"`
	AccountType AccountType `gorm:"type:varchar(20);not null" json:"accountType"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`

	AgeRange      string     `json:"ageRange"`
	Ethnicity     string     `json:"ethnicity"`
	MaritalStatus string     `json:"maritalStatus"`
	Department    string     `json:"department"`
	JobRole       string     `json:"jobRole"`
	Gender        string     `json:"gender"`
	DOB           *time.Time `json:"dob"`
	Address       string     `json:"address"`
	Disability    string     `json:"disability"`
	ProfileImage  string     `json:"profileImage"`

	IsEmailVerified     bool       `gorm:"default:false" json:"isEmailVerified"`
	IsActivated         bool       `gorm:"default:false" json:"isActivated"`
	IsDeleted           bool       `gorm:"default:false" json:"isDeleted"`
	TwoStepVerification bool       `gorm:"default:false" json:"twoStepVerification"`
	Status              UserStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	TermsConditions     bool       `gorm:"default:false" json:"termsConditions"`

	// Company roster: company accounts own Members via CompanyID.
	CompanyID *uint  `gorm:"index" json:"companyId"`
	Members   []User `gorm:"foreignKey:CompanyID" json:"members,omitempty"`
}

// Sanitized returns a copy safe for wire output and JWT payloads.
func (u User) Sanitized() User {
	u.Password = ""
	u.Members = nil
	return u
}
