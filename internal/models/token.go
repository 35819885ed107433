package models

import "time"

// TokenManager backs every OTP and reset token. The partial unique index
// guarantees an unconsumed (token, operation_type) pair identifies exactly
// one pending operation.
type TokenManager struct {
	BaseModel
	Token         string        `gorm:"not null;index:idx_live_token,unique,where:is_used = false" json:"token"`
	OperationType OperationType `gorm:"type:varchar(32);not null;index:idx_live_token,unique,where:is_used = false" json:"operationType"`
	ExpiryDate    time.Time     `gorm:"not null" json:"expiryDate"`
	IsUsed        bool          `gorm:"default:false" json:"isUsed"`

	UserID uint  `gorm:"not null;index" json:"userId"`
	User   *User `gorm:"foreignKey:UserID" json:"-"`
}

// Valid reports whether the token can still be consumed.
func (t *TokenManager) Valid(now time.Time) bool {
	return !t.IsUsed && t.ExpiryDate.After(now)
}
