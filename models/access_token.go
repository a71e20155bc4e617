package models

import "time"

// AccessToken tracks an issued bearer token. A token is valid only while its
// row exists and has not expired, so deleting the row revokes the token.
type AccessToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	JTI       string    `gorm:"uniqueIndex;not null" json:"-"` // jti claim of the signed token
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the AccessToken model
func (AccessToken) TableName() string {
	return "access_tokens"
}
