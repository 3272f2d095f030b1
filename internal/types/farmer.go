package types

import (
	"time"

	"github.com/google/uuid"
)

// Farmer is the authentication identity. A farmer signs in with a
// one-time passcode sent to either phone or email, so both are
// optional but at least one is always set.
type Farmer struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Phone     *string   `gorm:"uniqueIndex;column:phone" json:"phone,omitempty"`
	Email     *string   `gorm:"uniqueIndex;column:email" json:"email,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Farmer) TableName() string { return "farmer" }
