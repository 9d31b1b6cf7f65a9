package resource

import "time"

// Entity is a record stored in one collection. Implemented by pointer types
// embedding Base.
type Entity interface {
	GetID() string
	SetID(id string)
	GetCreatedAt() time.Time
	SetCreatedAt(t time.Time)
}

// Owned records carry the id of the principal that created them.
type Owned interface {
	GetUserID() string
	SetUserID(id string)
}

// Base holds the store-assigned identity of every record.
type Base struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64" theorydb:"pk,attr:id"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime" theorydb:"created_at,attr:created_at"`
}

func (b *Base) GetID() string { return b.ID }
func (b *Base) SetID(id string) { b.ID = id }
func (b *Base) GetCreatedAt() time.Time { return b.CreatedAt }
func (b *Base) SetCreatedAt(t time.Time) { b.CreatedAt = t }

// Ownership is embedded by user-owned records.
type Ownership struct {
	UserID string `json:"user_id" gorm:"size:64;index" theorydb:"attr:user_id"`
}

func (o *Ownership) GetUserID() string { return o.UserID }
func (o *Ownership) SetUserID(id string) { o.UserID = id }
