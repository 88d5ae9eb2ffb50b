package models

import "time"

// Timestamps adds creation and modification times to an entity.
// Both fields are managed by gorm and reset by the repositories before insert,
// so they cannot be set from the outside.
type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null"`
}

func (t *Timestamps) resetTimestamps() {
	t.CreatedAt = time.Time{}
	t.UpdatedAt = time.Time{}
}

// columns that updates must never touch
var immutableColumns = []string{"id", "created_at"}
