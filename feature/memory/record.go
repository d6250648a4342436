package memory

import "time"

// Record is one remembered translation.
type Record struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Hash        string    `gorm:"size:64;uniqueIndex" json:"-"`
	Context     string    `gorm:"size:190;index" json:"context"`
	Original    string    `gorm:"type:text" json:"original"`
	Translation string    `gorm:"type:text" json:"translation"`
	Unit        string    `gorm:"size:190;index" json:"unit"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName keeps the table name stable across naming strategies.
func (Record) TableName() string {
	return "translation_memory"
}
