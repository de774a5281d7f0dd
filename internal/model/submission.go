package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kind discriminates the submission variants sharing one table.
type Kind string

const (
	// KindContact is the combined deployment's single form.
	KindContact Kind = "contact"
	// KindGeneral and KindInternship are the split deployment's forms.
	KindGeneral    Kind = "general"
	KindInternship Kind = "internship"
)

func (k Kind) Valid() bool {
	switch k {
	case KindContact, KindGeneral, KindInternship:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }

// Submission is one contact or internship form entry. Records are
// append-only: id and createdAt are assigned once at insert and the row is
// never updated or deleted afterwards.
type Submission struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Kind     Kind      `gorm:"type:varchar(16);not null;index" json:"kind"`
	Name     string    `gorm:"type:varchar(255);not null" json:"name"`
	LastName string    `gorm:"type:varchar(255)" json:"lastName"`
	Mobile   string    `gorm:"type:varchar(32)" json:"mobile"`
	Email    string    `gorm:"type:varchar(255);not null" json:"email"`
	Subject  string    `gorm:"type:varchar(255)" json:"subject"`
	Message  string    `gorm:"type:text" json:"message"`

	// ResumeFileID points at a stored blob; nil when no file was attached.
	ResumeFileID   *uuid.UUID `gorm:"type:uuid" json:"resumeFileId"`
	ResumeFileName *string    `gorm:"type:varchar(512)" json:"resumeFileName"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}

func (Submission) TableName() string { return "submissions" }

// BeforeCreate assigns a time-ordered id so that id order matches insertion
// order, and pins createdAt in UTC.
func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		s.ID = id
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	return nil
}
