package model

import "time"

// Post is a job listing. OwnerID is fixed at creation time from the
// authenticated session and is never updated afterwards.
type Post struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Title          string     `gorm:"size:128;not null" json:"title"`
	Content        string     `gorm:"size:255;not null" json:"content"`
	Company        string     `gorm:"size:128" json:"company,omitempty"`
	Location       string     `gorm:"size:128" json:"location"`
	SkillsRequired string     `gorm:"size:255" json:"skills_required,omitempty"`
	Budget         float64    `gorm:"type:decimal(10,2)" json:"budget,omitempty"`
	PostDate       time.Time  `gorm:"autoCreateTime" json:"post_date"`
	Status         string     `gorm:"size:32;not null;default:Open" json:"status"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	OwnerID        uint       `gorm:"not null;index" json:"owner_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
