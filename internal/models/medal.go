package models

import "time"

// MedalType enumerates the three medal tiers.
type MedalType string

const (
	MedalGold   MedalType = "gold"
	MedalSilver MedalType = "silver"
	MedalBronze MedalType = "bronze"
)

// Valid reports whether t is one of the three tiers.
func (t MedalType) Valid() bool {
	switch t {
	case MedalGold, MedalSilver, MedalBronze:
		return true
	}
	return false
}

// Medal is a single award event. Creating one increments the student's
// matching balance; deleting one decrements it, clamped at zero.
type Medal struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"studentId"`
	Type      MedalType `db:"type" json:"type"`
	Reason    string    `db:"reason" json:"reason"`
	Date      string    `db:"date" json:"date"`
	AwardedBy string    `db:"awarded_by" json:"awardedBy"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// MedalDetail inlines the student, the student's account and the awarding
// admin for display.
type MedalDetail struct {
	Medal
	Student *Student  `json:"student,omitempty"`
	User    *UserInfo `json:"user,omitempty"`
	Awarder *UserInfo `json:"awarder,omitempty"`
}
