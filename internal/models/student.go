package models

import "time"

// Student links a user account to a group and carries the three medal
// balances. Balances are derived from the medal/purchase ledger and never go
// negative.
type Student struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"userId"`
	StudentID    string    `db:"student_id" json:"studentId"`
	GroupID      *string   `db:"group_id" json:"groupId,omitempty"`
	GoldMedals   int       `db:"gold_medals" json:"goldMedals"`
	SilverMedals int       `db:"silver_medals" json:"silverMedals"`
	BronzeMedals int       `db:"bronze_medals" json:"bronzeMedals"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// StudentDetail inlines the owning user and current group for display.
type StudentDetail struct {
	Student
	User  *UserInfo `json:"user,omitempty"`
	Group *Group    `json:"group,omitempty"`
}

// Balance returns the count held for the given medal type.
func (s *Student) Balance(t MedalType) int {
	switch t {
	case MedalGold:
		return s.GoldMedals
	case MedalSilver:
		return s.SilverMedals
	case MedalBronze:
		return s.BronzeMedals
	}
	return 0
}
