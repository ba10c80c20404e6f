package models

import "time"

// GroupStatus enumerates group lifecycle states.
type GroupStatus string

const (
	GroupActive   GroupStatus = "active"
	GroupInactive GroupStatus = "inactive"
)

// DefaultGroupCapacity applies when a group is created without one.
const DefaultGroupCapacity = 30

// Group is a class of students.
type Group struct {
	ID          string      `db:"id" json:"id"`
	Name        string      `db:"name" json:"name"`
	Description *string     `db:"description" json:"description,omitempty"`
	Schedule    *string     `db:"schedule" json:"schedule,omitempty"`
	Capacity    int         `db:"capacity" json:"capacity"`
	Status      GroupStatus `db:"status" json:"status"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
}
