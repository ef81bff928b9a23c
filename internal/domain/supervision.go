package domain

import "time"

type Supervision struct {
	ID           int32     `json:"id"`
	PropertyID   int32     `json:"property_id"`
	SupervisorID int32     `json:"supervisor_id"`
	AssignedBy   int32     `json:"assigned_by"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}
