package domain

import "time"

type VisitStatus string

const (
	VisitScheduled   VisitStatus = "SCHEDULED"
	VisitCompleted   VisitStatus = "COMPLETED"
	VisitNoShow      VisitStatus = "NO_SHOW"
	VisitRescheduled VisitStatus = "RESCHEDULED"
	VisitCancelled   VisitStatus = "CANCELLED"
)

// Visit is a scheduled site visit of a lead to a property.
type Visit struct {
	ID              string      `json:"id" bson:"_id"`
	LeadID          string      `json:"leadId" bson:"leadId"`
	PropertyID      string      `json:"propertyId" bson:"propertyId"`
	AssignedAgentID string      `json:"assignedAgentId" bson:"assignedAgentId"`
	ScheduledAt     time.Time   `json:"scheduledAt" bson:"scheduledAt"`
	Status          VisitStatus `json:"status" bson:"status"`
	Notes           string      `json:"notes,omitempty" bson:"notes,omitempty"`
	Feedback        string      `json:"feedback,omitempty" bson:"feedback,omitempty"`
	Rating          *int        `json:"rating,omitempty" bson:"rating,omitempty"`
	CreatedAt       time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt" bson:"updatedAt"`
}
