package domain

import "time"

type ActivityType string

const (
	ActivityCall         ActivityType = "CALL"
	ActivityEmail        ActivityType = "EMAIL"
	ActivityWhatsApp     ActivityType = "WHATSAPP"
	ActivitySMS          ActivityType = "SMS"
	ActivityMeeting      ActivityType = "MEETING"
	ActivitySiteVisit    ActivityType = "SITE_VISIT"
	ActivityProposalSent ActivityType = "PROPOSAL_SENT"
	ActivityNote         ActivityType = "NOTE"
)

// Activity is one entry of a lead's timeline.
type Activity struct {
	ID          string       `json:"id" bson:"_id"`
	LeadID      string       `json:"leadId" bson:"leadId"`
	Type        ActivityType `json:"type" bson:"type"`
	Title       string       `json:"title" bson:"title"`
	Notes       string       `json:"notes,omitempty" bson:"notes,omitempty"`
	PerformedBy string       `json:"performedBy,omitempty" bson:"performedBy,omitempty"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
}
