package domain

import "time"

type LeadType string

const (
	LeadBuyer  LeadType = "BUYER"
	LeadSeller LeadType = "SELLER"
	LeadRenter LeadType = "RENTER"
)

type LeadSource string

const (
	SourceFacebook  LeadSource = "FACEBOOK"
	SourceWebsite   LeadSource = "WEBSITE"
	SourceWhatsApp  LeadSource = "WHATSAPP"
	SourceReferral  LeadSource = "REFERRAL"
	SourcePhoneCall LeadSource = "PHONE_CALL"
	SourceEmail     LeadSource = "EMAIL"
	SourceOther     LeadSource = "OTHER"
)

// LeadStatus is the sales pipeline stage of a lead.
type LeadStatus string

const (
	LeadNew                LeadStatus = "NEW"
	LeadContacted          LeadStatus = "CONTACTED"
	LeadInterested         LeadStatus = "INTERESTED"
	LeadSiteVisitScheduled LeadStatus = "SITE_VISIT_SCHEDULED"
	LeadNegotiating        LeadStatus = "NEGOTIATING"
	LeadClosedWon          LeadStatus = "CLOSED_WON"
	LeadClosedLost         LeadStatus = "CLOSED_LOST"
	LeadDead               LeadStatus = "DEAD"
)

// Lead is a prospective buyer, seller or renter. AssignedAgentID stays empty
// until an admin assigns the lead.
type Lead struct {
	ID                   string     `json:"id" bson:"_id"`
	FirstName            string     `json:"firstName" bson:"firstName"`
	LastName             string     `json:"lastName" bson:"lastName"`
	Email                string     `json:"email,omitempty" bson:"email,omitempty"`
	Phone                string     `json:"phone" bson:"phone"`
	Type                 LeadType   `json:"type" bson:"type"`
	Source               LeadSource `json:"source" bson:"source"`
	Status               LeadStatus `json:"status" bson:"status"`
	BudgetMin            *float64   `json:"budgetMin,omitempty" bson:"budgetMin,omitempty"`
	BudgetMax            *float64   `json:"budgetMax,omitempty" bson:"budgetMax,omitempty"`
	InterestedPropertyID string     `json:"interestedPropertyId,omitempty" bson:"interestedPropertyId,omitempty"`
	Notes                string     `json:"notes,omitempty" bson:"notes,omitempty"`
	AssignedAgentID      string     `json:"assignedAgentId,omitempty" bson:"assignedAgentId,omitempty"`
	CreatedAt            time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt" bson:"updatedAt"`
}
