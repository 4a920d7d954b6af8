package handler

import "github.com/recrm/crm-api/internal/core/domain"

type createLeadRequest struct {
	FirstName            string            `json:"firstName"            validate:"min=2"                   msg:"First name required"`
	LastName             string            `json:"lastName"             validate:"min=2"                   msg:"Last name required"`
	Email                string            `json:"email"                validate:"omitempty,email"         msg:"Invalid email"`
	Phone                string            `json:"phone"                validate:"min=10"                  msg:"Valid phone number required"`
	Type                 domain.LeadType   `json:"type"                 validate:"omitempty,oneof=BUYER SELLER RENTER"`
	Source               domain.LeadSource `json:"source"               validate:"required,oneof=FACEBOOK WEBSITE WHATSAPP REFERRAL PHONE_CALL EMAIL OTHER"`
	Status               domain.LeadStatus `json:"status"               validate:"omitempty,oneof=NEW CONTACTED INTERESTED SITE_VISIT_SCHEDULED NEGOTIATING CLOSED_WON CLOSED_LOST DEAD"`
	BudgetMin            *float64          `json:"budgetMin"            validate:"omitempty,gt=0"`
	BudgetMax            *float64          `json:"budgetMax"            validate:"omitempty,gt=0"`
	InterestedPropertyID string            `json:"interestedPropertyId"`
	Notes                string            `json:"notes"`
	AssignedAgentID      string            `json:"assignedAgentId"`
}

// updateLeadRequest is a partial update; absent fields are left unchanged.
type updateLeadRequest struct {
	FirstName            *string            `json:"firstName"            validate:"omitempty,min=2"         msg:"First name required"`
	LastName             *string            `json:"lastName"             validate:"omitempty,min=2"         msg:"Last name required"`
	Email                *string            `json:"email"                validate:"omitempty,email"         msg:"Invalid email"`
	Phone                *string            `json:"phone"                validate:"omitempty,min=10"        msg:"Valid phone number required"`
	Type                 *domain.LeadType   `json:"type"                 validate:"omitempty,oneof=BUYER SELLER RENTER"`
	Source               *domain.LeadSource `json:"source"               validate:"omitempty,oneof=FACEBOOK WEBSITE WHATSAPP REFERRAL PHONE_CALL EMAIL OTHER"`
	Status               *domain.LeadStatus `json:"status"               validate:"omitempty,oneof=NEW CONTACTED INTERESTED SITE_VISIT_SCHEDULED NEGOTIATING CLOSED_WON CLOSED_LOST DEAD"`
	BudgetMin            *float64           `json:"budgetMin"            validate:"omitempty,gt=0"`
	BudgetMax            *float64           `json:"budgetMax"            validate:"omitempty,gt=0"`
	InterestedPropertyID *string            `json:"interestedPropertyId"`
	Notes                *string            `json:"notes"`
	AssignedAgentID      *string            `json:"assignedAgentId"`
}

type createActivityRequest struct {
	Type  domain.ActivityType `json:"type"  validate:"required,oneof=CALL EMAIL WHATSAPP SMS MEETING SITE_VISIT PROPOSAL_SENT NOTE"`
	Title string              `json:"title" validate:"min=3" msg:"Title required"`
	Notes string              `json:"notes"`
}
