package domain

import "time"

type CommissionStatus string

const (
	CommissionPending   CommissionStatus = "PENDING"
	CommissionApproved  CommissionStatus = "APPROVED"
	CommissionPaid      CommissionStatus = "PAID"
	CommissionCancelled CommissionStatus = "CANCELLED"
)

// Commission records what an agent earns on a property. PropertyPrice and
// CommissionAmount are captured at creation and never recomputed.
type Commission struct {
	ID               string           `json:"id" bson:"_id"`
	AgentID          string           `json:"agentId" bson:"agentId"`
	PropertyID       string           `json:"propertyId" bson:"propertyId"`
	Percentage       float64          `json:"percentage" bson:"percentage"`
	PropertyPrice    float64          `json:"propertyPrice" bson:"propertyPrice"`
	CommissionAmount float64          `json:"commissionAmount" bson:"commissionAmount"`
	Status           CommissionStatus `json:"status" bson:"status"`
	PaidAt           *time.Time       `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	CreatedAt        time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt" bson:"updatedAt"`
}

// CalculateCommission returns price * percentage / 100.
func CalculateCommission(propertyPrice, percentage float64) float64 {
	return propertyPrice * percentage / 100
}
