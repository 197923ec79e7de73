package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus tracks a payment through the approval workflow.
type PaymentStatus string

const (
	PaymentStatusPending         PaymentStatus = "PENDING"          // recorded, tenant has not paid yet
	PaymentStatusWaitingApproval PaymentStatus = "WAITING_APPROVAL" // tenant claims payment, owner must confirm
	PaymentStatusPaid            PaymentStatus = "PAID"             // owner/admin confirmed receipt
	PaymentStatusFailed          PaymentStatus = "FAILED"           // owner/admin declined the claim
	PaymentStatusRefunded        PaymentStatus = "REFUNDED"         // only reachable via admin force-set
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusWaitingApproval, PaymentStatusPaid,
		PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// PaymentType classifies what the money is for.
type PaymentType string

const (
	PaymentTypeRent            PaymentType = "RENT"
	PaymentTypeSecurityDeposit PaymentType = "SECURITY_DEPOSIT"
	PaymentTypeMaintenance     PaymentType = "MAINTENANCE"
	PaymentTypeOther           PaymentType = "OTHER"
)

func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeRent, PaymentTypeSecurityDeposit, PaymentTypeMaintenance, PaymentTypeOther:
		return true
	}
	return false
}

type Payment struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Amount      decimal.Decimal `json:"amount" gorm:"not null;type:decimal(10,2)" validate:"required,gt=0"`
	PaymentType PaymentType     `json:"paymentType" gorm:"not null;type:varchar(20)" validate:"required"`
	Status      PaymentStatus   `json:"status" gorm:"not null;default:'PENDING';index;type:varchar(20)"`
	PaymentDate time.Time       `json:"paymentDate" gorm:"not null;index"`
	TenantID    string          `json:"tenantId" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID;references:ID"`
}

// CanTransitionTo reports whether the ordinary workflow permits moving to
// newStatus from the payment's current status. Admin force-set bypasses this.
func (p *Payment) CanTransitionTo(newStatus PaymentStatus) bool {
	validTransitions := map[PaymentStatus][]PaymentStatus{
		PaymentStatusPending: {
			PaymentStatusWaitingApproval,
		},
		PaymentStatusWaitingApproval: {
			PaymentStatusPaid,
			PaymentStatusFailed,
		},
		PaymentStatusPaid:     {}, // terminal
		PaymentStatusFailed:   {}, // terminal
		PaymentStatusRefunded: {}, // terminal
	}

	allowed, exists := validTransitions[p.Status]
	if !exists {
		return false
	}

	for _, s := range allowed {
		if s == newStatus {
			return true
		}
	}
	return false
}

// IsTerminal returns true once the ordinary workflow has nowhere left to go.
func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentStatusPaid ||
		p.Status == PaymentStatusFailed ||
		p.Status == PaymentStatusRefunded
}
