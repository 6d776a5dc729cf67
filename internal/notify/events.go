package notify

import "time"

type LoanEvent struct {
	Type     string    `json:"type"` // "loan.requested"
	LoanID   string    `json:"loan_id"`
	ISBN     string    `json:"isbn"`
	PatronID string    `json:"patron_id"`
	BranchID string    `json:"branch_id,omitempty"`
	At       time.Time `json:"at"`
}
