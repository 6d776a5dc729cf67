package models

type CopyStatus string

const (
	CopyAvailable CopyStatus = "available"
	CopyOnLoan    CopyStatus = "on_loan"
	CopyReserved  CopyStatus = "reserved"
	CopyLost      CopyStatus = "lost"
)

var validCopyStatuses = map[CopyStatus]bool{
	CopyAvailable: true,
	CopyOnLoan:    true,
	CopyReserved:  true,
	CopyLost:      true,
}

func IsValidCopyStatus(s CopyStatus) bool {
	return validCopyStatuses[s]
}

// Copy is one physical instance of a book shelved at a branch.
type Copy struct {
	ID       string     `json:"id"`
	ISBN     string     `json:"isbn"`
	BranchID string     `json:"branch_id"`
	Status   CopyStatus `json:"status"`
}
