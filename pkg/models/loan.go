package models

import "time"

type Loan struct {
	ID          string    `json:"id"`
	CopyID      string    `json:"copy_id"`
	ISBN        string    `json:"isbn"`
	PatronID    string    `json:"patron_id"`
	RequestedAt time.Time `json:"requested_at"`
}
