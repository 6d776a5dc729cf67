package loan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"libraryhub/internal/notify"
)

// NoPreference is the sentinel the city selector submits when the
// patron doesn't care which branch serves the loan.
const NoPreference = "No preference"

type Request struct {
	ISBN              string
	PatronID          string
	PreferredBranchID string
	PreferredCity     string
}

// Result is what the book page shows inline under the form. A failed
// validation or a lost race is a Result, never a panic or a 500.
type Result struct {
	OK      bool
	Message string
	LoanID  string
}

type Service struct {
	Repo *Repo
	Hub  *notify.Hub
}

func NewService(repo *Repo, hub *notify.Hub) *Service {
	return &Service{Repo: repo, Hub: hub}
}

// Request validates and executes a loan request. The returned error is
// reserved for persistence failures; every user-facing outcome,
// including conflicts, comes back as a Result.
func (s *Service) Request(ctx context.Context, req Request) (Result, error) {
	req.ISBN = strings.TrimSpace(req.ISBN)
	req.PatronID = strings.TrimSpace(req.PatronID)

	if req.ISBN == "" {
		return Result{OK: false, Message: "A book must be selected before requesting a loan."}, nil
	}
	if req.PatronID == "" {
		return Result{OK: false, Message: "You must be logged in to request a loan."}, nil
	}

	city := strings.TrimSpace(req.PreferredCity)
	if city == NoPreference {
		city = ""
	}

	l, branchID, err := s.Repo.Reserve(ctx, req.ISBN, req.PatronID, strings.TrimSpace(req.PreferredBranchID), city)
	if errors.Is(err, ErrNoCopyAvailable) {
		return Result{OK: false, Message: "No copy of this book is available right now."}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("reserve loan: %w", err)
	}

	if s.Hub != nil {
		s.Hub.BroadcastJSON(notify.LoanEvent{
			Type:     "loan.requested",
			LoanID:   l.ID,
			ISBN:     l.ISBN,
			PatronID: l.PatronID,
			BranchID: branchID,
			At:       time.Now().UTC(),
		})
	}

	return Result{
		OK:      true,
		Message: "Your loan request was accepted. A copy has been reserved for you.",
		LoanID:  l.ID,
	}, nil
}
