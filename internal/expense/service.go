package expense

import (
	"context"
	"errors"

	"github.com/hamzash/kharcha/internal/event/settle"
)

// Common errors
var (
	ErrNoActiveEvent = errors.New("no active event")
	ErrMissingAmount = errors.New("amount is required")
)

// Store is the persistence surface the expense feature needs. *Repository
// satisfies it; tests swap in a fake.
type Store interface {
	ActiveEvent(ctx context.Context) (*ActiveEvent, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*Expense, error)
	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*Expense, error)
	UpdateAmount(ctx context.Context, id int64, amount float64) error
	Create(ctx context.Context, eventID, userID int64, amount float64) error
	AssignGandu(ctx context.Context, eventID, userID int64) error
}

// Service handles expense entry and the current-event view
type Service struct {
	repo Store
}

// NewService creates a new expense service with store dependency injected
func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// Current returns the active event with its expense rows and live stats.
// When no event is collecting, Active is false and the rest is empty.
func (s *Service) Current(ctx context.Context) (*CurrentResponse, error) {
	event, err := s.repo.ActiveEvent(ctx)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return &CurrentResponse{Active: false, Expenses: []*ExpenseRowResponse{}}, nil
	}

	expenses, err := s.repo.ListByEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	rows := make([]*ExpenseRowResponse, len(expenses))
	var total float64
	for i, expense := range expenses {
		rows[i] = expense.ToRowResponse()
		if expense.Amount != nil {
			total += *expense.Amount
		}
	}

	stats := &Stats{
		Total:      total,
		UsersCount: len(expenses),
	}
	if stats.UsersCount > 0 {
		stats.PerHead = settle.Round2(total / float64(stats.UsersCount))
	}

	return &CurrentResponse{
		Active:   true,
		Event:    event,
		Expenses: rows,
		Stats:    stats,
	}, nil
}

// UpdateAmount sets a participant's amount on the active event, then checks
// completion on a fresh read. If exactly one participant still has no
// amount and the event has no Gandu yet, that participant is tagged
// immediately: the last one to enter is the Gandu. Two racing last writes
// resolve to whichever lands first; this is an accepted benign race.
func (s *Service) UpdateAmount(ctx context.Context, req *UpdateExpenseRequest) error {
	if req.Amount == nil {
		return ErrMissingAmount
	}

	event, err := s.repo.ActiveEvent(ctx)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrNoActiveEvent
	}

	existing, err := s.repo.GetByEventAndUser(ctx, event.ID, req.UserID)
	if err != nil {
		return err
	}

	if existing != nil {
		if err := s.repo.UpdateAmount(ctx, existing.ID, *req.Amount); err != nil {
			return err
		}
	} else {
		// Late join: participant was not seeded at event start.
		if err := s.repo.Create(ctx, event.ID, req.UserID, *req.Amount); err != nil {
			return err
		}
	}

	return s.checkGandu(ctx, event)
}

// checkGandu re-reads the event's rows after a durable write and assigns
// the Gandu when exactly one participant remains unset.
func (s *Service) checkGandu(ctx context.Context, event *ActiveEvent) error {
	if event.GanduID != nil {
		return nil
	}

	expenses, err := s.repo.ListByEvent(ctx, event.ID)
	if err != nil {
		return err
	}

	var remaining []*Expense
	for _, expense := range expenses {
		if expense.Amount == nil {
			remaining = append(remaining, expense)
		}
	}

	if len(remaining) != 1 {
		return nil
	}

	return s.repo.AssignGandu(ctx, event.ID, remaining[0].UserID)
}
