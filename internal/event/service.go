package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hamzash/kharcha/internal/event/settle"
)

// Common errors
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventAlreadyArchived = errors.New("event is already archived")
	ErrMissingFields        = errors.New("name and date range are required")
)

// Store is the persistence surface the lifecycle needs. *Repository
// satisfies it; tests swap in a fake.
type Store interface {
	GetByID(ctx context.Context, id int64) (*Event, error)
	GetActive(ctx context.Context) (*Event, error)
	Create(ctx context.Context, name, startDate, endDate string, userIDs []int64) (*Event, error)
	ActiveUserIDs(ctx context.Context) ([]int64, error)
	ExpenseAmounts(ctx context.Context, eventID int64) ([]UserAmount, error)
	Archive(ctx context.Context, id int64, snap *Snapshot) (time.Time, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Event, error)
	LiveTotalsByEvent(ctx context.Context) (map[int64]LiveTotals, error)
	AnalyticsTimeline(ctx context.Context, startDate, endDate string) ([]*TimelineEntry, error)
	AnalyticsByUser(ctx context.Context, startDate, endDate string) ([]*UserSpend, error)
}

// Service handles the event lifecycle business logic
type Service struct {
	repo Store
}

// NewService creates a new event service with store dependency injected
func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// Start begins a new collecting event. Any currently-active event is
// archived first through the same snapshot path as an explicit archive, so
// no event ever ends up archived with stale or missing settlement data.
func (s *Service) Start(ctx context.Context, req *StartEventRequest) (*Event, error) {
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.StartDate) == "" ||
		strings.TrimSpace(req.EndDate) == "" {
		return nil, ErrMissingFields
	}

	active, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if active != nil {
		if _, err := s.archive(ctx, active); err != nil {
			return nil, err
		}
	}

	userIDs := req.ParticipantIDs
	if len(userIDs) == 0 {
		userIDs, err = s.repo.ActiveUserIDs(ctx)
		if err != nil {
			return nil, err
		}
	}

	return s.repo.Create(ctx, req.Name, req.StartDate, req.EndDate, userIDs)
}

// Archive freezes an event's snapshot and deactivates it. Targets the given
// event ID, or the current active event when id is nil. The transition is
// irreversible: archiving an already-archived event is rejected so the
// frozen snapshot can never be rewritten.
func (s *Service) Archive(ctx context.Context, id *int64) (*Event, error) {
	var target *Event
	var err error

	if id != nil {
		target, err = s.repo.GetByID(ctx, *id)
	} else {
		target, err = s.repo.GetActive(ctx)
	}
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrEventNotFound
	}
	if !target.IsActive {
		return nil, ErrEventAlreadyArchived
	}

	return s.archive(ctx, target)
}

// archive computes the frozen snapshot and persists it. Per-head divides by
// the number of expense rows (all participants), not by how many have paid.
func (s *Service) archive(ctx context.Context, target *Event) (*Event, error) {
	rows, err := s.repo.ExpenseAmounts(ctx, target.ID)
	if err != nil {
		return nil, err
	}

	var total float64
	balances := make([]settle.Balance, 0, len(rows))
	for _, row := range rows {
		var paid float64
		if row.Amount != nil {
			paid = *row.Amount
		}
		total += paid
		balances = append(balances, settle.Balance{UserID: row.UserID, AmountPaid: paid})
	}

	count := len(rows)
	var perHead float64
	if count > 0 {
		perHead = total / float64(count)
	}

	transfers := settle.Compute(balances, perHead)
	payload, err := json.Marshal(transfers)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize settlements: %w", err)
	}

	snap := &Snapshot{
		TotalAmount:       settle.Round2(total),
		PerHead:           settle.Round2(perHead),
		ParticipantsCount: count,
		SettlementsJSON:   string(payload),
	}

	archivedAt, err := s.repo.Archive(ctx, target.ID, snap)
	if err != nil {
		return nil, err
	}

	target.IsActive = false
	target.TotalAmount = snap.TotalAmount
	target.PerHead = snap.PerHead
	target.ParticipantsCount = snap.ParticipantsCount
	target.SettlementsJSON = &snap.SettlementsJSON
	target.ArchivedAt = &archivedAt
	return target, nil
}

// Delete removes an event in any state; expense rows cascade
func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrEventNotFound
	}

	return s.repo.Delete(ctx, id)
}

// History returns all events, newest first. Archived events with a frozen
// snapshot render the snapshot verbatim forever; everything else shows live
// totals.
func (s *Service) History(ctx context.Context) ([]*HistoryItem, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	liveTotals, err := s.repo.LiveTotalsByEvent(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*HistoryItem, 0, len(events))
	for _, ev := range events {
		item := &HistoryItem{
			ID:         ev.ID,
			Name:       ev.Name,
			StartDate:  ev.StartDate,
			EndDate:    ev.EndDate,
			IsActive:   ev.IsActive,
			GanduID:    ev.GanduID,
			ArchivedAt: ev.ArchivedAt,
		}

		if !ev.IsActive && ev.SettlementsJSON != nil {
			var transfers []settle.Transfer
			if err := json.Unmarshal([]byte(*ev.SettlementsJSON), &transfers); err != nil {
				return nil, fmt.Errorf("failed to parse settlements for event %d: %w", ev.ID, err)
			}
			item.TotalAmount = ev.TotalAmount
			item.PerHead = ev.PerHead
			item.ParticipantsCount = ev.ParticipantsCount
			item.Settlements = transfers
		} else {
			live := liveTotals[ev.ID]
			item.TotalAmount = live.Total
			item.ParticipantsCount = live.Count
			if live.Count > 0 {
				item.PerHead = settle.Round2(live.Total / float64(live.Count))
			}
		}

		items = append(items, item)
	}

	return items, nil
}

// Analytics returns date-range-filtered spending aggregates: an overall
// summary, the per-event timeline, per-user totals, and the most and least
// expensive events in the range.
func (s *Service) Analytics(ctx context.Context, startDate, endDate string) (*Analytics, error) {
	timeline, err := s.repo.AnalyticsTimeline(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	byUser, err := s.repo.AnalyticsByUser(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	if timeline == nil {
		timeline = []*TimelineEntry{}
	}
	if byUser == nil {
		byUser = []*UserSpend{}
	}

	var summary Summary
	var highlights Highlights
	for _, entry := range timeline {
		summary.Total += entry.Total
		if highlights.Max == nil || entry.Total > highlights.Max.Total {
			highlights.Max = entry
		}
		if highlights.Min == nil || entry.Total < highlights.Min.Total {
			highlights.Min = entry
		}
	}
	summary.Count = len(timeline)
	if summary.Count > 0 {
		summary.Avg = settle.Round2(summary.Total / float64(summary.Count))
	}
	summary.Total = settle.Round2(summary.Total)

	return &Analytics{
		Summary:    summary,
		Timeline:   timeline,
		ByUser:     byUser,
		Highlights: highlights,
	}, nil
}
