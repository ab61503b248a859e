package expense

import (
	"context"
	"testing"
	"time"
)

func fptr(v float64) *float64 { return &v }

// fakeStore is an in-memory Store for exercising expense entry and Gandu
// tagging without a database.
type fakeStore struct {
	event    *ActiveEvent
	rows     []*Expense
	ganduSet int // how many times AssignGandu actually landed
	nextID   int64
}

func (f *fakeStore) ActiveEvent(_ context.Context) (*ActiveEvent, error) {
	if f.event == nil {
		return nil, nil
	}
	copied := *f.event
	return &copied, nil
}

func (f *fakeStore) ListByEvent(_ context.Context, eventID int64) ([]*Expense, error) {
	var out []*Expense
	for _, row := range f.rows {
		if row.EventID == eventID {
			copied := *row
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeStore) GetByEventAndUser(_ context.Context, eventID, userID int64) (*Expense, error) {
	for _, row := range f.rows {
		if row.EventID == eventID && row.UserID == userID {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) UpdateAmount(_ context.Context, id int64, amount float64) error {
	for _, row := range f.rows {
		if row.ID == id {
			v := amount
			row.Amount = &v
			row.UpdatedAt = time.Now()
		}
	}
	return nil
}

func (f *fakeStore) Create(_ context.Context, eventID, userID int64, amount float64) error {
	f.nextID++
	v := amount
	f.rows = append(f.rows, &Expense{
		ID: f.nextID, EventID: eventID, UserID: userID, Amount: &v, UpdatedAt: time.Now(),
	})
	return nil
}

func (f *fakeStore) AssignGandu(_ context.Context, eventID, userID int64) error {
	// Mirrors the conditional UPDATE: only lands while gandu_id is unset.
	if f.event != nil && f.event.ID == eventID && f.event.GanduID == nil {
		v := userID
		f.event.GanduID = &v
		f.ganduSet++
	}
	return nil
}

func newStoreWithEvent(userIDs ...int64) *fakeStore {
	store := &fakeStore{event: &ActiveEvent{ID: 1, Name: "Trip"}}
	for _, uid := range userIDs {
		store.nextID++
		store.rows = append(store.rows, &Expense{ID: store.nextID, EventID: 1, UserID: uid})
	}
	return store
}

func TestUpdateRequiresActiveEvent(t *testing.T) {
	service := NewService(&fakeStore{})

	err := service.UpdateAmount(context.Background(), &UpdateExpenseRequest{UserID: 1, Amount: fptr(10)})
	if err != ErrNoActiveEvent {
		t.Errorf("expected ErrNoActiveEvent, got %v", err)
	}
}

func TestUpdateRequiresAmount(t *testing.T) {
	service := NewService(newStoreWithEvent(1))

	err := service.UpdateAmount(context.Background(), &UpdateExpenseRequest{UserID: 1})
	if err != ErrMissingAmount {
		t.Errorf("expected ErrMissingAmount, got %v", err)
	}
}

func TestUpdateSetsAmount(t *testing.T) {
	store := newStoreWithEvent(1, 2)
	service := NewService(store)

	err := service.UpdateAmount(context.Background(), &UpdateExpenseRequest{UserID: 1, Amount: fptr(12.5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row, _ := store.GetByEventAndUser(context.Background(), 1, 1)
	if row.Amount == nil || *row.Amount != 12.5 {
		t.Errorf("expected amount 12.5, got %v", row.Amount)
	}
}

func TestZeroAmountCountsAsEntered(t *testing.T) {
	store := newStoreWithEvent(1, 2)
	service := NewService(store)
	ctx := context.Background()

	// User 1 enters zero: a real entry, so user 2 is the single remaining
	// unset participant and becomes the Gandu.
	if err := service.UpdateAmount(ctx, &UpdateExpenseRequest{UserID: 1, Amount: fptr(0)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.event.GanduID == nil || *store.event.GanduID != 2 {
		t.Errorf("expected user 2 tagged as gandu, got %v", store.event.GanduID)
	}
}

func TestSingleRemainingTriggersGandu(t *testing.T) {
	store := newStoreWithEvent(1, 2, 3)
	service := NewService(store)
	ctx := context.Background()

	if err := service.UpdateAmount(ctx, &UpdateExpenseRequest{UserID: 1, Amount: fptr(30)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.event.GanduID != nil {
		t.Fatal("gandu tagged too early: two participants still unset")
	}

	if err := service.UpdateAmount(ctx, &UpdateExpenseRequest{UserID: 2, Amount: fptr(15)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.event.GanduID == nil || *store.event.GanduID != 3 {
		t.Fatalf("expected user 3 tagged as gandu, got %v", store.event.GanduID)
	}
}

func TestGanduNeverReassigned(t *testing.T) {
	store := newStoreWithEvent(1, 2, 3)
	service := NewService(store)
	ctx := context.Background()

	service.UpdateAmount(ctx, &UpdateExpenseRequest{UserID: 1, Amount: fptr(30)})
	service.UpdateAmount(ctx, &UpdateExpenseRequest{UserID: 2, Amount: fptr(15)})

	// User 3 is now the Gandu. Re-entering amounts, including wiping user
	// 2 back through an update, must never move the tag.
	service.UpdateAmount(ctx, &UpdateExpenseRequest{UserID: 3, Amount: fptr(5)})
	service.UpdateAmount(ctx, &UpdateExpenseRequest{UserID: 1, Amount: fptr(40)})

	if store.event.GanduID == nil || *store.event.GanduID != 3 {
		t.Errorf("gandu must stay user 3, got %v", store.event.GanduID)
	}
	if store.ganduSet != 1 {
		t.Errorf("gandu assignment must land exactly once, landed %d times", store.ganduSet)
	}
}

func TestUpdateInsertsLateJoiner(t *testing.T) {
	store := newStoreWithEvent(1, 2)
	service := NewService(store)
	ctx := context.Background()

	if err := service.UpdateAmount(ctx, &UpdateExpenseRequest{UserID: 9, Amount: fptr(7)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row, _ := store.GetByEventAndUser(ctx, 1, 9)
	if row == nil || row.Amount == nil || *row.Amount != 7 {
		t.Errorf("expected late joiner row with amount 7, got %+v", row)
	}
}

func TestCurrentWithoutActiveEvent(t *testing.T) {
	service := NewService(&fakeStore{})

	current, err := service.Current(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current.Active {
		t.Error("expected active=false")
	}
	if current.Event != nil || current.Stats != nil {
		t.Errorf("expected empty payload, got %+v", current)
	}
}

func TestCurrentStatsDivideByAllParticipants(t *testing.T) {
	store := newStoreWithEvent(1, 2, 3)
	store.rows[0].Amount = fptr(10)
	store.rows[1].Amount = fptr(20)
	service := NewService(store)

	current, err := service.Current(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if current.Stats.Total != 30 {
		t.Errorf("expected total 30, got %v", current.Stats.Total)
	}
	if current.Stats.UsersCount != 3 {
		t.Errorf("expected users_count 3, got %v", current.Stats.UsersCount)
	}
	if current.Stats.PerHead != 10 {
		t.Errorf("per-head must be 30/3=10, not 30/2=15; got %v", current.Stats.PerHead)
	}

	if len(current.Expenses) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(current.Expenses))
	}
	if current.Expenses[2].Amount != nil {
		t.Error("unset row must keep a null amount, not zero")
	}
}
