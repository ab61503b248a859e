package event

import "github.com/hamzash/kharcha/internal/event/settle"

// StartEventRequest represents the request body for starting a new event
type StartEventRequest struct {
	Name           string  `json:"name" validate:"required"`
	StartDate      string  `json:"start_date" validate:"required"`
	EndDate        string  `json:"end_date" validate:"required"`
	ParticipantIDs []int64 `json:"participant_ids,omitempty"`
}

// ArchiveEventRequest represents the request body for archiving an event.
// When ID is omitted the current active event is targeted.
type ArchiveEventRequest struct {
	ID *int64 `json:"id,omitempty"`
}

// EventResponse represents the response for a single event
type EventResponse struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	IsActive          bool    `json:"is_active"`
	TotalAmount       float64 `json:"total_amount"`
	PerHead           float64 `json:"per_head"`
	ParticipantsCount int     `json:"participants_count"`
	GanduID           *int64  `json:"gandu_id,omitempty"`
	ArchivedAt        *string `json:"archived_at,omitempty"`
}

// HistoryItemResponse is one entry in the history list
type HistoryItemResponse struct {
	ID                int64             `json:"id"`
	Name              string            `json:"name"`
	StartDate         string            `json:"start_date"`
	EndDate           string            `json:"end_date"`
	IsActive          bool              `json:"is_active"`
	TotalAmount       float64           `json:"total_amount"`
	PerHead           float64           `json:"per_head"`
	ParticipantsCount int               `json:"participants_count"`
	Settlements       []settle.Transfer `json:"settlements,omitempty"`
	GanduID           *int64            `json:"gandu_id,omitempty"`
	ArchivedAt        *string           `json:"archived_at,omitempty"`
}

// ToResponse converts an Event model to an EventResponse DTO
func (e *Event) ToResponse() *EventResponse {
	resp := &EventResponse{
		ID:                e.ID,
		Name:              e.Name,
		StartDate:         e.StartDate,
		EndDate:           e.EndDate,
		IsActive:          e.IsActive,
		TotalAmount:       e.TotalAmount,
		PerHead:           e.PerHead,
		ParticipantsCount: e.ParticipantsCount,
		GanduID:           e.GanduID,
	}
	if e.ArchivedAt != nil {
		archivedAt := e.ArchivedAt.Format("2006-01-02T15:04:05Z")
		resp.ArchivedAt = &archivedAt
	}
	return resp
}

// ToResponse converts a HistoryItem to its response DTO
func (h *HistoryItem) ToResponse() *HistoryItemResponse {
	resp := &HistoryItemResponse{
		ID:                h.ID,
		Name:              h.Name,
		StartDate:         h.StartDate,
		EndDate:           h.EndDate,
		IsActive:          h.IsActive,
		TotalAmount:       h.TotalAmount,
		PerHead:           h.PerHead,
		ParticipantsCount: h.ParticipantsCount,
		Settlements:       h.Settlements,
		GanduID:           h.GanduID,
	}
	if h.ArchivedAt != nil {
		archivedAt := h.ArchivedAt.Format("2006-01-02T15:04:05Z")
		resp.ArchivedAt = &archivedAt
	}
	return resp
}
