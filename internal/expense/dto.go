package expense

// UpdateExpenseRequest represents the request body for setting a
// participant's amount on the active event
type UpdateExpenseRequest struct {
	UserID int64    `json:"user_id" validate:"required"`
	Amount *float64 `json:"amount" validate:"required"`
}

// ExpenseRowResponse is one participant's row in the current view
type ExpenseRowResponse struct {
	UserID    int64    `json:"user_id"`
	UserName  string   `json:"user_name"`
	Amount    *float64 `json:"amount"`
	UpdatedAt string   `json:"updated_at"`
}

// CurrentResponse is the active event with its expense rows and live stats.
// Active is false (and the other fields empty) when nothing is collecting.
type CurrentResponse struct {
	Active   bool                  `json:"active"`
	Event    *ActiveEvent          `json:"event,omitempty"`
	Expenses []*ExpenseRowResponse `json:"expenses"`
	Stats    *Stats                `json:"stats,omitempty"`
}

// ToRowResponse converts an Expense model to its current-view row DTO
func (e *Expense) ToRowResponse() *ExpenseRowResponse {
	return &ExpenseRowResponse{
		UserID:    e.UserID,
		UserName:  e.UserName,
		Amount:    e.Amount,
		UpdatedAt: e.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
