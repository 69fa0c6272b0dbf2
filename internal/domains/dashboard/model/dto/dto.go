package dto

import (
	expenseDto "campus/internal/domains/expense/model/dto"
)

type SummaryResponse struct {
	ActiveLockers      int                          `json:"active_lockers"`
	PendingLockers     int                          `json:"pending_lockers"`
	UpcomingActivities int                          `json:"upcoming_activities"`
	PendingActivities  int                          `json:"pending_activities"`
	ActiveGatePasses   int                          `json:"active_gate_passes"`
	PendingGatePasses  int                          `json:"pending_gate_passes"`
	RecentExpenses     []expenseDto.ExpenseResponse `json:"recent_expenses"`
}

// CalendarEvent follows the FullCalendar event object shape consumed by the
// frontend.
type CalendarEvent struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Start         string         `json:"start"`
	End           string         `json:"end,omitempty"`
	AllDay        bool           `json:"allDay"`
	Type          string         `json:"type"`
	ExtendedProps map[string]any `json:"extendedProps"`
}

type CalendarResponse struct {
	Events []CalendarEvent `json:"events"`
}
