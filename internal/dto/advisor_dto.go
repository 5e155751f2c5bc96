package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	UserId string `json:"user_id"`
}

type ChatRequest struct {
	UserId  string `json:"user_id" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type ChatResponse struct {
	UserId   string `json:"user_id"`
	Intent   string `json:"intent"`
	Response string `json:"response"`
}

type HistoryEntryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionSummaryResponse struct {
	UserId        string             `json:"user_id"`
	MessageCount  int                `json:"message_count"`
	Portfolio     map[string]float64 `json:"portfolio"`
	Goals         []GoalDTO          `json:"goals"`
	CurrentIntent string             `json:"current_intent,omitempty"`
	ContextKeys   []string           `json:"context_keys"`
}

type GoalDTO struct {
	Name         string  `json:"name" validate:"required"`
	TargetAmount float64 `json:"target_amount,omitempty"`
	Deadline     string  `json:"deadline,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

type UpdatePortfolioRequest struct {
	Holdings map[string]float64 `json:"holdings" validate:"required,min=1"`
}

type SetGoalRequest struct {
	Goal GoalDTO `json:"goal" validate:"required"`
}
