package service

import (
	"context"
	"errors"

	"ai-finance-assistant-be/internal/dto"
	"ai-finance-assistant-be/internal/pkg/logger"
	"ai-finance-assistant-be/pkg/workflow"
)

var ErrSessionNotFound = errors.New("session not found")

// IAdvisorService defines the advisor service interface
type IAdvisorService interface {
	CreateSession(ctx context.Context, userId string) (*dto.CreateSessionResponse, error)
	Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
	GetHistory(ctx context.Context, userId string, limit int) ([]*dto.HistoryEntryResponse, error)
	GetSessionSummary(ctx context.Context, userId string) (*dto.SessionSummaryResponse, error)
	UpdatePortfolio(ctx context.Context, userId string, request *dto.UpdatePortfolioRequest) error
	SetGoal(ctx context.Context, userId string, request *dto.SetGoalRequest) error
	ClearSession(ctx context.Context, userId string) error
}

type advisorService struct {
	manager *workflow.Manager
	logger  logger.ILogger
}

func NewAdvisorService(manager *workflow.Manager, log logger.ILogger) IAdvisorService {
	return &advisorService{
		manager: manager,
		logger:  log,
	}
}

// CreateSession starts a fresh session, overwriting any existing state
// for the user id.
func (s *advisorService) CreateSession(ctx context.Context, userId string) (*dto.CreateSessionResponse, error) {
	s.manager.CreateSession(userId)
	return &dto.CreateSessionResponse{UserId: userId}, nil
}

// Chat routes one message through the conversation workflow. Sessions
// are created lazily on first contact.
func (s *advisorService) Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	response := s.manager.ProcessMessage(ctx, request.UserId, request.Message)

	intent := ""
	if summary, ok := s.manager.GetSessionSummary(request.UserId); ok {
		intent = summary.CurrentIntent
	}

	return &dto.ChatResponse{
		UserId:   request.UserId,
		Intent:   intent,
		Response: response,
	}, nil
}

func (s *advisorService) GetHistory(ctx context.Context, userId string, limit int) ([]*dto.HistoryEntryResponse, error) {
	if _, ok := s.manager.GetSession(userId); !ok {
		return nil, ErrSessionNotFound
	}

	records := s.manager.GetConversationHistory(userId, limit)
	out := make([]*dto.HistoryEntryResponse, 0, len(records))
	for _, record := range records {
		out = append(out, &dto.HistoryEntryResponse{
			Id:        record.ID,
			Role:      record.Role,
			Content:   record.Content,
			CreatedAt: record.Timestamp,
		})
	}
	return out, nil
}

func (s *advisorService) GetSessionSummary(ctx context.Context, userId string) (*dto.SessionSummaryResponse, error) {
	summary, ok := s.manager.GetSessionSummary(userId)
	if !ok {
		return nil, ErrSessionNotFound
	}

	goals := make([]dto.GoalDTO, 0, len(summary.Goals))
	for _, goal := range summary.Goals {
		goals = append(goals, dto.GoalDTO{
			Name:         goal.Name,
			TargetAmount: goal.TargetAmount,
			Deadline:     goal.Deadline,
			Notes:        goal.Notes,
		})
	}

	return &dto.SessionSummaryResponse{
		UserId:        summary.UserID,
		MessageCount:  summary.MessageCount,
		Portfolio:     summary.Portfolio,
		Goals:         goals,
		CurrentIntent: summary.CurrentIntent,
		ContextKeys:   summary.ContextKeys,
	}, nil
}

func (s *advisorService) UpdatePortfolio(ctx context.Context, userId string, request *dto.UpdatePortfolioRequest) error {
	if _, ok := s.manager.GetSession(userId); !ok {
		return ErrSessionNotFound
	}

	s.manager.UpdatePortfolio(userId, request.Holdings)
	return nil
}

func (s *advisorService) SetGoal(ctx context.Context, userId string, request *dto.SetGoalRequest) error {
	if _, ok := s.manager.GetSession(userId); !ok {
		return ErrSessionNotFound
	}

	s.manager.SetGoal(userId, workflow.Goal{
		Name:         request.Goal.Name,
		TargetAmount: request.Goal.TargetAmount,
		Deadline:     request.Goal.Deadline,
		Notes:        request.Goal.Notes,
	})
	return nil
}

func (s *advisorService) ClearSession(ctx context.Context, userId string) error {
	if _, ok := s.manager.GetSession(userId); !ok {
		return ErrSessionNotFound
	}

	s.manager.ClearSession(userId)
	return nil
}
