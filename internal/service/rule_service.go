package service

import (
	"context"
	"fmt"

	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/internal/repository"
	"trading-journal/pkg/id"
	"trading-journal/pkg/logger"

	"github.com/google/uuid"
)

type RuleService interface {
	List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]model.Rule, error)
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateRuleRequest) (*model.Rule, error)
	Toggle(ctx context.Context, userID uuid.UUID, ruleID string) (*model.Rule, error)
}

type ruleService struct {
	log      *logger.Logger
	ruleRepo repository.RuleRepository
}

func NewRuleService(log *logger.Logger, ruleRepo repository.RuleRepository) RuleService {
	return &ruleService{
		log:      log,
		ruleRepo: ruleRepo,
	}
}

func (s *ruleService) List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]model.Rule, error) {
	return s.ruleRepo.ListForUser(ctx, userID, activeOnly)
}

func (s *ruleService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateRuleRequest) (*model.Rule, error) {
	rule := &model.Rule{
		ID:          id.New(),
		UserID:      &userID,
		Title:       req.Title,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create rule: %w", err)
	}
	return rule, nil
}

// Toggle flips a user rule between active and inactive.
func (s *ruleService) Toggle(ctx context.Context, userID uuid.UUID, ruleID string) (*model.Rule, error) {
	rule, err := s.ruleRepo.GetByID(ctx, ruleID)
	if err != nil {
		return nil, notFound(err)
	}
	if rule.IsSystem {
		return nil, ErrRuleNotEditable
	}
	if rule.UserID == nil || *rule.UserID != userID {
		return nil, ErrForbidden
	}

	rule.IsActive = !rule.IsActive
	if err := s.ruleRepo.SetActive(ctx, rule.ID, rule.IsActive); err != nil {
		return nil, fmt.Errorf("failed to toggle rule: %w", err)
	}
	s.log.InfoContext(ctx, "Rule toggled", logger.StringField("rule_id", rule.ID), logger.Field("is_active", rule.IsActive))
	return rule, nil
}
