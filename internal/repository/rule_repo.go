package repository

import (
	"context"

	"trading-journal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RuleRepository interface {
	ListForUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]model.Rule, error)
	GetByID(ctx context.Context, id string) (*model.Rule, error)
	Create(ctx context.Context, rule *model.Rule) error
	SetActive(ctx context.Context, id string, active bool) error
	CountUsable(ctx context.Context, userID uuid.UUID, ids []string) (int64, error)
}

type ruleRepository struct {
	db *gorm.DB
}

func NewRuleRepository(db *gorm.DB) RuleRepository {
	return &ruleRepository{
		db: db,
	}
}

func (r *ruleRepository) visibleTo(userID uuid.UUID) *gorm.DB {
	return r.db.Where("is_system = ? OR user_id = ?", true, userID)
}

// ListForUser returns the system rules followed by the user's own rules.
func (r *ruleRepository) ListForUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]model.Rule, error) {
	var rules []model.Rule

	q := r.db.WithContext(ctx).Where(r.visibleTo(userID))
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Order("is_system DESC, created_at ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ruleRepository) GetByID(ctx context.Context, id string) (*model.Rule, error) {
	var rule model.Rule
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *ruleRepository) Create(ctx context.Context, rule *model.Rule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *ruleRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Rule{}).
		Where("id = ? AND is_system = ?", id, false).
		Update("is_active", active).Error
}

// CountUsable counts how many of ids are active rules visible to the user.
func (r *ruleRepository) CountUsable(ctx context.Context, userID uuid.UUID, ids []string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Rule{}).
		Where(r.visibleTo(userID)).
		Where("id IN ? AND is_active = ?", ids, true).
		Count(&count).Error
	return count, err
}
