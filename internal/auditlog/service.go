package auditlog

import (
	"context"
	"encoding/json"
	"math"

	"github.com/gorgui02/rental-management-backend/utils"
)

type Service interface {
	// LogAction records an audit entry; failures are logged and swallowed.
	LogAction(ctx context.Context, userID *uint, action string, details map[string]interface{}, ip string, status string)
	GetAuditLogs(ctx context.Context, filter Filter) (*Page, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) LogAction(ctx context.Context, userID *uint, action string, details map[string]interface{}, ip string, status string) {
	if details == nil {
		details = map[string]interface{}{}
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	entry := &AuditLog{
		UserID:    userID,
		Action:    action,
		Details:   detailsJSON,
		IPAddress: ip,
		Status:    status,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		utils.Logger().WithError(err).WithField("action", action).Warn("failed to write audit log")
	}
}

func (s *service) GetAuditLogs(ctx context.Context, filter Filter) (*Page, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	logs, total, err := s.repo.GetByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &Page{
		Data:       logs,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}
