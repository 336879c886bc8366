package usedparts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ezypc-storefront/internal/common/logger"
	"ezypc-storefront/internal/common/metrics"
	"ezypc-storefront/internal/common/validation"
	"ezypc-storefront/internal/models"

	"github.com/google/uuid"
)

var ErrInvalidInquiry = errors.New("INVALID_INPUT")

type InquiryRequest struct {
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Message      string `json:"message,omitempty"`
}

func (r InquiryRequest) Validate() error {
	var problems []string
	if strings.TrimSpace(r.CustomerName) == "" {
		problems = append(problems, "customerName is required")
	}
	if !validation.ValidatePhone(r.Phone) {
		problems = append(problems, "phone is invalid")
	}
	if r.Email != "" && !validation.ValidateEmail(r.Email) {
		problems = append(problems, "email is invalid")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInquiry, strings.Join(problems, "; "))
	}
	return nil
}

type Service struct {
	repo     Repository
	notifier *Notifier
	logger   logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, notifier *Notifier, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		logger: log.WithFields(map[string]interface{}{
			"component": "usedparts",
		}),
		now: time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]models.UsedPart, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.UsedPart, error) {
	return s.repo.Get(ctx, id)
}

// Match finds a pre-owned alternative for any of the given components.
func (s *Service) Match(ctx context.Context, components []models.ComponentSpec) (*models.UsedPart, error) {
	parts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return MatchComponent(components, parts), nil
}

// CreateInquiry records the request and then notifies the store. Delivery
// failures are logged and leave the inquiry in the received state.
func (s *Service) CreateInquiry(ctx context.Context, partID string, req InquiryRequest) (*models.Inquiry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	part, err := s.repo.Get(ctx, partID)
	if err != nil {
		return nil, err
	}

	inq := &models.Inquiry{
		ID:           uuid.New().String(),
		PartID:       part.ID,
		CustomerName: strings.TrimSpace(req.CustomerName),
		Phone:        req.Phone,
		Email:        req.Email,
		Message:      req.Message,
		Status:       models.InquiryStatusReceived,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.CreateInquiry(ctx, inq); err != nil {
		return nil, err
	}

	if s.notifier == nil {
		metrics.InquiriesReceived.WithLabelValues(string(inq.Status)).Inc()
		return inq, nil
	}

	sent, err := s.notifier.Notify(ctx, part, inq)
	if err != nil {
		s.logger.Error("inquiry notification failed", map[string]interface{}{
			"inquiryId": inq.ID,
			"partId":    part.ID,
			"error":     err,
		})
	}
	if sent {
		if err := s.repo.UpdateInquiryStatus(ctx, inq.ID, models.InquiryStatusNotified); err != nil {
			s.logger.Warn("inquiry status update failed", map[string]interface{}{
				"inquiryId": inq.ID,
				"error":     err,
			})
		} else {
			inq.Status = models.InquiryStatusNotified
		}
	}

	metrics.InquiriesReceived.WithLabelValues(string(inq.Status)).Inc()
	s.logger.Info("store inquiry recorded", map[string]interface{}{
		"inquiryId": inq.ID,
		"partId":    part.ID,
		"status":    string(inq.Status),
	})
	return inq, nil
}
