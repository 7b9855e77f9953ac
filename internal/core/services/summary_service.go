package services

import (
	"context"
	"fmt"

	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
	portsrepo "github.com/pachecofc/verde-financas-sub001/internal/core/ports/repositories"
	portssvc "github.com/pachecofc/verde-financas-sub001/internal/core/ports/services"
)

type summaryService struct {
	summaryRepo portsrepo.SummaryRepository
}

// NewSummaryService creates a new summary service.
func NewSummaryService(summaryRepo portsrepo.SummaryRepository) portssvc.SummarySvcFacade {
	return &summaryService{summaryRepo: summaryRepo}
}

var _ portssvc.SummarySvcFacade = (*summaryService)(nil)

func (s *summaryService) GetSummary(ctx context.Context, ownerID string, filter domain.TransactionFilter) (*domain.Summary, error) {
	summary, err := s.summaryRepo.GetSummary(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}
	return summary, nil
}
