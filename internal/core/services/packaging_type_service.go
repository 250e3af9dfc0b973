package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kemasku/packshop_backend/internal/apperrors"
	"github.com/kemasku/packshop_backend/internal/core/domain"
	portsrepo "github.com/kemasku/packshop_backend/internal/core/ports/repositories"
	portssvc "github.com/kemasku/packshop_backend/internal/core/ports/services"
	"github.com/kemasku/packshop_backend/internal/dto"
	"github.com/kemasku/packshop_backend/internal/middleware"
)

// ErrUnknownPackagingSize signals a {type, size} pair absent from the catalog.
var ErrUnknownPackagingSize = errors.New("packaging size not found in catalog")

// packagingTypeService provides the packaging price catalog.
type packagingTypeService struct {
	packagingRepo portsrepo.PackagingTypeRepositoryFacade
}

// NewPackagingTypeService creates a new PackagingTypeService.
func NewPackagingTypeService(packagingRepo portsrepo.PackagingTypeRepositoryFacade) portssvc.PackagingTypeSvcFacade {
	return &packagingTypeService{packagingRepo: packagingRepo}
}

var _ portssvc.PackagingTypeSvcFacade = (*packagingTypeService)(nil)

func toDomainSizes(in []dto.PackagingSizeDTO) ([]domain.PackagingSize, error) {
	seen := make(map[string]struct{}, len(in))
	sizes := make([]domain.PackagingSize, 0, len(in))
	for _, s := range in {
		if s.Price.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: size %q has price %s", apperrors.ErrValidation, s.Size, s.Price)
		}
		if _, dup := seen[s.Size]; dup {
			return nil, fmt.Errorf("%w: duplicate size %q", apperrors.ErrValidation, s.Size)
		}
		seen[s.Size] = struct{}{}
		sizes = append(sizes, domain.PackagingSize{Size: s.Size, Price: s.Price})
	}
	return sizes, nil
}

func (s *packagingTypeService) CreatePackagingType(ctx context.Context, req dto.CreatePackagingTypeRequest, creatorUserID string) (*domain.PackagingType, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sizes, err := toDomainSizes(req.Sizes)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	pt := domain.PackagingType{
		PackagingTypeID: uuid.NewString(),
		Name:            req.Name,
		Description:     req.Description,
		Sizes:           sizes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.packagingRepo.SavePackagingType(ctx, pt); err != nil {
		logger.Error("Failed to save packaging type", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save packaging type: %w", err)
	}

	logger.Info("Packaging type created", slog.String("packaging_type_id", pt.PackagingTypeID), slog.String("name", pt.Name))
	return &pt, nil
}

func (s *packagingTypeService) GetPackagingTypeByID(ctx context.Context, packagingTypeID string) (*domain.PackagingType, error) {
	pt, err := s.packagingRepo.FindPackagingTypeByID(ctx, packagingTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find packaging type %s: %w", packagingTypeID, err)
	}
	return pt, nil
}

func (s *packagingTypeService) ListPackagingTypes(ctx context.Context) ([]domain.PackagingType, error) {
	pts, err := s.packagingRepo.ListPackagingTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list packaging types: %w", err)
	}
	return pts, nil
}

func (s *packagingTypeService) UpdatePackagingType(ctx context.Context, packagingTypeID string, req dto.UpdatePackagingTypeRequest, userID string) (*domain.PackagingType, error) {
	pt, err := s.packagingRepo.FindPackagingTypeByID(ctx, packagingTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find packaging type %s: %w", packagingTypeID, err)
	}

	if req.Name != nil {
		pt.Name = *req.Name
	}
	if req.Description != nil {
		pt.Description = *req.Description
	}
	if req.Sizes != nil {
		sizes, err := toDomainSizes(req.Sizes)
		if err != nil {
			return nil, err
		}
		pt.Sizes = sizes
	}
	pt.LastUpdatedAt = time.Now()
	pt.LastUpdatedBy = userID

	if err := s.packagingRepo.UpdatePackagingType(ctx, *pt); err != nil {
		return nil, fmt.Errorf("failed to update packaging type %s: %w", packagingTypeID, err)
	}
	return pt, nil
}

func (s *packagingTypeService) DeletePackagingType(ctx context.Context, packagingTypeID string) error {
	if err := s.packagingRepo.DeletePackagingType(ctx, packagingTypeID); err != nil {
		return fmt.Errorf("failed to delete packaging type %s: %w", packagingTypeID, err)
	}
	return nil
}

// ResolvePrice looks up the catalog unit price for a {type, size} pair.
func (s *packagingTypeService) ResolvePrice(ctx context.Context, name, size string) (decimal.Decimal, error) {
	pt, err := s.packagingRepo.FindPackagingTypeByName(ctx, name)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find packaging type %q: %w", name, err)
	}
	price, ok := pt.PriceFor(size)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s/%s", ErrUnknownPackagingSize, name, size)
	}
	return price, nil
}
