package ad

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"annonsplats/internal/config"
	"annonsplats/internal/domain"
	"annonsplats/internal/metrics"
	"annonsplats/internal/pkg/validate"
	"annonsplats/internal/repository"
)

const searchCachePrefix = "ads:search:"

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input domain.CreateAdInput) (*domain.Ad, error)
	Update(ctx context.Context, userID, adID uuid.UUID, input domain.UpdateAdInput) (*domain.Ad, error)
	Delete(ctx context.Context, userID, adID uuid.UUID) error
	Get(ctx context.Context, adID uuid.UUID) (*domain.Ad, error)
	Search(ctx context.Context, params domain.AdSearchParams, page domain.PaginationParams) (domain.PaginatedResponse[domain.Ad], error)
	// Preview returns the newest ads up to the anonymous display cap.
	Preview(ctx context.Context) (domain.CatalogPreview, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page domain.PaginationParams) (domain.PaginatedResponse[domain.Ad], error)
	PreviewByUser(ctx context.Context, userID uuid.UUID) (domain.CatalogPreview, error)
	ListRegions(ctx context.Context) ([]string, error)
	ListMunicipalities(ctx context.Context, region string) ([]string, error)
}

type service struct {
	adRepo       repository.AdRepository
	locationRepo repository.LocationRepository
	redis        *redis.Client
	cfg          *config.Config
	logger       *zap.Logger
}

func NewService(
	adRepo repository.AdRepository,
	locationRepo repository.LocationRepository,
	redis *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &service{
		adRepo:       adRepo,
		locationRepo: locationRepo,
		redis:        redis,
		cfg:          cfg,
		logger:       logger.Named("ad"),
	}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input domain.CreateAdInput) (*domain.Ad, error) {
	input.Normalize()
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	municipality := trimOptional(input.Municipality)
	region := strings.TrimSpace(input.Region)
	if err := s.checkLocation(ctx, region, municipality); err != nil {
		return nil, err
	}

	posterCategory := input.PosterCategory
	if posterCategory == "" {
		posterCategory = domain.PosterPrivate
	}

	ad := &domain.Ad{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          strings.TrimSpace(input.Title),
		Description:    strings.TrimSpace(input.Description),
		Region:         region,
		Municipality:   municipality,
		Price:          input.Price,
		Category:       trimOptional(input.Category),
		PosterCategory: posterCategory,
	}

	if err := s.adRepo.Create(ctx, ad); err != nil {
		return nil, err
	}

	metrics.AdsCreated.Inc()
	s.invalidateSearchCache(ctx)
	return ad, nil
}

func (s *service) Update(ctx context.Context, userID, adID uuid.UUID, input domain.UpdateAdInput) (*domain.Ad, error) {
	input.Normalize()
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	ad, err := s.owned(ctx, userID, adID)
	if err != nil {
		return nil, err
	}

	locationChanged := false
	if input.Title != nil {
		ad.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		ad.Description = strings.TrimSpace(*input.Description)
	}
	if input.Region != nil {
		ad.Region = strings.TrimSpace(*input.Region)
		locationChanged = true
	}
	if input.Municipality != nil {
		ad.Municipality = trimOptional(input.Municipality)
		locationChanged = true
	}
	if input.Price != nil {
		ad.Price = input.Price
	}
	if input.Category != nil {
		ad.Category = trimOptional(input.Category)
	}
	if input.PosterCategory != nil {
		ad.PosterCategory = *input.PosterCategory
	}

	if locationChanged {
		if err := s.checkLocation(ctx, ad.Region, ad.Municipality); err != nil {
			return nil, err
		}
	}

	if err := s.adRepo.Update(ctx, ad); err != nil {
		return nil, err
	}

	s.invalidateSearchCache(ctx)
	return ad, nil
}

func (s *service) Delete(ctx context.Context, userID, adID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, adID); err != nil {
		return err
	}
	if err := s.adRepo.Delete(ctx, adID); err != nil {
		return err
	}
	s.invalidateSearchCache(ctx)
	return nil
}

func (s *service) Get(ctx context.Context, adID uuid.UUID) (*domain.Ad, error) {
	ad, err := s.adRepo.GetByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, domain.ErrNotFound
	}
	return ad, nil
}

func (s *service) Search(ctx context.Context, params domain.AdSearchParams, page domain.PaginationParams) (domain.PaginatedResponse[domain.Ad], error) {
	page.Validate()
	params.Query = strings.TrimSpace(params.Query)

	cacheKey := searchCacheKey(params, page)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var result domain.PaginatedResponse[domain.Ad]
			if json.Unmarshal([]byte(cached), &result) == nil {
				return result, nil
			}
		}
	}

	ads, total, err := s.adRepo.Search(ctx, params, page.PageSize, page.Offset())
	if err != nil {
		return domain.PaginatedResponse[domain.Ad]{}, err
	}

	result := domain.NewPaginatedResponse(ads, page.Page, page.PageSize, total)

	if s.redis != nil {
		if resultJSON, err := json.Marshal(result); err == nil {
			_ = s.redis.Set(ctx, cacheKey, resultJSON, s.cfg.SearchCacheTTL).Err()
		}
	}

	return result, nil
}

func (s *service) Preview(ctx context.Context) (domain.CatalogPreview, error) {
	result, err := s.Search(ctx, domain.AdSearchParams{}, domain.PaginationParams{Page: 1, PageSize: s.cfg.CatalogPreviewSize})
	if err != nil {
		return domain.CatalogPreview{}, err
	}
	return domain.CatalogPreview{Data: result.Data, HasMore: result.TotalItems > int64(len(result.Data))}, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, page domain.PaginationParams) (domain.PaginatedResponse[domain.Ad], error) {
	page.Validate()
	ads, total, err := s.adRepo.ListByUser(ctx, userID, page.PageSize, page.Offset())
	if err != nil {
		return domain.PaginatedResponse[domain.Ad]{}, err
	}
	return domain.NewPaginatedResponse(ads, page.Page, page.PageSize, total), nil
}

func (s *service) PreviewByUser(ctx context.Context, userID uuid.UUID) (domain.CatalogPreview, error) {
	ads, total, err := s.adRepo.ListByUser(ctx, userID, s.cfg.CatalogPreviewSize, 0)
	if err != nil {
		return domain.CatalogPreview{}, err
	}
	return domain.CatalogPreview{Data: ads, HasMore: total > int64(len(ads))}, nil
}

func (s *service) ListRegions(ctx context.Context) ([]string, error) {
	return s.locationRepo.ListRegions(ctx)
}

func (s *service) ListMunicipalities(ctx context.Context, region string) ([]string, error) {
	return s.locationRepo.ListMunicipalities(ctx, region)
}

func (s *service) owned(ctx context.Context, userID, adID uuid.UUID) (*domain.Ad, error) {
	ad, err := s.adRepo.GetByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, domain.ErrNotFound
	}
	if ad.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return ad, nil
}

func (s *service) checkLocation(ctx context.Context, region string, municipality *string) error {
	ok, err := s.locationRepo.Exists(ctx, region, municipality)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidLocation
	}
	return nil
}

func (s *service) invalidateSearchCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	keys, err := s.redis.Keys(ctx, searchCachePrefix+"*").Result()
	if err != nil {
		s.logger.Warn("failed to list search cache keys", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		_ = s.redis.Del(ctx, keys...).Err()
	}
}

func searchCacheKey(params domain.AdSearchParams, page domain.PaginationParams) string {
	raw := fmt.Sprintf("%s\x00%s\x00%s\x00%s\x00%s\x00%d\x00%d",
		strings.ToLower(params.Query), params.Region, params.Municipality,
		params.Category, params.PosterCategory, page.Page, page.PageSize)
	sum := sha256.Sum256([]byte(raw))
	return searchCachePrefix + hex.EncodeToString(sum[:16])
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
