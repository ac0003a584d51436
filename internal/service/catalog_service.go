package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/onzacore/distri-api/internal/models"
	"github.com/onzacore/distri-api/internal/redisclient"
	"github.com/onzacore/distri-api/internal/store"
	"github.com/onzacore/distri-api/internal/util"
)

// CatalogService owns reads and writes of the live product catalog. Reads go
// through a Redis snapshot cache; every write invalidates it.
type CatalogService struct {
	store  *store.Store
	cache  *redisclient.Client
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store *store.Store, cache *redisclient.Client) *CatalogService {
	return &CatalogService{
		store:  store,
		cache:  cache,
		logger: util.GetLogger(),
	}
}

// GetProducts returns the full live catalog, cache-aside.
func (s *CatalogService) GetProducts(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		products, hit, err := s.cache.GetCatalog(ctx)
		if err != nil {
			s.logger.Warn("Catalog cache read failed", zap.Error(err))
		} else if hit {
			util.CatalogCacheHits.Inc()
			return products, nil
		}
	}

	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	util.CatalogCacheMisses.Inc()

	if s.cache != nil {
		if err := s.cache.SetCatalog(ctx, products); err != nil {
			s.logger.Warn("Catalog cache write failed", zap.Error(err))
		}
	}
	return products, nil
}

// SaveProduct creates or updates a product and invalidates the cache.
func (s *CatalogService) SaveProduct(ctx context.Context, p *models.Product) error {
	var err error
	if p.ID == 0 {
		err = s.store.CreateProduct(ctx, p)
	} else {
		err = s.store.UpdateProduct(ctx, p)
	}
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// DeleteProduct removes a product and invalidates the cache. Orders that
// reference it keep their captured name and frozen price; the reconciler
// reports the dangling reference from then on.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCatalog(ctx); err != nil {
		s.logger.Warn("Catalog cache invalidation failed", zap.Error(err))
	}
}

// ExportCSV renders the catalog in the import/export interchange format.
func (s *CatalogService) ExportCSV(ctx context.Context) ([]byte, error) {
	products, err := s.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"codigo_sku", "nombre", "categoria", "precio_unitario", "stock"}); err != nil {
		return nil, err
	}
	for _, p := range products {
		record := []string{
			p.SKU,
			p.Name,
			p.Category,
			strconv.FormatFloat(p.UnitPrice, 'f', -1, 64),
			p.Stock,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
