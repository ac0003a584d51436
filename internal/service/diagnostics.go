package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/onzacore/distri-api/internal/auth"
	"github.com/onzacore/distri-api/internal/broker"
	"github.com/onzacore/distri-api/internal/models"
	"github.com/onzacore/distri-api/internal/store"
	"github.com/onzacore/distri-api/internal/util"
)

// DiagnosticsService finds order line items whose product reference no longer
// resolves and relinks the ones that can be matched back to the catalog.
type DiagnosticsService struct {
	store          *store.Store
	catalog        *CatalogService
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewDiagnosticsService creates a new diagnostics service
func NewDiagnosticsService(store *store.Store, catalog *CatalogService, eventPublisher *broker.EventPublisher) *DiagnosticsService {
	return &DiagnosticsService{
		store:          store,
		catalog:        catalog,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// FixCandidate is an orphaned item whose captured product name matches
// exactly one live product, so it can be relinked automatically.
type FixCandidate struct {
	ItemID       int64  `json:"item_id"`
	OrderID      int64  `json:"pedido_id"`
	OldProductID int64  `json:"producto_id_anterior"`
	NewProductID int64  `json:"producto_id_nuevo"`
	ProductName  string `json:"nombre_producto"`
}

// OrphanReport buckets orphaned items by whether they can be fixed without
// human judgement.
type OrphanReport struct {
	OrphanedCount          int                  `json:"orphanedCount"`
	AutomaticFixCandidates []FixCandidate       `json:"automaticFixCandidates"`
	UnfixableItems         []store.OrphanedItem `json:"unfixableItems"`
}

// AnalyzeOrphans scans every order line item against the live catalog. Items
// whose captured name matches exactly one live product become automatic fix
// candidates; name collisions and true deletions stay manual.
func (s *DiagnosticsService) AnalyzeOrphans(ctx context.Context) (*OrphanReport, error) {
	ctx, span := util.StartSpan(ctx, "DiagnosticsService.AnalyzeOrphans")
	defer span.End()

	orphans, err := s.store.GetOrphanedItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orphaned items: %w", err)
	}

	products, err := s.catalog.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	return classifyOrphans(orphans, products), nil
}

func classifyOrphans(orphans []store.OrphanedItem, products []models.Product) *OrphanReport {
	byName := make(map[string][]int64)
	for _, p := range products {
		key := strings.ToLower(strings.TrimSpace(p.Name))
		byName[key] = append(byName[key], p.ID)
	}

	report := &OrphanReport{
		OrphanedCount:          len(orphans),
		AutomaticFixCandidates: []FixCandidate{},
		UnfixableItems:         []store.OrphanedItem{},
	}
	for _, orphan := range orphans {
		ids := byName[strings.ToLower(strings.TrimSpace(orphan.ProductName))]
		if len(ids) == 1 {
			report.AutomaticFixCandidates = append(report.AutomaticFixCandidates, FixCandidate{
				ItemID:       orphan.ItemID,
				OrderID:      orphan.OrderID,
				OldProductID: orphan.ProductID,
				NewProductID: ids[0],
				ProductName:  orphan.ProductName,
			})
			continue
		}
		report.UnfixableItems = append(report.UnfixableItems, orphan)
	}

	return report
}

// FixOrphans relinks the given candidates and reports how many were updated.
func (s *DiagnosticsService) FixOrphans(ctx context.Context, sess auth.Session, candidates []FixCandidate) (int, error) {
	ctx, span := util.StartSpan(ctx, "DiagnosticsService.FixOrphans")
	defer span.End()

	updated := 0
	for _, c := range candidates {
		if err := s.store.RelinkOrderItem(ctx, c.ItemID, c.NewProductID); err != nil {
			s.logger.Error("Failed to relink item",
				zap.Int64("item_id", c.ItemID),
				zap.Error(err))
			continue
		}
		updated++
	}

	util.OrphansRelinkedTotal.Add(float64(updated))
	s.logger.Info("Orphaned items relinked",
		zap.Int("updated", updated),
		zap.String("user", sess.UserName))

	if err := s.eventPublisher.PublishOrphansRelinked(ctx, sess.UserName, updated); err != nil {
		s.logger.Error("Failed to publish OrphansRelinked event", zap.Error(err))
	}

	return updated, nil
}
