package scrap

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/scrapbox/scrap-backend/internal/classifier"
	"github.com/scrapbox/scrap-backend/internal/db"
)

// Service runs the scrap ingestion pipeline: duplicate check, external
// classification, type routing and persistence. One call is one logical unit
// of work; a failure at any step aborts the ingestion with no partial record.
type Service struct {
	store      Store
	classifier classifier.Classifier
}

// NewService creates a scrap service
func NewService(store Store, cl classifier.Classifier) *Service {
	return &Service{
		store:      store,
		classifier: cl,
	}
}

// CreateScrap ingests one page URL for the user. The classifier is called
// before the write transaction opens so a slow or failing external call never
// holds a storage lock; the duplicate check and the insert then share one
// transaction, with the unique index as the backstop for the remaining
// check-then-act window.
func (s *Service) CreateScrap(ctx context.Context, userID uint, pageURL string) (*db.Scrap, error) {
	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return nil, fmt.Errorf("%w: page url cannot be empty", classifier.ErrClassification)
	}

	payload, err := s.classifier.Classify(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	persist, err := routePersister(payload.Type)
	if err != nil {
		return nil, err
	}

	record := persist(userID, pageURL, payload)

	err = s.store.InTx(ctx, func(tx Store) error {
		exists, err := tx.HasActive(ctx, userID, pageURL)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateScrap
		}
		return tx.Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Created %s scrap %d for user %d (%s)", record.Type, record.ID, userID, pageURL)
	return record, nil
}

// GetScrap returns one active scrap owned by the user.
func (s *Service) GetScrap(ctx context.Context, userID, scrapID uint) (*db.Scrap, error) {
	return s.store.GetActive(ctx, userID, scrapID)
}

// DeleteScrap soft-deletes one active scrap owned by the user. Deleting an
// already-deleted scrap fails with ErrNotFound.
func (s *Service) DeleteScrap(ctx context.Context, userID, scrapID uint) error {
	if err := s.store.SoftDelete(ctx, userID, scrapID); err != nil {
		return err
	}
	log.Printf("Deleted scrap %d for user %d", scrapID, userID)
	return nil
}

// ListScraps returns one page of the user's active scraps ordered by recency.
func (s *Service) ListScraps(ctx context.Context, userID uint, page, size int) (*Slice, error) {
	return s.store.List(ctx, userID, page, size)
}
