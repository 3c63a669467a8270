package scrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/scrapbox/scrap-backend/internal/db"
)

// mysqlDuplicateEntry is the MySQL error number for a unique index violation.
const mysqlDuplicateEntry = 1062

// Slice is one page of scraps plus a has-more indicator. No total count is
// carried; HasNext comes from fetching one row beyond the requested size.
type Slice struct {
	Items   []db.Scrap `json:"data"`
	Page    int        `json:"page"`
	Size    int        `json:"size"`
	HasNext bool       `json:"has_next"`
}

// Store owns scrap persistence. Create is insert-only; SoftDelete stamps the
// deletion timestamp on active rows; List returns active rows by recency.
type Store interface {
	// InTx runs fn against a transaction-scoped Store. Used to keep the
	// duplicate check and the insert in one atomic scope.
	InTx(ctx context.Context, fn func(Store) error) error
	HasActive(ctx context.Context, userID uint, pageURL string) (bool, error)
	Create(ctx context.Context, s *db.Scrap) error
	GetActive(ctx context.Context, userID, scrapID uint) (*db.Scrap, error)
	SoftDelete(ctx context.Context, userID, scrapID uint) error
	List(ctx context.Context, userID uint, page, size int) (*Slice, error)
}

type gormStore struct {
	db *gorm.DB
}

// NewStore creates a Store backed by the given gorm connection.
func NewStore(conn *gorm.DB) Store {
	return &gormStore{db: conn}
}

func (g *gormStore) InTx(ctx context.Context, fn func(Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (g *gormStore) HasActive(ctx context.Context, userID uint, pageURL string) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&db.Scrap{}).
		Where("user_id = ? AND page_url = ? AND deleted_at IS NULL", userID, pageURL).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return count > 0, nil
}

func (g *gormStore) Create(ctx context.Context, s *db.Scrap) error {
	if err := g.db.WithContext(ctx).Create(s).Error; err != nil {
		// The unique index over (user_id, page_url, deleted_unix) backs the
		// advisory duplicate check; a concurrent submission that slipped past
		// it lands here.
		var mysqlErr *mysqldrv.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return ErrDuplicateScrap
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func (g *gormStore) GetActive(ctx context.Context, userID, scrapID uint) (*db.Scrap, error) {
	var s db.Scrap
	err := g.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND deleted_at IS NULL", scrapID, userID).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &s, nil
}

func (g *gormStore) SoftDelete(ctx context.Context, userID, scrapID uint) error {
	now := time.Now()
	result := g.db.WithContext(ctx).Model(&db.Scrap{}).
		Where("id = ? AND user_id = ? AND deleted_at IS NULL", scrapID, userID).
		Updates(map[string]interface{}{
			"deleted_at":   now,
			"deleted_unix": now.UnixNano(),
		})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, result.Error)
	}
	// Already-deleted rows are not matched, so a second delete fails here.
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *gormStore) List(ctx context.Context, userID uint, page, size int) (*Slice, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	// Fetch one row past the page to learn whether a further page exists.
	var items []db.Scrap
	err := g.db.WithContext(ctx).
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * size).
		Limit(size + 1).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	hasNext := len(items) > size
	if hasNext {
		items = items[:size]
	}

	return &Slice{
		Items:   items,
		Page:    page,
		Size:    size,
		HasNext: hasNext,
	}, nil
}
