package scrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrapbox/scrap-backend/internal/classifier"
	"github.com/scrapbox/scrap-backend/internal/db"
)

func strPtr(s string) *string { return &s }
func intPtr(n int64) *int64   { return &n }

func TestRoutePersister_Video(t *testing.T) {
	payload := &classifier.Payload{
		Type:            db.TypeVideo,
		Title:           "T",
		ThumbnailURL:    "th",
		Description:     "d",
		EmbedURL:        strPtr("e"),
		ChannelName:     strPtr("C"),
		ChannelImageURL: strPtr("ci"),
		WatchedCount:    intPtr(5),
		PlayTime:        intPtr(321),
		PublishedDate:   intPtr(1700000000),
		SiteName:        strPtr("YouTube"),
		Genre:           strPtr("music"),
	}

	persist, err := routePersister(payload.Type)
	require.NoError(t, err)

	record := persist(7, "https://ex.com/a", payload)
	assert.Equal(t, uint(7), record.UserID)
	assert.Equal(t, "https://ex.com/a", record.PageURL)
	assert.Equal(t, db.TypeVideo, record.Type)
	assert.Equal(t, "T", record.Title)
	assert.Equal(t, "th", record.ThumbnailURL)
	assert.Equal(t, "d", record.Description)
	assert.Equal(t, "e", record.Video.EmbedURL)
	assert.Equal(t, "C", record.Video.ChannelName)
	assert.Equal(t, "ci", record.Video.ChannelImageURL)
	assert.Equal(t, int64(5), record.Video.WatchedCount)
	assert.Equal(t, int64(321), record.Video.PlayTime)
	require.NotNil(t, record.Video.PublishedAt)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), *record.Video.PublishedAt)
	assert.Equal(t, "YouTube", record.Video.SiteName)
	assert.Equal(t, "music", record.Video.Genre)

	// other variant groups stay empty
	assert.Equal(t, db.ArticleFields{}, record.Article)
	assert.Equal(t, db.ProductFields{}, record.Product)
}

func TestRoutePersister_Article(t *testing.T) {
	payload := &classifier.Payload{
		Type:           db.TypeArticle,
		Title:          "A",
		ThumbnailURL:   "th",
		Description:    "d",
		AuthorName:     strPtr("Kim"),
		AuthorImageURL: strPtr("ai"),
		BlogName:       strPtr("Blog"),
		SiteName:       strPtr("velog"),
	}

	persist, err := routePersister(payload.Type)
	require.NoError(t, err)

	record := persist(7, "https://ex.com/post", payload)
	assert.Equal(t, db.TypeArticle, record.Type)
	assert.Equal(t, "Kim", record.Article.AuthorName)
	assert.Equal(t, "ai", record.Article.AuthorImageURL)
	assert.Equal(t, "Blog", record.Article.BlogName)
	assert.Equal(t, "velog", record.Article.SiteName)
	assert.Equal(t, db.VideoFields{}, record.Video)
	assert.Equal(t, db.ProductFields{}, record.Product)
}

func TestRoutePersister_Product(t *testing.T) {
	payload := &classifier.Payload{
		Type:         db.TypeProduct,
		Title:        "P",
		ThumbnailURL: "th",
		Description:  "d",
		Price:        strPtr("12,900"),
		Category:     strPtr("kitchen"),
		SiteName:     strPtr("coupang"),
	}

	persist, err := routePersister(payload.Type)
	require.NoError(t, err)

	record := persist(7, "https://ex.com/item", payload)
	assert.Equal(t, db.TypeProduct, record.Type)
	assert.Equal(t, "12,900", record.Product.Price)
	assert.Equal(t, "kitchen", record.Product.Category)
	assert.Equal(t, "coupang", record.Product.SiteName)
	assert.Equal(t, db.VideoFields{}, record.Video)
	assert.Equal(t, db.ArticleFields{}, record.Article)
}

func TestRoutePersister_Other(t *testing.T) {
	payload := &classifier.Payload{
		Type:         db.TypeOther,
		Title:        "O",
		ThumbnailURL: "th",
		Description:  "d",
		// variant fields on an "other" payload are ignored, not persisted
		EmbedURL: strPtr("e"),
	}

	persist, err := routePersister(payload.Type)
	require.NoError(t, err)

	record := persist(7, "https://ex.com/misc", payload)
	assert.Equal(t, db.TypeOther, record.Type)
	assert.Equal(t, db.VideoFields{}, record.Video)
	assert.Equal(t, db.ArticleFields{}, record.Article)
	assert.Equal(t, db.ProductFields{}, record.Product)
}

func TestRoutePersister_UnknownType(t *testing.T) {
	_, err := routePersister(db.ScrapType("recipe"))
	assert.ErrorIs(t, err, classifier.ErrClassification)
}
