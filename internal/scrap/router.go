package scrap

import (
	"fmt"

	"github.com/scrapbox/scrap-backend/internal/classifier"
	"github.com/scrapbox/scrap-backend/internal/db"
)

// persister maps a classifier payload into a typed scrap record for one
// variant. All persisters share the base-field mapping and differ only in the
// extension group they populate. The page URL stored is always the one the
// user submitted, never one re-derived from the payload.
type persister func(userID uint, pageURL string, payload *classifier.Payload) *db.Scrap

// routePersister dispatches on the payload's declared type. The discriminator
// was already validated at the classifier boundary; an unknown value here
// (e.g. from a hand-built payload) is still rejected as a classification
// error rather than silently persisted as "other".
func routePersister(t db.ScrapType) (persister, error) {
	switch t {
	case db.TypeVideo:
		return persistVideo, nil
	case db.TypeArticle:
		return persistArticle, nil
	case db.TypeProduct:
		return persistProduct, nil
	case db.TypeOther:
		return persistOther, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized type %q", classifier.ErrClassification, t)
	}
}

func baseScrap(userID uint, pageURL string, t db.ScrapType, payload *classifier.Payload) *db.Scrap {
	return &db.Scrap{
		UserID:       userID,
		PageURL:      pageURL,
		Type:         t,
		Title:        payload.Title,
		ThumbnailURL: payload.ThumbnailURL,
		Description:  payload.Description,
	}
}

func persistVideo(userID uint, pageURL string, payload *classifier.Payload) *db.Scrap {
	s := baseScrap(userID, pageURL, db.TypeVideo, payload)
	s.Video = db.VideoFields{
		EmbedURL:        strValue(payload.EmbedURL),
		ChannelName:     strValue(payload.ChannelName),
		ChannelImageURL: strValue(payload.ChannelImageURL),
		WatchedCount:    intValue(payload.WatchedCount),
		PlayTime:        intValue(payload.PlayTime),
		PublishedAt:     payload.PublishedAt(),
		SiteName:        strValue(payload.SiteName),
		Genre:           strValue(payload.Genre),
	}
	return s
}

func persistArticle(userID uint, pageURL string, payload *classifier.Payload) *db.Scrap {
	s := baseScrap(userID, pageURL, db.TypeArticle, payload)
	s.Article = db.ArticleFields{
		AuthorName:     strValue(payload.AuthorName),
		AuthorImageURL: strValue(payload.AuthorImageURL),
		BlogName:       strValue(payload.BlogName),
		PublishedAt:    payload.PublishedAt(),
		SiteName:       strValue(payload.SiteName),
	}
	return s
}

func persistProduct(userID uint, pageURL string, payload *classifier.Payload) *db.Scrap {
	s := baseScrap(userID, pageURL, db.TypeProduct, payload)
	s.Product = db.ProductFields{
		Price:    strValue(payload.Price),
		Category: strValue(payload.Category),
		SiteName: strValue(payload.SiteName),
	}
	return s
}

// persistOther keeps only the base fields, reserved for the explicit "other" tag.
func persistOther(userID uint, pageURL string, payload *classifier.Payload) *db.Scrap {
	return baseScrap(userID, pageURL, db.TypeOther, payload)
}

func strValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intValue(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
