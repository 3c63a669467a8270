package classifier

import (
	"errors"
	"fmt"
	"time"

	"github.com/scrapbox/scrap-backend/internal/db"
)

// ErrClassification marks every failure of the external classification step:
// unreachable collaborator, non-2xx response, unparsable body, missing
// required fields, or an unrecognized type discriminator. Callers check it
// with errors.Is and decide for themselves whether to resubmit.
var ErrClassification = errors.New("classification failed")

// Payload is the validated response of the classifier for one page URL.
// Type is always one of the four known discriminators; Title, ThumbnailURL
// and Description are always present. Variant fields are optional, left as
// nil when the classifier could not determine them.
type Payload struct {
	Type         db.ScrapType
	Title        string
	ThumbnailURL string
	Description  string

	// video
	EmbedURL        *string
	ChannelName     *string
	ChannelImageURL *string
	WatchedCount    *int64
	PlayTime        *int64
	PublishedDate   *int64 // unix seconds
	SiteName        *string
	Genre           *string

	// article
	AuthorName     *string
	AuthorImageURL *string
	BlogName       *string

	// product
	Price    *string
	Category *string
}

// PublishedAt converts the raw published_date epoch into a time, or nil.
func (p *Payload) PublishedAt() *time.Time {
	if p.PublishedDate == nil {
		return nil
	}
	t := time.Unix(*p.PublishedDate, 0).UTC()
	return &t
}

// ParseType maps the classifier's type discriminator onto a ScrapType.
// Anything outside the closed set is a classification error; there is no
// fallback to "other" because misrouting would corrupt the typed storage shape.
func ParseType(raw string) (db.ScrapType, error) {
	switch db.ScrapType(raw) {
	case db.TypeVideo, db.TypeArticle, db.TypeProduct, db.TypeOther:
		return db.ScrapType(raw), nil
	default:
		return "", fmt.Errorf("%w: unrecognized type %q", ErrClassification, raw)
	}
}
