package db

import "time"

type ScrapType string

const (
	TypeVideo   ScrapType = "video"
	TypeArticle ScrapType = "article"
	TypeProduct ScrapType = "product"
	TypeOther   ScrapType = "other"
)

// VideoFields are the extension columns populated only for video scraps.
type VideoFields struct {
	EmbedURL        string     `gorm:"size:2083" json:"embed_url,omitempty"`
	ChannelName     string     `gorm:"size:100" json:"channel_name,omitempty"`
	ChannelImageURL string     `gorm:"size:2083" json:"channel_image_url,omitempty"`
	WatchedCount    int64      `json:"watched_count,omitempty"`
	PlayTime        int64      `json:"play_time,omitempty"` // seconds
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	SiteName        string     `gorm:"size:100" json:"site_name,omitempty"`
	Genre           string     `gorm:"size:100" json:"genre,omitempty"`
}

// ArticleFields are the extension columns populated only for article scraps.
type ArticleFields struct {
	AuthorName     string     `gorm:"size:100" json:"author_name,omitempty"`
	AuthorImageURL string     `gorm:"size:2083" json:"author_image_url,omitempty"`
	BlogName       string     `gorm:"size:100" json:"blog_name,omitempty"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	SiteName       string     `gorm:"size:100" json:"site_name,omitempty"`
}

// ProductFields are the extension columns populated only for product scraps.
type ProductFields struct {
	Price    string `gorm:"size:100" json:"price,omitempty"`
	Category string `gorm:"size:100" json:"category,omitempty"`
	SiteName string `gorm:"size:100" json:"site_name,omitempty"`
}

// Scrap represents one ingested, classified web page owned by a user.
// The Type discriminator is fixed at creation and only the matching extension
// group carries data. DeletedUnix is 0 while the record is active and holds
// the deletion time in nanoseconds afterwards, so the composite unique index
// rejects a second active row for the same (user, page_url) while allowing
// any number of deleted ones.
type Scrap struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"uniqueIndex:idx_user_page_active,priority:1" json:"user_id"`
	PageURL      string     `gorm:"not null;size:700;uniqueIndex:idx_user_page_active,priority:2" json:"page_url"`
	Type         ScrapType  `gorm:"not null;size:20" json:"type"`
	Title        string     `gorm:"size:255" json:"title"`
	ThumbnailURL string     `gorm:"size:2083" json:"thumbnail_url"`
	Description  string     `gorm:"size:1000" json:"description"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	DeletedUnix  int64      `gorm:"not null;default:0;uniqueIndex:idx_user_page_active,priority:3" json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Video   VideoFields   `gorm:"embedded;embeddedPrefix:video_" json:"video,omitempty"`
	Article ArticleFields `gorm:"embedded;embeddedPrefix:article_" json:"article,omitempty"`
	Product ProductFields `gorm:"embedded;embeddedPrefix:product_" json:"product,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Active reports whether the scrap has not been soft-deleted.
func (s *Scrap) Active() bool {
	return s.DeletedAt == nil
}

// User represents an authenticated user
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null;size:100" json:"username"`
	Password  string    `gorm:"not null;size:255" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
