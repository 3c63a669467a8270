package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// Classifier sends a page URL to the external classification service and
// returns its typed payload. It performs no persistence, knows nothing about
// users, and never retries; retry is the caller's decision.
type Classifier interface {
	Classify(ctx context.Context, pageURL string) (*Payload, error)
}

// Config holds classifier client configuration
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewClientConfig creates a classifier configuration from environment variables
func NewClientConfig() *Config {
	baseURL := os.Getenv("CLASSIFIER_API_URL")
	if baseURL == "" {
		log.Println("WARNING: CLASSIFIER_API_URL not set, using http://localhost:9090/classify")
		baseURL = "http://localhost:9090/classify"
	}

	timeout := 30 * time.Second
	if timeoutStr := os.Getenv("CLASSIFIER_TIMEOUT"); timeoutStr != "" {
		if parsed, err := time.ParseDuration(timeoutStr); err == nil {
			timeout = parsed
		}
	}

	return &Config{
		BaseURL: baseURL,
		Timeout: timeout,
	}
}

// Client is the HTTP implementation of Classifier.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a classifier client
func NewClient(config *Config) *Client {
	if config == nil {
		config = NewClientConfig()
	}

	return &Client{
		baseURL: config.BaseURL,
		client: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type classifyRequest struct {
	PageURL string `json:"page_url"`
}

// rawPayload mirrors the wire format. Base fields are pointers so that a
// missing field is distinguishable from an empty one; variant fields stay
// pointers all the way through because they are genuinely optional.
type rawPayload struct {
	Type         *string `json:"type"`
	Title        *string `json:"title"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Description  *string `json:"description"`

	EmbedURL        *string `json:"embed_url"`
	ChannelName     *string `json:"channel_name"`
	ChannelImageURL *string `json:"channel_image_url"`
	WatchedCount    *int64  `json:"watched_cnt"`
	PlayTime        *int64  `json:"play_time"`
	PublishedDate   *int64  `json:"published_date"`
	SiteName        *string `json:"site_name"`
	Genre           *string `json:"genre"`

	AuthorName     *string `json:"author_name"`
	AuthorImageURL *string `json:"author_image_url"`
	BlogName       *string `json:"blog_name"`

	Price    *string `json:"price"`
	Category *string `json:"category"`
}

// Classify posts the page URL to the collaborator and validates the response.
func (c *Client) Classify(ctx context.Context, pageURL string) (*Payload, error) {
	body, err := json.Marshal(classifyRequest{PageURL: pageURL})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrClassification, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrClassification, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request classifier: %v", ErrClassification, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// drain so the connection can be reused
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: classifier returned HTTP %d", ErrClassification, resp.StatusCode)
	}

	var raw rawPayload
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrClassification, err)
	}

	return validate(&raw)
}

// validate turns a raw wire payload into a Payload, failing fast on any
// missing base field or unknown discriminator instead of defaulting.
func validate(raw *rawPayload) (*Payload, error) {
	if raw.Type == nil {
		return nil, fmt.Errorf("%w: response missing type", ErrClassification)
	}
	scrapType, err := ParseType(*raw.Type)
	if err != nil {
		return nil, err
	}
	if raw.Title == nil {
		return nil, fmt.Errorf("%w: response missing title", ErrClassification)
	}
	if raw.ThumbnailURL == nil {
		return nil, fmt.Errorf("%w: response missing thumbnail_url", ErrClassification)
	}
	if raw.Description == nil {
		return nil, fmt.Errorf("%w: response missing description", ErrClassification)
	}

	return &Payload{
		Type:         scrapType,
		Title:        *raw.Title,
		ThumbnailURL: *raw.ThumbnailURL,
		Description:  *raw.Description,

		EmbedURL:        raw.EmbedURL,
		ChannelName:     raw.ChannelName,
		ChannelImageURL: raw.ChannelImageURL,
		WatchedCount:    raw.WatchedCount,
		PlayTime:        raw.PlayTime,
		PublishedDate:   raw.PublishedDate,
		SiteName:        raw.SiteName,
		Genre:           raw.Genre,

		AuthorName:     raw.AuthorName,
		AuthorImageURL: raw.AuthorImageURL,
		BlogName:       raw.BlogName,

		Price:    raw.Price,
		Category: raw.Category,
	}, nil
}
