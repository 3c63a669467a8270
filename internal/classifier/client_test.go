package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrapbox/scrap-backend/internal/db"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(&Config{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
	})
	return client, server
}

func TestClassify_Video(t *testing.T) {
	var gotRequest classifyRequest
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"type": "video",
			"title": "T",
			"thumbnail_url": "th",
			"description": "d",
			"embed_url": "e",
			"channel_name": "C",
			"channel_image_url": "ci",
			"watched_cnt": 5,
			"play_time": 321,
			"published_date": 1700000000,
			"site_name": "YouTube",
			"genre": "music"
		}`))
	})
	defer server.Close()

	payload, err := client.Classify(context.Background(), "https://ex.com/a")
	require.NoError(t, err)

	assert.Equal(t, "https://ex.com/a", gotRequest.PageURL)
	assert.Equal(t, db.TypeVideo, payload.Type)
	assert.Equal(t, "T", payload.Title)
	assert.Equal(t, "th", payload.ThumbnailURL)
	assert.Equal(t, "d", payload.Description)
	require.NotNil(t, payload.EmbedURL)
	assert.Equal(t, "e", *payload.EmbedURL)
	require.NotNil(t, payload.ChannelName)
	assert.Equal(t, "C", *payload.ChannelName)
	require.NotNil(t, payload.WatchedCount)
	assert.Equal(t, int64(5), *payload.WatchedCount)
	require.NotNil(t, payload.PublishedAt())
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), *payload.PublishedAt())
}

func TestClassify_VideoPartialFields(t *testing.T) {
	// The classifier is free to omit variant fields it could not determine.
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"video","title":"T","thumbnail_url":"th","description":"d","embed_url":"e","channel_name":"C","watched_cnt":5}`))
	})
	defer server.Close()

	payload, err := client.Classify(context.Background(), "https://ex.com/a")
	require.NoError(t, err)

	assert.Equal(t, db.TypeVideo, payload.Type)
	assert.Nil(t, payload.ChannelImageURL)
	assert.Nil(t, payload.PlayTime)
	assert.Nil(t, payload.PublishedAt())
}

func TestClassify_Article(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"article","title":"A","thumbnail_url":"th","description":"d","author_name":"Kim","blog_name":"Blog","site_name":"velog"}`))
	})
	defer server.Close()

	payload, err := client.Classify(context.Background(), "https://ex.com/post")
	require.NoError(t, err)

	assert.Equal(t, db.TypeArticle, payload.Type)
	require.NotNil(t, payload.AuthorName)
	assert.Equal(t, "Kim", *payload.AuthorName)
	require.NotNil(t, payload.BlogName)
	assert.Equal(t, "Blog", *payload.BlogName)
}

func TestClassify_Other(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"other","title":"O","thumbnail_url":"","description":""}`))
	})
	defer server.Close()

	payload, err := client.Classify(context.Background(), "https://ex.com/misc")
	require.NoError(t, err)
	assert.Equal(t, db.TypeOther, payload.Type)
}

func TestClassify_UnknownType(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"recipe","title":"T","thumbnail_url":"th","description":"d"}`))
	})
	defer server.Close()

	_, err := client.Classify(context.Background(), "https://ex.com/a")
	assert.ErrorIs(t, err, ErrClassification)
}

func TestClassify_MissingDiscriminator(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"T","thumbnail_url":"th","description":"d"}`))
	})
	defer server.Close()

	_, err := client.Classify(context.Background(), "https://ex.com/a")
	assert.ErrorIs(t, err, ErrClassification)
}

func TestClassify_MissingBaseField(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"video","thumbnail_url":"th","description":"d"}`))
	})
	defer server.Close()

	_, err := client.Classify(context.Background(), "https://ex.com/a")
	assert.ErrorIs(t, err, ErrClassification)
}

func TestClassify_MistypedField(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"video","title":"T","thumbnail_url":"th","description":"d","watched_cnt":"many"}`))
	})
	defer server.Close()

	_, err := client.Classify(context.Background(), "https://ex.com/a")
	assert.ErrorIs(t, err, ErrClassification)
}

func TestClassify_MalformedBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})
	defer server.Close()

	_, err := client.Classify(context.Background(), "https://ex.com/a")
	assert.ErrorIs(t, err, ErrClassification)
}

func TestClassify_ServerError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer server.Close()

	_, err := client.Classify(context.Background(), "https://ex.com/a")
	assert.ErrorIs(t, err, ErrClassification)
}

func TestClassify_TransportError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	server.Close() // connection refused from here on

	_, err := client.Classify(context.Background(), "https://ex.com/a")
	assert.ErrorIs(t, err, ErrClassification)
}

func TestParseType(t *testing.T) {
	for _, raw := range []string{"video", "article", "product", "other"} {
		got, err := ParseType(raw)
		require.NoError(t, err)
		assert.Equal(t, db.ScrapType(raw), got)
	}

	_, err := ParseType("podcast")
	assert.ErrorIs(t, err, ErrClassification)
}
