package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scrapbox/scrap-backend/internal/classifier"
	"github.com/scrapbox/scrap-backend/internal/db"
	"github.com/scrapbox/scrap-backend/internal/middleware"
	"github.com/scrapbox/scrap-backend/internal/scrap"
)

// PostScrapRequest represents the scrap creation request
type PostScrapRequest struct {
	PageURL string `json:"page_url" binding:"required,url"`
}

// CreateScrapResponse confirms an ingestion by echoing the submitted URL
type CreateScrapResponse struct {
	ID      uint   `json:"id"`
	PageURL string `json:"page_url"`
	Type    string `json:"type"`
}

// ScrapResponse represents one scrap; only the sub-object matching the
// type discriminator is populated.
type ScrapResponse struct {
	ID           uint              `json:"id"`
	PageURL      string            `json:"page_url"`
	Type         string            `json:"type"`
	Title        string            `json:"title"`
	ThumbnailURL string            `json:"thumbnail_url"`
	Description  string            `json:"description"`
	CreatedAt    string            `json:"created_at"`
	Video        *db.VideoFields   `json:"video,omitempty"`
	Article      *db.ArticleFields `json:"article,omitempty"`
	Product      *db.ProductFields `json:"product,omitempty"`
}

// ListScrapsResponse represents one page of scraps plus a has-more indicator
type ListScrapsResponse struct {
	Data    []ScrapResponse `json:"data"`
	Page    int             `json:"page"`
	Size    int             `json:"size"`
	HasNext bool            `json:"has_next"`
}

func toScrapResponse(s *db.Scrap) ScrapResponse {
	resp := ScrapResponse{
		ID:           s.ID,
		PageURL:      s.PageURL,
		Type:         string(s.Type),
		Title:        s.Title,
		ThumbnailURL: s.ThumbnailURL,
		Description:  s.Description,
		CreatedAt:    s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}

	switch s.Type {
	case db.TypeVideo:
		v := s.Video
		resp.Video = &v
	case db.TypeArticle:
		a := s.Article
		resp.Article = &a
	case db.TypeProduct:
		p := s.Product
		resp.Product = &p
	}

	return resp
}

// PostScrapHandler handles scrap ingestion
func PostScrapHandler(service *scrap.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var req PostScrapRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Printf("Scrap creation validation error: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid URL format",
				"details": err.Error(),
			})
			return
		}

		record, err := service.CreateScrap(c.Request.Context(), user.UserID, req.PageURL)
		if err != nil {
			switch {
			case errors.Is(err, scrap.ErrDuplicateScrap):
				c.JSON(http.StatusConflict, gin.H{"error": "Scrap already exists for this URL"})
			case errors.Is(err, classifier.ErrClassification):
				log.Printf("Classification failed for %s: %v", req.PageURL, err)
				c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to classify page"})
			default:
				log.Printf("Failed to create scrap for %s: %v", req.PageURL, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save scrap"})
			}
			return
		}

		c.JSON(http.StatusCreated, CreateScrapResponse{
			ID:      record.ID,
			PageURL: record.PageURL,
			Type:    string(record.Type),
		})
	}
}

// ListScrapsHandler handles paginated scrap listing
func ListScrapsHandler(service *scrap.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}

		size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
		if err != nil || size < 1 || size > 100 {
			size = 10
		}

		slice, err := service.ListScraps(c.Request.Context(), user.UserID, page, size)
		if err != nil {
			log.Printf("Failed to list scraps for user %d: %v", user.UserID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		data := make([]ScrapResponse, 0, len(slice.Items))
		for i := range slice.Items {
			data = append(data, toScrapResponse(&slice.Items[i]))
		}

		c.JSON(http.StatusOK, ListScrapsResponse{
			Data:    data,
			Page:    slice.Page,
			Size:    slice.Size,
			HasNext: slice.HasNext,
		})
	}
}

// GetScrapHandler handles retrieving a single scrap
func GetScrapHandler(service *scrap.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scrap ID"})
			return
		}

		record, err := service.GetScrap(c.Request.Context(), user.UserID, uint(id))
		if err != nil {
			if errors.Is(err, scrap.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Scrap not found"})
				return
			}
			log.Printf("Failed to fetch scrap %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, toScrapResponse(record))
	}
}

// DeleteScrapHandler handles soft-deletion of a scrap
func DeleteScrapHandler(service *scrap.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scrap ID"})
			return
		}

		if err := service.DeleteScrap(c.Request.Context(), user.UserID, uint(id)); err != nil {
			if errors.Is(err, scrap.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Scrap not found"})
				return
			}
			log.Printf("Failed to delete scrap %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
