package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/showcase/portfolio-api/internal/api/metrics"
	"github.com/showcase/portfolio-api/internal/core/domain"
	"github.com/showcase/portfolio-api/internal/core/ports"
)

type ReviewHandler struct {
	reviewService ports.ReviewService
}

func NewReviewHandler(reviewService ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type submitReviewRequest struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

type submitReviewResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type reviewItem struct {
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"created_at"`
}

type listReviewsResponse struct {
	Reviews []reviewItem `json:"reviews"`
}

// Submit appends a new review.
//
// @Summary      Submit a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        body  body      submitReviewRequest  true  "Review"
// @Success      201   {object}  submitReviewResponse
// @Failure      400   {object}  submitReviewResponse
// @Router       /reviews [post]
func (h *ReviewHandler) Submit(c echo.Context) error {
	var req submitReviewRequest
	if err := c.Bind(&req); err != nil {
		// A fractional or quoted rating fails the bind before it can be
		// clamped anywhere; name the contract instead of guessing.
		if bindFailedOn(err, "rating") {
			return c.JSON(http.StatusBadRequest, submitReviewResponse{Success: false, Error: domain.ErrInvalidRating.Error()})
		}
		return c.JSON(http.StatusBadRequest, submitReviewResponse{Success: false, Error: "invalid payload"})
	}

	_, err := h.reviewService.Submit(c.Request().Context(), ports.SubmitReviewInput{
		Name:   req.Name,
		Rating: req.Rating,
		Review: req.Review,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRating) {
			metrics.ReviewsSubmittedTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusBadRequest, submitReviewResponse{Success: false, Error: domain.ErrInvalidRating.Error()})
		}
		var ve domain.ValidationErrors
		if errors.As(err, &ve) {
			metrics.ReviewsSubmittedTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusBadRequest, submitReviewResponse{Success: false, Error: ve.Error()})
		}
		metrics.ReviewsSubmittedTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.ReviewsSubmittedTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, submitReviewResponse{Success: true})
}

// List returns every review in insertion order. Pagination is the client
// carousel's concern; the full ordered set always travels.
//
// @Summary      List all reviews
// @Tags         reviews
// @Produce      json
// @Success      200  {object}  listReviewsResponse
// @Router       /reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	reviews, err := h.reviewService.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := listReviewsResponse{Reviews: make([]reviewItem, 0, len(reviews))}
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, reviewItem{
			Name:      r.Name,
			Rating:    r.Rating,
			Review:    r.Review,
			CreatedAt: r.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// bindFailedOn reports whether a bind error was a JSON type mismatch on the
// named field.
func bindFailedOn(err error, field string) bool {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return false
	}
	var ute *json.UnmarshalTypeError
	if !errors.As(he.Internal, &ute) {
		return false
	}
	return ute.Field == field
}
