package api

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"ezypc-storefront/internal/catalog"
	"ezypc-storefront/internal/common/errors"
	"ezypc-storefront/internal/models"
	"ezypc-storefront/internal/usedparts"

	"github.com/gofiber/fiber/v2"
)

type recommendationRequest struct {
	UseCase  models.UseCase   `json:"useCase"`
	Answers  []models.Answer  `json:"answers"`
	Existing []models.Product `json:"existing,omitempty"`
}

type similarRequest struct {
	Product       models.Product `json:"product"`
	ExcludeTitles []string       `json:"excludeTitles"`
}

type similarResponse struct {
	Recommendations []models.Product `json:"recommendations"`
	HasMore         bool             `json:"hasMore"`
}

type detailRequest struct {
	Product models.Product `json:"product"`
}

type detailResponse struct {
	Title            string                  `json:"title"`
	AverageRating    float64                 `json:"averageRating"`
	ReviewCount      int                     `json:"reviewCount"`
	PurchaseOptions  []models.PurchaseOption `json:"purchaseOptions"`
	PriceHistory     []catalog.PricePoint    `json:"priceHistory"`
	UsedPart         *models.UsedPart        `json:"usedPart"`
	GradeDescription string                  `json:"gradeDescription,omitempty"`
}

type useCaseSummary struct {
	UseCase       models.UseCase `json:"useCase"`
	DisplayName   string         `json:"displayName"`
	Description   string         `json:"description"`
	QuestionCount int            `json:"questionCount"`
}

// observe records one recommendation call for the OpenTelemetry meters.
func (s *Server) observe(ctx context.Context, kind string, start time.Time, batch *models.Batch, err error) {
	outcome := "ok"
	switch {
	case err != nil:
		outcome = string(errors.FromError(err).Code)
	case batch == nil:
		outcome = "no_result"
	}
	s.obs.RecordRecommendation(ctx, kind, outcome, time.Since(start))
}

func (s *Server) popularProducts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	start := time.Now()

	batch, err := s.catalog.GetPopularProducts(ctx)
	s.observe(ctx, catalog.KindPopular, start, batch, err)
	if err != nil {
		return s.respondError(c, err)
	}
	if batch == nil {
		return s.respondNoResult(c, "popular-products")
	}
	return c.JSON(batch)
}

// listProducts pages through the popular listing: ?type= selects a product
// type and ?visible= how many items the client already shows.
func (s *Server) listProducts(c *fiber.Ctx) error {
	visible := catalog.ItemsPerLoad
	if raw := c.Query("visible"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return s.respondError(c, errors.NewInvalidInputError("visible must be a non-negative integer"))
		}
		visible = n
	}

	ctx := c.UserContext()
	start := time.Now()

	batch, err := s.catalog.GetPopularProducts(ctx)
	s.observe(ctx, catalog.KindPopular, start, batch, err)
	if err != nil {
		return s.respondError(c, err)
	}
	if batch == nil {
		return s.respondNoResult(c, "popular-products")
	}

	return c.JSON(catalog.Paginate(batch.Recommendations, c.Query("type", catalog.FilterAll), visible))
}

func (s *Server) recommendations(c *fiber.Ctx) error {
	var req recommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, errors.NewInvalidInputError("malformed JSON body"))
	}
	if err := s.questions.ValidateAnswers(req.UseCase, req.Answers); err != nil {
		return s.respondError(c, err)
	}

	ctx := c.UserContext()
	start := time.Now()

	batch, err := s.catalog.GetPCRecommendation(ctx, req.UseCase, req.Answers)
	s.observe(ctx, catalog.KindGuided, start, batch, err)
	if err != nil {
		return s.respondError(c, err)
	}
	if batch == nil {
		return s.respondNoResult(c, "pc-recommendation")
	}

	return c.JSON(models.Batch{
		Recommendations: catalog.MergeRecommended(req.Existing, batch.Recommendations),
	})
}

// similarProducts returns the next page of alternatives. A page with nothing
// new ends the feed with hasMore=false rather than an error.
func (s *Server) similarProducts(c *fiber.Ctx) error {
	var req similarRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, errors.NewInvalidInputError("malformed JSON body"))
	}
	if req.Product.Title == "" {
		return s.respondError(c, errors.NewInvalidInputError("product.title is required"))
	}

	exclude := req.ExcludeTitles
	if len(exclude) == 0 {
		exclude = catalog.SimilarExcludeTitles(req.Product, nil)
	}

	ctx := c.UserContext()
	start := time.Now()

	batch, err := s.catalog.GetSimilarProducts(ctx, req.Product, exclude)
	s.observe(ctx, catalog.KindSimilar, start, batch, err)
	if err != nil {
		return s.respondError(c, err)
	}
	if batch == nil || len(batch.Recommendations) == 0 {
		return c.JSON(similarResponse{Recommendations: []models.Product{}, HasMore: false})
	}
	return c.JSON(similarResponse{Recommendations: batch.Recommendations, HasMore: true})
}

func (s *Server) productDetail(c *fiber.Ctx) error {
	var req detailRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, errors.NewInvalidInputError("malformed JSON body"))
	}
	p := req.Product
	if p.Title == "" {
		return s.respondError(c, errors.NewInvalidInputError("product.title is required"))
	}

	resp := detailResponse{
		Title:           p.Title,
		AverageRating:   catalog.AverageRating(p.Reviews),
		ReviewCount:     len(p.Reviews),
		PurchaseOptions: catalog.SortedPurchaseOptions(p.PurchaseOptions),
		PriceHistory:    catalog.PriceHistory(p.EstimatedPriceINR, nil),
	}

	if s.usedParts != nil {
		part, err := s.usedParts.Match(c.UserContext(), p.Components)
		if err != nil {
			s.logger.Warn("used part lookup failed", map[string]interface{}{
				"product": p.Title,
				"error":   err,
			})
		} else if part != nil {
			resp.UsedPart = part
			resp.GradeDescription = usedparts.GradeDescription(part.Grade)
		}
	}

	return c.JSON(resp)
}

func (s *Server) useCases(c *fiber.Ctx) error {
	entries := s.questions.UseCaseEntries()
	out := make([]useCaseSummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, useCaseSummary{
			UseCase:       e.UseCase,
			DisplayName:   e.DisplayName,
			Description:   e.Description,
			QuestionCount: len(e.Questions),
		})
	}
	return c.JSON(out)
}

func (s *Server) questionsFor(c *fiber.Ctx) error {
	raw, err := url.PathUnescape(c.Params("useCase"))
	if err != nil {
		return s.respondError(c, errors.NewInvalidInputError("malformed use case"))
	}

	questions, err := s.questions.Questions(models.UseCase(raw))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"useCase":   raw,
		"questions": questions,
	})
}

func (s *Server) listUsedParts(c *fiber.Ctx) error {
	parts, err := s.usedParts.List(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(parts)
}

func (s *Server) getUsedPart(c *fiber.Ctx) error {
	part, err := s.usedParts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"part":             part,
		"gradeDescription": usedparts.GradeDescription(part.Grade),
	})
}

func (s *Server) createInquiry(c *fiber.Ctx) error {
	var req usedparts.InquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, errors.NewInvalidInputError("malformed JSON body"))
	}

	inq, err := s.usedParts.CreateInquiry(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inq)
}
