package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/mkarpenko/trademark-registry/backend/internal/domain"
	"github.com/mkarpenko/trademark-registry/backend/internal/service"
)

// registerTrademarkRequest is the POST /api/v1/trademarks body.
// Dates use the date-only JSON form ("2006-01-02").
type registerTrademarkRequest struct {
	Title             string             `json:"title" validate:"required"`
	Description       *string            `json:"description"`
	ApplicationNumber string             `json:"application_number" validate:"required"`
	ApplicationDate   openapi_types.Date `json:"application_date" validate:"required"`
	RegistrationDate  openapi_types.Date `json:"registration_date" validate:"required"`
	ExpiryDate        openapi_types.Date `json:"expiry_date" validate:"required"`
}

// searchTrademarkRequest carries the validated GET /search query parameters.
type searchTrademarkRequest struct {
	Title      string  `validate:"required"`
	ExactMatch bool
	Similarity float64 `validate:"gt=0,lt=1"`
}

// trademarkResponse is the JSON shape of one trademark record.
type trademarkResponse struct {
	ID                string              `json:"id"`
	Title             string              `json:"title"`
	Description       *string             `json:"description,omitempty"`
	ApplicationNumber *string             `json:"application_number,omitempty"`
	ApplicationDate   *openapi_types.Date `json:"application_date,omitempty"`
	RegistrationDate  *openapi_types.Date `json:"registration_date,omitempty"`
	ExpiryDate        *openapi_types.Date `json:"expiry_date,omitempty"`
}

// searchTrademarkResponse wraps the result list. An empty list is a valid
// successful response — absence of matches is not an HTTP error.
type searchTrademarkResponse struct {
	Trademarks []trademarkResponse `json:"trademarks"`
}

// handleRegisterTrademark handles POST /api/v1/trademarks.
// 201 with the created record, 409 without a body when the title is taken,
// 400 on validation failure, 500 on storage failure.
func (s *Server) handleRegisterTrademark(w http.ResponseWriter, r *http.Request) {
	var req registerTrademarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeBadRequest(w, "missing or invalid fields")
		return
	}

	created, err := s.register.Register(r.Context(), service.RegisterRequest{
		Title:             req.Title,
		Description:       req.Description,
		ApplicationNumber: &req.ApplicationNumber,
		ApplicationDate:   timePtr(req.ApplicationDate),
		RegistrationDate:  timePtr(req.RegistrationDate),
		ExpiryDate:        timePtr(req.ExpiryDate),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			w.WriteHeader(http.StatusConflict)
			return
		}
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusCreated, toTrademarkResponse(created))
}

// handleSearchTrademark handles GET /api/v1/trademarks/search.
// Query parameters: title (required), exact_match (default true),
// similarity (default 0.5, open interval (0,1), fuzzy mode only).
// 200 with the list on success — including the empty list — 400 on
// validation failure, 500 on storage failure.
func (s *Server) handleSearchTrademark(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchQuery(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeBadRequest(w, "title is required and similarity must be in (0, 1)")
		return
	}

	found, err := s.search.Search(r.Context(), service.SearchRequest{
		Title:      req.Title,
		ExactMatch: req.ExactMatch,
		Similarity: req.Similarity,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeBadRequest(w, "similarity must be in (0, 1)")
			return
		}
		writeInternalError(w)
		return
	}

	resp := searchTrademarkResponse{Trademarks: make([]trademarkResponse, 0, len(found))}
	for _, tm := range found {
		resp.Trademarks = append(resp.Trademarks, toTrademarkResponse(tm))
	}
	writeJSON(w, http.StatusOK, resp)
}

// parseSearchQuery extracts the search parameters from the URL query,
// applying defaults before validation.
func parseSearchQuery(r *http.Request) (searchTrademarkRequest, error) {
	q := r.URL.Query()
	req := searchTrademarkRequest{
		Title:      q.Get("title"),
		ExactMatch: true,
		Similarity: service.DefaultSimilarity,
	}

	if raw := q.Get("exact_match"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return req, errors.New("exact_match must be a boolean")
		}
		req.ExactMatch = v
	}
	if raw := q.Get("similarity"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, errors.New("similarity must be a number")
		}
		req.Similarity = v
	}

	return req, nil
}

// --- mapping helpers --------------------------------------------------------

func timePtr(d openapi_types.Date) *time.Time {
	t := d.Time
	return &t
}

func datePtr(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}

// toTrademarkResponse converts a domain.Trademark to its JSON shape.
func toTrademarkResponse(tm domain.Trademark) trademarkResponse {
	return trademarkResponse{
		ID:                tm.ID.String(),
		Title:             tm.Title,
		Description:       tm.Description,
		ApplicationNumber: tm.ApplicationNumber,
		ApplicationDate:   datePtr(tm.ApplicationDate),
		RegistrationDate:  datePtr(tm.RegistrationDate),
		ExpiryDate:        datePtr(tm.ExpiryDate),
	}
}
