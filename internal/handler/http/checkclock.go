package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/checkclock"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type CheckClockHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	BreakStart(w http.ResponseWriter, r *http.Request)
	BreakEnd(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	TodayStatus(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Decline(w http.ResponseWriter, r *http.Request)
	ManualEntry(w http.ResponseWriter, r *http.Request)
	Zones(w http.ResponseWriter, r *http.Request)
}

type checkClockHandlerImpl struct {
	checkClockService checkclock.CheckClockService
}

func NewCheckClockHandler(checkClockService checkclock.CheckClockService) CheckClockHandler {
	return &checkClockHandlerImpl{
		checkClockService: checkClockService,
	}
}

// parseCheckClockRequest accepts either a JSON body or a multipart form
// with a JSON `data` field and an optional `photo` evidence file.
func parseCheckClockRequest(w http.ResponseWriter, r *http.Request) (checkclock.CheckClockRequest, bool) {
	var req checkclock.CheckClockRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		// Parse multipart form (max 10MB)
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return req, false
		}

		if dataJSON := r.FormValue("data"); dataJSON != "" {
			if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
				slog.Error("Failed to unmarshal JSON data", "error", err)
				response.BadRequest(w, "Invalid request format", nil)
				return req, false
			}
		}

		file, fileHeader, err := r.FormFile("photo")
		if err != nil && err != http.ErrMissingFile {
			slog.Error("Failed to get file from form", "error", err)
			response.BadRequest(w, "Invalid file upload", nil)
			return req, false
		}
		if err == nil {
			req.File = file
			req.FileHeader = fileHeader
		}

		return req, true
	}

	// Empty JSON bodies are fine; every field is optional.
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Failed to decode request body", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return req, false
		}
	}

	return req, true
}

func (h *checkClockHandlerImpl) handleClockAction(w http.ResponseWriter, r *http.Request, message string,
	action func(r *http.Request, req checkclock.CheckClockRequest) (checkclock.RecordResponse, error),
) {
	req, ok := parseCheckClockRequest(w, r)
	if !ok {
		return
	}
	if req.File != nil {
		defer req.File.Close()
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := action(r, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, message, result)
}

// ClockIn implements CheckClockHandler.
func (h *checkClockHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	h.handleClockAction(w, r, "Clock in successful", func(r *http.Request, req checkclock.CheckClockRequest) (checkclock.RecordResponse, error) {
		return h.checkClockService.ClockIn(r.Context(), req)
	})
}

// ClockOut implements CheckClockHandler.
func (h *checkClockHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	h.handleClockAction(w, r, "Clock out successful", func(r *http.Request, req checkclock.CheckClockRequest) (checkclock.RecordResponse, error) {
		return h.checkClockService.ClockOut(r.Context(), req)
	})
}

// BreakStart implements CheckClockHandler.
func (h *checkClockHandlerImpl) BreakStart(w http.ResponseWriter, r *http.Request) {
	h.handleClockAction(w, r, "Break started", func(r *http.Request, req checkclock.CheckClockRequest) (checkclock.RecordResponse, error) {
		return h.checkClockService.BreakStart(r.Context(), req)
	})
}

// BreakEnd implements CheckClockHandler.
func (h *checkClockHandlerImpl) BreakEnd(w http.ResponseWriter, r *http.Request) {
	h.handleClockAction(w, r, "Break ended", func(r *http.Request, req checkclock.CheckClockRequest) (checkclock.RecordResponse, error) {
		return h.checkClockService.BreakEnd(r.Context(), req)
	})
}

// List implements CheckClockHandler.
func (h *checkClockHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Parse query parameters
	filter := checkclock.EventFilter{}

	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter.UserID = &userID
	}

	if date := r.URL.Query().Get("date"); date != "" {
		filter.Date = &date
	}

	if dateFrom := r.URL.Query().Get("date_from"); dateFrom != "" {
		filter.DateFrom = &dateFrom
	}

	if dateTo := r.URL.Query().Get("date_to"); dateTo != "" {
		filter.DateTo = &dateTo
	}

	if eventType := r.URL.Query().Get("type"); eventType != "" {
		filter.Type = &eventType
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}

	// Pagination
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	filter.Page = page

	perPage := 20
	if pp := r.URL.Query().Get("per_page"); pp != "" {
		if n, err := strconv.Atoi(pp); err == nil && n > 0 {
			perPage = n
		}
	}
	filter.PerPage = perPage

	// Sorting
	if sortBy := r.URL.Query().Get("sort_by"); sortBy != "" {
		filter.SortBy = sortBy
	}

	if sortOrder := r.URL.Query().Get("sort_order"); sortOrder != "" {
		filter.SortOrder = sortOrder
	}

	results, err := h.checkClockService.ListEvents(ctx, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// TodayStatus implements CheckClockHandler.
func (h *checkClockHandlerImpl) TodayStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.checkClockService.TodayStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements CheckClockHandler.
func (h *checkClockHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if _, valid := validator.IsValidDate(date); !valid {
		response.BadRequest(w, "Query parameter 'date' must be in YYYY-MM-DD format", nil)
		return
	}

	result, err := h.checkClockService.DailySummary(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements CheckClockHandler.
func (h *checkClockHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req checkclock.ApproveRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.ID = id

	result, err := h.checkClockService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance event approved", result)
}

// Decline implements CheckClockHandler.
func (h *checkClockHandlerImpl) Decline(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req checkclock.DeclineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.checkClockService.Decline(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance event declined", result)
}

// ManualEntry implements CheckClockHandler.
func (h *checkClockHandlerImpl) ManualEntry(w http.ResponseWriter, r *http.Request) {
	var req checkclock.ManualEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.checkClockService.ManualEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual attendance entry recorded", result)
}

// Zones implements CheckClockHandler.
func (h *checkClockHandlerImpl) Zones(w http.ResponseWriter, r *http.Request) {
	result, err := h.checkClockService.ListZones(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
