package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fieldflow/bookd/internal/booking/application/commands"
	"github.com/fieldflow/bookd/internal/booking/application/queries"
	"github.com/fieldflow/bookd/internal/booking/domain"
	"github.com/google/uuid"
)

// BookingHandler handles booking API requests.
type BookingHandler struct {
	linkRepo     domain.BookingLinkRepository
	availability *queries.GetAvailabilityHandler
	listLinks    *queries.ListLinksHandler
	getLink      *queries.GetLinkHandler
	listMeetings *queries.ListMeetingsHandler
	commit       *commands.CommitBookingHandler
	cancel       *commands.CancelMeetingHandler
	createLink   *commands.CreateLinkHandler
	updateLink   *commands.UpdateLinkHandler
	deleteLink   *commands.DeleteLinkHandler
	defaults     domain.HostSchedule
	logger       *slog.Logger
}

// BookingHandlerConfig holds dependencies for the booking handler.
type BookingHandlerConfig struct {
	LinkRepo        domain.BookingLinkRepository
	GetAvailability *queries.GetAvailabilityHandler
	ListLinks       *queries.ListLinksHandler
	GetLink         *queries.GetLinkHandler
	ListMeetings    *queries.ListMeetingsHandler
	CommitBooking   *commands.CommitBookingHandler
	CancelMeeting   *commands.CancelMeetingHandler
	CreateLink      *commands.CreateLinkHandler
	UpdateLink      *commands.UpdateLinkHandler
	DeleteLink      *commands.DeleteLinkHandler
	// ScheduleDefaults fills schedule fields the create request omits.
	ScheduleDefaults domain.HostSchedule
	Logger           *slog.Logger
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(cfg BookingHandlerConfig) *BookingHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &BookingHandler{
		linkRepo:     cfg.LinkRepo,
		availability: cfg.GetAvailability,
		listLinks:    cfg.ListLinks,
		getLink:      cfg.GetLink,
		listMeetings: cfg.ListMeetings,
		commit:       cfg.CommitBooking,
		cancel:       cfg.CancelMeeting,
		createLink:   cfg.CreateLink,
		updateLink:   cfg.UpdateLink,
		deleteLink:   cfg.DeleteLink,
		defaults:     cfg.ScheduleDefaults,
		logger:       cfg.Logger,
	}
}

// GetLink handles GET /api/v1/links/{slug}
func (h *BookingHandler) GetLink(w http.ResponseWriter, r *http.Request) {
	dto, err := h.getLink.Handle(r.Context(), queries.GetLinkQuery{Slug: r.PathValue("slug")})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if !dto.Active {
		h.writeDomainError(w, domain.ErrLinkInactive)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetAvailability handles GET /api/v1/links/{slug}/availability?date=2025-06-09
func (h *BookingHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	link, err := h.activeLink(r)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	loc, err := link.Schedule().Location()
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		writeError(w, http.StatusBadRequest, "Query parameter 'date' is required")
		return
	}
	// The date names a calendar day in the host's zone, not an instant.
	date, err := time.ParseInLocation("2006-01-02", dateParam, loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid 'date', expected YYYY-MM-DD")
		return
	}

	slots, err := h.availability.Handle(r.Context(), queries.GetAvailabilityQuery{
		OwnerID:  link.OwnerID(),
		Schedule: link.Schedule(),
		Date:     date,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":  dateParam,
		"slots": slots,
	})
}

type bookingRequest struct {
	Start time.Time `json:"start"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Notes string    `json:"notes"`
}

// CommitBooking handles POST /api/v1/links/{slug}/bookings
func (h *BookingHandler) CommitBooking(w http.ResponseWriter, r *http.Request) {
	link, err := h.activeLink(r)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	confirmation, err := h.commit.Handle(r.Context(), commands.CommitBookingCommand{
		OwnerID:     link.OwnerID(),
		LinkID:      link.ID(),
		Schedule:    link.Schedule(),
		ChosenStart: req.Start,
		Booker:      domain.Booker{Name: req.Name, Email: req.Email, Notes: req.Notes},
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"meeting_id": confirmation.MeetingID,
		"start":      confirmation.Start,
		"end":        confirmation.End,
	})
}

type scheduleRequest struct {
	DurationMinutes     *int    `json:"duration_minutes"`
	BufferBeforeMinutes *int    `json:"buffer_before_minutes"`
	BufferAfterMinutes  *int    `json:"buffer_after_minutes"`
	AvailableDays       []int   `json:"available_days"`
	StartHour           *int    `json:"start_hour"`
	EndHour             *int    `json:"end_hour"`
	MaxDaysAhead        *int    `json:"max_days_ahead"`
	Timezone            *string `json:"timezone"`
}

type createLinkRequest struct {
	Slug     string           `json:"slug"`
	Name     string           `json:"name"`
	Schedule *scheduleRequest `json:"schedule"`
}

// CreateLink handles POST /api/v1/links
func (h *BookingHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	var req createLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.createLink.Handle(r.Context(), commands.CreateLinkCommand{
		OwnerID:  ownerID,
		Slug:     req.Slug,
		Name:     req.Name,
		Schedule: h.mergeSchedule(req.Schedule),
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"link_id": result.LinkID})
}

// ListLinks handles GET /api/v1/links
func (h *BookingHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	dtos, err := h.listLinks.Handle(r.Context(), queries.ListLinksQuery{OwnerID: ownerID})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"links": dtos})
}

type updateLinkRequest struct {
	Name     *string          `json:"name"`
	Active   *bool            `json:"active"`
	Schedule *scheduleRequest `json:"schedule"`
}

// UpdateLink handles PATCH /api/v1/links/id/{linkID}
func (h *BookingHandler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	linkID, err := uuid.Parse(r.PathValue("linkID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid link ID")
		return
	}

	var req updateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := commands.UpdateLinkCommand{
		OwnerID: ownerID,
		LinkID:  linkID,
		Name:    req.Name,
		Active:  req.Active,
	}
	if req.Schedule != nil {
		schedule := h.mergeSchedule(req.Schedule)
		cmd.Schedule = &schedule
	}

	if err := h.updateLink.Handle(r.Context(), cmd); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteLink handles DELETE /api/v1/links/id/{linkID}
func (h *BookingHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	linkID, err := uuid.Parse(r.PathValue("linkID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid link ID")
		return
	}

	if err := h.deleteLink.Handle(r.Context(), commands.DeleteLinkCommand{
		OwnerID: ownerID,
		LinkID:  linkID,
	}); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMeetings handles GET /api/v1/meetings?from=...&to=...
func (h *BookingHandler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	from, err := parseTimeParam(r, "from", time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid 'from', expected RFC 3339")
		return
	}
	to, err := parseTimeParam(r, "to", from.AddDate(0, 0, 30))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid 'to', expected RFC 3339")
		return
	}

	dtos, err := h.listMeetings.Handle(r.Context(), queries.ListMeetingsQuery{
		OwnerID: ownerID,
		From:    from,
		To:      to,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"meetings": dtos})
}

// CancelMeeting handles DELETE /api/v1/meetings/{meetingID}
func (h *BookingHandler) CancelMeeting(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	meetingID, err := uuid.Parse(r.PathValue("meetingID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid meeting ID")
		return
	}

	if err := h.cancel.Handle(r.Context(), commands.CancelMeetingCommand{
		OwnerID:   ownerID,
		MeetingID: meetingID,
	}); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// activeLink resolves the slug path parameter to an active booking link.
func (h *BookingHandler) activeLink(r *http.Request) (*domain.BookingLink, error) {
	link, err := h.linkRepo.FindBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		return nil, err
	}
	if !link.IsActive() {
		return nil, domain.ErrLinkInactive
	}
	return link, nil
}

// ownerID reads the calling host's ID from the X-Owner-ID header.
func (h *BookingHandler) ownerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.Header.Get("X-Owner-ID"))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Missing or invalid X-Owner-ID header")
		return uuid.Nil, false
	}
	return id, true
}

// mergeSchedule fills omitted schedule fields from the configured defaults.
func (h *BookingHandler) mergeSchedule(req *scheduleRequest) domain.HostSchedule {
	schedule := h.defaults
	if req == nil {
		return schedule
	}
	if req.DurationMinutes != nil {
		schedule.DurationMinutes = *req.DurationMinutes
	}
	if req.BufferBeforeMinutes != nil {
		schedule.BufferBeforeMinutes = *req.BufferBeforeMinutes
	}
	if req.BufferAfterMinutes != nil {
		schedule.BufferAfterMinutes = *req.BufferAfterMinutes
	}
	if req.AvailableDays != nil {
		days := make([]time.Weekday, len(req.AvailableDays))
		for i, d := range req.AvailableDays {
			days[i] = time.Weekday(d)
		}
		schedule.AvailableDays = days
	}
	if req.StartHour != nil {
		schedule.StartHour = *req.StartHour
	}
	if req.EndHour != nil {
		schedule.EndHour = *req.EndHour
	}
	if req.MaxDaysAhead != nil {
		schedule.MaxDaysAhead = *req.MaxDaysAhead
	}
	if req.Timezone != nil {
		schedule.Timezone = *req.Timezone
	}
	return schedule
}

func parseTimeParam(r *http.Request, name string, fallback time.Time) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback, nil
	}
	return time.Parse(time.RFC3339, value)
}

// writeDomainError maps domain errors onto HTTP status codes: unknown
// resources read as 404, losing a slot race as 409, and configuration or
// validation problems as 422.
func (h *BookingHandler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrLinkNotFound),
		errors.Is(err, domain.ErrMeetingNotFound),
		errors.Is(err, domain.ErrLinkInactive):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrSlotConflict),
		errors.Is(err, domain.ErrSlugTaken),
		errors.Is(err, domain.ErrMeetingFinal):
		writeError(w, http.StatusConflict, err.Error())
	case domain.IsConfigurationError(err),
		errors.Is(err, domain.ErrSlotUnaligned),
		errors.Is(err, domain.ErrOutsideBookingWindow):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrInvalidBooker),
		errors.Is(err, domain.ErrInvalidSlug),
		errors.Is(err, domain.ErrInvalidInterval):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
