package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	mongoadapter "github.com/mkraev/booking-wizard/internal/adapters/mongo"
	"github.com/mkraev/booking-wizard/internal/adapters/postgres"
	"github.com/mkraev/booking-wizard/internal/booking"
	"github.com/mkraev/booking-wizard/internal/catalog"
	"github.com/mkraev/booking-wizard/internal/domain"
	"github.com/mkraev/booking-wizard/internal/export"
	"github.com/mkraev/booking-wizard/internal/idempotency"
	"github.com/mkraev/booking-wizard/internal/observability"
	"github.com/mkraev/booking-wizard/internal/pricing"
	"github.com/mkraev/booking-wizard/internal/session"
	"github.com/mkraev/booking-wizard/internal/store"
)

type Handlers struct {
	logger   observability.Logger
	catalog  *catalog.Catalog
	pricer   *pricing.Engine
	session  *session.Manager
	store    *store.ReservationStore
	archive  *postgres.Archive         // optional
	audit    *mongoadapter.AuditLogger // optional
	exporter export.Exporter
	idemp    *idempotency.Idempotency
}

func NewHandlers(
	logger observability.Logger,
	cat *catalog.Catalog,
	pricer *pricing.Engine,
	sess *session.Manager,
	st *store.ReservationStore,
	archive *postgres.Archive,
	audit *mongoadapter.AuditLogger,
	exporter export.Exporter,
	idemp *idempotency.Idempotency,
) *Handlers {
	return &Handlers{
		logger:   logger,
		catalog:  cat,
		pricer:   pricer,
		session:  sess,
		store:    st,
		archive:  archive,
		audit:    audit,
		exporter: exporter,
		idemp:    idemp,
	}
}

// actionRequest is the wire form of a reducer action.
type actionRequest struct {
	Kind      string               `json:"kind"`
	Field     string               `json:"field,omitempty"`
	Value     json.RawMessage      `json:"value,omitempty"`
	Day       *int                 `json:"day,omitempty"`
	Selection map[string]*int      `json:"selection,omitempty"`
	Step      *int                 `json:"step,omitempty"`
	State     *domain.BookingState `json:"state,omitempty"`
}

func (h *Handlers) GetWizard(w http.ResponseWriter, r *http.Request) {
	state := h.session.State()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state": state,
		"total": h.pricer.ComputeTotal(state),
	})
}

// DispatchAction translates the wire action, applies caller-side gating and
// runs the reducer. Validation of field values stays with the form layer;
// the reducer ignores what it cannot apply.
func (h *Handlers) DispatchAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	action, err := h.toAction(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Step 3 is only reachable once every day has a hotel.
	if action.Kind == booking.KindSetStep && action.Step == booking.StepSummary &&
		!booking.CanReachSummary(h.session.State()) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error": "every day needs a hotel before the summary",
		})
		return
	}

	state := h.session.Dispatch(action)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state": state,
		"total": h.pricer.ComputeTotal(state),
	})
}

func (h *Handlers) toAction(req actionRequest) (booking.Action, error) {
	switch booking.ActionKind(req.Kind) {
	case booking.KindSetField:
		if req.Field == booking.FieldDailySelections {
			var selections map[int]domain.DaySelection
			if err := json.Unmarshal(req.Value, &selections); err != nil {
				return booking.Action{}, errors.New("invalid dailySelections value")
			}
			return booking.SetField(req.Field, selections), nil
		}
		var value any
		if err := json.Unmarshal(req.Value, &value); err != nil {
			return booking.Action{}, errors.New("invalid field value")
		}
		return booking.SetField(req.Field, value), nil
	case booking.KindSetDailySelection:
		if req.Day == nil {
			return booking.Action{}, errors.New("day is required")
		}
		var patch booking.SelectionPatch
		if id, ok := req.Selection["hotelId"]; ok {
			patch.HotelID, patch.SetHotel = id, true
		}
		if id, ok := req.Selection["lunchId"]; ok {
			patch.LunchID, patch.SetLunch = id, true
		}
		if id, ok := req.Selection["dinnerId"]; ok {
			patch.DinnerID, patch.SetDinner = id, true
		}
		return booking.SetDailySelection(*req.Day, patch), nil
	case booking.KindSetStep:
		if req.Step == nil {
			return booking.Action{}, errors.New("step is required")
		}
		return booking.SetStep(*req.Step), nil
	case booking.KindReset:
		return booking.Reset(), nil
	case booking.KindLoadState:
		if req.State == nil {
			return booking.Action{}, errors.New("state is required")
		}
		return booking.LoadState(*req.State), nil
	}
	return booking.Action{}, errors.New("unknown action kind")
}

func (h *Handlers) GetTotal(w http.ResponseWriter, r *http.Request) {
	state := h.session.State()
	days := make([]float64, state.NumDays)
	for i := range days {
		days[i] = h.pricer.ComputeDayTotal(state, i)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total": h.pricer.ComputeTotal(state),
		"days":  days,
	})
}

func (h *Handlers) RestoreDraft(w http.ResponseWriter, r *http.Request) {
	found, err := h.session.RestoreDraft(r.Context())
	if err != nil {
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}
	if !found {
		http.Error(w, "no draft", http.StatusNotFound)
		return
	}
	h.GetWizard(w, r)
}

func (h *Handlers) SaveReservation(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get("Idempotency-Key")
	existing, err := h.idemp.Get(r.Context(), key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if existing != nil {
		w.WriteHeader(existing.Status)
		w.Write(existing.Result)
		return
	}

	state := h.session.State()
	if !booking.CanReachSummary(state) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error": "booking incomplete",
		})
		return
	}

	dup, err := h.store.IsDuplicate(r.Context(), state)
	if err != nil {
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}
	if dup {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error": domain.ErrDuplicate.Error(),
		})
		return
	}

	record, err := h.store.Append(r.Context(), state)
	if err != nil {
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}

	if h.archive != nil {
		if err := h.archive.Append(r.Context(), record); err != nil {
			h.logger.WithError(err).WithField("booking_id", record.ID).Error("archive write failed")
		}
	}
	if h.audit != nil {
		h.audit.LogSaved(r.Context(), record)
	}

	data, _ := json.Marshal(map[string]interface{}{
		"reservation": record,
		"total":       h.pricer.ComputeTotal(record.BookingState),
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(data)

	h.idemp.Set(r.Context(), key, idempotency.Response{Status: http.StatusCreated, Result: data})
}

func (h *Handlers) ListReservations(w http.ResponseWriter, r *http.Request) {
	saved, err := h.store.ListSaved(r.Context())
	if err != nil {
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reservations": saved})
}

func (h *Handlers) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	removed, err := h.store.Remove(r.Context(), id)
	if err != nil {
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}
	if !removed {
		http.Error(w, "reservation not found", http.StatusNotFound)
		return
	}

	if h.archive != nil {
		if _, err := h.archive.Remove(r.Context(), id); err != nil {
			h.logger.WithError(err).WithField("booking_id", id).Error("archive delete failed")
		}
	}
	if h.audit != nil {
		h.audit.LogDeleted(r.Context(), id)
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportPDF hands the current booking to the export collaborator. A failed
// hand-off answers 502 so the client can tell it apart from the 503 used
// for persistence failures and offer printing instead.
func (h *Handlers) ExportPDF(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Filename == "" {
		req.Filename = "booking-summary.pdf"
	}

	state := h.session.State()
	if err := h.exporter.ExportPDF(r.Context(), state, req.Filename); err != nil {
		h.logger.WithError(err).Error("export hand-off failed")
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{"error": "export failed"})
		return
	}
	if h.audit != nil {
		h.audit.LogExportRequested(r.Context(), req.Filename, state.Destination)
	}
	writeJSON(w, http.StatusAccepted, map[string]interface{}{"status": "queued", "filename": req.Filename})
}

func (h *Handlers) Print(w http.ResponseWriter, r *http.Request) {
	if err := h.exporter.Print(r.Context()); err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{"error": "print failed"})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]interface{}{"status": "queued"})
}

func (h *Handlers) GetCountries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"countries": h.catalog.Countries()})
}

func (h *Handlers) GetDestinationCatalog(w http.ResponseWriter, r *http.Request) {
	destination := chi.URLParam(r, "destination")
	hotels := h.catalog.HotelsFor(destination)
	resp := map[string]interface{}{"hotels": hotels}
	if plan, ok := h.catalog.MealsFor(destination); ok {
		resp["meals"] = plan
	} else {
		resp["meals"] = nil
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handlers) Readyz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
