package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/julianstephens/habitchain/internal/service"
)

type loginRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type habitRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	UserID   int    `json:"userId"`
}

type memberRequest struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	UserID   int    `json:"userId"`
}

// Handler binds the service operations to HTTP.
type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// HandleLogin handles POST /login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.svc.Login(r.Context(), req.Email, req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// HandleListHabits handles GET /habits?userId=.
func (h *Handler) HandleListHabits(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.svc.ListHabits(r.Context(), queryUserID(r)))
}

// HandleCreateHabit handles POST /habits.
func (h *Handler) HandleCreateHabit(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	habit, err := h.svc.CreateHabit(r.Context(), service.HabitInput{
		UserID:   req.UserID,
		Name:     req.Name,
		Category: req.Category,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, habit)
}

// HandleMarkDone handles PATCH /habits/{id}/done.
func (h *Handler) HandleMarkDone(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(chi.URLParam(r, "id"))
	if !ok {
		WriteError(w, http.StatusNotFound, "Habit not found")
		return
	}

	habit, err := h.svc.MarkDone(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, habit)
}

// HandleDeleteHabit handles DELETE /habits/{id}.
func (h *Handler) HandleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(chi.URLParam(r, "id"))
	if !ok {
		WriteError(w, http.StatusNotFound, "Habit not found")
		return
	}

	if err := h.svc.DeleteHabit(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.svc.ListMembers(r.Context(), queryUserID(r)))
}

func (h *Handler) HandleCreateMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.svc.CreateMember(r.Context(), service.MemberInput{
		UserID:   req.UserID,
		Name:     req.Name,
		Relation: req.Relation,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, member)
}

func (h *Handler) HandleDeleteMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(chi.URLParam(r, "id"))
	if !ok {
		WriteError(w, http.StatusNotFound, "Member not found")
		return
	}

	if err := h.svc.DeleteMember(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleStats handles GET /stats?userId=, the totals shown above the habit
// list.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.svc.Summary(r.Context(), queryUserID(r)))
}

type healthResponse struct {
	Status string `json:"status"`
	Today  string `json:"today"`
}

// HandleHealth handles GET /healthz.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Today: h.svc.Today()})
}

