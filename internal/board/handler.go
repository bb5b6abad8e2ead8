package board

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pinfold/service/internal/response"
	"github.com/pinfold/service/internal/user"
)

// Handler holds HTTP handlers for board-related endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new board Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createBoardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     int64  `json:"ownerId"`
	IsPrivate   bool   `json:"isPrivate"`
}

// Create godoc
//
//	@Summary		Create board
//	@Description	Creates a board for an existing user.
//	@Tags			boards
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		createBoardRequest	true	"Board fields"
//	@Success		201		{object}	response.Envelope{data=Board}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		404		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/boards [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		response.BadRequest(w, "name is required")
		return
	}
	if req.OwnerID <= 0 {
		response.BadRequest(w, "ownerId is required")
		return
	}

	b, err := h.svc.Create(r.Context(), CreateInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			response.NotFound(w, "user not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, b)
}

// GetByID godoc
//
//	@Summary		Get board
//	@Tags			boards
//	@Produce		json
//	@Param			id	path		int	true	"Board ID"
//	@Success		200	{object}	response.Envelope{data=Board}
//	@Failure		400	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/boards/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "invalid board id")
		return
	}

	b, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "board not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, b)
}

// ListByOwner godoc
//
//	@Summary		List a user's boards
//	@Tags			boards
//	@Produce		json
//	@Param			id	path		int	true	"User ID"
//	@Success		200	{object}	response.Envelope{data=[]Board}
//	@Failure		400	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/users/{id}/boards [get]
func (h *Handler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || ownerID <= 0 {
		response.BadRequest(w, "invalid user id")
		return
	}

	boards, err := h.svc.ListByOwner(r.Context(), ownerID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, boards)
}
