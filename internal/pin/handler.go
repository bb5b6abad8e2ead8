package pin

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pinfold/service/internal/board"
	"github.com/pinfold/service/internal/media"
	"github.com/pinfold/service/internal/response"
	"github.com/pinfold/service/internal/storage"
	"github.com/pinfold/service/internal/user"
)

// maxUploadBytes caps the multipart form memory for pin uploads.
const maxUploadBytes = 32 << 20

// defaultDiscoverLimit is how many pins /pins/discover returns when the
// caller does not say.
const defaultDiscoverLimit = 25

// maxDiscoverLimit caps the sample size a caller may request.
const maxDiscoverLimit = 100

// Handler holds HTTP handlers for pin-related endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new pin Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create godoc
//
//	@Summary		Create pin
//	@Description	Uploads an image, derives a thumbnail, stores both, and persists the pin.
//	@Tags			pins
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			title		formData	string	true	"Pin title"
//	@Param			description	formData	string	false	"Pin description"
//	@Param			board_id	formData	int		true	"Board the pin belongs to"
//	@Param			owner_id	formData	int		true	"Owning user"
//	@Param			is_private	formData	bool	false	"Visibility flag"
//	@Param			file		formData	file	true	"Image payload"
//	@Success		201	{object}	response.Envelope{data=Pin}
//	@Failure		400	{object}	response.Envelope
//	@Failure		401	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Failure		422	{object}	response.Envelope
//	@Failure		502	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/pins [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}

	boardID, err := strconv.ParseInt(r.FormValue("board_id"), 10, 64)
	if err != nil || boardID <= 0 {
		response.BadRequest(w, "invalid board_id")
		return
	}
	ownerID, err := strconv.ParseInt(r.FormValue("owner_id"), 10, 64)
	if err != nil || ownerID <= 0 {
		response.BadRequest(w, "invalid owner_id")
		return
	}
	title := r.FormValue("title")
	if title == "" {
		response.BadRequest(w, "title is required")
		return
	}
	isPrivate := r.FormValue("is_private") == "true" || r.FormValue("is_private") == "1"

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(w, "failed reading file")
		return
	}

	p, err := h.svc.Create(r.Context(), CreateInput{
		Title:       title,
		Description: r.FormValue("description"),
		BoardID:     boardID,
		OwnerID:     ownerID,
		IsPrivate:   isPrivate,
	}, data, filepath.Ext(header.Filename))
	if err != nil {
		writePinError(w, err)
		return
	}

	response.Created(w, p)
}

// GetByID godoc
//
//	@Summary		Get pin
//	@Description	Returns a pin with time-limited URLs for its image and thumbnail.
//	@Tags			pins
//	@Produce		json
//	@Param			id	path		int	true	"Pin ID"
//	@Success		200	{object}	response.Envelope{data=View}
//	@Failure		400	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Failure		502	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/pins/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "invalid pin id")
		return
	}

	v, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writePinError(w, err)
		return
	}

	response.OK(w, v)
}

// ListByBoard godoc
//
//	@Summary		List a board's pins
//	@Tags			pins
//	@Produce		json
//	@Param			id	path		int	true	"Board ID"
//	@Success		200	{object}	response.Envelope{data=[]View}
//	@Failure		400	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Failure		502	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/boards/{id}/pins [get]
func (h *Handler) ListByBoard(w http.ResponseWriter, r *http.Request) {
	boardID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || boardID <= 0 {
		response.BadRequest(w, "invalid board id")
		return
	}

	views, err := h.svc.ListByBoard(r.Context(), boardID)
	if err != nil {
		writePinError(w, err)
		return
	}

	response.OK(w, views)
}

// Discover godoc
//
//	@Summary		Random public pins
//	@Description	Returns up to limit public pins sampled uniformly at random.
//	@Tags			pins
//	@Produce		json
//	@Param			limit	query		int	false	"Sample size (default 25, max 100)"
//	@Success		200		{object}	response.Envelope{data=[]View}
//	@Failure		400		{object}	response.Envelope
//	@Failure		502		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/pins/discover [get]
func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	limit := defaultDiscoverLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.BadRequest(w, "invalid limit")
			return
		}
		if n > maxDiscoverLimit {
			n = maxDiscoverLimit
		}
		limit = n
	}

	views, err := h.svc.Discover(r.Context(), limit)
	if err != nil {
		writePinError(w, err)
		return
	}

	response.OK(w, views)
}

// writePinError maps pipeline errors onto HTTP statuses.
func writePinError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound):
		response.NotFound(w, "user not found")
	case errors.Is(err, board.ErrNotFound):
		response.NotFound(w, "board not found")
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "pin not found")
	case errors.Is(err, media.ErrDecode):
		response.UnprocessableEntity(w, "unreadable image payload")
	case errors.Is(err, media.ErrInvalidImage):
		response.UnprocessableEntity(w, "image has invalid dimensions")
	case errors.Is(err, storage.ErrUnavailable):
		response.BadGateway(w, "object storage unavailable")
	default:
		response.InternalError(w)
	}
}
