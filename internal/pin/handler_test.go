package pin

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinfold/service/internal/response"
)

func newTestRouter(t *testing.T) (*chi.Mux, *fixture) {
	t.Helper()
	f := newFixture(t)
	h := NewHandler(f.svc)

	r := chi.NewRouter()
	r.Post("/pins", h.Create)
	r.Get("/pins/discover", h.Discover)
	r.Get("/pins/{id}", h.GetByID)
	r.Get("/boards/{id}/pins", h.ListByBoard)
	return r, f
}

// multipartPin builds a pin-creation form body. A nil file omits the part.
func multipartPin(t *testing.T, fields map[string]string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		fw, err := mw.CreateFormFile("file", "upload.jpg")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func doRequest(r http.Handler, method, target, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestCreatePinHandler(t *testing.T) {
	r, f := newTestRouter(t)

	body, contentType := multipartPin(t, map[string]string{
		"title":       "sunset",
		"description": "over the bay",
		"board_id":    strconv.FormatInt(f.boardID, 10),
		"owner_id":    strconv.FormatInt(f.ownerID, 10),
		"is_private":  "false",
	}, testJPEG(t, 1200, 800))

	rec := doRequest(r, http.MethodPost, "/pins", contentType, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, "sunset", data["title"])
	assert.NotEmpty(t, data["imageKey"])
	assert.NotEmpty(t, data["thumbnailKey"])
}

func TestCreatePinHandlerMissingOwner(t *testing.T) {
	r, f := newTestRouter(t)

	body, contentType := multipartPin(t, map[string]string{
		"title":    "sunset",
		"board_id": strconv.FormatInt(f.boardID, 10),
		"owner_id": "999",
	}, testJPEG(t, 400, 300))

	rec := doRequest(r, http.MethodPost, "/pins", contentType, body)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "user not found", env.Error)
	assert.Empty(t, f.store.uploads)
}

func TestCreatePinHandlerMissingBoard(t *testing.T) {
	r, f := newTestRouter(t)

	body, contentType := multipartPin(t, map[string]string{
		"title":    "sunset",
		"board_id": "999",
		"owner_id": strconv.FormatInt(f.ownerID, 10),
	}, testJPEG(t, 400, 300))

	rec := doRequest(r, http.MethodPost, "/pins", contentType, body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "board not found", decodeEnvelope(t, rec).Error)
}

func TestCreatePinHandlerCorruptImage(t *testing.T) {
	r, f := newTestRouter(t)

	body, contentType := multipartPin(t, map[string]string{
		"title":    "sunset",
		"board_id": strconv.FormatInt(f.boardID, 10),
		"owner_id": strconv.FormatInt(f.ownerID, 10),
	}, []byte("not an image"))

	rec := doRequest(r, http.MethodPost, "/pins", contentType, body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreatePinHandlerValidation(t *testing.T) {
	r, f := newTestRouter(t)

	t.Run("missing title", func(t *testing.T) {
		body, contentType := multipartPin(t, map[string]string{
			"board_id": strconv.FormatInt(f.boardID, 10),
			"owner_id": strconv.FormatInt(f.ownerID, 10),
		}, testJPEG(t, 400, 300))
		rec := doRequest(r, http.MethodPost, "/pins", contentType, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		body, contentType := multipartPin(t, map[string]string{
			"title":    "sunset",
			"board_id": strconv.FormatInt(f.boardID, 10),
			"owner_id": strconv.FormatInt(f.ownerID, 10),
		}, nil)
		rec := doRequest(r, http.MethodPost, "/pins", contentType, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad board_id", func(t *testing.T) {
		body, contentType := multipartPin(t, map[string]string{
			"title":    "sunset",
			"board_id": "zero",
			"owner_id": strconv.FormatInt(f.ownerID, 10),
		}, testJPEG(t, 400, 300))
		rec := doRequest(r, http.MethodPost, "/pins", contentType, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetPinHandler(t *testing.T) {
	r, f := newTestRouter(t)

	created, err := f.svc.Create(context.Background(), CreateInput{
		Title:   "sunset",
		BoardID: f.boardID,
		OwnerID: f.ownerID,
	}, testJPEG(t, 1200, 800), ".jpg")
	require.NoError(t, err)

	rec := doRequest(r, http.MethodGet, "/pins/"+strconv.FormatInt(created.ID, 10), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec).Data.(map[string]interface{})
	assert.Equal(t, "https://signed.example/"+created.ImageKey, data["imageUrl"])
	assert.Equal(t, "https://signed.example/"+created.ThumbnailKey, data["thumbnailUrl"])
	assert.NotEqual(t, data["imageUrl"], data["thumbnailUrl"])
}

func TestGetPinHandlerNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(r, http.MethodGet, "/pins/42", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDiscoverHandler(t *testing.T) {
	r, f := newTestRouter(t)

	for i := 0; i < 3; i++ {
		_, err := f.repo.Create(context.Background(), &Pin{
			Title:        "public pin",
			ImageKey:     "img.jpg",
			ThumbnailKey: "thumbnail_img.jpg",
			BoardID:      f.boardID,
			OwnerID:      f.ownerID,
		})
		require.NoError(t, err)
	}

	rec := doRequest(r, http.MethodGet, "/pins/discover?limit=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec).Data.([]interface{})
	assert.Len(t, data, 3)

	rec = doRequest(r, http.MethodGet, "/pins/discover?limit=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
