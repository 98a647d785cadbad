package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stegbit/stegbit/pkg/chunk"
	"github.com/stegbit/stegbit/pkg/png"
	"github.com/stegbit/stegbit/pkg/vault"
)

const testAPIKey = "test-api-key"

// fakeStore is an in-memory ImageStore with the vault's validation behavior.
type fakeStore struct {
	images map[ksuid.KSUID][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{images: make(map[ksuid.KSUID][]byte)}
}

func (f *fakeStore) Create(data []byte) (ksuid.KSUID, error) {
	if _, err := png.Parse(data); err != nil {
		return ksuid.KSUID{}, err
	}
	id := ksuid.New()
	f.images[id] = data
	return id, nil
}

func (f *fakeStore) Read(id ksuid.KSUID) ([]byte, error) {
	data, ok := f.images[id]
	if !ok {
		return nil, vault.ErrNotFound
	}
	return data, nil
}

func (f *fakeStore) Update(id ksuid.KSUID, data []byte) error {
	if _, ok := f.images[id]; !ok {
		return vault.ErrNotFound
	}
	f.images[id] = data
	return nil
}

func (f *fakeStore) Delete(id ksuid.KSUID) error {
	delete(f.images, id)
	return nil
}

func (f *fakeStore) List() ([]ksuid.KSUID, error) {
	ids := make([]ksuid.KSUID, 0, len(f.images))
	for id := range f.images {
		ids = append(ids, id)
	}
	return ids, nil
}

func testRouter(store ImageStore) http.Handler {
	server := NewServer(store, ServerConfig{APIKey: testAPIKey}, nil)
	return NewRouter(server)
}

func testImageBytes(t *testing.T) []byte {
	t.Helper()
	header, err := chunk.ChunkTypeFromString("IHDR")
	require.NoError(t, err)
	trailer, err := chunk.ChunkTypeFromString("IEND")
	require.NoError(t, err)

	return png.FromChunks([]*chunk.Chunk{
		chunk.New(header, make([]byte, 13)),
		chunk.New(trailer, nil),
	}).Bytes()
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
		Error   string                 `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.True(t, resp.Success, "expected success envelope, got error: %s", resp.Error)
	return resp.Data
}

func uploadImage(t *testing.T, handler http.Handler) string {
	t.Helper()
	w := doRequest(t, handler, "POST", "/api/v1/images", testImageBytes(t))
	require.Equal(t, http.StatusOK, w.Code)
	id, ok := decodeData(t, w)["id"].(string)
	require.True(t, ok, "upload response has no id")
	return id
}

func TestHealthEndpoint(t *testing.T) {
	handler := testRouter(newFakeStore())

	w := doRequest(t, handler, "GET", "/api/v1/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decodeData(t, w)["status"])
}

func TestAuthRequired(t *testing.T) {
	handler := testRouter(newFakeStore())

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadAndFetchImage(t *testing.T) {
	handler := testRouter(newFakeStore())
	image := testImageBytes(t)

	id := uploadImage(t, handler)

	w := doRequest(t, handler, "GET", "/api/v1/images/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, image, w.Body.Bytes())
}

func TestUploadRejectsNonPNG(t *testing.T) {
	handler := testRouter(newFakeStore())

	w := doRequest(t, handler, "POST", "/api/v1/images", []byte("plain text"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMissingImage(t *testing.T) {
	handler := testRouter(newFakeStore())

	w := doRequest(t, handler, "GET", "/api/v1/images/"+ksuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetImageBadID(t *testing.T) {
	handler := testRouter(newFakeStore())

	w := doRequest(t, handler, "GET", "/api/v1/images/not-a-ksuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteImage(t *testing.T) {
	handler := testRouter(newFakeStore())
	id := uploadImage(t, handler)

	w := doRequest(t, handler, "DELETE", "/api/v1/images/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, handler, "GET", "/api/v1/images/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListImages(t *testing.T) {
	handler := testRouter(newFakeStore())
	first := uploadImage(t, handler)
	second := uploadImage(t, handler)

	w := doRequest(t, handler, "GET", "/api/v1/images", nil)
	require.Equal(t, http.StatusOK, w.Code)

	images, ok := decodeData(t, w)["images"].([]interface{})
	require.True(t, ok)
	assert.Len(t, images, 2)
	assert.Contains(t, images, first)
	assert.Contains(t, images, second)
}

func TestEmbedExtractStripRoundTrip(t *testing.T) {
	handler := testRouter(newFakeStore())
	id := uploadImage(t, handler)

	embed, err := json.Marshal(EmbedRequest{Type: "ruSt", Message: "meet at dawn"})
	require.NoError(t, err)

	w := doRequest(t, handler, "POST", fmt.Sprintf("/api/v1/images/%s/chunks", id), embed)
	require.Equal(t, http.StatusOK, w.Code)
	embedded := decodeData(t, w)
	assert.Equal(t, "ruSt", embedded["type"])
	assert.Equal(t, float64(12), embedded["length"])

	w = doRequest(t, handler, "GET", fmt.Sprintf("/api/v1/images/%s/chunks/ruSt", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "meet at dawn", decodeData(t, w)["message"])

	w = doRequest(t, handler, "DELETE", fmt.Sprintf("/api/v1/images/%s/chunks/ruSt", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, handler, "GET", fmt.Sprintf("/api/v1/images/%s/chunks/ruSt", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmbedRejectsBadChunkType(t *testing.T) {
	handler := testRouter(newFakeStore())
	id := uploadImage(t, handler)

	for _, badType := range []string{"toolong", "ab", "Ru1t"} {
		embed, err := json.Marshal(EmbedRequest{Type: badType, Message: "x"})
		require.NoError(t, err)

		w := doRequest(t, handler, "POST", fmt.Sprintf("/api/v1/images/%s/chunks", id), embed)
		assert.Equal(t, http.StatusBadRequest, w.Code, "type %q", badType)
	}
}

func TestListChunksReportsFlags(t *testing.T) {
	handler := testRouter(newFakeStore())
	id := uploadImage(t, handler)

	embed, err := json.Marshal(EmbedRequest{Type: "ruSt", Message: "hi"})
	require.NoError(t, err)
	w := doRequest(t, handler, "POST", fmt.Sprintf("/api/v1/images/%s/chunks", id), embed)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, handler, "GET", fmt.Sprintf("/api/v1/images/%s/chunks", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	chunks, ok := decodeData(t, w)["chunks"].([]interface{})
	require.True(t, ok)
	require.Len(t, chunks, 3) // IHDR, ruSt, IEND

	inserted, ok := chunks[1].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ruSt", inserted["type"])
	assert.Equal(t, false, inserted["critical"])
	assert.Equal(t, false, inserted["public"])
	assert.Equal(t, true, inserted["reserved_bit_valid"])
	assert.Equal(t, true, inserted["safe_to_copy"])
}

func TestExtractBinaryChunk(t *testing.T) {
	store := newFakeStore()
	handler := testRouter(store)

	header, err := chunk.ChunkTypeFromString("IHDR")
	require.NoError(t, err)
	hidden, err := chunk.ChunkTypeFromString("ruSt")
	require.NoError(t, err)

	image := png.FromChunks([]*chunk.Chunk{
		chunk.New(header, nil),
		chunk.New(hidden, []byte{0xFF, 0xFE}),
	}).Bytes()
	id, err := store.Create(image)
	require.NoError(t, err)

	w := doRequest(t, handler, "GET", fmt.Sprintf("/api/v1/images/%s/chunks/ruSt", id), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
