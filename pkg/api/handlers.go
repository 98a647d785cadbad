package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"

	"github.com/stegbit/stegbit/pkg/chunk"
	"github.com/stegbit/stegbit/pkg/png"
	"github.com/stegbit/stegbit/pkg/vault"
)

// maxUploadSize bounds the request body read for image uploads.
const maxUploadSize = 64 << 20

// Server holds the API server state
type Server struct {
	vault   ImageStore
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server. metrics may be nil, which disables
// instrumentation.
func NewServer(store ImageStore, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		vault:   store,
		config:  config,
		metrics: metrics,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.metrics != nil {
		s.metrics.RecordHealthCheck(true)
	}
	sendSuccess(w, map[string]string{"status": "healthy"})
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadSize))
	if err != nil {
		s.recordVault("create", false, start)
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	id, err := s.vault.Create(body)
	if err != nil {
		s.recordVault("create", false, start)
		sendError(w, fmt.Sprintf("Failed to store image: %v", err), uploadStatus(err))
		return
	}

	s.recordVault("create", true, start)
	sendSuccess(w, map[string]string{"id": id.String()})
}

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := s.imageID(w, r)
	if !ok {
		return
	}

	data, err := s.vault.Read(id)
	if err != nil {
		s.recordVault("read", false, start)
		sendError(w, fmt.Sprintf("Failed to read image: %v", err), vaultStatus(err))
		return
	}

	s.recordVault("read", true, start)
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := s.imageID(w, r)
	if !ok {
		return
	}

	if err := s.vault.Delete(id); err != nil {
		s.recordVault("delete", false, start)
		sendError(w, fmt.Sprintf("Failed to delete image: %v", err), http.StatusInternalServerError)
		return
	}

	s.recordVault("delete", true, start)
	sendSuccess(w, map[string]string{"message": "Image deleted"})
}

func (s *Server) handleListImages(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ids, err := s.vault.List()
	if err != nil {
		s.recordVault("list", false, start)
		sendError(w, fmt.Sprintf("Failed to list images: %v", err), http.StatusInternalServerError)
		return
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}

	s.recordVault("list", true, start)
	if s.metrics != nil {
		s.metrics.UpdateVaultStats(len(ids))
	}
	sendSuccess(w, map[string]interface{}{"images": out})
}

func (s *Server) handleListChunks(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadImage(w, r, "list")
	if !ok {
		return
	}

	infos := make([]ChunkInfo, 0, len(p.Chunks()))
	for _, c := range p.Chunks() {
		infos = append(infos, describeChunk(c))
	}

	s.recordChunk("list", true)
	sendSuccess(w, map[string]interface{}{"chunks": infos})
}

func (s *Server) handleEmbedChunk(w http.ResponseWriter, r *http.Request) {
	id, ok := s.imageID(w, r)
	if !ok {
		return
	}

	var req EmbedRequest
	if err := decodeJSONBody(r, &req); err != nil {
		s.recordChunk("embed", false)
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	ct, err := chunk.ChunkTypeFromString(req.Type)
	if err != nil {
		s.recordChunk("embed", false)
		sendError(w, fmt.Sprintf("Invalid chunk type: %v", err), http.StatusBadRequest)
		return
	}

	data, err := s.vault.Read(id)
	if err != nil {
		s.recordChunk("embed", false)
		sendError(w, fmt.Sprintf("Failed to read image: %v", err), vaultStatus(err))
		return
	}

	p, err := png.Parse(data)
	if err != nil {
		s.recordChunk("embed", false)
		sendError(w, fmt.Sprintf("Stored image is not parseable: %v", err), http.StatusInternalServerError)
		return
	}

	c := chunk.New(ct, []byte(req.Message))
	p.AppendChunk(c)

	if err := s.vault.Update(id, p.Bytes()); err != nil {
		s.recordChunk("embed", false)
		sendError(w, fmt.Sprintf("Failed to update image: %v", err), http.StatusInternalServerError)
		return
	}

	s.recordChunk("embed", true)
	sendSuccess(w, describeChunk(c))
}

func (s *Server) handleExtractChunk(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadImage(w, r, "extract")
	if !ok {
		return
	}

	name := chi.URLParam(r, "type")
	c := p.ChunkByType(name)
	if c == nil {
		s.recordChunk("extract", false)
		sendError(w, "Chunk not found", http.StatusNotFound)
		return
	}

	message, err := c.DataAsString()
	if err != nil {
		s.recordChunk("extract", false)
		sendError(w, "Chunk data is not valid UTF-8 text", http.StatusUnprocessableEntity)
		return
	}

	s.recordChunk("extract", true)
	sendSuccess(w, map[string]string{"type": name, "message": message})
}

func (s *Server) handleStripChunk(w http.ResponseWriter, r *http.Request) {
	id, ok := s.imageID(w, r)
	if !ok {
		return
	}

	data, err := s.vault.Read(id)
	if err != nil {
		s.recordChunk("strip", false)
		sendError(w, fmt.Sprintf("Failed to read image: %v", err), vaultStatus(err))
		return
	}

	p, err := png.Parse(data)
	if err != nil {
		s.recordChunk("strip", false)
		sendError(w, fmt.Sprintf("Stored image is not parseable: %v", err), http.StatusInternalServerError)
		return
	}

	name := chi.URLParam(r, "type")
	removed, err := p.RemoveFirstChunk(name)
	if err != nil {
		s.recordChunk("strip", false)
		sendError(w, "Chunk not found", http.StatusNotFound)
		return
	}

	if err := s.vault.Update(id, p.Bytes()); err != nil {
		s.recordChunk("strip", false)
		sendError(w, fmt.Sprintf("Failed to update image: %v", err), http.StatusInternalServerError)
		return
	}

	s.recordChunk("strip", true)
	sendSuccess(w, describeChunk(removed))
}

// imageID parses the {id} URL parameter, replying with 400 on garbage.
func (s *Server) imageID(w http.ResponseWriter, r *http.Request) (ksuid.KSUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := ksuid.Parse(raw)
	if err != nil {
		sendError(w, "Invalid image id", http.StatusBadRequest)
		return ksuid.KSUID{}, false
	}
	return id, true
}

// loadImage reads and parses the image named by the {id} URL parameter.
func (s *Server) loadImage(w http.ResponseWriter, r *http.Request, operation string) (*png.PNG, bool) {
	id, ok := s.imageID(w, r)
	if !ok {
		return nil, false
	}

	data, err := s.vault.Read(id)
	if err != nil {
		s.recordChunk(operation, false)
		sendError(w, fmt.Sprintf("Failed to read image: %v", err), vaultStatus(err))
		return nil, false
	}

	p, err := png.Parse(data)
	if err != nil {
		s.recordChunk(operation, false)
		sendError(w, fmt.Sprintf("Stored image is not parseable: %v", err), http.StatusInternalServerError)
		return nil, false
	}
	return p, true
}

func (s *Server) recordVault(operation string, success bool, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordVaultOperation(operation, success, time.Since(start))
	}
}

func (s *Server) recordChunk(operation string, success bool) {
	if s.metrics != nil {
		s.metrics.RecordChunkOperation(operation, success)
	}
}

func describeChunk(c *chunk.Chunk) ChunkInfo {
	t := c.Type()
	return ChunkInfo{
		Type:             t.String(),
		Length:           c.Length(),
		Checksum:         c.Checksum(),
		Critical:         t.IsCritical(),
		Public:           t.IsPublic(),
		ReservedBitValid: t.IsReservedBitValid(),
		SafeToCopy:       t.IsSafeToCopy(),
	}
}

// uploadStatus maps a Create failure to a response code: parse failures are
// the client's fault, anything else is ours.
func uploadStatus(err error) int {
	if errors.Is(err, png.ErrBadSignature) || isChunkError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func vaultStatus(err error) int {
	if errors.Is(err, vault.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func isChunkError(err error) bool {
	var (
		invalidByte *chunk.InvalidByteError
		tooShort    *chunk.TooShortError
		truncated   *chunk.TruncatedDataError
		mismatch    *chunk.ChecksumMismatchError
	)
	return errors.As(err, &invalidByte) ||
		errors.As(err, &tooShort) ||
		errors.As(err, &truncated) ||
		errors.As(err, &mismatch) ||
		errors.Is(err, chunk.ErrBadChecksumField)
}
