package api

import "github.com/segmentio/ksuid"

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// EmbedRequest asks for a message to be written into an image as a new chunk
type EmbedRequest struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ChunkInfo describes one chunk of a stored image
type ChunkInfo struct {
	Type             string `json:"type"`
	Length           uint32 `json:"length"`
	Checksum         uint32 `json:"checksum"`
	Critical         bool   `json:"critical"`
	Public           bool   `json:"public"`
	ReservedBitValid bool   `json:"reserved_bit_valid"`
	SafeToCopy       bool   `json:"safe_to_copy"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port    int
	Bind    string
	APIKey  string
	DataDir string
}

// ImageStore defines the vault operations the server depends on
type ImageStore interface {
	Create(data []byte) (ksuid.KSUID, error)
	Read(id ksuid.KSUID) ([]byte, error)
	Update(id ksuid.KSUID, data []byte) error
	Delete(id ksuid.KSUID) error
	List() ([]ksuid.KSUID, error)
}
