package audit

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"time"
)

// Entry records one administrative action against the billing API.
type Entry struct {
	ID            string
	Actor         string
	Role          string
	Action        string
	ResourceType  string
	ResourceID    string
	Metadata      json.RawMessage
	PayloadDigest string
	IP            string
	UserAgent     string
	CreatedAt     time.Time
}

// Logger writes audit entries.
type Logger interface {
	Log(ctx context.Context, entry Entry) error
}

// NewID generates a random audit id.
func NewID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return "audit-" + hex.EncodeToString(buf)
}

// DigestJSON computes a SHA256 hex digest for metadata payloads.
func DigestJSON(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// LogRecorder writes audit entries to the process log. The billing
// store is a plain workbook, so there is no database to keep an audit
// table in.
type LogRecorder struct {
	logger *log.Logger
}

// NewLogRecorder constructs a recorder.
func NewLogRecorder(logger *log.Logger) *LogRecorder {
	if logger == nil {
		return nil
	}
	return &LogRecorder{logger: logger}
}

// Log writes one entry.
func (r *LogRecorder) Log(ctx context.Context, entry Entry) error {
	_ = ctx
	if r == nil || r.logger == nil {
		return nil
	}
	if entry.ID == "" {
		entry.ID = NewID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.PayloadDigest == "" {
		entry.PayloadDigest = DigestJSON(entry.Metadata)
	}
	r.logger.Printf("audit %s action=%s actor=%s role=%s resource=%s/%s digest=%s ip=%s",
		entry.ID, entry.Action, entry.Actor, entry.Role, entry.ResourceType, entry.ResourceID,
		entry.PayloadDigest, entry.IP)
	return nil
}
