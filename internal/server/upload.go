package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	ingestdomain "github.com/smallbiznis/txnsight/internal/ingest/domain"
	"go.uber.org/zap"
)

// UploadTransactions serves POST /api/v1/transactions/upload.
//
// The request is a multipart form with one "file" field holding the
// settlement spreadsheet. The response is a text/event-stream: one
// "progress" event per persisted batch, in increasing processed order,
// terminated by a "summary" event. Validation and parse failures are
// rejected before any batch is written.
func (s *Server) UploadTransactions(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, newValidationError("file", "required", "no file uploaded"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	defer file.Close()

	rows, err := s.reader.Parse(file)
	if err != nil {
		s.log.Warn("parse upload",
			zap.String("filename", fileHeader.Filename),
			zap.Error(err),
		)
		AbortWithError(c, newValidationError("file", "unreadable", "could not parse spreadsheet"))
		return
	}

	writer := c.Writer
	headers := writer.Header()
	headers.Set("Content-Type", "text/event-stream")
	headers.Set("Cache-Control", "no-cache")
	headers.Set("Connection", "keep-alive")
	headers.Set("X-Accel-Buffering", "no")

	flusher, ok := writer.(http.Flusher)
	if !ok {
		AbortWithError(c, ErrInternal)
		return
	}
	c.Status(http.StatusOK)

	summary, err := s.ingestSvc.Upload(c.Request.Context(), rows, func(p ingestdomain.Progress) {
		if err := writeUploadEvent(writer, "progress", p); err != nil {
			return
		}
		flusher.Flush()
	})
	// The stream is already open, so failures surface as a terminal
	// error event instead of a status code.
	if err != nil {
		_ = writeUploadEvent(writer, "error", gin.H{"message": "error processing file"})
		flusher.Flush()
		return
	}

	_ = writeUploadEvent(writer, "summary", summary)
	flusher.Flush()
}

func writeUploadEvent(w io.Writer, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err
}
