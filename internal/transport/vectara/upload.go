package vectara

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// UploadFile uploads one file into a corpus with document-level metadata.
// Extraction and chunking happen server side.
func (c *Client) UploadFile(ctx context.Context, corpusKey, filePath string, metadata map[string]any) error {
	f, err := os.Open(filepath.Clean(filePath))
	if err != nil {
		return fmt.Errorf("vectara upload_file: open %s: %w", filePath, err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	meta, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("vectara upload_file: encode metadata: %w", err)
	}
	metaPart, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="metadata"`},
		"Content-Type":        {"application/json"},
	})
	if err != nil {
		return fmt.Errorf("vectara upload_file: create metadata part: %w", err)
	}
	if _, err := metaPart.Write(meta); err != nil {
		return fmt.Errorf("vectara upload_file: write metadata: %w", err)
	}

	part, err := w.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return fmt.Errorf("vectara upload_file: create file part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("vectara upload_file: read %s: %w", filePath, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("vectara upload_file: close multipart: %w", err)
	}

	var doc documentDTO
	err = c.do(ctx, call{
		op:          "upload_file",
		method:      http.MethodPost,
		path:        "/v2/corpora/" + url.PathEscape(corpusKey) + "/upload_file",
		body:        &buf,
		contentType: w.FormDataContentType(),
	}, &doc)
	if err != nil {
		return err
	}
	c.logger.Debug("file uploaded",
		zap.String("corpus_key", corpusKey),
		zap.String("document_id", doc.ID),
	)
	return nil
}
