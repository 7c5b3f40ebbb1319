package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// FilePart es un archivo a incluir en un request multipart.
type FilePart struct {
	FieldName   string // nombre del campo del formulario (p.ej. "files")
	FileName    string
	ContentType string
	Data        io.Reader
}

// DoMultipart hace un POST multipart/form-data con campos de texto y archivos.
// El body se construye en memoria; para los tamaños de esta app (fotos de
// móvil, PDFs) es suficiente.
func (c *Client) DoMultipart(
	ctx context.Context,
	pathOrURL string,
	headers map[string]string,
	fields map[string]string,
	parts []FilePart,
	out any,
) error {
	if c == nil || c.HTTP == nil {
		return fmt.Errorf("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(pathOrURL)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("httpclient: write field: %w", err)
		}
	}

	for _, p := range parts {
		field := p.FieldName
		if field == "" {
			field = "files"
		}
		var w io.Writer
		if p.ContentType != "" {
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, p.FileName))
			h.Set("Content-Type", p.ContentType)
			w, err = mw.CreatePart(h)
		} else {
			w, err = mw.CreateFormFile(field, p.FileName)
		}
		if err != nil {
			return fmt.Errorf("httpclient: create part: %w", err)
		}
		if _, err := io.Copy(w, p.Data); err != nil {
			return fmt.Errorf("httpclient: copy part: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return fmt.Errorf("httpclient: close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, &buf)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := readAtMost(resp.Body, 1<<20)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}
