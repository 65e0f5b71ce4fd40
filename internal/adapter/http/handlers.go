package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"

	"github.com/couchcryptid/well-data-service/internal/domain"
	"github.com/couchcryptid/well-data-service/internal/pipeline"
)

// multipartMemory is the in-memory share of a multipart upload; the rest
// spills to temporary files.
const multipartMemory = 8 << 20

// Position is the decimal map position of a well.
type Position struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Fallback bool    `json:"fallback"`
}

type selectRequest struct {
	Name string `json:"name"`
}

type generateRequest struct {
	Label string `json:"label"`
}

func (s *Server) handleListWells(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.wells.List())
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.Summarize(s.wells.List()))
}

func (s *Server) handleProduction(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.ProductionMatrix(s.wells.List()))
}

func (s *Server) handleGetWell(w http.ResponseWriter, r *http.Request) {
	well, err := s.wells.Get(wellName(r))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, well)
}

func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	well, err := s.wells.Get(wellName(r))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	pos := domain.ResolvePosition(well.Location)
	writeJSON(w, http.StatusOK, Position{Name: well.Name, Lat: pos.Lat, Lon: pos.Lon, Fallback: pos.Fallback})
}

func (s *Server) handleGetSelected(w http.ResponseWriter, _ *http.Request) {
	well, err := s.wells.Selected()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, well)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "body must be {\"name\": \"<well name>\"}")
		return
	}
	if err := s.wells.Select(req.Name); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.handleGetSelected(w, r)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	well, err := s.svc.Generate(r.Context(), req.Label)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, well)
}

// handleUpload runs one ingestion batch over the multipart "files" fields.
// The batch is not cancelled if the client disconnects.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds "+humanize.IBytes(uint64(tooLarge.Limit))+" limit")
			return
		}
		writeError(w, http.StatusBadRequest, "expected multipart/form-data upload")
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck // temp file cleanup

	headers := append(r.MultipartForm.File["files"], r.MultipartForm.File["files[]"]...)
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "no files in upload")
		return
	}

	docs := make([]domain.Document, 0, len(headers))
	for _, fh := range headers {
		doc, err := readDocument(fh)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		docs = append(docs, doc)
	}

	result := s.svc.Ingest(context.WithoutCancel(r.Context()), docs)
	writeJSON(w, batchStatus(result), result)
}

func readDocument(fh *multipart.FileHeader) (domain.Document, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.Document{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.Document{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return domain.Document{
		Filename: fh.Filename,
		MIMEType: fh.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}

// batchStatus is 200 when any file was stored. Otherwise it is the status of
// the shared failure when every file failed the same way, else 422.
func batchStatus(r pipeline.BatchResult) int {
	if r.Added > 0 {
		return http.StatusOK
	}
	status := 0
	for _, f := range r.Files {
		s := statusFor(f.Err)
		if status != 0 && s != status {
			return http.StatusUnprocessableEntity
		}
		status = s
	}
	if status == 0 || status == http.StatusInternalServerError {
		return http.StatusUnprocessableEntity
	}
	return status
}

// wellName returns the decoded {name} segment. chi matches on RawPath when
// it is set, so only then is the segment still escaped.
func wellName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return raw
	}
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}
