package endpoint

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	service "github.com/bsgreeks/greeks-validator/internal/artifact/service"
	"github.com/bsgreeks/greeks-validator/internal/monitoring"
	storage "github.com/bsgreeks/greeks-validator/internal/storage"
	httputil "github.com/bsgreeks/greeks-validator/pkg/httputil"
)

const (
	healthMessage = "Black-Scholes Greek Validator API is running."

	defaultDownloadsLimit = 50
	maxDownloadsLimit     = 500
)

// DownloadAudit persists delivery outcomes
type DownloadAudit interface {
	RecordDownload(rec storage.DownloadRecord) error
	ListRecent(limit int) ([]storage.DownloadRecord, error)
	CountByArtifact() (map[string]int, error)
}

// ArtifactHTTPEndpoint http endpoint for artifact
type ArtifactHTTPEndpoint struct {
	service service.Service
	metrics *monitoring.Metrics
	audit   DownloadAudit
	logger  *slog.Logger
}

// NewArtifactHTTPEndpoint returns new artifact instance. metrics and audit
// are optional.
func NewArtifactHTTPEndpoint(service service.Service, metrics *monitoring.Metrics, audit DownloadAudit, logger *slog.Logger) *ArtifactHTTPEndpoint {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &ArtifactHTTPEndpoint{
		service: service,
		metrics: metrics,
		audit:   audit,
		logger:  logger,
	}
}

// RegisterRoutes mounts the artifact routes on r
func (A *ArtifactHTTPEndpoint) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", A.HealthHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/api/results", A.GetResultsHandler).Methods(http.MethodGet)
	r.HandleFunc("/files/{file_name:.+}", A.GetFileHandler).Methods(http.MethodGet, http.MethodHead)
	if A.audit != nil {
		r.HandleFunc("/api/downloads", A.GetDownloadsHandler).Methods(http.MethodGet)
		r.HandleFunc("/api/downloads/summary", A.GetDownloadSummaryHandler).Methods(http.MethodGet)
	}
}

// HealthHandler health check
func (A *ArtifactHTTPEndpoint) HealthHandler(w http.ResponseWriter, r *http.Request) {
	httputil.ResponseJSON(HealthResponse{Message: healthMessage}, http.StatusOK, w)
}

// GetResultsHandler list csv and png artifacts
func (A *ArtifactHTTPEndpoint) GetResultsHandler(w http.ResponseWriter, r *http.Request) {
	manifest, err := A.service.GetManifest()
	if err != nil {
		A.logger.Error("list results failed", "request_id", RequestID(r.Context()), "err", err)
		writeServiceError(w, err)
		return
	}

	if A.metrics != nil {
		A.metrics.ObserveManifest(manifest)
	}

	httputil.ResponseJSON(ResultsResponse{CSV: manifest.CSV, Plots: manifest.Plots}, http.StatusOK, w)
}

// GetFileHandler stream a single artifact
func (A *ArtifactHTTPEndpoint) GetFileHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["file_name"]

	content, err := A.service.GetArtifact(name)
	if err != nil {
		if service.KindOf(err) == service.KindServerError {
			A.logger.Error("get file failed", "request_id", RequestID(r.Context()), "file", name, "err", err)
		}
		status := writeServiceError(w, err)
		A.recordDownload(r, name, status, 0)
		return
	}
	defer content.Body.Close()

	w.Header().Set("Content-Type", content.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(content.Size, 10))
	if !content.ModTime.IsZero() {
		w.Header().Set("Last-Modified", content.ModTime.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}

	n, err := io.Copy(w, content.Body)
	if A.metrics != nil {
		A.metrics.AddBytesServed(name, n)
	}
	if err != nil {
		// headers are gone already, the short body tells the client
		A.logger.Error("stream file failed", "request_id", RequestID(r.Context()), "file", name, "written", n, "err", err)
		A.recordDownload(r, name, http.StatusInternalServerError, n)
		return
	}

	A.recordDownload(r, name, http.StatusOK, n)
}

// GetDownloadsHandler list recent downloads
func (A *ArtifactHTTPEndpoint) GetDownloadsHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultDownloadsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httputil.ResponseError("Invalid limit", http.StatusBadRequest, w)
			return
		}
		limit = min(parsed, maxDownloadsLimit)
	}

	records, err := A.audit.ListRecent(limit)
	if err != nil {
		A.logger.Error("list downloads failed", "request_id", RequestID(r.Context()), "err", err)
		httputil.ResponseError("Can't list downloads", http.StatusInternalServerError, w)
		return
	}

	httputil.ResponseJSON(DownloadsResponse{Downloads: records}, http.StatusOK, w)
}

// GetDownloadSummaryHandler count successful downloads per artifact
func (A *ArtifactHTTPEndpoint) GetDownloadSummaryHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := A.audit.CountByArtifact()
	if err != nil {
		A.logger.Error("count downloads failed", "request_id", RequestID(r.Context()), "err", err)
		httputil.ResponseError("Can't count downloads", http.StatusInternalServerError, w)
		return
	}

	httputil.ResponseJSON(DownloadSummaryResponse{Counts: counts}, http.StatusOK, w)
}

func (A *ArtifactHTTPEndpoint) recordDownload(r *http.Request, name string, status int, written int64) {
	if A.audit == nil {
		return
	}
	err := A.audit.RecordDownload(storage.DownloadRecord{
		RequestID:    RequestID(r.Context()),
		ArtifactName: name,
		Status:       status,
		BytesServed:  written,
		ServedAt:     time.Now().UTC(),
	})
	if err != nil {
		A.logger.Warn("record download failed", "request_id", RequestID(r.Context()), "err", err)
	}
}

// writeServiceError is the single place where service error kinds become
// HTTP statuses. It returns the status written.
func writeServiceError(w http.ResponseWriter, err error) int {
	status := statusOf(service.KindOf(err))

	message := "Internal server error"
	var serviceErr *service.Error
	if errors.As(err, &serviceErr) && serviceErr.Message != "" {
		message = serviceErr.Message
	}

	httputil.ResponseError(message, status, w)
	return status
}

func statusOf(kind service.ErrorKind) int {
	switch kind {
	case service.KindBadRequest:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
