package endpoint

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	httputil "github.com/bsgreeks/greeks-validator/pkg/httputil"
)

var (
	corsMethods = []string{
		http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}
	corsHeaders = []string{
		"Accept", "Accept-Language", "Authorization", "Content-Type",
		"Origin", "Range", "X-Requested-With", RequestIDHeader,
	}
)

// NewHandler builds the full HTTP handler: routes, access log, metrics,
// permissive CORS and panic recovery. metricsHandler is mounted on /metrics
// when not nil.
func NewHandler(A *ArtifactHTTPEndpoint, metricsHandler http.Handler) http.Handler {
	// keep ".." in the path so traversal attempts reach the file handler
	// and get a 400 instead of a redirect
	r := mux.NewRouter().SkipClean(true)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.ResponseError("Not found", http.StatusNotFound, w)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.ResponseError("Method not allowed", http.StatusMethodNotAllowed, w)
	})

	r.Use(accessLog(A.logger))
	if A.metrics != nil {
		r.Use(A.metrics.Middleware)
	}

	A.RegisterRoutes(r)
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	}

	cors := handlers.CORS(
		handlers.AllowedOriginValidator(func(string) bool { return true }),
		handlers.AllowedMethods(corsMethods),
		handlers.AllowedHeaders(corsHeaders),
		handlers.ExposedHeaders([]string{RequestIDHeader, "Content-Length"}),
		handlers.AllowCredentials(),
	)

	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{logger: A.logger}),
	)

	return recovery(cors(WithRequestID(r)))
}
