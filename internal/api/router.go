package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/pmanalytics/internal/api/handlers"
	"github.com/wonny/pmanalytics/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(dashboardHandler *handlers.DashboardHandler, fundsHandler *handlers.FundsHandler, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Dashboard endpoints
	api.HandleFunc("/dashboard", dashboardHandler.GetDashboard).Methods("GET")
	api.HandleFunc("/breakdowns/{dimension}", dashboardHandler.GetBreakdown).Methods("GET")
	api.HandleFunc("/charts", dashboardHandler.GetCharts).Methods("GET")
	api.HandleFunc("/charts/{name}.svg", dashboardHandler.GetChartSVG).Methods("GET")
	api.HandleFunc("/meta", dashboardHandler.GetMeta).Methods("GET")

	// Fund table
	api.HandleFunc("/funds", fundsHandler.ListFunds).Methods("GET")
	api.HandleFunc("/funds/{id}", fundsHandler.GetFund).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "fundboard",
	})
}

// statusRecorder captures the status code written by the next handler
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.wroteHeader {
		return
	}
	s.status = code
	s.wroteHeader = true
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.wroteHeader = true
	return s.ResponseWriter.Write(b)
}

// loggingMiddleware logs every request with its final status
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware turns a handler panic into a 500 JSON error.
// If the handler already started the response, only the log entry is written.
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := newStatusRecorder(w)

			defer func() {
				p := recover()
				if p == nil {
					return
				}

				if !rec.wroteHeader {
					rec.Header().Set("Content-Type", "application/json")
					rec.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(rec).Encode(map[string]string{
						"error": "Internal server error",
					})
				}

				log.WithFields(map[string]interface{}{
					"panic":  p,
					"method": r.Method,
					"path":   r.URL.Path,
					"status": rec.status,
				}).Error("Panic recovered")
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
