package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Depado/ginprom"
	employeedb "github.com/database-playground/employee-api/lib"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	sloggin "github.com/samber/slog-gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const serviceName = "employee-api"

var tracer = otel.Tracer(serviceName)

// newRouter builds the HTTP surface over store. Metrics are registered
// into reg and exposed at /metrics.
func newRouter(store *employeedb.Store, reg *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(sloggin.New(slog.Default()))
	r.Use(gin.Recovery())

	p := ginprom.New(
		ginprom.Engine(r),
		ginprom.Registry(reg),
		ginprom.Path("/metrics"),
	)
	r.Use(p.Instrument())
	r.Use(otelgin.Middleware(serviceName))

	p.AddCustomCounter("query_requests_total", "The total number of ad-hoc query requests.", []string{"code"})
	p.AddCustomHistogram("query_requests_duration_seconds", "The duration of each ad-hoc query request.", []string{"code"})

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	service := &EmployeeService{
		store: store,
		p:     p,
	}
	r.GET("/", service.Root)
	r.GET("/employees", service.ListEmployees)
	r.POST("/run_query", service.RunQuery)
	r.GET("/ui", serveUI)

	return r
}

type EmployeeService struct {
	store *employeedb.Store
	p     *ginprom.Prometheus
}

func (s *EmployeeService) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Employee API"})
}

func (s *EmployeeService) ListEmployees(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "EmployeeService.ListEmployees")
	defer span.End()

	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "list error")
		span.RecordError(err)

		slog.ErrorContext(ctx, "list employees", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
		return
	}

	span.SetAttributes(attribute.Int("employees.count", len(employees)))
	span.SetStatus(codes.Ok, "success")
	c.JSON(http.StatusOK, employees)
}

func (s *EmployeeService) RunQuery(c *gin.Context) {
	now := time.Now()

	ctx, span := tracer.Start(c.Request.Context(), "EmployeeService.RunQuery")
	defer span.End()

	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetStatus(codes.Error, "bad payload")
		span.RecordError(err)

		s.respondFailed(c, now, BadPayloadError{Parent: err})
		return
	}

	query, err := req.Text()
	if err != nil {
		span.SetStatus(codes.Error, "bad query")
		span.RecordError(err)

		s.respondFailed(c, now, err)
		return
	}

	span.AddEvent("store.query")
	result, err := s.store.UnsafeRunQuery(ctx, query)
	if err != nil {
		span.SetStatus(codes.Error, "query error")
		span.RecordError(err)

		s.respondFailed(c, now, err)
		return
	}

	s.observe(http.StatusOK, now)
	span.SetStatus(codes.Ok, "success")

	c.JSON(http.StatusOK, QueryResponse{Results: result})
}

func (s *EmployeeService) respondFailed(c *gin.Context, start time.Time, err error) {
	status, body := NewFailedResponse(err)
	s.observe(status, start)
	c.JSON(status, body)
}

func (s *EmployeeService) observe(status int, start time.Time) {
	code := []string{strconv.Itoa(status)}
	if err := s.p.IncrementCounterValue("query_requests_total", code); err != nil {
		slog.Warn("increment query counter", slog.Any("error", err))
	}
	if err := s.p.AddCustomHistogramValue("query_requests_duration_seconds", code, time.Since(start).Seconds()); err != nil {
		slog.Warn("observe query duration", slog.Any("error", err))
	}
}

// QueryRequest is the body of /run_query. Query is left untyped so that a
// non-string value is answered like a failed query rather than a bad payload.
type QueryRequest struct {
	Query any `json:"query"`
}

// Text returns the query string. Absent or empty values (null, "", 0,
// false, [] and {}) are ErrMissingQuery; other non-strings are rejected.
func (r QueryRequest) Text() (string, error) {
	switch q := r.Query.(type) {
	case nil:
		return "", employeedb.ErrMissingQuery
	case string:
		if q == "" {
			return "", employeedb.ErrMissingQuery
		}
		return q, nil
	case bool:
		if !q {
			return "", employeedb.ErrMissingQuery
		}
	case float64:
		if q == 0 {
			return "", employeedb.ErrMissingQuery
		}
	case []any:
		if len(q) == 0 {
			return "", employeedb.ErrMissingQuery
		}
	case map[string]any:
		if len(q) == 0 {
			return "", employeedb.ErrMissingQuery
		}
	}

	return "", fmt.Errorf("query must be a string, not %s", jsonTypeName(r.Query))
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	case []any:
		return "an array"
	default:
		return "an object"
	}
}

// QueryResponse is the success shape of /run_query.
type QueryResponse struct {
	Results *employeedb.QueryResult `json:"results"`
}

// ErrorResponse is the failure shape of /run_query when the store
// rejected the query.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DetailResponse is the failure shape for requests rejected
// before reaching the store.
type DetailResponse struct {
	Detail string `json:"detail"`
}

type BadPayloadError struct {
	Parent error
}

// NewFailedResponse maps an error to its status code and response body.
// Store messages are forwarded verbatim.
func NewFailedResponse(err error) (int, any) {
	var badPayloadError BadPayloadError
	var queryError employeedb.QueryError

	switch {
	case errors.As(err, &badPayloadError):
		return http.StatusUnprocessableEntity, DetailResponse{Detail: badPayloadError.Parent.Error()}
	case errors.Is(err, employeedb.ErrMissingQuery):
		return http.StatusBadRequest, DetailResponse{Detail: "No query provided"}
	case errors.As(err, &queryError):
		return http.StatusBadRequest, ErrorResponse{Error: queryError.Parent.Error()}
	default:
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	}
}

func (e BadPayloadError) Error() string {
	return "bad payload: " + e.Parent.Error()
}
