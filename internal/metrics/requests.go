package metrics

import (
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// unmatchedRoute labels requests that no route pattern matched.
const unmatchedRoute = "unmatched"

// RequestMetrics counts HTTP responses and keeps a latency histogram per
// route pattern.
type RequestMetrics struct {
	Requests     atomic.Uint64
	ClientErrors atomic.Uint64
	ServerErrors atomic.Uint64

	mu        sync.RWMutex
	routes    map[string]*Histogram
	size      int
	startTime time.Time
}

// NewRequestMetrics creates a collector whose per-route histograms hold at
// most size samples each.
func NewRequestMetrics(size int) *RequestMetrics {
	return &RequestMetrics{
		routes:    make(map[string]*Histogram),
		size:      size,
		startTime: time.Now(),
	}
}

// Observe records one finished request.
func (m *RequestMetrics) Observe(route string, status int, d time.Duration) {
	m.Requests.Add(1)
	switch {
	case status >= 500:
		m.ServerErrors.Add(1)
	case status >= 400:
		m.ClientErrors.Add(1)
	}
	m.histogram(route).Record(d)
}

func (m *RequestMetrics) histogram(route string) *Histogram {
	m.mu.RLock()
	h, ok := m.routes[route]
	m.mu.RUnlock()
	if ok {
		return h
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok = m.routes[route]; !ok {
		h = NewHistogram(m.size)
		m.routes[route] = h
	}
	return h
}

// Middleware times each request and files it under its chi route pattern,
// e.g. "GET /stats/{deckID}".
func (m *RequestMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.Observe(routeLabel(r), status, time.Since(start))
	})
}

func routeLabel(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	pattern := rctx.RoutePattern()
	if pattern == "" {
		return unmatchedRoute
	}
	return r.Method + " " + pattern
}

// RouteStats is the latency summary for one route.
type RouteStats struct {
	Route   string       `json:"route"`
	Latency LatencyStats `json:"latency"`
}

// Stats is a point-in-time view of the collected metrics.
type Stats struct {
	Requests     uint64       `json:"requests"`
	ClientErrors uint64       `json:"client_errors"`
	ServerErrors uint64       `json:"server_errors"`
	Routes       []RouteStats `json:"routes"`
	Uptime       string       `json:"uptime"`
}

// GetStats returns a snapshot with routes sorted by name.
func (m *RequestMetrics) GetStats() *Stats {
	m.mu.RLock()
	routes := make([]RouteStats, 0, len(m.routes))
	for name, h := range m.routes {
		routes = append(routes, RouteStats{Route: name, Latency: h.Snapshot()})
	}
	m.mu.RUnlock()

	sort.Slice(routes, func(i, j int) bool { return routes[i].Route < routes[j].Route })

	return &Stats{
		Requests:     m.Requests.Load(),
		ClientErrors: m.ClientErrors.Load(),
		ServerErrors: m.ServerErrors.Load(),
		Routes:       routes,
		Uptime:       time.Since(m.startTime).Round(time.Second).String(),
	}
}

// Reset clears all counters and histograms.
func (m *RequestMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests.Store(0)
	m.ClientErrors.Store(0)
	m.ServerErrors.Store(0)
	m.routes = make(map[string]*Histogram)
	m.startTime = time.Now()
}
