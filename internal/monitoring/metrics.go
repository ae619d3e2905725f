package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Monitor aggregates request counters and dependency probes for one server
// instance. Probes run on demand so /health always reflects the current state
// of the database and cache, not a cached result.
type Monitor struct {
	mu     sync.RWMutex
	stats  requestStats
	probes map[string]ProbeFunc
	start  time.Time
}

type requestStats struct {
	total         int64
	active        int64
	errors        int64
	totalDuration time.Duration
	byStatus      map[int]int64
	byRoute       map[string]int64
	lastRequest   time.Time
}

// ProbeFunc reports whether a dependency is reachable.
type ProbeFunc func(ctx context.Context) error

type ProbeResult struct {
	Name    string    `json:"name"`
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	RanAt   time.Time `json:"ranAt"`
}

const probeTimeout = 5 * time.Second

func NewMonitor() *Monitor {
	return &Monitor{
		stats: requestStats{
			byStatus: make(map[int]int64),
			byRoute:  make(map[string]int64),
		},
		probes: make(map[string]ProbeFunc),
		start:  time.Now(),
	}
}

func (m *Monitor) RegisterProbe(name string, probe ProbeFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.probes[name] = probe
}

func (m *Monitor) runProbes() (map[string]ProbeResult, bool) {
	m.mu.RLock()
	probes := make(map[string]ProbeFunc, len(m.probes))
	for name, probe := range m.probes {
		probes[name] = probe
	}
	m.mu.RUnlock()

	results := make(map[string]ProbeResult, len(probes))
	healthy := true
	for name, probe := range probes {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		err := probe(ctx)
		cancel()

		result := ProbeResult{Name: name, Status: "healthy", RanAt: time.Now()}
		if err != nil {
			result.Status = "unhealthy"
			result.Message = err.Error()
			healthy = false
		}
		results[name] = result
	}
	return results, healthy
}

// Middleware records per-request counters keyed by method and route pattern.
func (m *Monitor) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		m.mu.Lock()
		m.stats.active++
		m.mu.Unlock()

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		route := c.Request.Method + " " + c.FullPath()

		m.mu.Lock()
		m.stats.total++
		m.stats.active--
		m.stats.totalDuration += duration
		m.stats.lastRequest = time.Now()
		if status >= 400 {
			m.stats.errors++
		}
		m.stats.byStatus[status]++
		m.stats.byRoute[route]++
		m.mu.Unlock()
	}
}

type Snapshot struct {
	RequestCount   int64            `json:"requestCount"`
	ActiveRequests int64            `json:"activeRequests"`
	ErrorCount     int64            `json:"errorCount"`
	AvgDurationMs  float64          `json:"avgDurationMs"`
	StatusCodes    map[int]int64    `json:"statusCodes"`
	Routes         map[string]int64 `json:"routes"`
	LastRequest    time.Time        `json:"lastRequest"`
	Uptime         string           `json:"uptime"`
}

func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		RequestCount:   m.stats.total,
		ActiveRequests: m.stats.active,
		ErrorCount:     m.stats.errors,
		StatusCodes:    make(map[int]int64, len(m.stats.byStatus)),
		Routes:         make(map[string]int64, len(m.stats.byRoute)),
		LastRequest:    m.stats.lastRequest,
		Uptime:         time.Since(m.start).String(),
	}
	if m.stats.total > 0 {
		snap.AvgDurationMs = float64(m.stats.totalDuration.Milliseconds()) / float64(m.stats.total)
	}
	for k, v := range m.stats.byStatus {
		snap.StatusCodes[k] = v
	}
	for k, v := range m.stats.byRoute {
		snap.Routes[k] = v
	}
	return snap
}

type runtimeStats struct {
	Goroutines int    `json:"goroutines"`
	AllocMB    uint64 `json:"allocMb"`
	SysMB      uint64 `json:"sysMb"`
	NumGC      uint32 `json:"numGc"`
	GoVersion  string `json:"goVersion"`
}

func collectRuntimeStats() runtimeStats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return runtimeStats{
		Goroutines: runtime.NumGoroutine(),
		AllocMB:    ms.Alloc / 1024 / 1024,
		SysMB:      ms.Sys / 1024 / 1024,
		NumGC:      ms.NumGC,
		GoVersion:  runtime.Version(),
	}
}

func (m *Monitor) MetricsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"requests":  m.Snapshot(),
			"runtime":   collectRuntimeStats(),
			"timestamp": time.Now(),
		})
	}
}

func (m *Monitor) HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		results, healthy := m.runProbes()

		status := "healthy"
		code := http.StatusOK
		if !healthy {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"checks":    results,
			"uptime":    time.Since(m.start).String(),
			"timestamp": time.Now(),
		})
	}
}

func (m *Monitor) ReadinessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, healthy := m.runProbes()
		if !healthy {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "timestamp": time.Now()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "timestamp": time.Now()})
	}
}

func (m *Monitor) LivenessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "alive",
			"uptime":    time.Since(m.start).String(),
			"timestamp": time.Now(),
		})
	}
}
