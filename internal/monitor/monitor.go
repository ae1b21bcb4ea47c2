// Package monitor exposes an HTTP control-and-introspection surface over a
// running simulation driver: a stop switch, live sweep-point progress, host
// resource usage, and on-demand CPU profile capture.
package monitor

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	// registers the /debug/pprof handlers on http.DefaultServeMux; the
	// monitor's own router does not serve them, and collectProfile calls
	// runtime/pprof directly.
	_ "net/http/pprof"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"bytes"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/sirupsen/logrus"
)

// Monitor turns a running sweep into an inspectable HTTP server.
type Monitor struct {
	portNumber int
	stopFlag   *atomic.Bool
	log        *logrus.Logger

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a Monitor with no registered stop flag; RegisterStopFlag
// must be called before StartServer if /api/stop is to do anything.
func NewMonitor(log *logrus.Logger) *Monitor {
	return &Monitor{log: log}
}

// WithPortNumber sets the listening port, falling back to a random port for
// values the OS reserves.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1024 {
		fmt.Fprintf(os.Stderr,
			"port %d is reserved, using a random port instead\n", portNumber)
		portNumber = 0
	}
	m.portNumber = portNumber
	return m
}

// RegisterStopFlag wires the shared stop flag the simulation driver polls
// between frames; POSTing to /api/stop sets it.
func (m *Monitor) RegisterStopFlag(stopFlag *atomic.Bool) {
	m.stopFlag = stopFlag
}

// CreateProgressBar registers a new sweep-point progress tracker.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := newProgressBar(name, total)

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()
	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar once its sweep point is done.
func (m *Monitor) CompleteProgressBar(bar *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	remaining := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != bar {
			remaining = append(remaining, b)
		}
	}
	m.progressBars = remaining
}

// StartServer binds the listener and serves in a background goroutine. It
// returns once the listener is bound, so the caller can log the chosen port.
func (m *Monitor) StartServer() (int, error) {
	r := mux.NewRouter()
	r.HandleFunc("/api/stop", m.stop).Methods(http.MethodPost)
	r.HandleFunc("/api/progress", m.listProgress).Methods(http.MethodGet)
	r.HandleFunc("/api/resource", m.resource).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", m.collectProfile).Methods(http.MethodGet)

	addr := ":0"
	if m.portNumber > 0 {
		addr = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return 0, err
	}

	port := listener.Addr().(*net.TCPAddr).Port

	go func() {
		if err := http.Serve(listener, r); err != nil && m.log != nil {
			m.log.WithError(err).Error("monitor server stopped")
		}
	}()

	return port, nil
}

func (m *Monitor) stop(w http.ResponseWriter, _ *http.Request) {
	if m.stopFlag != nil {
		m.stopFlag.Store(true)
	}
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) listProgress(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]*ProgressBar, len(m.progressBars))
	copy(bars, m.progressBars)
	m.progressBarsLock.Unlock()

	m.writeJSON(w, bars)
}

type resourceResponse struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemoryRSS  uint64  `json:"memory_rss"`
}

func (m *Monitor) resource(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		m.writeError(w, err)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		m.writeError(w, err)
		return
	}

	memInfo, err := proc.MemoryInfo()
	if err != nil {
		m.writeError(w, err)
		return
	}

	m.writeJSON(w, resourceResponse{CPUPercent: cpuPercent, MemoryRSS: memInfo.RSS})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	if err := pprof.StartCPUProfile(buf); err != nil {
		m.writeError(w, err)
		return
	}
	time.Sleep(time.Second)
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		m.writeError(w, err)
		return
	}

	m.writeJSON(w, prof)
}

func (m *Monitor) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil && m.log != nil {
		m.log.WithError(err).Error("failed to encode monitor response")
	}
}

func (m *Monitor) writeError(w http.ResponseWriter, err error) {
	if m.log != nil {
		m.log.WithError(err).Error("monitor request failed")
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
