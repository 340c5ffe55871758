package monitoring

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"chit-backend/internal/timeutil"
	"chit-backend/pkg/utils"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// MonitoringServer exposes ops stats on a side port, away from the public API
type MonitoringServer struct {
	db        *pgxpool.Pool
	port      int
	startedAt time.Time
}

type Stats struct {
	DatabaseStatus    string  `json:"database_status"`
	ResponseTime      int64   `json:"response_time_ms"`
	ActiveConnections int32   `json:"active_connections"`
	IdleConnections   int32   `json:"idle_connections"`
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryPercent     float64 `json:"memory_percent"`
	DiskPercent       float64 `json:"disk_percent"`
	Uptime            string  `json:"uptime"`
	ServerTime        string  `json:"server_time"`
}

func NewMonitoringServer(db *pgxpool.Pool, port int) *MonitoringServer {
	return &MonitoringServer{
		db:        db,
		port:      port,
		startedAt: time.Now(),
	}
}

func (s *MonitoringServer) Start() {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/stats", s.handleStats).Methods("GET")

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("[Monitoring] Stats server listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Printf("[Monitoring] Server stopped: %v", err)
	}
}

func (s *MonitoringServer) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := Stats{
		DatabaseStatus: "healthy",
		Uptime:         time.Since(s.startedAt).Round(time.Second).String(),
		ServerTime:     timeutil.FormatIST(time.Now(), timeutil.DateTimeLayout),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	start := time.Now()
	if err := s.db.Ping(ctx); err != nil {
		stats.DatabaseStatus = "unhealthy"
	}
	stats.ResponseTime = time.Since(start).Milliseconds()

	poolStats := s.db.Stat()
	stats.ActiveConnections = poolStats.AcquiredConns()
	stats.IdleConnections = poolStats.IdleConns()

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = du.UsedPercent
	}

	utils.JSON(w, http.StatusOK, stats)
}
