package utils

import (
	"sync"
	"time"
)

// Tracks performance metrics across the system
type MetricsCollector struct {
	mu           sync.RWMutex
	requestCount uint64
	errorCount   uint64

	// Maps operation name to list of latencies in nanoseconds
	operationTimes map[string][]int64

	systemStartTime time.Time
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		operationTimes:  make(map[string][]int64),
		systemStartTime: time.Now(),
	}
}

func (mc *MetricsCollector) IncrementRequests() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.requestCount++
}

func (mc *MetricsCollector) IncrementErrors() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.errorCount++
}

func (mc *MetricsCollector) AddOperationLatency(operationName string, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if _, exists := mc.operationTimes[operationName]; !exists {
		mc.operationTimes[operationName] = make([]int64, 0)
	}
	mc.operationTimes[operationName] = append(
		mc.operationTimes[operationName],
		duration.Nanoseconds(),
	)
}

// MetricsSnapshot is the point-in-time view served on the health route.
type MetricsSnapshot struct {
	UptimeSeconds    float64            `json:"uptimeSeconds"`
	RequestCount     uint64             `json:"requestCount"`
	ErrorCount       uint64             `json:"errorCount"`
	OperationAvgMs   map[string]float64 `json:"operationAvgMs"`
	OperationSamples map[string]int     `json:"operationSamples"`
}

func (mc *MetricsCollector) Snapshot() MetricsSnapshot {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	snap := MetricsSnapshot{
		UptimeSeconds:    time.Since(mc.systemStartTime).Seconds(),
		RequestCount:     mc.requestCount,
		ErrorCount:       mc.errorCount,
		OperationAvgMs:   make(map[string]float64, len(mc.operationTimes)),
		OperationSamples: make(map[string]int, len(mc.operationTimes)),
	}

	for op, samples := range mc.operationTimes {
		if len(samples) == 0 {
			continue
		}
		var total int64
		for _, ns := range samples {
			total += ns
		}
		snap.OperationSamples[op] = len(samples)
		snap.OperationAvgMs[op] = float64(total) / float64(len(samples)) / 1e6
	}

	return snap
}
