package service

import (
	"fmt"
	"sync"
	"time"
)

// ScanMetrics tracks statistics across scan runs
type ScanMetrics struct {
	mu            sync.RWMutex
	StartTime     time.Time
	LastDuration  time.Duration
	Runs          int
	Errors        int
	ContractsSeen int
	RacesJoined   int
	Opportunities int
}

// NewScanMetrics creates a new metrics tracker
func NewScanMetrics() *ScanMetrics {
	return &ScanMetrics{
		StartTime: time.Now(),
	}
}

// Reset resets all metrics
func (m *ScanMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartTime = time.Now()
	m.LastDuration = 0
	m.Runs = 0
	m.Errors = 0
	m.ContractsSeen = 0
	m.RacesJoined = 0
	m.Opportunities = 0
}

// RecordRun records one completed scan
func (m *ScanMetrics) RecordRun(contractsSeen, racesJoined, opportunities int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Runs++
	m.LastDuration = duration
	m.ContractsSeen = contractsSeen
	m.RacesJoined = racesJoined
	m.Opportunities = opportunities
}

// RecordError increments the error count
func (m *ScanMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// Snapshot returns a copy of the current counters
func (m *ScanMetrics) Snapshot() (runs, errors, contractsSeen, racesJoined, opportunities int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Runs, m.Errors, m.ContractsSeen, m.RacesJoined, m.Opportunities
}

// String returns a formatted string representation of metrics
func (m *ScanMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fmt.Sprintf(
		"ScanMetrics{Runs=%d, Errors=%d, Contracts=%d, Races=%d, Opportunities=%d, LastDuration=%v}",
		m.Runs,
		m.Errors,
		m.ContractsSeen,
		m.RacesJoined,
		m.Opportunities,
		m.LastDuration,
	)
}
