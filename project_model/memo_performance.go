package project_model

import (
	"time"
)

// MemoReport is a point-in-time view of the memo counters.
type MemoReport struct {
	TotalRequests     int64   `json:"total_requests" yaml:"total_requests"`
	CacheHits         int64   `json:"cache_hits" yaml:"cache_hits"`
	CacheMisses       int64   `json:"cache_misses" yaml:"cache_misses"`
	Evictions         int64   `json:"evictions" yaml:"evictions"`
	HitRatePercent    float64 `json:"hit_rate_percent" yaml:"hit_rate_percent"`
	MissRatePercent   float64 `json:"miss_rate_percent" yaml:"miss_rate_percent"`
	Entries           int     `json:"entries" yaml:"entries"`
	UptimeSeconds     float64 `json:"uptime_seconds" yaml:"uptime_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// recordHit increments the hit counter
func (mc *MemoCache) recordHit() {
	if mc.stats == nil {
		return
	}
	mc.stats.mutex.Lock()
	defer mc.stats.mutex.Unlock()
	mc.stats.TotalRequests++
	mc.stats.CacheHits++
}

// recordMiss increments the miss counter
func (mc *MemoCache) recordMiss() {
	if mc.stats == nil {
		return
	}
	mc.stats.mutex.Lock()
	defer mc.stats.mutex.Unlock()
	mc.stats.TotalRequests++
	mc.stats.CacheMisses++
}

func (mc *MemoCache) recordEviction() {
	if mc.stats == nil {
		return
	}
	mc.stats.mutex.Lock()
	defer mc.stats.mutex.Unlock()
	mc.stats.Evictions++
}

// PerformanceStats returns the current memo counters.
func (mc *MemoCache) PerformanceStats() MemoReport {
	report := MemoReport{Entries: mc.Len()}
	if mc.stats == nil {
		return report
	}

	mc.stats.mutex.RLock()
	defer mc.stats.mutex.RUnlock()

	report.TotalRequests = mc.stats.TotalRequests
	report.CacheHits = mc.stats.CacheHits
	report.CacheMisses = mc.stats.CacheMisses
	report.Evictions = mc.stats.Evictions

	if mc.stats.TotalRequests > 0 {
		report.HitRatePercent = float64(mc.stats.CacheHits) / float64(mc.stats.TotalRequests) * 100
		report.MissRatePercent = float64(mc.stats.CacheMisses) / float64(mc.stats.TotalRequests) * 100
	}

	uptime := time.Since(mc.stats.LastResetTime)
	report.UptimeSeconds = uptime.Seconds()
	if uptime.Seconds() > 0 {
		report.RequestsPerSecond = float64(mc.stats.TotalRequests) / uptime.Seconds()
	}

	return report
}

// ResetPerformanceStats resets all performance counters
func (mc *MemoCache) ResetPerformanceStats() {
	if mc.stats == nil {
		return
	}
	mc.stats.mutex.Lock()
	defer mc.stats.mutex.Unlock()

	mc.stats.TotalRequests = 0
	mc.stats.CacheHits = 0
	mc.stats.CacheMisses = 0
	mc.stats.Evictions = 0
	mc.stats.LastResetTime = time.Now()
}
