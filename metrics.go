package platform

import "sync/atomic"

// NoCStatistics tracks network-on-chip traffic counters attributed to bus
// transactions.
type NoCStatistics struct {
	TotalTransactions atomic.Uint64
	NVMePathBytes     atomic.Uint64
	EthernetPathBytes atomic.Uint64
	MemoryAccesses    atomic.Uint64
}

// NoCSnapshot is a point-in-time copy of NoCStatistics.
type NoCSnapshot struct {
	TotalTransactions uint64
	NVMePathBytes     uint64
	EthernetPathBytes uint64
	MemoryAccesses    uint64
}

// Snapshot returns a point-in-time copy of the counters.
func (s *NoCStatistics) Snapshot() NoCSnapshot {
	return NoCSnapshot{
		TotalTransactions: s.TotalTransactions.Load(),
		NVMePathBytes:     s.NVMePathBytes.Load(),
		EthernetPathBytes: s.EthernetPathBytes.Load(),
		MemoryAccesses:    s.MemoryAccesses.Load(),
	}
}

// Observer allows pluggable collection of bus and pipeline events. The
// default platform uses NoCStatistics directly; tests may substitute a
// recording observer to assert on traffic shape without inspecting
// internals.
type Observer interface {
	ObserveTransaction()
	ObserveMemoryAccess(bytes uint64)
	ObserveNVMePathBytes(bytes uint64)
	ObserveEthernetPathBytes(bytes uint64)
}

// NoOpObserver discards every observation.
type NoOpObserver struct{}

func (NoOpObserver) ObserveTransaction()             {}
func (NoOpObserver) ObserveMemoryAccess(uint64)      {}
func (NoOpObserver) ObserveNVMePathBytes(uint64)     {}
func (NoOpObserver) ObserveEthernetPathBytes(uint64) {}

// statsObserver records onto a NoCStatistics instance. It is the platform's
// default Observer.
type statsObserver struct {
	stats *NoCStatistics
}

func (o *statsObserver) ObserveTransaction() {
	o.stats.TotalTransactions.Add(1)
}

func (o *statsObserver) ObserveMemoryAccess(bytes uint64) {
	o.stats.MemoryAccesses.Add(bytes)
}

func (o *statsObserver) ObserveNVMePathBytes(bytes uint64) {
	o.stats.NVMePathBytes.Add(bytes)
}

func (o *statsObserver) ObserveEthernetPathBytes(bytes uint64) {
	o.stats.EthernetPathBytes.Add(bytes)
}

var (
	_ Observer = (*statsObserver)(nil)
	_ Observer = NoOpObserver{}
)

// PipelineStats summarizes the dual-path pipeline's cumulative activity:
// blocks through the pipeline and transfer-gate outcomes. The orchestrator
// maintains it; cmd/blackbox-sim reports it.
type PipelineStats struct {
	BlocksProcessed  uint64
	TotalUncompBytes uint64
	TotalCompBytes   uint64
	TransfersOK      uint64
	TransfersFailed  uint64
}
