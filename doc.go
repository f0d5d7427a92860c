// Package platform simulates a small DPU system-on-chip: a discrete-event
// kernel, a fixed memory-mapped address space, four MMIO device models
// (compressor, DMA, NVMe, Ethernet MAC), and an orchestrator implementing
// dual-path logging: every input block is compressed, persisted locally,
// and indexed by timestamp, with gated on-demand delivery to a remote
// endpoint.
package platform
