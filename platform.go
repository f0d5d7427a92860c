package platform

import (
	"github.com/dpusim/platform/internal/compressor"
	"github.com/dpusim/platform/internal/config"
	"github.com/dpusim/platform/internal/dma"
	"github.com/dpusim/platform/internal/ethernet"
	"github.com/dpusim/platform/internal/eventqueue"
	"github.com/dpusim/platform/internal/logging"
	"github.com/dpusim/platform/internal/memory"
	"github.com/dpusim/platform/internal/nvme"
)

// Platform owns the memory fabric, every device, the event queue, and the
// orchestrator's in-memory index/markers for the lifetime of one
// simulation run.
type Platform struct {
	memory     *memory.Fabric
	eventQueue *eventqueue.Queue

	compressor compressor.Device
	dma        *dma.Engine
	nvme       *nvme.Controller
	ethernet   *ethernet.MAC

	noc      NoCStatistics
	pstats   PipelineStats
	observer Observer

	logger *logging.Logger
	cfg    *config.PlatformConfig

	index      []LogIndexEntry
	markers    []EventMarker
	cloudSync  *CloudSyncState
	permission PermissionOracle

	markerKeyFile string
}

// New constructs a Platform from cfg: opens the NVMe backing file and the
// Ethernet cloud-backup file, and wires every device to the shared memory
// fabric and event queue. oracle may be nil, in which case a
// LocalFirstOracle with remote config denied is used.
func New(cfg *config.PlatformConfig, logger *logging.Logger, oracle PermissionOracle) (*Platform, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if oracle == nil {
		oracle = &LocalFirstOracle{}
	}

	nvmeCtrl, err := nvme.Open(cfg.NVMeBackingFile)
	if err != nil {
		return nil, WrapError("platform.new", ErrIO, err)
	}

	ethMAC, err := ethernet.Open(cfg.CloudBackupFile, cfg.RemoteEndpoint, cfg.RemoteTimeout)
	if err != nil {
		nvmeCtrl.Close()
		return nil, WrapError("platform.new", ErrIO, err)
	}

	p := &Platform{
		memory:        memory.New(),
		eventQueue:    eventqueue.New(),
		dma:           dma.New(),
		nvme:          nvmeCtrl,
		ethernet:      ethMAC,
		logger:        logger,
		cfg:           cfg,
		cloudSync:     NewCloudSyncState(),
		permission:    oracle,
		markerKeyFile: cfg.MarkerKeyFile,
	}
	p.observer = &statsObserver{stats: &p.noc}
	p.compressor.Level = uint32(cfg.CompressionLevel)
	return p, nil
}

// Close releases the NVMe and Ethernet backing files.
func (p *Platform) Close() error {
	err1 := p.nvme.Close()
	err2 := p.ethernet.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// Read performs a bus read.
func (p *Platform) Read(addr uint32) uint32 {
	return p.busRead(addr)
}

// Write performs a bus write.
func (p *Platform) Write(addr uint32, word uint32) {
	p.busWrite(addr, word)
}

// ConfigureDMAFanout sets the secondary destination for a DMA channel's
// fan-out tee. The channel copies to it, clamped to the destination
// region's remaining bytes, on transfers started with FANOUT_EN set.
// The fan-out destination has no MMIO register; it is configured out of
// band, before the transfer is started.
func (p *Platform) ConfigureDMAFanout(channel int, dst uint32) error {
	if channel < 0 || channel >= len(p.dma.Channels) {
		return NewError("dma.fanout", ErrAddressUnresolved, "no such channel")
	}
	p.dma.Channels[channel].FanoutDst = dst
	return nil
}

// Now returns the current virtual clock value.
func (p *Platform) Now() uint64 {
	return p.eventQueue.Now()
}

// Drain processes events until isDone reports true or the event queue
// empties. This is the orchestrator's only wait primitive.
func (p *Platform) Drain(isDone func() bool) {
	p.eventQueue.DrainUntil(isDone)
}

// NoCStats returns a snapshot of the NoC traffic counters.
func (p *Platform) NoCStats() NoCSnapshot {
	return p.noc.Snapshot()
}

// PipelineStats returns the orchestrator's cumulative pipeline and
// transfer-gate counters.
func (p *Platform) PipelineStats() PipelineStats {
	return p.pstats
}

// AddMarker appends a time-stamped annotation to the marker list.
func (p *Platform) AddMarker(label string, metadata string) {
	p.markers = append(p.markers, EventMarker{
		Timestamp: p.Now(),
		Label:     label,
		Metadata:  metadata,
	})
}

// Markers returns the full, append-only marker list.
func (p *Platform) Markers() []EventMarker {
	return p.markers
}

// Index returns the full, append-only log index.
func (p *Platform) Index() []LogIndexEntry {
	return p.index
}
