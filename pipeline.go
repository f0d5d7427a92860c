package platform

import (
	"bufio"
	"os"
	"strings"

	"github.com/dpusim/platform/internal/constants"
)

// LogIndexEntry describes one persisted record's location and size.
// Entries are appended monotonically but may be searched in
// any order, and are never removed.
type LogIndexEntry struct {
	TimestampStart   uint64
	TimestampEnd     uint64
	FileOffset       uint64
	CompressedSize   uint32
	UncompressedSize uint32
}

// EventMarker is a time-stamped annotation added at orchestrator
// discretion.
type EventMarker struct {
	Timestamp uint64
	Label     string
	Metadata  string
}

// ProcessDataBlock drives the dual-path pipeline for an input buffer of
// size N: copy into SBM, compress, DMA to the NVMe staging
// offset, persist to the NVMe backing file, and append a log index entry.
// It returns the new index entry, or an error if any step cannot proceed
// (an unresolved address terminates the pipeline for this block without
// appending an index entry).
func (p *Platform) ProcessDataBlock(input []byte) (LogIndexEntry, error) {
	n := uint32(len(input))
	start := p.Now()

	sbmInput := uint32(constants.SBMBase + constants.SBMInputOffset)
	if p.memory.Remaining(sbmInput) < n {
		return LogIndexEntry{}, NewError("pipeline.ingest", ErrAddressUnresolved, "input larger than SBM")
	}
	dst := p.memory.Translate(sbmInput)
	copy(dst[:n], input)

	// Step 2: program the compressor.
	p.Write(constants.CompressorRegsBase+constants.CompressorSrc, sbmInput)
	p.Write(constants.CompressorRegsBase+constants.CompressorDst, constants.SBMBase+constants.SBMCompressedOffset)
	p.Write(constants.CompressorRegsBase+constants.CompressorLength, n)
	p.Write(constants.CompressorRegsBase+constants.CompressorLevel, p.compressor.Level)
	p.Write(constants.CompressorRegsBase+constants.CompressorCtrl, constants.CompressorCtrlStart)
	p.Drain(func() bool { return !p.compressor.IsBusy() })

	if p.compressor.Status&constants.CompressorStatusError != 0 {
		return LogIndexEntry{}, NewError("pipeline.compress", ErrAddressUnresolved, "compressor src/dst unresolved")
	}

	// Step 3: read back compressed_size.
	compressedSize := p.Read(constants.CompressorRegsBase + constants.CompressorCompressed)

	// Step 4: program DMA channel 2, SBM+1MiB -> SBM+2MiB.
	dmaBase := uint32(constants.DMARegsBase + constants.PipelineDMAChannel*constants.DMAChannelStride)
	p.Write(dmaBase+constants.DMASrc, constants.SBMBase+constants.SBMCompressedOffset)
	p.Write(dmaBase+constants.DMADst, constants.SBMBase+constants.SBMNVMeStageOffset)
	p.Write(dmaBase+constants.DMALength, compressedSize)
	p.Write(dmaBase+constants.DMACtrl, constants.DMACtrlStart)
	p.Drain(func() bool { return !p.dma.Channels[constants.PipelineDMAChannel].IsBusy() })

	// Step 6: program NVMe to write the staged bytes.
	offset, err := p.nvme.Size()
	if err != nil {
		return LogIndexEntry{}, WrapError("pipeline.persist", ErrIO, err)
	}
	p.Write(constants.NVMeRegsBase+constants.NVMeWriteAddr, constants.SBMBase+constants.SBMNVMeStageOffset)
	p.Write(constants.NVMeRegsBase+constants.NVMeWriteLen, compressedSize)
	p.Write(constants.NVMeRegsBase+constants.NVMeCtrl, constants.NVMeCtrlWrite)

	// The entry records the file offset captured before the write, which
	// is where this record's bytes begin.
	entry := LogIndexEntry{
		TimestampStart:   start,
		TimestampEnd:     p.Now(),
		FileOffset:       uint64(offset),
		CompressedSize:   compressedSize,
		UncompressedSize: n,
	}
	p.index = append(p.index, entry)

	p.pstats.BlocksProcessed++
	p.pstats.TotalUncompBytes += uint64(n)
	p.pstats.TotalCompBytes += uint64(compressedSize)
	return entry, nil
}

// lookupIndex returns the first entry containing ts, in insertion order.
func (p *Platform) lookupIndex(ts uint64) (LogIndexEntry, bool) {
	for _, e := range p.index {
		if e.TimestampStart <= ts && ts <= e.TimestampEnd {
			return e, true
		}
	}
	return LogIndexEntry{}, false
}

// TransferGateState names the transfer gate's state machine positions.
type TransferGateState int

const (
	GateIdle TransferGateState = iota
	GateKeyChecked
	GateAuthorized
	GateLocated
	GateStaged
	GateTransmitted
)

// readMarkerKey loads the expected transfer key from the side-channel
// marker key file's first line.
func readMarkerKey(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

// HandleTransferRequest implements the query-based transfer gate
// key-check, permission, index lookup, stage, transmit.
// isLocal distinguishes a request originating in-process (always
// permitted by LocalFirstOracle) from a remote one.
func (p *Platform) HandleTransferRequest(ts uint64, key string, isLocal bool) (state TransferGateState, err error) {
	defer func() {
		if err != nil {
			p.pstats.TransfersFailed++
		} else {
			p.pstats.TransfersOK++
		}
	}()

	expected, ok := readMarkerKey(p.markerKeyFile)
	if !ok {
		return GateIdle, NewError("transfer-gate", ErrKeyMissing, "marker key file unavailable")
	}

	if key != expected {
		return GateIdle, NewError("transfer-gate", ErrBadKey, "key mismatch")
	}

	if !p.permission.Allow(isLocal) {
		return GateIdle, NewError("transfer-gate", ErrDenied, "controller permission denied")
	}

	entry, found := p.lookupIndex(ts)
	if !found {
		return GateIdle, NewError("transfer-gate", ErrNotFound, "no index entry for timestamp")
	}

	payload, err := p.nvme.ReadAt(int64(entry.FileOffset), entry.CompressedSize)
	if err != nil {
		return GateIdle, WrapError("transfer-gate", ErrIO, err)
	}

	stageAddr := uint32(constants.SBMBase + constants.SBMEthStageOffset)
	if p.memory.Remaining(stageAddr) < uint32(len(payload)) {
		return GateIdle, NewError("transfer-gate", ErrIO, "staging buffer too small")
	}
	dst := p.memory.Translate(stageAddr)
	copy(dst[:len(payload)], payload)

	p.Write(constants.EthernetRegsBase+constants.EthernetTxAddr, stageAddr)
	p.Write(constants.EthernetRegsBase+constants.EthernetTxLen, uint32(len(payload)))
	p.Write(constants.EthernetRegsBase+constants.EthernetCtrl, constants.EthernetCtrlTransmit)

	p.cloudSync.UpdateWatermark(p.Now())
	p.AddMarker("transfer-gate-success", "")

	return GateTransmitted, nil
}
