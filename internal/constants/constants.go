// Package constants defines the fixed address map, register offsets and
// timing model for the BlackBox DPU virtual platform.
package constants

// Address regions. Fixed at compile time: the platform
// never resizes or relocates a region at runtime.
const (
	BootROMBase = 0x0000_0000
	BootROMSize = 128 * 1024

	SBMBase = 0x0400_0000
	SBMSize = 4 * 1024 * 1024

	APUL2Base = 0x0800_0000
	APUL2Size = 1 * 1024 * 1024

	RPUTCMBase = 0x0810_0000
	RPUTCMSize = 64 * 1024

	DRAMBase = 0x8000_0000
	DRAMSize = 512 * 1024 * 1024
)

// MMIO register block bases.
const (
	CompressorRegsBase = 0xFF80_0000
	CompressorRegsSize = 0x1000

	DMARegsBase = 0xFF81_0000
	DMARegsSize = 0x1000

	NVMeRegsBase = 0xFF90_0000
	NVMeRegsSize = 0x10_0000

	EthernetRegsBase = 0xFFA0_0000
	EthernetRegsSize = 0x1_0000
)

// Compressor register offsets (relative to CompressorRegsBase).
const (
	CompressorCtrl       = 0x00
	CompressorStatus     = 0x04
	CompressorSrc        = 0x08
	CompressorDst        = 0x0C
	CompressorLength     = 0x10
	CompressorCompressed = 0x14
	CompressorLevel      = 0x18
)

// Compressor ctrl/status bitfields.
const (
	CompressorCtrlStart = 1 << 0
	CompressorCtrlReset = 1 << 1

	CompressorStatusBusy  = 1 << 0
	CompressorStatusDone  = 1 << 1
	CompressorStatusError = 1 << 2
)

// DMA channel stride and per-channel register offsets.
const (
	DMAChannelStride = 0x20
	DMAChannelCount  = 4

	DMACtrl   = 0x00
	DMAStatus = 0x04
	DMASrc    = 0x08
	DMADst    = 0x0C
	DMALength = 0x10

	DMACtrlStart    = 1 << 0
	DMACtrlFanoutEn = 1 << 4
	DMAStatusBusy   = 1 << 0
	DMAStatusDone   = 1 << 1
)

// DMA channel dedicated to the dual-path logging pipeline.
const PipelineDMAChannel = 2

// NVMe register offsets (relative to NVMeRegsBase).
const (
	NVMeCtrl      = 0x00
	NVMeStatus    = 0x04
	NVMeWriteAddr = 0x08
	NVMeWriteLen  = 0x0C

	NVMeCtrlWrite = 1 << 0
)

// Ethernet register offsets (relative to EthernetRegsBase).
const (
	EthernetCtrl   = 0x00
	EthernetStatus = 0x04
	EthernetTxAddr = 0x08
	EthernetTxLen  = 0x0C

	EthernetCtrlTransmit = 1 << 0
)

// Pipeline-internal SBM offsets.
const (
	SBMInputOffset      = 0
	SBMCompressedOffset = 1 * 1024 * 1024
	SBMNVMeStageOffset  = 2 * 1024 * 1024
	SBMEthStageOffset   = 3 * 1024 * 1024
)

// Timing model: analytical stand-ins, not cycle-accurate.
const (
	// CompressorNsPerByte is the per-byte, per-level latency coefficient.
	CompressorNsPerByte = 100

	// DMANsPerByte is the per-byte latency coefficient for a DMA transfer.
	DMANsPerByte = 10
)

// DefaultCompressionLevel is used by the dual-path pipeline.
const DefaultCompressionLevel = 3
