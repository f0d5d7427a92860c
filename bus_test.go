package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpusim/platform/internal/constants"
)

func TestAddressProbe(t *testing.T) {
	p, _ := NewTestPlatform(t, "SECRET_KEY_123")

	p.Write(constants.SBMBase, 0xDEAD_BEEF)
	assert.Equal(t, uint32(0xDEAD_BEEF), p.Read(constants.SBMBase))

	p.Write(constants.DRAMBase, 0xCAFE_BABE)
	assert.Equal(t, uint32(0xCAFE_BABE), p.Read(constants.DRAMBase))
}

func TestUnmappedAddressReadsZeroAndWriteIsNoop(t *testing.T) {
	p, _ := NewTestPlatform(t, "SECRET_KEY_123")

	const unmapped = 0x0002_0000 // first byte past boot-rom, before SBM
	p.Write(unmapped, 0x1111_1111)
	assert.Equal(t, uint32(0), p.Read(unmapped))
}

func TestDMAOutOfBoundsTruncation(t *testing.T) {
	p, _ := NewTestPlatform(t, "SECRET_KEY_123")

	lastByte := uint32(constants.SBMBase + constants.SBMSize - 1)
	dst := uint32(constants.DRAMBase)

	srcRegion := p.memory.Translate(lastByte)
	srcRegion[0] = 0x7A
	dstRegion := p.memory.Translate(dst)
	for i := range dstRegion[:4] {
		dstRegion[i] = 0xEE
	}

	chBase := uint32(constants.DMARegsBase + 0*constants.DMAChannelStride)
	p.Write(chBase+constants.DMASrc, lastByte)
	p.Write(chBase+constants.DMADst, dst)
	p.Write(chBase+constants.DMALength, 1024)
	p.Write(chBase+constants.DMACtrl, constants.DMACtrlStart)

	p.Drain(func() bool { return !p.dma.Channels[0].IsBusy() })

	require.True(t, p.dma.Channels[0].Status&constants.DMAStatusDone != 0)
	assert.Equal(t, byte(0x7A), dstRegion[0])
	assert.Equal(t, byte(0xEE), dstRegion[1]) // no write past the copied single byte
}

func TestDMAChannelDecodeAddressesTheRightChannel(t *testing.T) {
	p, _ := NewTestPlatform(t, "SECRET_KEY_123")

	ch2Base := uint32(constants.DMARegsBase + 2*constants.DMAChannelStride)
	p.Write(ch2Base+constants.DMASrc, 0x1234)
	assert.Equal(t, uint32(0x1234), p.dma.Channels[2].Src)
	assert.Equal(t, uint32(0), p.dma.Channels[0].Src)
}

func TestDMAFanoutThroughTheBus(t *testing.T) {
	p, _ := NewTestPlatform(t, "SECRET_KEY_123")

	src := p.memory.Translate(constants.SBMBase)
	copy(src, []byte{0x10, 0x20, 0x30, 0x40})

	require.NoError(t, p.ConfigureDMAFanout(1, constants.RPUTCMBase))

	chBase := uint32(constants.DMARegsBase + 1*constants.DMAChannelStride)
	p.Write(chBase+constants.DMASrc, constants.SBMBase)
	p.Write(chBase+constants.DMADst, constants.DRAMBase)
	p.Write(chBase+constants.DMALength, 4)

	// FANOUT_EN latches on its own ctrl write; the later start-only write
	// must not drop the tee.
	p.Write(chBase+constants.DMACtrl, constants.DMACtrlFanoutEn)
	p.Write(chBase+constants.DMACtrl, constants.DMACtrlStart)

	p.Drain(func() bool { return !p.dma.Channels[1].IsBusy() })

	assert.Equal(t, []byte{0x10, 0x20, 0x30, 0x40}, p.memory.Translate(constants.DRAMBase)[:4])
	assert.Equal(t, []byte{0x10, 0x20, 0x30, 0x40}, p.memory.Translate(constants.RPUTCMBase)[:4])

	assert.Error(t, p.ConfigureDMAFanout(7, 0))
}

func TestEventOrderingScenario(t *testing.T) {
	p, _ := NewTestPlatform(t, "SECRET_KEY_123")

	var order []uint64
	p.eventQueue.Schedule(30, func(any) { order = append(order, p.Now()) }, nil)
	p.eventQueue.Schedule(10, func(any) { order = append(order, p.Now()) }, nil)
	p.eventQueue.Schedule(20, func(any) { order = append(order, p.Now()) }, nil)

	p.Drain(func() bool { return false })

	assert.Equal(t, []uint64{10, 20, 30}, order)
}
