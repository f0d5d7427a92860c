package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dpusim/platform/internal/constants"
)

func TestTranslateUnmappedAddress(t *testing.T) {
	f := New()
	assert.Nil(t, f.Translate(0xFFFF_FFFF))
	assert.Equal(t, uint32(0), f.Remaining(0xFFFF_FFFF))
}

func TestTranslateEachRegion(t *testing.T) {
	f := New()
	cases := []struct {
		name string
		addr uint32
		size uint32
	}{
		{"boot-rom", constants.BootROMBase, constants.BootROMSize},
		{"sbm", constants.SBMBase, constants.SBMSize},
		{"apu-l2", constants.APUL2Base, constants.APUL2Size},
		{"rpu-tcm", constants.RPUTCMBase, constants.RPUTCMSize},
		{"dram", constants.DRAMBase, constants.DRAMSize},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := f.Translate(c.addr)
			assert.NotNil(t, b)
			assert.Equal(t, c.size, f.Remaining(c.addr))
		})
	}
}

func TestRemainingDecreasesTowardRegionEnd(t *testing.T) {
	f := New()
	last := uint32(constants.SBMBase + constants.SBMSize - 1)
	assert.Equal(t, uint32(1), f.Remaining(last))
}

func TestReadWriteWordRoundTrip(t *testing.T) {
	f := New()
	f.WriteWord(constants.SBMBase, 0xDEAD_BEEF)
	assert.Equal(t, uint32(0xDEAD_BEEF), f.ReadWord(constants.SBMBase))

	f.WriteWord(constants.DRAMBase, 0xCAFE_BABE)
	assert.Equal(t, uint32(0xCAFE_BABE), f.ReadWord(constants.DRAMBase))
}

func TestReadWriteWordUnmappedIsNoop(t *testing.T) {
	f := New()
	f.WriteWord(0xFFFF_FFFF, 0x1234)
	assert.Equal(t, uint32(0), f.ReadWord(0xFFFF_FFFF))
}

func TestZeroInitialized(t *testing.T) {
	f := New()
	b := f.Translate(constants.DRAMBase)
	for i := 0; i < 64; i++ {
		assert.Equal(t, byte(0), b[i])
	}
}
