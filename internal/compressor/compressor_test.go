package compressor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpusim/platform/internal/eventqueue"
)

func TestEncode4KiBOf0xAA(t *testing.T) {
	src := make([]byte, 4096)
	for i := range src {
		src[i] = 0xAA
	}
	dst := make([]byte, 3*len(src))

	n := Encode(src, dst)

	// ceil(4096/255)*3 = 51
	assert.Equal(t, uint32(51), n)
	assert.Equal(t, byte(0xFF), dst[0])
	assert.Equal(t, byte(0xAA), dst[1])
	assert.Equal(t, byte(255), dst[2])
}

func TestEncodeShortRunIsLiteral(t *testing.T) {
	src := []byte{1, 1, 1}
	dst := make([]byte, 9)
	n := Encode(src, dst)
	assert.Equal(t, uint32(3), n)
	assert.Equal(t, []byte{1, 1, 1}, dst[:3])
}

func TestEncode0xFFAlwaysEscaped(t *testing.T) {
	src := []byte{0xFF}
	dst := make([]byte, 3)
	n := Encode(src, dst)
	assert.Equal(t, uint32(3), n)
	assert.Equal(t, []byte{0xFF, 0xFF, 1}, dst[:3])
}

func TestEncodeDeterministicIndependentOfLevel(t *testing.T) {
	src := make([]byte, 1000)
	for i := range src {
		src[i] = byte(i % 7)
	}
	dst1 := make([]byte, 3000)
	dst2 := make([]byte, 3000)
	mem := map[uint32][]byte{0: src, 10_000: dst1, 20_000: dst2}
	resolve := func(addr uint32) []byte { return mem[addr] }

	d1 := &Device{Src: 0, Dst: 10_000, Length: 1000, Level: 1}
	d3 := &Device{Src: 0, Dst: 20_000, Length: 1000, Level: 3}
	d1.Start(eventqueue.New(), resolve)
	d3.Start(eventqueue.New(), resolve)

	assert.Equal(t, d1.CompressedSize, d3.CompressedSize)
	assert.Equal(t, dst1[:d1.CompressedSize], dst2[:d3.CompressedSize])
}

func TestStartWhileBusyIsNoop(t *testing.T) {
	eq := eventqueue.New()
	d := &Device{Length: 4, Level: 1}
	mem := make(map[uint32][]byte)
	mem[0] = make([]byte, 16)
	mem[16] = make([]byte, 16)
	d.Src, d.Dst = 0, 16

	resolve := func(addr uint32) []byte { return mem[addr] }

	d.Start(eq, resolve)
	require.True(t, d.IsBusy())
	d.Start(eq, resolve) // should not re-schedule or panic
	assert.True(t, d.IsBusy())
}

func TestStartUnresolvedAddressSetsError(t *testing.T) {
	eq := eventqueue.New()
	d := &Device{Length: 4, Level: 1, Src: 0xFFFF_FFFF, Dst: 0}
	resolve := func(addr uint32) []byte { return nil }

	d.Start(eq, resolve)

	assert.NotZero(t, d.Status&0x4)
	assert.False(t, d.IsBusy())
}

func TestCompletionScheduledProportionalToLengthAndLevel(t *testing.T) {
	eq := eventqueue.New()
	src := make([]byte, 10)
	dst := make([]byte, 30)
	d := &Device{Length: 10, Level: 3, Src: 0, Dst: 10}
	mem := map[uint32][]byte{0: src, 10: dst}
	resolve := func(addr uint32) []byte { return mem[addr] }

	d.Start(eq, resolve)
	eq.DrainUntil(func() bool { return !d.IsBusy() })

	assert.Equal(t, uint64(10*100*3), eq.Now())
	assert.False(t, d.IsBusy())
}
