// Package dma models the platform's multi-channel DMA engine: bounded
// src-to-dst copies with an optional fan-out tee, used to express the
// dual-path logging pattern.
package dma

import (
	"github.com/dpusim/platform/internal/constants"
	"github.com/dpusim/platform/internal/eventqueue"
)

// Resolver translates a bus address to a backing byte slice.
type Resolver func(addr uint32) []byte

// Remaining reports the contiguous bytes left in addr's region.
type Remaining func(addr uint32) uint32

// Sink receives notifications of completed transfers for NoC accounting.
type Sink interface {
	ObserveTransaction()
	ObserveMemoryAccess(bytes uint64)
}

// Channel is one DMA channel's register block and busy/done state machine.
type Channel struct {
	Ctrl      uint32
	Status    uint32
	Src       uint32
	Dst       uint32
	Length    uint32
	FanoutDst uint32

	busy          bool
	fanoutEnabled bool
}

// IsBusy reports whether a transfer is in flight on this channel.
func (c *Channel) IsBusy() bool {
	return c.busy
}

// EnableFanout latches the fan-out tee on. The latch is sticky: once a
// ctrl write sets FANOUT_EN the channel tees every subsequent transfer,
// even if later ctrl writes carry only the START bit.
func (c *Channel) EnableFanout() {
	c.fanoutEnabled = true
}

// Start begins a transfer if the channel is idle. A start
// while busy is an idempotent no-op.
func (c *Channel) Start(eq *eventqueue.Queue, resolve Resolver, remaining Remaining, sink Sink) {
	if c.busy {
		return
	}

	src := resolve(c.Src)
	dst := resolve(c.Dst)
	if src == nil || dst == nil {
		return
	}

	toCopy := c.Length
	srcRem := remaining(c.Src)
	dstRem := remaining(c.Dst)
	if toCopy > srcRem {
		toCopy = srcRem
	}
	if toCopy > dstRem {
		toCopy = dstRem
	}
	if toCopy == 0 {
		return
	}

	copy(dst[:toCopy], src[:toCopy])

	if c.fanoutEnabled && c.FanoutDst != 0 {
		if fanoutDst := resolve(c.FanoutDst); fanoutDst != nil {
			fanoutCopy := toCopy
			if fanoutRem := remaining(c.FanoutDst); fanoutCopy > fanoutRem {
				fanoutCopy = fanoutRem
			}
			if fanoutCopy > 0 {
				copy(fanoutDst[:fanoutCopy], src[:fanoutCopy])
			}
		}
	}

	c.busy = true
	c.Status |= constants.DMAStatusBusy
	c.Status &^= constants.DMAStatusDone

	latency := uint64(toCopy) * constants.DMANsPerByte
	eq.Schedule(latency, func(any) {
		c.busy = false
		c.Status &^= constants.DMAStatusBusy
		c.Status |= constants.DMAStatusDone
	}, nil)

	if sink != nil {
		sink.ObserveTransaction()
		sink.ObserveMemoryAccess(uint64(toCopy))
	}
}

// Engine owns the platform's fixed set of DMA channels.
type Engine struct {
	Channels [constants.DMAChannelCount]Channel
}

// New returns an engine with all channels idle.
func New() *Engine {
	return &Engine{}
}
