// Package compressor models the platform's compression accelerator: a
// deterministic byte-level run-length transform with an event-scheduled
// completion delay.
package compressor

import (
	"github.com/dpusim/platform/internal/constants"
	"github.com/dpusim/platform/internal/eventqueue"
)

// Encode runs the byte-oriented run-length encoder over src, writing the
// encoded form to dst and returning the number of bytes written. dst must
// be at least as large as the worst case (3 bytes per input byte).
//
// For a run of identical bytes with count > 3, or for the byte 0xFF at any
// count, it emits the three-byte escape sequence 0xFF, value, count
// (count <= 255); otherwise it emits count literal copies of value.
func Encode(src []byte, dst []byte) uint32 {
	var dstIdx uint32
	i := 0
	for i < len(src) {
		value := src[i]
		count := 1
		for i+count < len(src) && src[i+count] == value && count < 255 {
			count++
		}
		if count > 3 || value == 0xFF {
			dst[dstIdx] = 0xFF
			dst[dstIdx+1] = value
			dst[dstIdx+2] = byte(count)
			dstIdx += 3
		} else {
			for j := 0; j < count; j++ {
				dst[dstIdx] = value
				dstIdx++
			}
		}
		i += count
	}
	return dstIdx
}

// Resolver translates a bus address to a backing byte slice, matching the
// memory fabric's Translate contract.
type Resolver func(addr uint32) []byte

// Device is the compressor's register block and busy/done state machine.
type Device struct {
	Ctrl           uint32
	Status         uint32
	Src            uint32
	Dst            uint32
	Length         uint32
	CompressedSize uint32
	Level          uint32

	busy bool
}

// IsBusy reports whether a compression run is in flight.
func (d *Device) IsBusy() bool {
	return d.busy
}

// Start begins a compression run if the device is idle. A start while busy
// is a no-op.
func (d *Device) Start(eq *eventqueue.Queue, resolve Resolver) {
	if d.busy {
		return
	}

	src := resolve(d.Src)
	dst := resolve(d.Dst)
	if src == nil || dst == nil {
		d.Status |= constants.CompressorStatusError
		return
	}
	if uint32(len(src)) < d.Length {
		d.Status |= constants.CompressorStatusError
		return
	}

	d.CompressedSize = Encode(src[:d.Length], dst)

	d.busy = true
	d.Status |= constants.CompressorStatusBusy
	d.Status &^= constants.CompressorStatusDone | constants.CompressorStatusError

	level := d.Level
	if level == 0 {
		level = 1
	}
	latency := uint64(d.Length) * constants.CompressorNsPerByte * uint64(level)

	eq.Schedule(latency, func(any) {
		d.busy = false
		d.Status &^= constants.CompressorStatusBusy
		d.Status |= constants.CompressorStatusDone
	}, nil)
}
