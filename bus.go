package platform

import (
	"github.com/dpusim/platform/internal/constants"
)

// busRead implements the bus's single read(addr) entry point: MMIO
// register blocks take precedence over memory, decoded by base-address
// range.
func (p *Platform) busRead(addr uint32) uint32 {
	switch {
	case inRange(addr, constants.CompressorRegsBase, constants.CompressorRegsSize):
		return p.readCompressorReg(addr - constants.CompressorRegsBase)
	case inRange(addr, constants.DMARegsBase, constants.DMARegsSize):
		return p.readDMAReg(addr - constants.DMARegsBase)
	case inRange(addr, constants.EthernetRegsBase, constants.EthernetRegsSize):
		return p.readEthernetReg(addr - constants.EthernetRegsBase)
	case inRange(addr, constants.NVMeRegsBase, constants.NVMeRegsSize):
		return p.readNVMeReg(addr - constants.NVMeRegsBase)
	default:
		word := p.memory.ReadWord(addr)
		if p.memory.Translate(addr) != nil {
			p.observer.ObserveMemoryAccess(4)
		}
		return word
	}
}

// busWrite implements the bus's single write(addr, word) entry point
// firing device side effects for control registers.
func (p *Platform) busWrite(addr uint32, data uint32) {
	switch {
	case inRange(addr, constants.CompressorRegsBase, constants.CompressorRegsSize):
		p.writeCompressorReg(addr-constants.CompressorRegsBase, data)
	case inRange(addr, constants.DMARegsBase, constants.DMARegsSize):
		p.writeDMAReg(addr-constants.DMARegsBase, data)
	case inRange(addr, constants.EthernetRegsBase, constants.EthernetRegsSize):
		p.writeEthernetReg(addr-constants.EthernetRegsBase, data)
	case inRange(addr, constants.NVMeRegsBase, constants.NVMeRegsSize):
		p.writeNVMeReg(addr-constants.NVMeRegsBase, data)
	default:
		if p.memory.Translate(addr) != nil {
			p.memory.WriteWord(addr, data)
			p.observer.ObserveMemoryAccess(4)
		}
	}
}

func inRange(addr, base, size uint32) bool {
	return addr >= base && addr < base+size
}

// --- Compressor register block ---

func (p *Platform) readCompressorReg(off uint32) uint32 {
	c := &p.compressor
	switch off {
	case constants.CompressorCtrl:
		return c.Ctrl
	case constants.CompressorStatus:
		return c.Status
	case constants.CompressorSrc:
		return c.Src
	case constants.CompressorDst:
		return c.Dst
	case constants.CompressorLength:
		return c.Length
	case constants.CompressorCompressed:
		return c.CompressedSize
	case constants.CompressorLevel:
		return c.Level
	default:
		return 0
	}
}

func (p *Platform) writeCompressorReg(off uint32, data uint32) {
	c := &p.compressor
	switch off {
	case constants.CompressorCtrl:
		c.Ctrl = data
		if data&constants.CompressorCtrlStart != 0 {
			c.Start(p.eventQueue, p.memory.Translate)
		}
	case constants.CompressorSrc:
		c.Src = data
	case constants.CompressorDst:
		c.Dst = data
	case constants.CompressorLength:
		c.Length = data
	case constants.CompressorLevel:
		c.Level = data
	}
}

// --- DMA register block ---

func (p *Platform) dmaChannelOffset(off uint32) (channel int, regOff uint32) {
	channel = int(off / constants.DMAChannelStride)
	regOff = off % constants.DMAChannelStride
	return
}

func (p *Platform) readDMAReg(off uint32) uint32 {
	ch, regOff := p.dmaChannelOffset(off)
	if ch < 0 || ch >= constants.DMAChannelCount {
		return 0
	}
	c := &p.dma.Channels[ch]
	switch regOff {
	case constants.DMACtrl:
		return c.Ctrl
	case constants.DMAStatus:
		return c.Status
	case constants.DMASrc:
		return c.Src
	case constants.DMADst:
		return c.Dst
	case constants.DMALength:
		return c.Length
	default:
		return 0
	}
}

func (p *Platform) writeDMAReg(off uint32, data uint32) {
	ch, regOff := p.dmaChannelOffset(off)
	if ch < 0 || ch >= constants.DMAChannelCount {
		return
	}
	c := &p.dma.Channels[ch]
	switch regOff {
	case constants.DMACtrl:
		c.Ctrl = data
		if data&constants.DMACtrlFanoutEn != 0 {
			c.EnableFanout()
		}
		if data&constants.DMACtrlStart != 0 {
			c.Start(p.eventQueue, p.memory.Translate, p.memory.Remaining, p.observer)
		}
	case constants.DMASrc:
		c.Src = data
	case constants.DMADst:
		c.Dst = data
	case constants.DMALength:
		c.Length = data
	}
}

// --- NVMe register block ---

func (p *Platform) readNVMeReg(off uint32) uint32 {
	n := p.nvme
	switch off {
	case constants.NVMeCtrl:
		return n.Ctrl
	case constants.NVMeStatus:
		return n.Status
	case constants.NVMeWriteAddr:
		return n.WriteBufAddr
	case constants.NVMeWriteLen:
		return n.WriteBufLen
	default:
		return 0
	}
}

func (p *Platform) writeNVMeReg(off uint32, data uint32) {
	n := p.nvme
	switch off {
	case constants.NVMeCtrl:
		n.Ctrl = data
		if data&constants.NVMeCtrlWrite != 0 {
			if written, ok := n.Write(p.memory.Translate); ok {
				p.observer.ObserveNVMePathBytes(written)
			}
		}
	case constants.NVMeWriteAddr:
		n.WriteBufAddr = data
	case constants.NVMeWriteLen:
		n.WriteBufLen = data
	}
}

// --- Ethernet register block ---

func (p *Platform) readEthernetReg(off uint32) uint32 {
	e := p.ethernet
	switch off {
	case constants.EthernetCtrl:
		return e.Ctrl
	case constants.EthernetStatus:
		return e.Status
	case constants.EthernetTxAddr:
		return e.TxBufAddr
	case constants.EthernetTxLen:
		return e.TxBufLen
	default:
		return 0
	}
}

func (p *Platform) writeEthernetReg(off uint32, data uint32) {
	e := p.ethernet
	switch off {
	case constants.EthernetCtrl:
		e.Ctrl = data
		if data&constants.EthernetCtrlTransmit != 0 {
			delivered, err := e.Transmit(p.memory.Translate)
			switch {
			case delivered:
				p.observer.ObserveEthernetPathBytes(uint64(e.TxBufLen))
				if p.cloudSync.HandleReconnect() && p.logger != nil {
					p.logger.Info("ethernet: remote link restored", "backlog_bytes", p.cloudSync.BacklogBytes)
				}
				if p.cloudSync.RedemptionInProgress {
					// A delivery landing while redemption is pending
					// counts as the backlog flush.
					p.cloudSync.FinishRedemption()
				}
			case err != nil:
				if p.logger != nil {
					p.logger.Warn("ethernet: remote delivery failed", "err", err)
				}
				p.cloudSync.Connected = false
				p.cloudSync.AddBacklog(uint64(e.TxBufLen))
			}
		}
	case constants.EthernetTxAddr:
		e.TxBufAddr = data
	case constants.EthernetTxLen:
		e.TxBufLen = data
	}
}
