// Package portio models the byte-level external interface described in the
// controller's port contract: three control bits (opcode, start, reset) and
// an 8-bit bidirectional data path, sampled and driven once per tick.
package portio

import "github.com/fp32unit/fp32unit/controller"

// Port is the conceptual 8-bit bidirectional port. A caller drives one
// tick's inputs with WriteControl and WriteByte, then reads that tick's
// outputs with ReadStatus and ReadByte, before moving on to the next tick.
type Port interface {
	// WriteControl drives reset/start/opcode for the tick about to run.
	WriteControl(reset, start, opcode bool)
	// WriteByte drives the 8-bit data path for the tick about to run
	// (consumed only during the LOAD_* phases).
	WriteByte(b byte)
	// ReadStatus returns the 4-bit state code and done flag produced by
	// the tick that WriteControl/WriteByte just armed.
	ReadStatus() (state uint8, done bool)
	// ReadByte returns the 8-bit data path value produced by the tick
	// that just ran (meaningful only during OUTPUT_*).
	ReadByte() byte
}

// Loopback is the reference Port implementation: it buffers one tick's
// worth of control/data inputs and, on the first read call, steps the
// wrapped controller and caches the resulting Tick for both ReadStatus and
// ReadByte.
type Loopback struct {
	ctrl *controller.Controller

	reset, start, opcode bool
	inByte                byte

	pending bool
	last    controller.Tick
}

// NewLoopback wraps ctrl (or a fresh controller.New() if nil) in a Port.
func NewLoopback(ctrl *controller.Controller) *Loopback {
	if ctrl == nil {
		ctrl = controller.New()
	}
	return &Loopback{ctrl: ctrl, pending: true}
}

func (l *Loopback) WriteControl(reset, start, opcode bool) {
	l.reset, l.start, l.opcode = reset, start, opcode
	l.pending = true
}

func (l *Loopback) WriteByte(b byte) {
	l.inByte = b
	l.pending = true
}

func (l *Loopback) step() {
	if !l.pending {
		return
	}
	l.last = l.ctrl.Step(l.reset, l.start, l.opcode, l.inByte)
	l.pending = false
}

func (l *Loopback) ReadStatus() (state uint8, done bool) {
	l.step()
	return uint8(l.last.State), l.last.Done
}

func (l *Loopback) ReadByte() byte {
	l.step()
	return l.last.OutByte
}

var _ Port = (*Loopback)(nil)

// Transact drives a full transaction over p: reset, pulse start with the
// given opcode, stream a's and b's bytes little-endian, then collect the
// four little-endian result bytes. It returns the full per-tick trace
// (including the leading reset/start/load ticks) alongside the decoded
// result bits, mirroring the controller round-trip property.
func Transact(p Port, sub bool, a, b uint32) (result uint32, trace []controller.Tick) {
	observe := func() {
		state, done := p.ReadStatus()
		outByte := p.ReadByte()
		trace = append(trace, controller.Tick{
			State:   controller.State(state),
			Done:    done,
			OutByte: outByte,
		})
	}

	p.WriteControl(true, false, false)
	p.WriteByte(0)
	observe()

	p.WriteControl(false, true, sub)
	p.WriteByte(0)
	observe()

	for i := 0; i < 4; i++ {
		p.WriteControl(false, false, false)
		p.WriteByte(byteAt(a, i))
		observe()
	}
	for i := 0; i < 4; i++ {
		p.WriteControl(false, false, false)
		p.WriteByte(byteAt(b, i))
		observe()
	}

	// EXECUTE tick: no input byte is consumed.
	p.WriteControl(false, false, false)
	p.WriteByte(0)
	observe()

	for i := 0; i < 4; i++ {
		p.WriteControl(false, false, false)
		p.WriteByte(0)
		observe()
	}

	resultTicks := trace[len(trace)-4:]
	result = uint32(resultTicks[0].OutByte) | uint32(resultTicks[1].OutByte)<<8 |
		uint32(resultTicks[2].OutByte)<<16 | uint32(resultTicks[3].OutByte)<<24
	return result, trace
}

func byteAt(word uint32, index int) byte {
	return byte(word >> (8 * uint(index)))
}
