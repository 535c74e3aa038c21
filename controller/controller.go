// Package controller implements the 14-state byte-serial sequencer that
// drives kernel.Add32 once per transaction, streaming two 4-byte operands
// in and a 4-byte result out, one octet per tick.
package controller

import "github.com/fp32unit/fp32unit/kernel"

// State is one of the 14 states the controller occupies on any given tick.
type State uint8

const (
	Idle State = iota
	LoadA0
	LoadA1
	LoadA2
	LoadA3
	LoadB0
	LoadB1
	LoadB2
	LoadB3
	Execute
	Output0
	Output1
	Output2
	Output3
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case LoadA0:
		return "LOAD_A_0"
	case LoadA1:
		return "LOAD_A_1"
	case LoadA2:
		return "LOAD_A_2"
	case LoadA3:
		return "LOAD_A_3"
	case LoadB0:
		return "LOAD_B_0"
	case LoadB1:
		return "LOAD_B_1"
	case LoadB2:
		return "LOAD_B_2"
	case LoadB3:
		return "LOAD_B_3"
	case Execute:
		return "EXECUTE"
	case Output0:
		return "OUTPUT_0"
	case Output1:
		return "OUTPUT_1"
	case Output2:
		return "OUTPUT_2"
	case Output3:
		return "OUTPUT_3"
	default:
		return "State(?)"
	}
}

// Tick is the combinational output a Controller presents for one cycle:
// the 4-bit state code, the done flag, and the 8-bit result byte (valid
// only in Output0..Output3).
type Tick struct {
	State   State
	Done    bool
	OutByte byte
}

// Controller holds the two operand registers, the result register, and the
// latched opcode for a single in-flight transaction. The zero value is a
// controller reset to IDLE.
type Controller struct {
	state    State
	operandA uint32
	operandB uint32
	result   uint32
	sub      bool
}

// New returns a Controller in the IDLE state with all registers cleared.
func New() *Controller {
	return &Controller{}
}

// State returns the controller's current state code, as it would be
// observed combinationally before any transition this tick.
func (c *Controller) State() State { return c.state }

// Done reports whether the done output is asserted for the current state.
func (c *Controller) Done() bool { return isOutputState(c.state) }

func isOutputState(s State) bool { return s >= Output0 && s <= Output3 }

// OutByte returns the byte the controller is currently driving on the
// output data path. Only meaningful while Done() is true.
func (c *Controller) OutByte() byte {
	return byteAt(c.result, int(c.state-Output0))
}

func byteAt(word uint32, index int) byte {
	return byte(word >> (8 * uint(index)))
}

func setByteAt(word uint32, index int, b byte) uint32 {
	shift := 8 * uint(index)
	mask := uint32(0xFF) << shift
	return (word &^ mask) | (uint32(b) << shift)
}

// Step advances the controller by exactly one tick. It first captures the
// Tick outputs implied by the CURRENTLY registered state (the Moore-machine
// output for this cycle), then applies the transition table to compute the
// state and registers observed on the NEXT call to Step. reset
// takes precedence over every other input and is evaluated synchronously,
// matching the design note that the hardware's asynchronous active-low
// reset is irrelevant to this reference model.
func (c *Controller) Step(reset, start, opcode bool, inByte byte) Tick {
	out := Tick{
		State:   c.state,
		Done:    isOutputState(c.state),
		OutByte: c.OutByte(),
	}

	switch {
	case reset:
		c.state = Idle
		c.operandA = 0
		c.operandB = 0
		c.result = 0
		c.sub = false

	case c.state == Idle:
		if start {
			c.sub = opcode
			c.state = LoadA0
		}

	case c.state >= LoadA0 && c.state <= LoadA3:
		i := int(c.state - LoadA0)
		c.operandA = setByteAt(c.operandA, i, inByte)
		if c.state == LoadA3 {
			c.state = LoadB0
		} else {
			c.state++
		}

	case c.state >= LoadB0 && c.state <= LoadB3:
		i := int(c.state - LoadB0)
		c.operandB = setByteAt(c.operandB, i, inByte)
		if c.state == LoadB3 {
			c.state = Execute
		} else {
			c.state++
		}

	case c.state == Execute:
		c.result = kernel.Add32(c.operandA, c.operandB, c.sub)
		c.state = Output0

	case isOutputState(c.state):
		if c.state == Output3 {
			c.state = Idle
		} else {
			c.state++
		}
	}

	return out
}

// Trace runs n ticks from the controller's current state with reset, start,
// and opcode held low and no input bytes, and returns the per-tick output
// sequence. It is meant for observing a transaction already in flight (e.g.
// the OUTPUT_* phase) the way the reference testbench asserts the state
// code at each rising edge.
func (c *Controller) Trace(n int) []Tick {
	ticks := make([]Tick, 0, n)
	for i := 0; i < n; i++ {
		ticks = append(ticks, c.Step(false, false, false, 0))
	}
	return ticks
}
