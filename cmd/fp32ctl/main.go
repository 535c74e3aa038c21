package main

import (
	"fmt"
	"log"
	"math"

	"github.com/fp32unit/fp32unit/controller"
	"github.com/fp32unit/fp32unit/portio"
	"github.com/spf13/cobra"
	"golang.org/x/text/message"
)

func float32Bits(f float32) uint32     { return math.Float32bits(f) }
func float32FromBits(b uint32) float32 { return math.Float32frombits(b) }

func main() {
	rootCmd := &cobra.Command{
		Use:   "fp32ctl",
		Short: "Drive the binary32 add/sub controller over its byte-serial port",
	}

	rootCmd.AddCommand(newStreamCmd(), newTraceCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func newStreamCmd() *cobra.Command {
	var aFlag, bFlag, opFlag, localeFlag string

	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Feed two operands through a full transaction and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseOperand("a", aFlag)
			if err != nil {
				return err
			}
			b, err := parseOperand("b", bFlag)
			if err != nil {
				return err
			}
			sub, err := parseOpcode(opFlag)
			if err != nil {
				return err
			}
			tag, err := parseLocale(localeFlag)
			if err != nil {
				return err
			}

			p := portio.NewLoopback(nil)
			result, trace := portio.Transact(p, sub, a, b)

			printer := message.NewPrinter(tag)
			op := "+"
			if sub {
				op = "-"
			}
			printer.Printf("%v %s %v = %v  (0x%08X)\n",
				float32FromBits(a), op, float32FromBits(b), float32FromBits(result), result)

			fmt.Printf("ticks: %d, final state: %s, done: %v\n",
				len(trace), trace[len(trace)-1].State, trace[len(trace)-1].Done)
			return nil
		},
	}

	cmd.Flags().StringVar(&aFlag, "a", "0", "first operand: hex bit pattern (0x...) or float literal")
	cmd.Flags().StringVar(&bFlag, "b", "0", "second operand: hex bit pattern (0x...) or float literal")
	cmd.Flags().StringVar(&opFlag, "op", "add", `operation: "add" or "sub"`)
	cmd.Flags().StringVar(&localeFlag, "locale", "", "BCP 47 locale tag for result formatting (default: neutral)")
	return cmd
}

func newTraceCmd() *cobra.Command {
	var resetFlag, startFlag, opcodeFlag bool
	var inByteFlag uint8
	var ticksFlag int

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Single-step the controller and print the state code and done flag every tick",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ticksFlag <= 0 {
				return newCmdError("ticks", "must be a positive integer")
			}

			ctrl := controller.New()
			for i := 0; i < ticksFlag; i++ {
				tick := ctrl.Step(resetFlag, startFlag, opcodeFlag, inByteFlag)
				fmt.Printf("tick %2d: state=%-8s done=%v out_byte=0x%02X\n",
					i, tick.State, tick.Done, tick.OutByte)

				// A reset or start pulse is only meaningful on the first
				// tick of this invocation; subsequent ticks idle through
				// the load/execute/output phases.
				resetFlag, startFlag = false, false
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&resetFlag, "reset", false, "assert reset on the first traced tick")
	cmd.Flags().BoolVar(&startFlag, "start", false, "assert start on the first traced tick")
	cmd.Flags().BoolVar(&opcodeFlag, "opcode", false, "opcode bit to latch on the start tick (false=add, true=sub)")
	cmd.Flags().Uint8Var(&inByteFlag, "in-byte", 0, "input byte driven on every traced tick")
	cmd.Flags().IntVar(&ticksFlag, "ticks", 15, "number of ticks to single-step")
	return cmd
}
