package tools

import (
	"fmt"
	"io"

	"github.com/Manu343726/mcugen/pkg/device/address"
	"github.com/Manu343726/mcugen/pkg/utils"
	"github.com/spf13/cobra"
)

var ksegCmd = &cobra.Command{
	Use:   "kseg address...",
	Short: "Show the kseg projections of MIPS addresses",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			addr, err := utils.ParseUint(arg)
			if err != nil {
				return fmt.Errorf("invalid address '%v': %w", arg, err)
			}

			PrintSegments(cmd.OutOrStdout(), addr)
		}

		return nil
	},
}

// Prints the physical address and the four segment views of an address
func PrintSegments(out io.Writer, addr uint64) {
	fmt.Fprintf(out, "%v (%v)\n", utils.FormatUintHex(addr, 8), address.SegmentOf(addr))
	fmt.Fprintf(out, "  physical: %v\n", utils.FormatUintHex(address.Physical(addr), 8))

	for segment := address.Kseg0; segment <= address.Kseg3; segment++ {
		fmt.Fprintf(out, "  %v:    %v\n", segment, utils.FormatUintHex(address.Project(segment, addr), 8))
	}
}

func init() {
	ToolsCmd.AddCommand(ksegCmd)
}
