package tools

import (
	"fmt"
	"io"

	"github.com/Manu343726/mcugen/pkg/device/address"
	"github.com/Manu343726/mcugen/pkg/utils"
	"github.com/spf13/cobra"
)

var bootCmd = &cobra.Command{
	Use:   "boot size",
	Short: "Show the boot flash regions of a MIPS device",
	Long: `Shows the boot flash memory regions used for a MIPS device given its boot flash size
in bytes (decimal or 0x prefixed hex).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, err := utils.ParseUint(args[0])
		if err != nil {
			return fmt.Errorf("invalid boot flash size '%v': %w", args[0], err)
		}

		PrintBootRegions(cmd.OutOrStdout(), size)
		return nil
	},
}

// Prints the boot regions of a boot flash size in linker script syntax
func PrintBootRegions(out io.Writer, size uint64) {
	for _, region := range address.BootRegions(size) {
		fmt.Fprintf(out, "%-16v : ORIGIN = %v, LENGTH = 0x%X\n", region.Name, utils.FormatUintHex(region.Origin, 8), region.Length)
	}
}

func init() {
	ToolsCmd.AddCommand(bootCmd)
}
