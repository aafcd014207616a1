package gen

import (
	"fmt"
	"strings"

	"github.com/Manu343726/mcugen/cmd/common"
	"github.com/spf13/cobra"
)

// GenCmd represents the gen command
var GenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate device support files",
}

var headerCmd = &cobra.Command{
	Use:   "header [device...]",
	Short: "Generate device register headers",
	Long: `Generates one C header per device with the register types, field macros and
instance addresses of all its peripherals. Without arguments all devices of the catalog
are generated. A device that fails produces no header; the rest are still generated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closer, err := common.Logger()
		if err != nil {
			return err
		}
		defer closer.Close()

		devices, err := common.Catalog()
		if err != nil {
			return err
		}

		revision, err := common.Revision()
		if err != nil {
			return err
		}

		batch, err := NewBatch(devices, revision, common.OutputDir(), logger)
		if err != nil {
			return err
		}

		if failed := batch.Run(args); len(failed) > 0 {
			return fmt.Errorf("%v devices failed: %v", len(failed), strings.Join(failed, ", "))
		}

		return nil
	},
}

func init() {
	GenCmd.AddCommand(headerCmd)
}
