package inspect

import (
	"github.com/spf13/cobra"
)

// InspectCmd represents the inspect command
var InspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect computed register layouts",
}
