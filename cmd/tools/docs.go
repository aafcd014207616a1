package tools

import (
	"fmt"
	"os"
	"strings"

	"github.com/Manu343726/mcugen/pkg/device/address"
	"github.com/Manu343726/mcugen/pkg/device/arch"
	"github.com/Manu343726/mcugen/pkg/device/layout"
	"github.com/Manu343726/mcugen/pkg/device/macros"
	"github.com/Manu343726/mcugen/pkg/device/model"
	"github.com/Manu343726/mcugen/pkg/utils"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

var supportedModules = map[string]func() string{
	"macros.arm":  func() string { return macrosDoc(arch.Architecture_ARMHierarchical) },
	"macros.mips": func() string { return macrosDoc(arch.Architecture_MIPSFlat) },
	"segments":    segmentsDoc,
}

// Example register used to document the macro naming conventions
func moduleNames() []string {
	names := lo.Keys(supportedModules)
	slices.Sort(names)
	return names
}

var exampleRegister = model.Register{
	Name:       "CTRLA",
	Peripheral: "TC",
	Size:       1,
	Modes: []model.Mode{{
		Name: model.DefaultMode,
		Fields: []model.Bitfield{
			{Name: "ENABLE", Position: 0, Width: 1},
			{Name: "MODE", Position: 2, Width: 2, Options: []model.Option{{Name: "COUNT16", Value: 0}, {Name: "COUNT8", Value: 1}}},
			{Name: "CC0", Position: 4, Width: 1},
			{Name: "CC1", Position: 5, Width: 1},
		},
	}},
}

func macrosDoc(architecture arch.Architecture) string {
	register, err := model.NewRegister(exampleRegister)
	cobra.CheckErr(err)

	packed, err := layout.NewPacker(nil).Pack(register)
	cobra.CheckErr(err)

	derived := macros.NewDeriver(architecture).Register(register, packed)

	var builder strings.Builder

	fmt.Fprintf(&builder, "Macros derived for an 8 bit register %v.%v on %v devices:\n\n", register.Peripheral, register.Name, architecture)
	builder.WriteString(layout.Diagram(packed[0].Layout, "bits", 2))
	builder.WriteString("\n")

	for _, macro := range derived.Common {
		fmt.Fprintf(&builder, "  %v\n", macro.Define())
	}

	for _, fields := range [][]macros.FieldMacros{derived.Modes[0].Fields, derived.Modes[0].VecFields} {
		for _, field := range fields {
			for _, macro := range field.All() {
				fmt.Fprintf(&builder, "  %v\n", macro.Define())
			}
		}
	}

	return builder.String()
}

func segmentsDoc() string {
	var builder strings.Builder

	builder.WriteString("MIPS virtual segments (512 MB windows over the same physical memory):\n\n")

	for segment := address.Kseg0; segment <= address.Kseg3; segment++ {
		fmt.Fprintf(&builder, "  %v: %v\n", segment, utils.FormatUintHex(address.Project(segment, 0), 8))
	}

	return builder.String()
}

var docsCmd = &cobra.Command{
	Use:   "docs module",
	Short: "Show mcugen documentation",
	Long: `Dumps the documentation of the specified mcugen module.
By default the tool dumps the documentation to stdout, but it can be redirected to a file using the --output flag.

Supported modules:
` + strings.Join(lo.Map(moduleNames(), func(module string, _ int) string { return "  " + module }), "\n"),
	Args:      cobra.MatchAll(cobra.OnlyValidArgs, cobra.ExactArgs(1)),
	ValidArgs: moduleNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, _ := cmd.Flags().GetString("output")
		doc := supportedModules[args[0]]()

		if outputFile == "" {
			fmt.Fprintln(cmd.OutOrStdout(), doc)
			return nil
		}

		file, err := os.Create(outputFile)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = fmt.Fprintln(file, doc)
		return err
	},
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the documentation is dumped to stdout.")
}
