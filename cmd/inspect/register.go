package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/Manu343726/mcugen/cmd/common"
	"github.com/Manu343726/mcugen/pkg/device/assembly"
	"github.com/Manu343726/mcugen/pkg/device/catalog"
	"github.com/Manu343726/mcugen/pkg/device/layout"
	"github.com/Manu343726/mcugen/pkg/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var mode string

var registerCmd = &cobra.Command{
	Use:   "register device instance register",
	Short: "Show the layout of a register",
	Long: `Shows the address, bit layout, coalesced vector fields and macros of a register
of a peripheral instance. Registers within nested groups or group modes are named by
their dotted path, e.g. COUNT8.CTRLA or COUNT16.COUNT.`,
	Args: cobra.ExactArgs(3),
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

		device, err := devices.Device(args[0])
		if err != nil {
			return err
		}

		description, err := device.Open(catalog.NewPathCache(devices), logger)
		if err != nil {
			return err
		}

		view, err := FindRegister(assembly.NewAssembler(description.Flags, logger), description, args[1], args[2])
		if err != nil {
			return err
		}

		return PrintRegister(cmd.OutOrStdout(), view, mode)
	},
}

// Finds a register of an instance by its qualified name
func FindRegister(assembler *assembly.Assembler, description *catalog.Description, instance, register string) (*assembly.RegisterView, error) {
	for _, peripheral := range description.Peripherals {
		for i := range peripheral.Instances {
			if peripheral.Instances[i].Name != instance {
				continue
			}

			views, err := assembler.Instance(peripheral, &peripheral.Instances[i])
			if err != nil {
				return nil, err
			}

			for j := range views {
				if strings.EqualFold(views[j].QualifiedName(), register) {
					return &views[j], nil
				}
			}

			return nil, fmt.Errorf("instance '%v' has no register '%v'", instance, register)
		}
	}

	return nil, fmt.Errorf("device '%v' has no instance '%v'", description.Device.Name, instance)
}

// Prints the layout of all modes of a register, or only the given one
func PrintRegister(out io.Writer, view *assembly.RegisterView, onlyMode string) error {
	title := color.New(color.FgGreen, color.Bold)
	section := color.New(color.FgCyan)
	bits := view.Register.Bits()

	fmt.Fprintf(out, "%v %v\n", title.Sprint(view.Instance+"."+view.QualifiedName()), view.Register.Caption)
	fmt.Fprintf(out, "  address: %v\n", utils.FormatUintHex(view.Address, 8))
	fmt.Fprintf(out, "  size:    %v bits x %v, %v\n", bits, view.Register.Count, view.Register.Access)
	fmt.Fprintf(out, "  reset:   %v (0b%v)\n", utils.FormatUintHex(view.Register.ResetValue, bits/4), utils.FormatUintBinary(view.Register.ResetValue, bits))

	found := onlyMode == ""

	for i := range view.Packed {
		packed := &view.Packed[i]
		derived := &view.Macros.Modes[i]

		if onlyMode != "" && !strings.EqualFold(onlyMode, packed.Mode.Name) {
			continue
		}

		found = true

		fmt.Fprintf(out, "\n%v\n", section.Sprintf("mode %v", packed.Mode.Name))
		fmt.Fprint(out, layout.Diagram(packed.Layout, "bits", 2))

		for _, vecfield := range packed.VecFields {
			fmt.Fprintf(out, "  vecfield %v from %v\n", vecfield, strings.Join(vecfield.Fields, ", "))
		}

		for _, field := range derived.Fields {
			for _, macro := range field.All() {
				fmt.Fprintf(out, "  %v\n", macro.Define())
			}
		}

		for _, vecfield := range derived.VecFields {
			for _, macro := range vecfield.All() {
				fmt.Fprintf(out, "  %v\n", macro.Define())
			}
		}
	}

	if !found {
		return fmt.Errorf("register '%v' has no mode '%v'", view.Register.Name, onlyMode)
	}

	return nil
}

func init() {
	InspectCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVarP(&mode, "mode", "m", "", "Only show this register mode")
}
