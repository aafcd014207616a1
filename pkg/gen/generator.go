// Package gen renders C headers describing the registers of a device.
package gen

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/Manu343726/mcugen/pkg/device/macros"
	"github.com/Manu343726/mcugen/pkg/utils"
	"github.com/samber/lo"
)

//go:embed templates
var Templates embed.FS

type Generator struct {
	template *template.Template
}

func NewGenerator() (*Generator, error) {
	funcs :=
		template.FuncMap{
			"ToUpper": strings.ToUpper,
			"ToLower": strings.ToLower,
			"String":  fmt.Sprint,
			"Hex": func(value uint64) string {
				return utils.FormatUintHex(value, 8)
			},
			"Join": func(separator string, items []string) string {
				return strings.Join(items, separator)
			},
			"Define": func(macro macros.Macro) string {
				return macro.Define()
			},
			"Comment": func(text string) string {
				return strings.ReplaceAll(strings.Join(strings.Fields(text), " "), "*/", "* /")
			},
			"Pluck": pluck,
		}

	funcs["MapStrings"] =
		func(funcName string, items []any) ([]string, error) {
			function, hasFunction := funcs[funcName]
			if !hasFunction {
				return nil, fmt.Errorf("function '%v' not found in template funcs", funcName)
			}

			f, ok := function.(func(string) string)
			if !ok {
				return nil, fmt.Errorf("function '%v' does not have signature func(string) string", funcName)
			}

			return lo.Map(items, func(item any, _ int) string {
				return f(fmt.Sprint(item))
			}), nil
		}

	t, err := template.New("device.h.tmpl").Funcs(funcs).
		ParseFS(Templates, "templates/*.h.tmpl")

	if err != nil {
		return nil, err
	}

	return &Generator{
		template: t,
	}, nil
}

func (g *Generator) GenerateTo(writer io.Writer, device *DeviceView) error {
	return g.template.Execute(writer, device)
}

// Renders the header of a device into a file. Nothing is written if rendering fails.
func (g *Generator) Generate(outputFile string, device *DeviceView) error {
	var buffer bytes.Buffer

	if err := g.GenerateTo(&buffer, device); err != nil {
		return err
	}

	return os.WriteFile(outputFile, buffer.Bytes(), 0o644)
}
