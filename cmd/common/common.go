// Package common holds the configuration accessors shared by all commands.
package common

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Manu343726/mcugen/pkg/device/arch"
	"github.com/Manu343726/mcugen/pkg/device/catalog"
	"github.com/Manu343726/mcugen/pkg/logging"
	"github.com/spf13/viper"
)

// Builds the logger configured by the log.level and log.json keys. Level names are
// colored only if stderr is a terminal.
func Logger() (*slog.Logger, io.Closer, error) {
	level, err := logging.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}

	return logging.New(logging.Options{
		Level:    level,
		Color:    logging.IsTerminal(os.Stderr),
		JSONFile: viper.GetString("log.json"),
	})
}

// Loads the catalog configured by the catalog key
func Catalog() (*catalog.Catalog, error) {
	return catalog.Load(viper.GetString("catalog"))
}

// Returns the device feature mapping revision configured by the revision key
func Revision() (arch.Revision, error) {
	switch revision := arch.Revision(viper.GetInt("revision")); revision {
	case arch.Revision1, arch.Revision2:
		return revision, nil
	default:
		return 0, fmt.Errorf("unknown device feature revision %v", revision)
	}
}

// Returns the output directory configured by the output key
func OutputDir() string {
	return viper.GetString("output")
}
