package gen

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Manu343726/mcugen/pkg/device/arch"
	"github.com/Manu343726/mcugen/pkg/device/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `devices:
  - name: ATSAMD21G18A
    family: SAMD
    cpu: cortex-m0plus
    description: ATSAMD21G18A.atdf
  - name: ATSAMD21J18A
    family: SAMD
    cpu: cortex-m0plus
    description: missing.atdf
  - name: ATSAMD21E18A
    family: SAMD
    cpu: cortex-m0plus
    description: broken.atdf
  - name: AVR128DA48
    family: AVR
    cpu: avr8x
    description: ATSAMD21G18A.atdf
`

const testAtdf = `<avr-tools-device-file>
  <devices>
    <device name="ATSAMD21G18A">
      <peripherals>
        <module name="PORT">
          <instance name="PORT">
            <register-group name="PORT" name-in-module="PORT" offset="0x41004400"/>
          </instance>
        </module>
        <module name="FUSES">
          <instance name="FUSES">
            <register-group name="NVMCTRL_OTP4" name-in-module="FUSES" offset="0x806020"/>
          </instance>
        </module>
      </peripherals>
    </device>
  </devices>
  <modules>
    <module name="PORT">
      <register-group name="PORT">
        <register name="DIR" offset="0x0" size="4">
          <bitfield name="DIR" mask="0xFFFFFFFF"/>
        </register>
      </register-group>
    </module>
    <module name="FUSES">
      <register-group name="FUSES"/>
    </module>
  </modules>
</avr-tools-device-file>`

const brokenAtdf = `<avr-tools-device-file>
  <devices>
    <device name="ATSAMD21E18A">
      <peripherals>
        <module name="PORT">
          <instance name="PORT">
            <register-group name="PORTA" name-in-module="PORT" offset="0x41004400"/>
          </instance>
        </module>
      </peripherals>
    </device>
  </devices>
  <modules>
    <module name="PORT">
      <register-group name="PORT"/>
    </module>
  </modules>
</avr-tools-device-file>`

func testBatch(t *testing.T, logs *bytes.Buffer) *Batch {
	dir := t.TempDir()

	for name, content := range map[string]string{
		"catalog.yaml":      testCatalog,
		"ATSAMD21G18A.atdf": testAtdf,
		"broken.atdf":       brokenAtdf,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	devices, err := catalog.Load(filepath.Join(dir, "catalog.yaml"))
	require.NoError(t, err)

	batch, err := NewBatch(devices, arch.LatestRevision, filepath.Join(dir, "out"), slog.New(slog.NewTextHandler(logs, nil)))
	require.NoError(t, err)

	return batch
}

func TestBatchIsolatesDeviceFailures(t *testing.T) {
	var logs bytes.Buffer
	batch := testBatch(t, &logs)

	failed := batch.Run(nil)
	assert.Equal(t, []string{"ATSAMD21J18A", "ATSAMD21E18A", "AVR128DA48"}, failed)

	header, err := os.ReadFile(batch.HeaderPath("ATSAMD21G18A"))
	require.NoError(t, err)
	assert.Contains(t, string(header), "#define REG_PORT_DIR (*(volatile PORT_DIR_Type *)0x41004400UL)")

	for _, name := range failed {
		assert.NoFileExists(t, batch.HeaderPath(name))
	}

	assert.Contains(t, logs.String(), "kind=\"no root register group\"")
	assert.Contains(t, logs.String(), "kind=\"unsupported architecture\"")
	assert.Contains(t, logs.String(), "skipping instance")
}

func TestBatchSelectedDevices(t *testing.T) {
	var logs bytes.Buffer
	batch := testBatch(t, &logs)

	assert.Empty(t, batch.Run([]string{"ATSAMD21G18A"}))
	assert.Equal(t, []string{"STM32"}, batch.Run([]string{"STM32"}))
	assert.FileExists(t, batch.HeaderPath("atsamd21g18a"))
}
