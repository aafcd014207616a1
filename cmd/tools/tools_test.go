package tools

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintSegments(t *testing.T) {
	var out bytes.Buffer
	PrintSegments(&out, 0x1FC00000)

	assert.Equal(t, `0x1FC00000 (physical)
  physical: 0x1FC00000
  kseg0:    0x9FC00000
  kseg1:    0xBFC00000
  kseg2:    0xDFC00000
  kseg3:    0xFFC00000
`, out.String())
}

func TestPrintBootRegions(t *testing.T) {
	var out bytes.Buffer
	PrintBootRegions(&out, 3*1024)

	assert.Equal(t, `kseg1_boot_mem   : ORIGIN = 0xBFC00000, LENGTH = 0x490
debug_exec_mem   : ORIGIN = 0xBFC00490, LENGTH = 0x760
config_mem       : ORIGIN = 0xBFC00BF0, LENGTH = 0x10
`, out.String())
}

func TestDocs(t *testing.T) {
	assert.Equal(t, []string{"macros.arm", "macros.mips", "segments"}, moduleNames())

	arm := supportedModules["macros.arm"]()
	assert.Contains(t, arm, "#define TC_CTRLA_MODE_COUNT8_Val 0x1U")
	assert.Contains(t, arm, "#define TC_CTRLA_MODE_COUNT8 (TC_CTRLA_MODE_COUNT8_Val << TC_CTRLA_MODE_Pos)")
	assert.Contains(t, arm, "#define TC_CTRLA_CC_Msk 0x30U")

	mips := supportedModules["macros.mips"]()
	assert.Contains(t, mips, "#define _CTRLA_MODE_MASK 0x0CU")

	assert.Contains(t, supportedModules["segments"](), "kseg1: 0xA0000000")
}

func TestKsegCommand(t *testing.T) {
	var out bytes.Buffer
	ksegCmd.SetOut(&out)

	require.NoError(t, ksegCmd.RunE(ksegCmd, []string{"0x1000"}))
	assert.Contains(t, out.String(), "kseg0:    0x80001000")

	assert.Error(t, ksegCmd.RunE(ksegCmd, []string{"nowhere"}))
}
