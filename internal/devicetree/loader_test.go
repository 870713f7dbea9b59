package devicetree

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/testgridgo/internal/model"
	"github.com/vk/testgridgo/internal/testutil"
)

const sampleTree = `
target "MCU_BASE" {
  vendor = "NXP"
  family = "LPC1700"

  core {
    architecture = "ARMv7-M"
    fpu          = true
  }

  memory "IROM1" {
    kind    = "IROM"
    start   = "0x0"
    size    = "0x80000"
    default = true
  }

  memory "IRAM1" {
    kind    = "IRAM"
    start   = "0x10000000"
    size    = "0x8000"
    default = true
  }

  sectors = [
    ["0x0", "0x1000"],
    ["0x10000", "0x8000"],
  ]

  algorithm {
    file  = "algo/LPC_IAP_512.FLM"
    start = "0x0"
    size  = "0x80000"
  }

  defines = {
    DEVICE_SPI      = true
    DEVICE_I2C      = true
    CLOCK_SOURCE    = "XTAL"
  }
}

target "MCU_CHILD" {
  inherits   = "MCU_BASE"
  sub_family = "LPC176X"
}
`

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("parses targets with hex addresses, sectors and defines", func(t *testing.T) {
		dir := testutil.WriteFiles(t, map[string]string{"targets.hcl": sampleTree})

		tree, err := NewLoader().Load(ctx, dir)
		require.NoError(t, err)
		require.Len(t, tree.Entries, 2)

		base := tree.Entries["MCU_BASE"]
		require.NotNil(t, base)
		assert.Equal(t, "NXP", *base.Vendor)
		require.NotNil(t, base.Core)
		assert.True(t, base.Core.HasFPU)
		assert.Equal(t, 1, base.Core.CoreCount)

		require.Len(t, base.Memories, 2)
		assert.Equal(t, model.MemoryIROM, base.Memories[0].Kind)
		assert.Equal(t, uint64(0x80000), base.Memories[0].Size)
		assert.Equal(t, uint64(0x10000000), base.Memories[1].Start)

		require.Len(t, base.Sectors, 2)
		assert.Equal(t, model.SectorRange{Offset: 0x10000, Size: 0x8000}, base.Sectors[1])

		require.Len(t, base.Algorithms, 1)
		assert.Equal(t, "algo/LPC_IAP_512.FLM", base.Algorithms[0].File)

		assert.Equal(t, cty.True, base.Defines["DEVICE_SPI"])
		assert.Equal(t, cty.StringVal("XTAL"), base.Defines["CLOCK_SOURCE"])

		child := tree.Entries["MCU_CHILD"]
		require.NotNil(t, child)
		assert.Equal(t, "MCU_BASE", child.Inherits)
		assert.Nil(t, child.Core)
		assert.Equal(t, "LPC176X", *child.SubFamily)
	})

	t.Run("merges entries across files", func(t *testing.T) {
		dir := testutil.WriteFiles(t, map[string]string{
			"a.hcl": "target \"A\" {\n  core { architecture = \"ARMv6-M\" }\n}",
			"b.hcl": "target \"B\" {\n  core { architecture = \"ARMv7-M\" }\n}",
		})

		tree, err := NewLoader().Load(ctx, dir)
		require.NoError(t, err)
		assert.Len(t, tree.Entries, 2)
	})

	t.Run("rejects the same target declared in two files", func(t *testing.T) {
		dir := testutil.WriteFiles(t, map[string]string{
			"a.hcl": "target \"DUP\" {\n  core { architecture = \"ARMv6-M\" }\n}",
			"b.hcl": "target \"DUP\" {\n  core { architecture = \"ARMv7-M\" }\n}",
		})

		_, err := NewLoader().Load(ctx, dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `target "DUP" declared in both`)
	})

	t.Run("rejects malformed HCL", func(t *testing.T) {
		dir := testutil.WriteFiles(t, map[string]string{"bad.hcl": `target "X" {`})

		_, err := NewLoader().Load(ctx, dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})

	t.Run("rejects bad addresses and memory kinds", func(t *testing.T) {
		dir := testutil.WriteFiles(t, map[string]string{
			"bad.hcl": `
target "X" {
  core { architecture = "ARMv7-M" }
  memory "IROM1" {
    kind  = "FLASH"
    start = "0x0"
    size  = "0x1000"
  }
}`,
		})

		_, err := NewLoader().Load(ctx, dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown memory kind "FLASH"`)
	})
}

func TestApplyOverrides(t *testing.T) {
	ctx := context.Background()

	t.Run("override replaces the upstream entry wholesale", func(t *testing.T) {
		dir := testutil.WriteFiles(t, map[string]string{
			"targets.hcl": `
target "A" {
  vendor = "NXP"
  core { architecture = "ARMv7-M" }
}`,
			"overrides.hcl": `
target "A" {
  vendor = "ST"
  core { architecture = "ARMv8-M" }
}

target "EXTRA" {
  core { architecture = "ARMv6-M" }
}`,
		})

		loader := NewLoader()
		tree, err := loader.Load(ctx, filepath.Join(dir, "targets.hcl"))
		require.NoError(t, err)

		err = loader.ApplyOverrides(ctx, tree, filepath.Join(dir, "overrides.hcl"))
		require.NoError(t, err)

		require.Len(t, tree.Entries, 2)
		assert.Equal(t, "ST", *tree.Entries["A"].Vendor)
		assert.Equal(t, "ARMv8-M", tree.Entries["A"].Core.Architecture)
		assert.NotNil(t, tree.Entries["EXTRA"])
	})
}

func TestLoadFeatureMapping(t *testing.T) {
	ctx := context.Background()

	t.Run("loads and sorts features, defaulting the friendly name", func(t *testing.T) {
		dir := testutil.WriteFiles(t, map[string]string{
			"features.hcl": `
feature "spi" {
  define        = "DEVICE_SPI"
  friendly_name = "SPI"
  description   = "Serial peripheral interface"
}

feature "analogin" {
  define = "DEVICE_ANALOGIN"
  hidden = true
}`,
		})

		features, err := NewLoader().LoadFeatureMapping(ctx, filepath.Join(dir, "features.hcl"))
		require.NoError(t, err)
		require.Len(t, features, 2)

		assert.Equal(t, "analogin", features[0].Name)
		assert.Equal(t, "analogin", features[0].FriendlyName)
		assert.True(t, features[0].Hidden)

		assert.Equal(t, "spi", features[1].Name)
		assert.Equal(t, "SPI", features[1].FriendlyName)
		assert.Equal(t, "Serial peripheral interface", features[1].Description)
	})

	t.Run("rejects a feature declared twice", func(t *testing.T) {
		dir := testutil.WriteFiles(t, map[string]string{
			"features.hcl": `
feature "spi" { define = "DEVICE_SPI" }
feature "spi" { define = "DEVICE_SPI_2" }`,
		})

		_, err := NewLoader().LoadFeatureMapping(ctx, filepath.Join(dir, "features.hcl"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `feature "spi" declared twice`)
	})

	t.Run("rejects two features claiming one define", func(t *testing.T) {
		dir := testutil.WriteFiles(t, map[string]string{
			"features.hcl": `
feature "spi" { define = "DEVICE_SPI" }
feature "spi_alias" { define = "DEVICE_SPI" }`,
		})

		_, err := NewLoader().LoadFeatureMapping(ctx, filepath.Join(dir, "features.hcl"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `define "DEVICE_SPI" claimed by both`)
	})
}
