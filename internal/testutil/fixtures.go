package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/ladsynth/internal/document"
)

// TankHCL is a complete specification of a small tank filling station.
const TankHCL = `
program "tank" {}

symbol "START"      { zone = "bit" }
symbol "STOP"       { zone = "bit" }
symbol "RUN"        { zone = "bit" }
symbol "FILL_ALARM" { zone = "bit" }
symbol "LEVEL"      { zone = "word" }
symbol "LEVEL_PCT"  { zone = "float" }

timer "FILL_TIMEOUT" {
  preset = 120
  base   = "1s"
}

module "TM3AI2/G" {
  index = 0
  channel {
    index  = 0
    symbol = "LEVEL_RAW"
    sensor = "4-20mA"
    max    = 10000
  }
  channel {
    index = 1
  }
}

rung "Run pump" {
  comment = "Pump & valve"
  pattern = "latch"
  arguments {
    set    = ["START"]
    reset  = ["STOP"]
    output = "RUN"
  }
}

rung "Scale level" {
  pattern = "scale"
  arguments {
    source  = "LEVEL_RAW"
    target  = "LEVEL_PCT"
    eng_max = 100
  }
}

rung "Fill timeout" {
  pattern = "timeout"
  arguments {
    when   = ["RUN", "[ ${sym.LEVEL} < 10 ]"]
    timer  = "FILL_TIMEOUT"
    output = "FILL_ALARM"
  }
}
`

// TankRungs is the number of rungs in TankHCL.
const TankRungs = 3

// MixerYAML is a small specification in the YAML format.
const MixerYAML = `
program:
  name: mixer
symbols:
  - {name: START, zone: bit}
  - {name: MIXER, zone: bit}
rungs:
  - name: Mix
    pattern: output
    arguments:
      when: [START]
      coils: [MIXER]
`

// BrokenHCL declares a coil on a symbol that does not exist.
const BrokenHCL = `
program "broken" {}
rung "r" {
  pattern = "output"
  arguments {
    coils = ["GHOST"]
  }
}
`

// WriteSkeleton writes the reference skeleton into dir and returns its path.
func WriteSkeleton(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "skeleton.smbp")
	require.NoError(t, os.WriteFile(path, document.ReferenceSource(), 0o644))
	return path
}
