package parse_test

import (
	"testing"

	"github.com/danimo/napalm-dell/parse"
	"github.com/stretchr/testify/assert"
)

const processCPUOutput = `Memory Utilization Report

status      bytes
------ ----------
 alloc       1000
  free        500

CPU Utilization:

  PID      Name                    5 Secs     60 Secs    300 Secs
-----------------------------------------------------------------
  765      osapiTimer               0.45%       0.50%       0.51%
Total CPU Utilization              9.26%       9.75%       9.72%
`

func TestEnvironment(t *testing.T) {
	env, err := parse.Environment(processCPUOutput)
	assert.NoError(t, err)

	// 60-second average, not the 5-second column
	assert.Equal(t, 9.75, env.CPU[0].Usage)

	// available_ram reports the device total: used plus free
	assert.Equal(t, 1000, env.Memory.UsedRAM)
	assert.Equal(t, 1500, env.Memory.AvailableRAM)
}

func TestEnvironment_Placeholders(t *testing.T) {
	env, err := parse.Environment(processCPUOutput)
	assert.NoError(t, err)

	// subsystems the OS does not expose are keyed "invalid", never omitted
	temp, ok := env.Temperature["invalid"]
	assert.True(t, ok)
	assert.Equal(t, -1.0, temp.Temperature)
	assert.False(t, temp.IsAlert)
	assert.False(t, temp.IsCritical)

	power, ok := env.Power["invalid"]
	assert.True(t, ok)
	assert.True(t, power.Status)
	assert.Equal(t, -1.0, power.Output)
	assert.Equal(t, -1.0, power.Capacity)

	fan, ok := env.Fans["invalid"]
	assert.True(t, ok)
	assert.True(t, fan.Status)
}

func TestEnvironment_NoCPULine(t *testing.T) {
	env, err := parse.Environment(" alloc 1000\n  free 500\n")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, env.CPU[0].Usage)
	assert.Equal(t, 1500, env.Memory.AvailableRAM)
}
