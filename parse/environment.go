package parse

import (
	"strings"

	"github.com/danimo/napalm-dell/schema"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Environment parses "show process cpu" output, which carries both the memory
// utilization report and the CPU utilization summary:
//
//	Memory Utilization Report
//
//	status      bytes
//	------ ----------
//	  free   170250240
//	 alloc   266586112
//
//	CPU Utilization:
//
//	  PID      Name                    5 Secs     60 Secs    300 Secs
//	-----------------------------------------------------------------
//	  765      osapiTimer               0.45%       0.50%       0.51%
//	Total CPU Utilization              9.26%       9.75%       9.72%
//
// The CPU figure is the 60-second average. AvailableRAM is reported as
// used+free, the device's total memory; that reading is part of the contract.
// Temperature, power and fan telemetry are not exposed by this OS, so those
// maps carry the "invalid" placeholder entry with sentinel values.
func Environment(raw string) (schema.Environment, error) {
	env := schema.Environment{
		CPU: map[int]schema.CPUUsage{0: {}},
		Temperature: map[string]schema.Temperature{
			"invalid": {IsAlert: false, IsCritical: false, Temperature: -1.0},
		},
		Power: map[string]schema.PowerSupply{
			"invalid": {Status: true, Output: -1.0, Capacity: -1.0},
		},
		Fans: map[string]schema.Fan{
			"invalid": {Status: true},
		},
	}
	var used, free int
	for _, line := range strings.Split(raw, "\n") {
		if strings.Contains(line, "Total CPU Utilization") {
			fields := strings.Fields(line)
			if len(fields) < 5 {
				return env, errors.Errorf("malformed cpu utilization line %q", line)
			}
			usage, err := cast.ToFloat64E(strings.TrimSuffix(fields[4], "%"))
			if err != nil {
				return env, errors.Wrapf(err, "malformed cpu utilization line %q", line)
			}
			env.CPU[0] = schema.CPUUsage{Usage: usage}
			break
		}
		if strings.Contains(line, "alloc") {
			v, err := memoryBytes(line)
			if err != nil {
				return env, err
			}
			used = v
		}
		if strings.Contains(line, "free") {
			v, err := memoryBytes(line)
			if err != nil {
				return env, err
			}
			free = v
		}
	}
	env.Memory = schema.Memory{
		UsedRAM:      used,
		AvailableRAM: used + free,
	}
	return env, nil
}

func memoryBytes(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, errors.Errorf("malformed memory line %q", line)
	}
	v, err := cast.ToIntE(fields[1])
	if err != nil {
		return 0, errors.Wrapf(err, "malformed memory line %q", line)
	}
	return v, nil
}
