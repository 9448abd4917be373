package sysinfo

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

// Info describes the machine a solve ran on; budgets are wall-clock, so
// results are only comparable on similar hardware.
type Info struct {
	Platform string `json:"platform"`
	CPU      string `json:"cpu"`
	Cores    int    `json:"cores"`
	RAM      string `json:"ram"`
}

// Collect gathers host details. Fields that cannot be read stay "unknown".
func Collect() Info {
	info := Info{Platform: "unknown", CPU: "unknown", Cores: runtime.NumCPU(), RAM: "unknown"}

	if hostStat, err := host.Info(); err == nil && hostStat.Platform != "" {
		info.Platform = hostStat.Platform
	}
	if cpuStat, err := cpu.Info(); err == nil && len(cpuStat) > 0 {
		info.CPU = cpuStat[0].ModelName
	}
	if vmStat, err := mem.VirtualMemory(); err == nil {
		info.RAM = fmt.Sprintf("%d GB", vmStat.Total/1024/1024/1024)
	}

	return info
}

func (i Info) String() string {
	return fmt.Sprintf("platform=%q cpu=%q cores=%d ram=%q", i.Platform, i.CPU, i.Cores, i.RAM)
}
