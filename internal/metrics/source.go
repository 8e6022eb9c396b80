package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
)

// DiskCounters are cumulative disk I/O byte counts summed over whole
// physical disks.
type DiskCounters struct {
	ReadBytes  uint64
	WriteBytes uint64
}

// NetCounters are cumulative network byte counts summed over all interfaces.
type NetCounters struct {
	BytesRecv uint64
	BytesSent uint64
}

// HostInfo describes the machine being sampled.
type HostInfo struct {
	Hostname string
	Platform string
	Kernel   string
	Uptime   time.Duration
}

// Source reads raw resource counters from the operating system.
type Source interface {
	CPUPercent(ctx context.Context) (float64, error)
	MemoryPercent(ctx context.Context) (float64, error)
	DiskCounters(ctx context.Context) (DiskCounters, error)
	NetworkCounters(ctx context.Context) (NetCounters, error)
}

// HostSource reads counters from the local host via gopsutil.
type HostSource struct{}

// NewHostSource returns a Source backed by the local host.
func NewHostSource() *HostSource {
	return &HostSource{}
}

// CPUPercent returns system-wide CPU utilisation since the previous call.
// The first call after process start measures against boot-time counters.
func (HostSource) CPUPercent(ctx context.Context) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(pcts) == 0 {
		return 0, fmt.Errorf("cpu: no utilisation reported")
	}
	return pcts[0], nil
}

// MemoryPercent returns the share of physical memory in use.
func (HostSource) MemoryPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}

// DiskCounters sums read/write bytes over whole physical disks. Partitions
// and virtual devices are skipped so no I/O is counted twice.
func (HostSource) DiskCounters(ctx context.Context) (DiskCounters, error) {
	stats, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		return DiskCounters{}, err
	}
	return sumWholeDisks(stats), nil
}

// virtualDiskPrefixes name devices that mirror or fake physical I/O.
var virtualDiskPrefixes = []string{"loop", "ram", "zram", "dm-", "md", "fd", "sr"}

func sumWholeDisks(stats map[string]disk.IOCountersStat) DiskCounters {
	var c DiskCounters
	for name, s := range stats {
		if isVirtualDisk(name) || isPartition(name, stats) {
			continue
		}
		c.ReadBytes += s.ReadBytes
		c.WriteBytes += s.WriteBytes
	}
	return c
}

func isVirtualDisk(name string) bool {
	for _, p := range virtualDiskPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// isPartition reports whether name is a partition of another listed device:
// sda1 of sda, nvme0n1p1 of nvme0n1, mmcblk0p2 of mmcblk0.
func isPartition(name string, stats map[string]disk.IOCountersStat) bool {
	for parent := range stats {
		if parent == name || !strings.HasPrefix(name, parent) {
			continue
		}
		suffix := strings.TrimPrefix(strings.TrimPrefix(name, parent), "p")
		if suffix != "" && strings.Trim(suffix, "0123456789") == "" {
			return true
		}
	}
	return false
}

// NetworkCounters returns totals across all interfaces.
func (HostSource) NetworkCounters(ctx context.Context) (NetCounters, error) {
	stats, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return NetCounters{}, err
	}
	if len(stats) == 0 {
		return NetCounters{}, fmt.Errorf("net: no interfaces reported")
	}
	return NetCounters{BytesRecv: stats[0].BytesRecv, BytesSent: stats[0].BytesSent}, nil
}

// Describe returns identifying information about the local host.
func (HostSource) Describe(ctx context.Context) (HostInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return HostInfo{}, err
	}
	platform := info.Platform
	if info.PlatformVersion != "" {
		platform += " " + info.PlatformVersion
	}
	return HostInfo{
		Hostname: info.Hostname,
		Platform: platform,
		Kernel:   info.KernelVersion,
		Uptime:   time.Duration(info.Uptime) * time.Second,
	}, nil
}
