package monitor

import (
	"strings"

	"github.com/rileyhilliard/sysmon/internal/config"
)

// virtualFilesystems are pseudo filesystems with no real storage behind them.
var virtualFilesystems = map[string]bool{
	"tmpfs":      true,
	"devtmpfs":   true,
	"sysfs":      true,
	"proc":       true,
	"cgroup":     true,
	"cgroup2":    true,
	"devpts":     true,
	"securityfs": true,
	"pstore":     true,
	"efivarfs":   true,
	"bpf":        true,
	"configfs":   true,
	"debugfs":    true,
	"tracefs":    true,
	"fusectl":    true,
	"mqueue":     true,
	"hugetlbfs":  true,
}

// systemMountPrefixes are kernel and boot mounts hidden with virtual filesystems.
var systemMountPrefixes = []string{"/sys", "/proc", "/dev", "/run", "/boot/efi"}

// snapMountPrefixes are where snapd mounts its squashfs images.
var snapMountPrefixes = []string{"/snap", "/var/snap/"}

// KeepPartition reports whether a partition should appear in the disk panel.
func KeepPartition(d DiskInfo, f config.FilterConfig) bool {
	if f.ExcludeLoopDevices && strings.HasPrefix(d.Device, "/dev/loop") {
		return false
	}

	if f.ExcludeSnapMounts {
		if strings.HasPrefix(d.Device, "/dev/snap") || hasAnyPrefix(d.Mountpoint, snapMountPrefixes) {
			return false
		}
	}

	if f.ExcludeVirtualFilesystems {
		if virtualFilesystems[d.Fstype] || hasAnyPrefix(d.Mountpoint, systemMountPrefixes) {
			return false
		}
	}

	return true
}

// FilterPartitions returns the partitions KeepPartition accepts, in order.
func FilterPartitions(disks []DiskInfo, f config.FilterConfig) []DiskInfo {
	out := make([]DiskInfo, 0, len(disks))
	for _, d := range disks {
		if KeepPartition(d, f) {
			out = append(out, d)
		}
	}
	return out
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
