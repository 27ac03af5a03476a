package parsers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NvidiaSMIQuery is the field list passed to nvidia-smi --query-gpu.
// ParseNvidiaSMI expects the columns in this order.
const NvidiaSMIQuery = "name,temperature.gpu,utilization.gpu,memory.used,memory.total,power.draw"

var nvidiaSettingsTemp = regexp.MustCompile(`:\s*(\d+)\.`)

// NvidiaGPU holds one row of nvidia-smi output. Fields the driver reports
// as "[N/A]" or anything else non-numeric are nil.
type NvidiaGPU struct {
	Name          string
	Temperature   *int
	Utilization   *int
	MemoryUsedMB  *int
	MemoryTotalMB *int
	PowerDraw     *float64
}

// ParseNvidiaSettingsTemp extracts the core temperature from
// `nvidia-settings -q [gpu:0]/GPUCoreTemp` output, e.g.
//
//	Attribute 'GPUCoreTemp' (host:0[gpu:0]): 65.
//
// The first whole number between a colon and a period wins.
func ParseNvidiaSettingsTemp(output string) (int, bool) {
	m := nvidiaSettingsTemp.FindStringSubmatch(output)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseNvidiaSMI parses GPU metrics from nvidia-smi CSV output.
// Expected input is from: nvidia-smi --query-gpu=<NvidiaSMIQuery> --format=csv,noheader,nounits
//
// Only the first GPU is read. Returns nil, nil for empty output.
func ParseNvidiaSMI(output string) (*NvidiaGPU, error) {
	output = strings.TrimSpace(output)
	if output == "" {
		return nil, nil
	}
	if i := strings.IndexByte(output, '\n'); i >= 0 {
		output = strings.TrimSpace(output[:i])
	}

	// Example: "NVIDIA GeForce RTX 3080, 65, 45, 2048, 10240, 220.50"
	fields := strings.Split(output, ",")
	if len(fields) < 6 {
		return nil, fmt.Errorf("nvidia-smi output has insufficient fields: expected 6, got %d", len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	return &NvidiaGPU{
		Name:          fields[0],
		Temperature:   parseWhole(fields[1]),
		Utilization:   parseWhole(fields[2]),
		MemoryUsedMB:  parseWhole(fields[3]),
		MemoryTotalMB: parseWhole(fields[4]),
		PowerDraw:     parseDecimal(fields[5]),
	}, nil
}

// parseWhole accepts only unsigned digit strings.
func parseWhole(s string) *int {
	if !isDigits(s) {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// parseDecimal accepts digits with optional dots, like "220.50".
func parseDecimal(s string) *float64 {
	if !isDigits(strings.ReplaceAll(s, ".", "")) {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
