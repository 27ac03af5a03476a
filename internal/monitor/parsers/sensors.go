// Package parsers turns the text output of hardware tools into numbers.
//
// Every parser is pure: it takes the captured output and returns the
// readings it could find. Missing or garbled readings are reported as
// "not found" rather than errors, because the dashboard simply leaves
// that field blank.
package parsers

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

var sensorsReading = regexp.MustCompile(`\+(\d+)`)

// ParseSensorsCoreTemps extracts per-core temperatures from `sensors` output.
// Only lines naming a "Core" with a signed reading are used, and only the
// integer part of the first reading on each line counts:
//
//	Core 0:        +45.0°C  (high = +100.0°C, crit = +100.0°C)
//
// yields 45.
func ParseSensorsCoreTemps(output string) []int {
	var temps []int

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "Core") || !strings.Contains(line, "+") {
			continue
		}
		m := sensorsReading.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		temps = append(temps, n)
	}

	return temps
}

// ParseSensorsCPUTemp returns the mean core temperature, rounded down, or
// false when `sensors` reported no cores.
func ParseSensorsCPUTemp(output string) (int, bool) {
	return MeanFloor(ParseSensorsCoreTemps(output))
}

// MeanFloor is the integer mean of temps, rounded down.
func MeanFloor(temps []int) (int, bool) {
	if len(temps) == 0 {
		return 0, false
	}
	sum := 0
	for _, t := range temps {
		sum += t
	}
	// Readings are non-negative, so integer division floors.
	return sum / len(temps), true
}
