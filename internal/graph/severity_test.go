package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	th := Thresholds{Warning: 70, Critical: 80}

	tests := []struct {
		value float64
		want  Severity
	}{
		{0, SeverityNormal},
		{69.9, SeverityNormal},
		{70, SeverityWarning},
		{79.99, SeverityWarning},
		{80, SeverityCritical},
		{120, SeverityCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, th.Classify(tt.value), "value %v", tt.value)
	}
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "normal", SeverityNormal.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "critical", SeverityCritical.String())
	assert.Equal(t, "unknown", Severity(42).String())
}
