package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnosticLevels(t *testing.T) {
	var buf bytes.Buffer
	diag := NewDiagnosticSystem(DiagnosticInfo)
	diag.SetOutput(&buf)

	diag.Error("boom: %s", "details")
	diag.Warn("odd annotation on %s", "UserController")
	diag.Info("scanning")
	diag.Verbose("hidden at info level")
	diag.Debug("also hidden")

	out := buf.String()
	assert.Contains(t, out, "[ERROR] boom: details")
	assert.Contains(t, out, "[WARN] odd annotation on UserController")
	assert.Contains(t, out, "[INFO] scanning")
	assert.NotContains(t, out, "hidden")
}

func TestQuietDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	diag := NewQuietDiagnostics()
	diag.SetOutput(&buf)

	diag.Error("kept")
	diag.Warn("dropped")
	diag.Info("dropped too")
	diag.Success("dropped as well")

	out := buf.String()
	assert.Contains(t, out, "kept")
	assert.NotContains(t, out, "dropped")
}

func TestWarningCount(t *testing.T) {
	diag := NewQuietDiagnostics()
	diag.SetOutput(&bytes.Buffer{})

	assert.Equal(t, 0, diag.WarningCount())

	// Suppressed warnings still count toward the run summary.
	diag.Warn("one")
	diag.Warn("two")
	assert.Equal(t, 2, diag.WarningCount())
}

func TestSummaryOrder(t *testing.T) {
	var buf bytes.Buffer
	diag := NewDiagnosticSystem(DiagnosticInfo)
	diag.SetOutput(&buf)

	diag.Summary("Report Complete!", []Stat{
		{Name: "Routes documented", Value: 7},
		{Name: "Warnings", Value: 0},
	})

	assert.Contains(t, buf.String(), "Report Complete!")
	routesIdx := bytes.Index(buf.Bytes(), []byte("Routes documented: 7"))
	warnIdx := bytes.Index(buf.Bytes(), []byte("Warnings: 0"))
	assert.GreaterOrEqual(t, routesIdx, 0)
	assert.Greater(t, warnIdx, routesIdx)
}
