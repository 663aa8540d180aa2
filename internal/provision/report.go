package provision

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Status is the terminal state of one executed step.
type Status string

const (
	// StatusSuccess means the provider applied and verified the state.
	StatusSuccess Status = "success"
	// StatusSkipped means the desired state already held.
	StatusSkipped Status = "skipped-already-satisfied"
	// StatusFailed means apply or verify reported an error.
	StatusFailed Status = "failed"
	// StatusBlocked means a dependency failed, so the step never ran.
	StatusBlocked Status = "blocked"
)

// Outcome is the terminal result of exactly one plan step.
type Outcome struct {
	StepID     StepID        `yaml:"step"`
	Capability Capability    `yaml:"capability"`
	Status     Status        `yaml:"status"`
	Diagnostic string        `yaml:"diagnostic,omitempty"`
	Warnings   []string      `yaml:"warnings,omitempty"`
	Duration   time.Duration `yaml:"duration"`
}

// Report is the ordered record of a whole run. Immutable once emitted.
type Report struct {
	RunID      string    `yaml:"run_id"`
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at"`
	Outcomes   []Outcome `yaml:"outcomes"`
	Success    bool      `yaml:"success"`
}

func newReport() *Report {
	return &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
}

// finish seals the report: overall success means no failed or blocked step.
func (r *Report) finish() {
	r.FinishedAt = time.Now()
	r.Success = true
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed || o.Status == StatusBlocked {
			r.Success = false
			return
		}
	}
}

// Outcome returns the outcome for a step id, if present.
func (r *Report) Outcome(id StepID) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.StepID == id {
			return o, true
		}
	}
	return Outcome{}, false
}

// WriteFile persists the report as YAML.
func (r *Report) WriteFile(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	blockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// Render formats the report for the terminal: one row per step, warnings
// and diagnostics indented under the step they belong to.
func (r *Report) Render() string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render(fmt.Sprintf("Provisioning report (run %s)", shortID(r.RunID))))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", 48))
	sb.WriteString("\n")

	for _, o := range r.Outcomes {
		glyph, style := statusGlyph(o.Status)
		line := fmt.Sprintf("%s  %-14s %-26s %s",
			style.Render(glyph), o.StepID, style.Render(string(o.Status)),
			o.Duration.Round(time.Millisecond))
		sb.WriteString(line)
		sb.WriteString("\n")

		if o.Diagnostic != "" {
			sb.WriteString(fmt.Sprintf("     %s\n", o.Diagnostic))
		}
		for _, w := range o.Warnings {
			sb.WriteString(fmt.Sprintf("     %s %s\n", warnStyle.Render("warning:"), w))
		}
	}

	sb.WriteString(strings.Repeat("─", 48))
	sb.WriteString("\n")
	total := r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond)
	if r.Success {
		sb.WriteString(successStyle.Render(fmt.Sprintf("All steps completed in %s", total)))
	} else {
		sb.WriteString(failedStyle.Render(fmt.Sprintf("Run finished with failures in %s; fix and re-run, completed steps will be skipped", total)))
	}
	sb.WriteString("\n")

	return sb.String()
}

func statusGlyph(s Status) (string, lipgloss.Style) {
	switch s {
	case StatusSuccess:
		return "✓", successStyle
	case StatusSkipped:
		return "•", skippedStyle
	case StatusBlocked:
		return "⊘", blockedStyle
	default:
		return "✗", failedStyle
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
