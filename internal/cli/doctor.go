package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/sysmonitor/sysmon/internal/config"
	"github.com/sysmonitor/sysmon/internal/doctor"
	"github.com/sysmonitor/sysmon/internal/metrics"
	"github.com/sysmonitor/sysmon/internal/ui"
)

var doctorJSON bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose config, terminal, metrics, and export setup",
	Long: `Run environment diagnostics and report anything that would keep the
dashboard or the CloudWatch exporter from working.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand()
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
}

// categoryOrder fixes the report section order.
var categoryOrder = []string{"CONFIG", "TERMINAL", "METRICS", "CLOUDWATCH"}

// DoctorOutput is the JSON shape of the full report.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput groups check results under one category.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

// doctorCommand implements the doctor command logic.
func doctorCommand() error {
	// Invalid config files are reported by the CONFIG checks; the
	// CloudWatch checks simply see no settings in that case.
	cfg, err := loadConfig()
	if err != nil {
		cfg = nil
	}

	checks := collectChecks(cfg)
	results := doctor.RunAll(checks)

	if doctorJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(buildDoctorOutput(checks, results))
	}

	fmt.Print(renderDoctorText(checks, results))
	return nil
}

// collectChecks gathers all diagnostic checks.
func collectChecks(cfg *config.Config) []doctor.Check {
	var checks []doctor.Check
	checks = append(checks, doctor.NewConfigChecks(configFlag)...)
	checks = append(checks, doctor.NewTerminalChecks()...)
	checks = append(checks, doctor.NewMetricsChecks(metrics.NewSystemProvider())...)
	checks = append(checks, doctor.NewCloudWatchChecks(cfg)...)
	return checks
}

// buildDoctorOutput groups results by category for JSON output.
func buildDoctorOutput(checks []doctor.Check, results []doctor.CheckResult) DoctorOutput {
	grouped := make(map[string][]doctor.CheckResult)
	for i, check := range checks {
		grouped[check.Category()] = append(grouped[check.Category()], results[i])
	}

	out := DoctorOutput{Categories: make([]CategoryOutput, 0, len(categoryOrder))}
	for _, cat := range categoryOrder {
		if len(grouped[cat]) == 0 {
			continue
		}
		out.Categories = append(out.Categories, CategoryOutput{Name: cat, Results: grouped[cat]})
	}

	counts := doctor.CountByStatus(results)
	out.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		AllClear: !doctor.HasIssues(results),
	}
	return out
}

// renderDoctorText renders the human-readable report.
func renderDoctorText(checks []doctor.Check, results []doctor.CheckResult) string {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	warnStyle := lipgloss.NewStyle().Foreground(ui.ColorWarning)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	headerStyle := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("sysmon diagnostic report"))
	b.WriteString("\n\n")

	grouped := make(map[string][]int)
	for i, check := range checks {
		grouped[check.Category()] = append(grouped[check.Category()], i)
	}

	for _, category := range categoryOrder {
		indices := grouped[category]
		if len(indices) == 0 {
			continue
		}

		b.WriteString(headerStyle.Render(category))
		b.WriteString("\n")

		for _, idx := range indices {
			result := results[idx]

			var symbol string
			var style lipgloss.Style
			switch result.Status {
			case doctor.StatusPass:
				symbol = ui.SymbolSuccess
				style = successStyle
			case doctor.StatusWarn:
				symbol = ui.SymbolSuccess
				style = warnStyle
			default:
				symbol = ui.SymbolFail
				style = errorStyle
			}

			fmt.Fprintf(&b, "  %s %s\n", style.Render(symbol), result.Message)

			if result.Suggestion != "" && result.Status != doctor.StatusPass {
				for _, line := range strings.Split(result.Suggestion, "\n") {
					fmt.Fprintf(&b, "    %s\n", mutedStyle.Render(line))
				}
			}
		}

		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("━", 60))
	b.WriteString("\n\n")

	if doctor.HasIssues(results) {
		fmt.Fprintf(&b, "%s %s\n", errorStyle.Render(ui.SymbolFail), doctor.Summary(results))
	} else {
		fmt.Fprintf(&b, "%s %s\n", successStyle.Render(ui.SymbolSuccess), doctor.Summary(results))
	}
	b.WriteString("\n")

	return b.String()
}
