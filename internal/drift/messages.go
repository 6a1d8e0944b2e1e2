package drift

import (
	"fmt"
	"strings"
)

// FormatResult formats a drift detection result for CLI output.
func FormatResult(result *Result) string {
	if result == nil {
		return "No drift detection result available."
	}
	if !result.HasDrift {
		return FormatNoDrift(result)
	}
	return FormatDrift(result)
}

// FormatNoDrift formats a successful (no drift) result.
func FormatNoDrift(result *Result) string {
	var b strings.Builder

	b.WriteString("Schema check passed\n\n")
	fmt.Fprintf(&b, "  Tables:       %d\n", result.Tables)
	fmt.Fprintf(&b, "  Schema hash:  %s\n", truncateHash(result.ExpectedHash))
	b.WriteString("\n  Database schema matches the schema files.\n")

	return b.String()
}

// FormatDrift formats a drift detection result with differences.
func FormatDrift(result *Result) string {
	var b strings.Builder

	b.WriteString("Schema drift detected\n\n")
	fmt.Fprintf(&b, "  Expected hash: %s\n", truncateHash(result.ExpectedHash))
	fmt.Fprintf(&b, "  Actual hash:   %s\n", truncateHash(result.ActualHash))
	b.WriteString("\n")

	comp := result.Comparison

	if len(comp.Missing) > 0 {
		b.WriteString("  Missing tables (in schema files but not in database):\n")
		for _, name := range comp.Missing {
			fmt.Fprintf(&b, "    - %s\n", name)
		}
		b.WriteString("\n")
	}

	if len(comp.Extra) > 0 {
		b.WriteString("  Extra tables (in database but not in schema files):\n")
		for _, name := range comp.Extra {
			fmt.Fprintf(&b, "    + %s\n", name)
		}
		b.WriteString("\n")
	}

	if len(comp.Changed) > 0 {
		b.WriteString("  Modified tables:\n")
		for _, name := range comp.ChangedTables() {
			fmt.Fprintf(&b, "\n    %s:\n", name)
			formatTableDiff(&b, comp.Changed[name], "      ")
		}
	}

	if len(comp.Missing) > 0 {
		b.WriteString("\nFix:\n")
		b.WriteString("  Create the missing tables:\n")
		b.WriteString("    osql apply <schema files>\n")
	}

	return b.String()
}

func formatTableDiff(b *strings.Builder, diff *TableDiff, indent string) {
	if !diff.HasDifferences() {
		fmt.Fprintf(b, "%stable options differ\n", indent)
		return
	}
	if len(diff.Missing) > 0 {
		fmt.Fprintf(b, "%sDefinitions missing from DB:\n", indent)
		for _, d := range diff.Missing {
			fmt.Fprintf(b, "%s  - %s\n", indent, d)
		}
	}
	if len(diff.Extra) > 0 {
		fmt.Fprintf(b, "%sDefinitions only in DB:\n", indent)
		for _, d := range diff.Extra {
			fmt.Fprintf(b, "%s  + %s\n", indent, d)
		}
	}
	if len(diff.Modified) > 0 {
		fmt.Fprintf(b, "%sDefinitions that differ:\n", indent)
		for _, d := range diff.Modified {
			fmt.Fprintf(b, "%s  ~ %s\n", indent, d)
		}
	}
}

// FormatSummary formats a drift summary for brief output.
func FormatSummary(s Summary) string {
	if s.Missing+s.Extra+s.Modified == 0 {
		return fmt.Sprintf("No drift detected. %d tables in sync.", s.Tables)
	}

	var parts []string
	if s.Missing > 0 {
		parts = append(parts, fmt.Sprintf("%d missing", s.Missing))
	}
	if s.Extra > 0 {
		parts = append(parts, fmt.Sprintf("%d extra", s.Extra))
	}
	if s.Modified > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", s.Modified))
	}
	return fmt.Sprintf("Drift detected: %s", strings.Join(parts, ", "))
}

// FormatQuickStatus formats a one-line status for drift detection.
func FormatQuickStatus(hasDrift bool, expectedHash, actualHash string) string {
	if !hasDrift {
		return fmt.Sprintf("OK  %s", truncateHash(expectedHash))
	}
	return fmt.Sprintf("DRIFT  expected: %s  actual: %s",
		truncateHash(expectedHash), truncateHash(actualHash))
}

// truncateHash returns the first 12 characters of a hash for display.
func truncateHash(hash string) string {
	if len(hash) <= 12 {
		return hash
	}
	return hash[:12]
}
