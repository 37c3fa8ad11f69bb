package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mclang/kiho-wt-puncher/internal/punch"
	"github.com/mclang/kiho-wt-puncher/internal/tasks"
)

// minDescWidth keeps the description column readable when every fetched
// punch happens to have a short or empty description.
const minDescWidth = 40

// PunchTable renders punch records as an aligned table, oldest first.
// The server hands out records newest first; flipping to ascending order is
// purely a display concern, the fetched data itself is never re-sorted.
func PunchTable(w io.Writer, records []punch.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "NONE FOUND!")
		return
	}

	descWidth := minDescWidth
	for _, rec := range records {
		if len(rec.Description) > descWidth {
			descWidth = len(rec.Description)
		}
	}

	ascending := make([]punch.Record, len(records))
	copy(ascending, records)
	sort.SliceStable(ascending, func(i, j int) bool {
		return ascending[i].Timestamp.Before(ascending[j].Timestamp)
	})

	line := fmt.Sprintf("|-%s-|-%s-|-%s-|-%s-|-%s-|",
		strings.Repeat("-", 19), strings.Repeat("-", 6), strings.Repeat("-", 8),
		strings.Repeat("-", 20), strings.Repeat("-", descWidth))
	fmt.Fprintf(w, "| %-19s | %-6s | %-8s | %-20s | %-*s |\n",
		"Punch Timestamp", "Type", "Punch ID", "Cost Centre Name", descWidth, "Punch Description")
	fmt.Fprintln(w, line)
	for _, rec := range ascending {
		fmt.Fprintf(w, "| %-19s | %-6s | %-8d | %-20s | %-*s |\n",
			rec.Timestamp.Format(punch.StampFormat), rec.Kind, rec.ID, rec.CostCentre, descWidth, rec.Description)
	}
	fmt.Fprintln(w, line)
}

// TaskGroups renders the configured recurring tasks grouped the same way the
// interactive start menu presents them.
func TaskGroups(w io.Writer, taskList []string) {
	grouped := tasks.Group(taskList)
	for _, name := range tasks.GroupNames(grouped) {
		fmt.Fprintf(w, "%s:\n", name)
		for _, desc := range grouped[name] {
			fmt.Fprintf(w, "  - %s\n", desc)
		}
	}
}

// CostCentres renders the configured customer cost centres sorted by code.
func CostCentres(w io.Writer, centres map[string]string) {
	codes := make([]string, 0, len(centres))
	for code := range centres {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Fprintf(w, "%s: %s\n", code, centres[code])
	}
}
