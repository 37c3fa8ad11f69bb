package tasks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var sampleTasks = []string{
	"Group B | Reviews",
	"Group A | Backend work",
	"Group A | Frontend work",
	"Standalone chore",
	"Another loose task",
}

func TestGroupSplitsOnFirstSeparator(t *testing.T) {
	grouped := Group(sampleTasks)

	require.Equal(t, []string{"Backend work", "Frontend work"}, grouped["Group A"])
	require.Equal(t, []string{"Reviews"}, grouped["Group B"])
	require.Equal(t, []string{"Standalone chore", "Another loose task"}, grouped[Unclassified])
}

func TestGroupNamesSortedWithUnclassifiedLast(t *testing.T) {
	grouped := Group(sampleTasks)
	require.Equal(t, []string{"Group A", "Group B", Unclassified}, GroupNames(grouped))
}

func TestGroupTrimsWhitespace(t *testing.T) {
	grouped := Group([]string{"  Ops  |  Backups  "})
	require.Equal(t, []string{"Backups"}, grouped["Ops"])
}

func TestPickDescriptionFromGroup(t *testing.T) {
	in := strings.NewReader("a\n2\n")
	var out strings.Builder

	desc, err := PickDescription(in, &out, sampleTasks)
	require.NoError(t, err)
	require.Equal(t, "Group A: Frontend work", desc)
	require.Contains(t, out.String(), "Group A")
	require.Contains(t, out.String(), "Frontend work")
}

func TestPickDescriptionUnclassifiedDirectly(t *testing.T) {
	in := strings.NewReader("1\n")
	var out strings.Builder

	desc, err := PickDescription(in, &out, sampleTasks)
	require.NoError(t, err)
	require.Equal(t, "Standalone chore", desc)
}

func TestPickDescriptionRetriesOnInvalidChoice(t *testing.T) {
	in := strings.NewReader("x\n99\nB\n1\n")
	var out strings.Builder

	desc, err := PickDescription(in, &out, sampleTasks)
	require.NoError(t, err)
	require.Equal(t, "Group B: Reviews", desc)
	require.Contains(t, out.String(), "Invalid choice!")
}

func TestPickDescriptionFailsOnEOF(t *testing.T) {
	_, err := PickDescription(strings.NewReader(""), &strings.Builder{}, sampleTasks)
	require.Error(t, err)
}

func TestPickDescriptionFailsWithoutTasks(t *testing.T) {
	_, err := PickDescription(strings.NewReader("1\n"), &strings.Builder{}, nil)
	require.Error(t, err)
}
