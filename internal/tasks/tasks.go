package tasks

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Unclassified is the group collecting recurring tasks that carry no
// "Group | description" prefix. It is always listed after the named groups.
const Unclassified = "unclassified"

// Group splits recurring task descriptions into named groups.
// A task of the form "Group | description" goes under "Group"; tasks without
// a `|` separator are collected under Unclassified.
func Group(tasks []string) map[string][]string {
	grouped := make(map[string][]string)
	for _, task := range tasks {
		group, desc, found := strings.Cut(task, "|")
		if found {
			group = strings.TrimSpace(group)
			grouped[group] = append(grouped[group], strings.TrimSpace(desc))
		} else {
			grouped[Unclassified] = append(grouped[Unclassified], strings.TrimSpace(task))
		}
	}
	return grouped
}

// GroupNames returns the group names alphabetically, with Unclassified
// forced last so ungrouped tasks never shadow a real group letter.
func GroupNames(grouped map[string][]string) []string {
	names := make([]string, 0, len(grouped))
	for name := range grouped {
		if name != Unclassified {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := grouped[Unclassified]; ok {
		names = append(names, Unclassified)
	}
	return names
}

// PickDescription runs the interactive two-level menu used when `start` is
// invoked without a description. Named groups are selected with letters A-Z
// and expand into a numbered list; unclassified tasks are numbered directly
// on the top level. The chosen description is returned as "Group: task" for
// grouped tasks and as the bare task otherwise.
//
// Reading and writing go through the given reader/writer so the menu can be
// driven from tests.
func PickDescription(in io.Reader, out io.Writer, taskList []string) (string, error) {
	if len(taskList) == 0 {
		return "", errors.New("no recurring tasks configured")
	}
	grouped := Group(taskList)
	names := GroupNames(grouped)

	// Top-level menu: letters for named groups, numbers for unclassified tasks.
	groups := make(map[string]string) // "A" -> group name
	letter := 'A'
	for _, name := range names {
		if name == Unclassified {
			continue
		}
		if letter > 'Z' {
			return "", errors.New("too many task groups - only letters A-Z are supported")
		}
		key := string(letter)
		groups[key] = name
		fmt.Fprintf(out, "%4s: %s\n", key, name)
		letter++
	}
	unclassified := grouped[Unclassified]
	for i, desc := range unclassified {
		fmt.Fprintf(out, "%4d: %s\n", i+1, desc)
	}

	scanner := bufio.NewScanner(in)
	currentGroup := "" // empty while on the top level
	for {
		printPrompt(out, len(groups), currentGroup, grouped, unclassified)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("reading menu choice: %w", err)
			}
			return "", errors.New("no description chosen")
		}
		choice := strings.TrimSpace(scanner.Text())

		// A letter descends into the named group and shows its numbered tasks.
		if name, ok := groups[strings.ToUpper(choice)]; ok && currentGroup == "" {
			currentGroup = name
			for i, desc := range grouped[name] {
				fmt.Fprintf(out, "%4d: %s\n", i+1, desc)
			}
			continue
		}

		if n, err := strconv.Atoi(choice); err == nil {
			if currentGroup != "" {
				if descs := grouped[currentGroup]; n >= 1 && n <= len(descs) {
					return fmt.Sprintf("%s: %s", currentGroup, descs[n-1]), nil
				}
			} else if n >= 1 && n <= len(unclassified) {
				return unclassified[n-1], nil
			}
		}
		fmt.Fprintln(out, "Invalid choice!")
	}
}

// printPrompt shows what kind of input is currently accepted.
func printPrompt(out io.Writer, groupCount int, currentGroup string, grouped map[string][]string, unclassified []string) {
	switch {
	case currentGroup != "":
		fmt.Fprintf(out, "==> Select description [1-%d] (ctrl+c to cancel): ", len(grouped[currentGroup]))
	case groupCount > 0 && len(unclassified) > 0:
		fmt.Fprintf(out, "==> Select group [A-%c] or description [1-%d] (ctrl+c to cancel): ", 'A'+rune(groupCount-1), len(unclassified))
	case groupCount > 0:
		fmt.Fprintf(out, "==> Select group [A-%c] (ctrl+c to cancel): ", 'A'+rune(groupCount-1))
	default:
		fmt.Fprintf(out, "==> Select description [1-%d] (ctrl+c to cancel): ", len(unclassified))
	}
}
