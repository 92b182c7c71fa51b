package services

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/wsearch/internal/command"
	"github.com/Cyclone1070/wsearch/internal/search"
)

// FormatReplaceSummary describes a replace-all as markdown.
func FormatReplaceSummary(s *search.ReplaceSummary) string {
	var sb strings.Builder

	verb := "Replaced"
	if s.DryRun {
		verb = "Would replace"
	}
	fmt.Fprintf(&sb, "**%s %d occurrence(s) in %d file(s).**\n\n", verb, s.Replaced, s.Files)

	for _, c := range s.Changes {
		fmt.Fprintf(&sb, "- `%s`: %d\n", c.Path, c.Replacements)
	}

	if len(s.Failed) > 0 {
		sb.WriteString("\n**Failed:**\n\n")
		for _, f := range s.Failed {
			fmt.Fprintf(&sb, "- `%s`: %v\n", f.File, f.Err)
		}
	}

	if len(s.Stale) > 0 {
		sb.WriteString("\n**Changed since the search:**\n\n")
		for _, name := range s.Stale {
			fmt.Fprintf(&sb, "- `%s`\n", name)
		}
	}

	if s.DryRun {
		for _, c := range s.Changes {
			if c.Diff == "" {
				continue
			}
			fmt.Fprintf(&sb, "\n```diff\n%s```\n", c.Diff)
		}
	}

	return sb.String()
}

// FormatCommandOutput wraps a command's JSON response for display.
func FormatCommandOutput(name, output string) string {
	return fmt.Sprintf("**%s**\n\n```json\n%s\n```\n", name, output)
}

// FormatHelp lists the key bindings and the slash commands.
func FormatHelp(bindings [][2]string, decls []command.Declaration) string {
	var sb strings.Builder
	sb.WriteString("## Keys\n\n")
	for _, b := range bindings {
		fmt.Fprintf(&sb, "- `%s` %s\n", b[0], b[1])
	}
	sb.WriteString("\n## Commands\n\nType `/name key=value` in the search box.\n\n")
	for _, d := range decls {
		fmt.Fprintf(&sb, "- `/%s` %s\n", d.Usage(), d.Description)
	}
	return sb.String()
}

// ParseCommand splits "/name k=v k2=v2" into a name and arguments.
// A bare word after the name is passed as "text".
func ParseCommand(input string) (string, map[string]any) {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(input), "/"))
	if len(fields) == 0 {
		return "", nil
	}
	args := make(map[string]any)
	var loose []string
	for _, f := range fields[1:] {
		if k, v, ok := strings.Cut(f, "="); ok && k != "" {
			args[k] = v
			continue
		}
		loose = append(loose, f)
	}
	if len(loose) > 0 {
		args["text"] = strings.Join(loose, " ")
	}
	return fields[0], args
}
