package service

import (
	"fmt"
	"strings"

	"github.com/templui/taskflow/internal/model"
)

func welcomeEmailTemplate(name, appURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is ready. Add your first goal and start tracking your days.

Get started: %s

Best,
The %s Team`, name, appURL, appName)

	return subject, body
}

func dailySummaryEmailTemplate(name, day string, due []*model.DueGoal, appName string) (string, string) {
	subject := fmt.Sprintf("Your goals for %s", day)

	var lines strings.Builder
	for _, g := range due {
		mark := " "
		if g.IsComplete() {
			mark = "x"
		}
		fmt.Fprintf(&lines, "[%s] %s (%d/%d)", mark, g.Title, g.CompletedSteps, g.TotalSteps)
		if g.Time != nil {
			fmt.Fprintf(&lines, " at %s", *g.Time)
		}
		lines.WriteString("\n")
	}
	if len(due) == 0 {
		lines.WriteString("Nothing scheduled. Enjoy the day!\n")
	}

	body := fmt.Sprintf(`Hi %s,

Here is what is on your list for %s:

%s
Best,
The %s Team`, name, day, lines.String(), appName)

	return subject, body
}
