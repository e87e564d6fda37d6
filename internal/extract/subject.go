package extract

import (
	"regexp"
	"strings"
)

// piPattern matches the trailing "from <name>" clause of an intake subject
// line. The greedy prefix pins the match to the last "from" so sponsor names
// containing the word do not truncate the PI name.
var piPattern = regexp.MustCompile(`(?i)^.*\bfrom\s+(.+)$`)

// PIFromSubject extracts the principal investigator's name from a subject
// line such as "New proposal intake from Jane Smith". Returns "" when the
// subject carries no trailing from-clause.
func PIFromSubject(subject string) string {
	m := piPattern.FindStringSubmatch(NormalizeSpace(subject))
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
