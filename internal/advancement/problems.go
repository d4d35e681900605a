package advancement

import (
	"errors"
	"fmt"
	"strings"
)

// Problem is one validation finding, located by a dotted path such as
// "criteria.has_diamond.conditions.player[0]".
type Problem struct {
	Path    string
	Message string
}

func (p Problem) String() string {
	if p.Path == "" {
		return p.Message
	}
	return p.Path + ": " + p.Message
}

// ProblemReporter collects problems instead of failing on the first one.
// Children share their parent's list.
type ProblemReporter struct {
	path     string
	problems *[]Problem
}

func NewProblemReporter() *ProblemReporter {
	return &ProblemReporter{problems: &[]Problem{}}
}

// ForChild returns a reporter one level deeper. Index segments such as
// "[2]" attach without a dot.
func (r *ProblemReporter) ForChild(name string) *ProblemReporter {
	path := name
	switch {
	case r.path == "":
	case strings.HasPrefix(name, "["):
		path = r.path + name
	default:
		path = r.path + "." + name
	}
	return &ProblemReporter{path: path, problems: r.problems}
}

func (r *ProblemReporter) Report(format string, args ...any) {
	*r.problems = append(*r.problems, Problem{Path: r.path, Message: fmt.Sprintf(format, args...)})
}

func (r *ProblemReporter) Problems() []Problem {
	return append([]Problem(nil), *r.problems...)
}

// Err joins every problem into one error, or returns nil if there are none.
func (r *ProblemReporter) Err() error {
	errs := make([]error, len(*r.problems))
	for i, p := range *r.problems {
		errs[i] = errors.New(p.String())
	}
	return errors.Join(errs...)
}
