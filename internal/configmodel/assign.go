package configmodel

//
// Textual updates (e.g., `--set outliers.threshold=3`).
//

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/asdp-project/asdp-cli/internal/model"
)

// ParseValue converts the textual representation of a value into the
// Go value expected by [Update] for the given path. Set-valued paths
// take a comma separated list and the empty string is the empty set.
func ParseValue(path, text string) (any, error) {
	f, found := fields[path]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPath, path)
	}
	switch f.kind {
	case KindBool:
		v, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s", ErrBadValue, path, err.Error())
		}
		return v, nil
	case KindFloat:
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s", ErrBadValue, path, err.Error())
		}
		return v, nil
	case KindInt:
		v, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s", ErrBadValue, path, err.Error())
		}
		return v, nil
	case KindStringSet, KindEnumSet:
		return splitList(text), nil
	default:
		return text, nil
	}
}

func splitList(text string) []string {
	out := []string{}
	for _, entry := range strings.Split(text, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

// Assign applies an assignment written as `path=value` to c.
func Assign(c model.Configuration, assignment string) (model.Configuration, error) {
	path, text, found := strings.Cut(assignment, "=")
	if !found {
		return c, fmt.Errorf("%w: expected path=value, got %q", ErrBadValue, assignment)
	}
	path = strings.TrimSpace(path)
	value, err := ParseValue(path, text)
	if err != nil {
		return c, err
	}
	return Update(c, path, value)
}

// AssignAll applies all the given assignments in order.
func AssignAll(c model.Configuration, assignments ...string) (model.Configuration, error) {
	for _, assignment := range assignments {
		var err error
		if c, err = Assign(c, assignment); err != nil {
			return c, err
		}
	}
	return c, nil
}
