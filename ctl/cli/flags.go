package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// enumFlag parses a string flag with parse; an unset flag yields nil.
func enumFlag[T any](cmd *cobra.Command, name string, parse func(string) (T, error)) (*T, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return nil, nil
	}
	v, err := parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q", name, s)
	}
	return &v, nil
}

func idFlag(cmd *cobra.Command, name string) (*uuid.UUID, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return nil, nil
	}
	id, err := parseID("--"+name, s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseID(what, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q", what, s)
	}
	return id, nil
}

func dateFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: want YYYY-MM-DD", name, s)
	}
	return &t, nil
}
