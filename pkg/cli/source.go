package cli

import (
	"github.com/spf13/cobra"

	"github.com/getmockd/clientmock/pkg/fixture"
)

// sourceFlags selects fixture files by path and by directory glob.
type sourceFlags struct {
	files   []string
	dir     string
	pattern string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&s.files, "file", "f", nil, "Fixture file (can be specified multiple times)")
	cmd.Flags().StringVar(&s.dir, "dir", "", "Directory to search for fixture files")
	cmd.Flags().StringVar(&s.pattern, "pattern", fixture.DefaultPattern, "Glob pattern used with --dir")
}

// paths lists the explicit files first, then the directory matches.
func (s *sourceFlags) paths() ([]string, error) {
	paths := append([]string(nil), s.files...)
	if s.dir != "" {
		matches, err := fixture.Glob(s.dir, s.pattern)
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}
