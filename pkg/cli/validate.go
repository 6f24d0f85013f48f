package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/clientmock/pkg/clientmock"
	"github.com/getmockd/clientmock/pkg/fixture"
)

func newValidateCmd() *cobra.Command {
	src := &sourceFlags{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate fixture files",
		Long: `Validate checks each fixture file for syntax, schema violations and
expectations that cannot be built, for example a URI containing a query
string or an invalid JSONPath.`,
		Example: `  clientmock validate -f users.yaml
  clientmock validate --dir fixtures --pattern '**/*.yaml'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := src.paths()
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return errors.New("no fixture files given, use -f or --dir")
			}

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			failed := 0
			for _, path := range paths {
				n, err := validateFile(path)
				if err != nil {
					failed++
					fmt.Fprintf(errOut, "FAIL %v\n", err)
					continue
				}
				fmt.Fprintf(out, "OK %s (%d expectations)\n", path, n)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d fixture files invalid", failed, len(paths))
			}
			return nil
		},
	}
	src.register(cmd)
	return cmd
}

// validateFile loads path and builds its expectations into a throwaway
// collection.
func validateFile(path string) (int, error) {
	doc, err := fixture.Load(path)
	if err != nil {
		return 0, err
	}
	c := clientmock.NewCollection()
	if err := doc.Apply(c); err != nil {
		return 0, err
	}
	return c.Len(), nil
}
