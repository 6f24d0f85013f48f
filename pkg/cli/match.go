package cli

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/getmockd/clientmock/pkg/clientmock"
	"github.com/getmockd/clientmock/pkg/fixture"
	"github.com/getmockd/clientmock/pkg/request"
	"github.com/getmockd/clientmock/pkg/response"
)

type matchFlags struct {
	sourceFlags
	method  string
	url     string
	headers []string
	data    string
}

func newMatchCmd(g *globalFlags) *cobra.Command {
	f := &matchFlags{}
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Answer one request from fixture files",
		Long: `Match loads the fixtures into a collection, sends a single request through
it and prints the expectation that answered together with its response.
When nothing matches, the diagnostic listing every expectation is printed.`,
		Example: `  clientmock match -f users.yaml --url https://api.test/users/42 -H 'Accept: application/json'
  clientmock match -f orders.json --method POST --url https://api.test/orders \
    -H 'Content-Type: application/json' --data '{"sku":"lamp"}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.url == "" {
				return errors.New("--url is required")
			}
			paths, err := f.paths()
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return errors.New("no fixture files given, use -f or --dir")
			}

			docs := make([]*fixture.Document, 0, len(paths))
			for _, path := range paths {
				doc, err := fixture.Load(path)
				if err != nil {
					return err
				}
				docs = append(docs, doc)
			}
			c, err := fixture.Collection(docs, clientmock.WithLogger(g.logger(cmd.ErrOrStderr())))
			if err != nil {
				return err
			}

			opts := request.Options{Headers: f.headers}
			if cmd.Flags().Changed("data") {
				opts.Body = f.data
			}
			resp, err := c.Do(f.method, f.url, opts)
			if e := answered(c); e != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "matched %s\n", describe(e))
			}
			if err != nil {
				return err
			}
			writeResponse(cmd.OutOrStdout(), resp)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&f.method, "method", "X", "GET", "Request method")
	cmd.Flags().StringVar(&f.url, "url", "", "Request URL, query string included")
	cmd.Flags().StringArrayVarP(&f.headers, "header", "H", nil, `Request header as "Name: value" (can be specified multiple times)`)
	cmd.Flags().StringVarP(&f.data, "data", "d", "", "Request body")
	return cmd
}

// answered returns the expectation that recorded the call, if any.
func answered(c *clientmock.Collection) *clientmock.Expectation {
	for _, e := range c.Expectations() {
		if !e.CallStack().IsEmpty() {
			return e
		}
	}
	return nil
}

func describe(e *clientmock.Expectation) string {
	if name := e.GetName(); name != "" {
		return name
	}
	return e.String()
}

func writeResponse(w io.Writer, resp *response.Response) {
	fmt.Fprintf(w, "HTTP %d\n", resp.Status())
	for _, name := range slices.Sorted(maps.Keys(resp.Header)) {
		for _, value := range resp.Header[name] {
			fmt.Fprintf(w, "%s: %s\n", name, value)
		}
	}
	if len(resp.Body) > 0 {
		fmt.Fprintf(w, "\n%s\n", resp.Body)
	}
}
