package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"nolabels/internal/api"
	"nolabels/internal/language"
)

type queryOptions struct {
	language  string
	labels    string
	items     string
	itemsFile string
	wdq       string
	url       string
	database  string
	json      bool
}

func newQueryCommand(ctx *commandContext) *cobra.Command {
	var opts queryOptions

	cmd := &cobra.Command{
		Use:   "query",
		Short: "List items lacking a label in a language",
		Long: `List items that have no label in the target language, together with
their labels in each fallback language.

Items come from exactly one source: --items (whitespace or newline separated,
Q prefix optional; a single URL is fetched as a document), --items-file (use
"-" for stdin), --wdq (a discovery query), or --url (a document listing one
item per line).`,
		Example: `  nolabels query --language fr --labels "en de" --items "Q1 Q2 Q42"
  nolabels query -l fr --labels en --wdq "claim[31:5] AND claim[106:1028181]"
  nolabels query -l nl --url https://example.org/items.txt --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "Target language: report items WITHOUT a label in it (default from config)")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "Fallback languages to print labels in, space or comma separated (default from config)")
	cmd.Flags().StringVar(&opts.items, "items", "", "Item identifiers, whitespace or newline separated")
	cmd.Flags().StringVar(&opts.itemsFile, "items-file", "", "Read item identifiers from a file, one per line (- for stdin)")
	cmd.Flags().StringVar(&opts.wdq, "wdq", "", "Discovery query selecting the items")
	cmd.Flags().StringVar(&opts.url, "url", "", "URL of a document listing one item per line")
	cmd.Flags().StringVar(&opts.database, "database", "", "Logical label database (default from config)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output JSON")
	cmd.MarkFlagsMutuallyExclusive("items", "items-file", "wdq", "url")
	return cmd
}

func runQuery(cmd *cobra.Command, ctx *commandContext, opts queryOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	provider, err := ctx.storeProvider()
	if err != nil {
		return err
	}

	req := api.QueryRequest{
		Language: opts.language,
		Labels:   language.ParseList(opts.labels),
		WDQ:      opts.wdq,
		URL:      opts.url,
		Database: opts.database,
	}
	switch {
	case opts.itemsFile != "":
		req.Items, err = readItemsFile(cmd.InOrStdin(), opts.itemsFile)
		if err != nil {
			return err
		}
	case opts.items != "":
		req.Items = strings.Fields(opts.items)
	}
	if len(req.Items) == 0 && strings.TrimSpace(req.WDQ) == "" && strings.TrimSpace(req.URL) == "" {
		return errors.New("no items given: use --items, --items-file, --wdq, or --url")
	}

	svc := api.NewQueryService(cfg, provider, logger)
	resp, err := svc.Execute(cmd.Context(), req)
	if err != nil {
		return err
	}

	if n := len(resp.Rejected); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d invalid item(s) ignored\n", n)
	}

	out := cmd.OutOrStdout()
	switch {
	case opts.json:
		return writeJSON(cmd, resp)
	case isTerminal(out):
		if len(resp.Rows) == 0 {
			fmt.Fprintln(out, emptyQueryMessage(resp))
			return nil
		}
		fmt.Fprintln(out, renderQueryTable(resp))
		return nil
	default:
		return writeQueryTSV(out, resp)
	}
}

func readItemsFile(stdin io.Reader, path string) ([]string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	return strings.Fields(string(data)), nil
}
