package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/jsonc"

	"github.com/angelofallars/sharebill/internal/invoice"
	"github.com/angelofallars/sharebill/internal/keymap"
	"github.com/angelofallars/sharebill/internal/service"
	"github.com/angelofallars/sharebill/internal/share"
)

func newShareCmd(opts *rootOptions) *cobra.Command {
	var (
		base        string
		recalculate bool
	)

	cmd := &cobra.Command{
		Use:   "share <file|->",
		Short: "Print a share link for an invoice JSON file",
		Long: "Reads an invoice as JSON (comments and trailing commas allowed) " +
			"and prints a link that opens it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			data := &invoice.Data{}
			if err := json.Unmarshal(jsonc.ToJSON(raw), data); err != nil {
				return fmt.Errorf("Parsing invoice %s failed: %w", args[0], err)
			}
			if recalculate {
				if err := data.Recalculate(); err != nil {
					return err
				}
			}
			if data.HasEmbeddedLogo() {
				return service.ErrLogoNotShareable
			}

			if base == "" {
				base = defaultBase(opts)
			}
			link, err := share.GenerateURL(base, data)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "Page URL the link points at (default: public URL or local server)")
	cmd.Flags().BoolVar(&recalculate, "recalculate", false, "Recompute item amounts and the total first")

	return cmd
}

func newOpenCmd(opts *rootOptions) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "open <link|payload>",
		Short: "Print the invoice carried by a share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := args[0]

			var v any
			if raw {
				payload := arg
				if strings.Contains(arg, "://") {
					payload = payloadOf(arg)
				}
				tree, ok := share.Decode(payload)
				if !ok {
					return errNoInvoice
				}
				v = tree
			} else {
				var (
					data *invoice.Data
					ok   bool
				)
				if strings.Contains(arg, "://") {
					data, ok = share.LoadFromURL(arg)
				} else {
					data, ok = share.LoadPayload(arg)
				}
				if !ok {
					return errNoInvoice
				}
				v = data
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(v)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the decoded JSON as is, keeping unknown fields")

	return cmd
}

func newKeymapCmd() *cobra.Command {
	var table bool

	cmd := &cobra.Command{
		Use:         "keymap",
		Short:       "Print the share link key table as JSON",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if table {
				for _, e := range keymap.Entries() {
					if _, err := fmt.Fprintf(out, "%s\t%s\n", e.Token, e.Field); err != nil {
						return err
					}
				}
				return nil
			}

			body, err := keymap.MarshalArtifact()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, string(body))
			return err
		},
	}

	cmd.Flags().BoolVar(&table, "table", false, "Print token and field per line, in assignment order")

	return cmd
}

var errNoInvoice = errors.New("No invoice data in the given link")

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("Reading invoice failed: %w", err)
	}
	return data, nil
}

func defaultBase(opts *rootOptions) string {
	if opts.cfg.Server.PublicURL != "" {
		return opts.cfg.Server.PublicURL
	}
	return fmt.Sprintf("http://%s:%d/", opts.cfg.Server.Host, opts.cfg.Server.Port)
}

func payloadOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Query().Get(share.ParamName)
}
