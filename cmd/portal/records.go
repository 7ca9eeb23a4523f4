package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"districtportal/internal/collection"
	"districtportal/internal/core"
	"districtportal/pkg/domain"
)

// records is the JSON-level view of one collection used by the record commands.
type records interface {
	Query(criteria collection.Criteria) any
	Stats() collection.Stats
	Create(ctx context.Context, raw []byte) (any, error)
	Update(ctx context.Context, id string, raw []byte) (any, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type jsonRecords[E any, P collection.EntityPtr[E]] struct {
	c *core.Collection[E, P]
}

func (r jsonRecords[E, P]) Query(criteria collection.Criteria) any { return r.c.Query(criteria) }
func (r jsonRecords[E, P]) Stats() collection.Stats                { return r.c.Stats() }

func (r jsonRecords[E, P]) Create(ctx context.Context, raw []byte) (any, error) {
	var draft E
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", r.c.Kind(), err)
	}
	return r.c.Create(ctx, draft)
}

func (r jsonRecords[E, P]) Update(ctx context.Context, id string, raw []byte) (any, error) {
	var draft E
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", r.c.Kind(), err)
	}
	return r.c.Update(ctx, id, draft)
}

func (r jsonRecords[E, P]) Delete(ctx context.Context, id string) (bool, error) {
	return r.c.Delete(ctx, id)
}

func recordsFor(svc *core.Service, arg string) (records, error) {
	kind, ok := domain.ParseKind(arg)
	if !ok {
		return nil, fmt.Errorf("unknown kind %q (want one of %s)", arg, kindNames())
	}
	switch kind {
	case domain.KindAnnouncement:
		return jsonRecords[domain.Announcement, *domain.Announcement]{c: svc.Announcements()}, nil
	case domain.KindAssistanceInfo:
		return jsonRecords[domain.AssistanceInfo, *domain.AssistanceInfo]{c: svc.Assistance()}, nil
	default:
		return jsonRecords[domain.VotingCenter, *domain.VotingCenter]{c: svc.VotingCenters()}, nil
	}
}

func kindNames() string {
	names := make([]string, 0, 3)
	for _, k := range domain.Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readPayload returns the --data flag value, or stdin when it is empty or "-".
func readPayload(cmd *cobra.Command, data string) ([]byte, error) {
	if data != "" && data != "-" {
		return []byte(data), nil
	}
	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, fmt.Errorf("no JSON payload given (use --data or stdin)")
	}
	return raw, nil
}

// withRecords opens the service, resolves the kind and runs fn.
func withRecords(cmd *cobra.Command, opts *rootOptions, kind string, fn func(records) error) error {
	svc, _, _, err := opts.openService(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()
	recs, err := recordsFor(svc, kind)
	if err != nil {
		return err
	}
	return fn(recs)
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		search  string
		fuzzy   bool
		filters map[string]string
	)
	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "List entities of a kind, filtered and sorted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRecords(cmd, opts, args[0], func(r records) error {
				return printJSON(cmd.OutOrStdout(), r.Query(collection.Criteria{Search: search, Fuzzy: fuzzy, Filters: filters}))
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive text search")
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "use fuzzy subsequence matching for --search")
	cmd.Flags().StringToStringVarP(&filters, "filter", "f", nil, "equality filter field=value (repeatable)")
	return cmd
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [kind]",
		Short: "Show collection statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				svc, _, _, err := opts.openService(cmd.Context(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				defer func() { _ = svc.Close() }()
				return printJSON(cmd.OutOrStdout(), svc.Summary())
			}
			return withRecords(cmd, opts, args[0], func(r records) error {
				return printJSON(cmd.OutOrStdout(), r.Stats())
			})
		},
	}
}

func newCreateCmd(opts *rootOptions) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "create <kind>",
		Short: "Create an entity from JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readPayload(cmd, data)
			if err != nil {
				return err
			}
			return withRecords(cmd, opts, args[0], func(r records) error {
				created, err := r.Create(cmd.Context(), raw)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), created)
			})
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "entity JSON (reads stdin when empty or -)")
	return cmd
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "update <kind> <id>",
		Short: "Replace an entity's fields from JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readPayload(cmd, data)
			if err != nil {
				return err
			}
			return withRecords(cmd, opts, args[0], func(r records) error {
				updated, err := r.Update(cmd.Context(), args[1], raw)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), updated)
			})
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "entity JSON (reads stdin when empty or -)")
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <kind> <id>",
		Short: "Delete an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRecords(cmd, opts, args[0], func(r records) error {
				removed, err := r.Delete(cmd.Context(), args[1])
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("%s %q not found", args[0], args[1])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[1])
				return nil
			})
		},
	}
}
