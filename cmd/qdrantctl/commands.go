package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Aleph-Alpha/qdrant-client-go/v1/transport"
	"github.com/spf13/cobra"
)

type connectFunc func(cmd *cobra.Command) (backend, error)

// withBackend connects, runs fn and closes the client.
func withBackend(cmd *cobra.Command, connect connectFunc, fn func(ctx context.Context, b backend) error) error {
	b, err := connect(cmd)
	if err != nil {
		return err
	}
	defer b.Close()
	return fn(cmd.Context(), b)
}

func NewHealthCmd(connect connectFunc, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server title and version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, connect, func(ctx context.Context, b backend) error {
				info, err := b.Health(ctx)
				if err != nil {
					return fmt.Errorf("health check: %w", err)
				}
				if opts.json {
					return writeJSON(cmd, info)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", info.Title, info.Version)
				return nil
			})
		},
	}
}

func NewVersionCheckCmd(connect connectFunc, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version-check",
		Short: "Check client/server version compatibility",
		Long:  `Compares the client API version with the server version. Exits non-zero when they are known to be incompatible.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, connect, func(ctx context.Context, b backend) error {
				var serverVersion string
				probe := func(ctx context.Context) (string, error) {
					info, err := b.Health(ctx)
					serverVersion = info.Version
					return info.Version, err
				}

				result := transport.CheckCompatibility(ctx, probe, transport.ClientVersion, nil)
				out := map[string]string{
					"client_version": transport.ClientVersion,
					"server_version": serverVersion,
					"result":         result.String(),
				}
				if opts.json {
					if err := writeJSON(cmd, out); err != nil {
						return err
					}
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "client %s, server %s: %s\n", transport.ClientVersion, serverVersion, result)
				}

				if result == transport.Incompatible {
					return fmt.Errorf("client version %s is incompatible with server version %s", transport.ClientVersion, serverVersion)
				}
				return nil
			})
		},
	}
}

func NewCollectionsCmd(connect connectFunc, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"col"},
		Short:   "Manage collections",
	}

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List collection names",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, connect, func(ctx context.Context, b backend) error {
				names, err := b.ListCollections(ctx)
				if err != nil {
					return fmt.Errorf("list collections: %w", err)
				}
				if opts.json {
					return writeJSON(cmd, names)
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <name>",
		Short: "Show collection status and size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, connect, func(ctx context.Context, b backend) error {
				info, err := b.GetCollection(ctx, args[0])
				if err != nil {
					return fmt.Errorf("get collection: %w", err)
				}
				if opts.json {
					return writeJSON(cmd, info)
				}
				return writeTable(cmd, []string{"NAME", "STATUS", "POINTS", "SEGMENTS"}, [][]string{{
					info.Name, info.Status, strconv.FormatUint(info.Points, 10), strconv.FormatUint(info.Segments, 10),
				}})
			})
		},
	}

	var force bool
	del := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a collection and all of its points",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("refusing to delete %q without --force", args[0])
			}
			return withBackend(cmd, connect, func(ctx context.Context, b backend) error {
				ok, err := b.DeleteCollection(ctx, args[0])
				if err != nil {
					return fmt.Errorf("delete collection: %w", err)
				}
				if opts.json {
					return writeJSON(cmd, map[string]bool{"deleted": ok})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s: %t\n", args[0], ok)
				return nil
			})
		},
	}
	del.Flags().BoolVar(&force, "force", false, "Confirm deletion")

	cmd.AddCommand(list, get, del)
	return cmd
}

func NewSnapshotsCmd(connect connectFunc, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "snapshots",
		Aliases: []string{"snap"},
		Short:   "Manage collection snapshots",
	}

	list := &cobra.Command{
		Use:     "list <collection>",
		Aliases: []string{"ls"},
		Short:   "List snapshots of a collection",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, connect, func(ctx context.Context, b backend) error {
				snaps, err := b.ListSnapshots(ctx, args[0])
				if err != nil {
					return fmt.Errorf("list snapshots: %w", err)
				}
				if opts.json {
					return writeJSON(cmd, snaps)
				}
				rows := make([][]string, 0, len(snaps))
				for _, s := range snaps {
					rows = append(rows, []string{s.Name, strconv.FormatInt(s.Size, 10), s.CreatedAt})
				}
				return writeTable(cmd, []string{"NAME", "SIZE", "CREATED"}, rows)
			})
		},
	}

	create := &cobra.Command{
		Use:   "create <collection>",
		Short: "Snapshot a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, connect, func(ctx context.Context, b backend) error {
				s, err := b.CreateSnapshot(ctx, args[0])
				if err != nil {
					return fmt.Errorf("create snapshot: %w", err)
				}
				if opts.json {
					return writeJSON(cmd, s)
				}
				fmt.Fprintln(cmd.OutOrStdout(), s.Name)
				return nil
			})
		},
	}

	cmd.AddCommand(list, create)
	return cmd
}
