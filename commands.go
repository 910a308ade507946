package hub

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// NewCommand creates a Cobra command tree for hub package management.
// The returned command should be added to a parent CLI's root command.
//
// Commands provided:
//   - hub list
//   - hub info <author/name>
//   - hub pull <author/name> [--target <path>] [--output <dir>]
//   - hub publish <author/name> <artifact> [--version <v>] [--description <d>] [--tag <t>]...
//
// Global flags: --registry, --json, --quiet
func NewCommand(cfg Config, opts ...Option) *cobra.Command {
	var (
		registry   string
		jsonOutput bool
		quiet      bool
	)

	// Client is created in PersistentPreRunE so the --registry flag is
	// already parsed.
	var cli Client

	cmd := &cobra.Command{
		Use:   "hub",
		Short: "Manage hub packages",
		Long:  "Fetch, inspect, and publish serialized program packages from a hub registry.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if registry != "" {
				cfg.Registry = registry
			}
			cli = New(cfg, opts...)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&registry, "registry", "", "Registry index URL or local registry directory")
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")

	cmd.AddCommand(listCmd(&cli, &jsonOutput))
	cmd.AddCommand(infoCmd(&cli, &jsonOutput))
	cmd.AddCommand(pullCmd(&cli, &quiet))
	cmd.AddCommand(publishCmd(&cli, &jsonOutput, &quiet))

	return cmd
}

func listCmd(cli *Client, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List packages in the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := (*cli).ListRemote(cmd.Context())
			if err != nil {
				return err
			}
			return outputSummaries(cmd.OutOrStdout(), summaries, *jsonOutput)
		},
	}
}

func infoCmd(cli *Client, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "info <author/name>",
		Short: "Show package information",
		Long:  "Fetch a package and show its verified manifest and files.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := (*cli).GetPackage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return outputPackage(cmd.OutOrStdout(), pkg, *jsonOutput)
		},
	}
}

func pullCmd(cli *Client, quiet *bool) *cobra.Command {
	var (
		target string
		output string
	)

	cmd := &cobra.Command{
		Use:   "pull <author/name>",
		Short: "Download a package",
		Long:  "Fetch a package, verify its contents, and write its files to a directory.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := ParseRef(args[0])
			if err != nil {
				return err
			}

			var opts []CallOption
			var bar *progressbar.ProgressBar
			if !*quiet {
				bar = progressbar.NewOptions64(-1,
					progressbar.OptionSetDescription("downloading"),
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionShowBytes(true),
					progressbar.OptionSetWidth(40),
					progressbar.OptionThrottle(100*time.Millisecond),
				)
				opts = append(opts, WithFetchProgress(func(delta int64) {
					bar.Add64(delta)
				}))
			}

			pkg, err := (*cli).GetPackage(cmd.Context(), args[0], opts...)
			if bar != nil {
				bar.Finish()
				fmt.Fprintln(cmd.ErrOrStderr())
			}
			if err != nil {
				return err
			}

			if target != "" {
				selected, err := resolveFile(pkg, target)
				if err != nil {
					return err
				}
				pkg = pruneToFile(pkg, selected)
			}

			dir := output
			if dir == "" {
				dir = ref.Name
			}
			if err := pkg.Extract(dir); err != nil {
				return err
			}

			if !*quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Pulled %s (%d file(s)) into %s\n",
					pkg.Identifier, len(pkg.Files), dir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Pull only the file matching this target")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (default: package name)")
	return cmd
}

func publishCmd(cli *Client, jsonOutput, quiet *bool) *cobra.Command {
	var (
		version     string
		description string
		tags        []string
		devKey      string
	)

	cmd := &cobra.Command{
		Use:   "publish <author/name> <artifact>",
		Short: "Publish an artifact as a package",
		Long:  "Wrap a locally saved program artifact in a package manifest and publish it to the registry.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := ParseRef(args[0])
			if err != nil {
				return err
			}

			content, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading artifact: %w", err)
			}

			metadata := map[string]any{}
			if version != "" {
				metadata["version"] = version
			}
			if description != "" {
				metadata["description"] = description
			}
			if len(tags) > 0 {
				anyTags := make([]any, len(tags))
				for i, t := range tags {
					anyTags[i] = t
				}
				metadata["tags"] = anyTags
			}

			pkg := assemblePackage(ref, content, nil, filepath.Base(args[1]))

			var opts []CallOption
			if devKey != "" {
				opts = append(opts, WithCallDevKey(devKey))
			}

			result, err := (*cli).Publish(cmd.Context(), ref.String(), pkg, metadata, opts...)
			if err != nil {
				return err
			}

			if *jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			if !*quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Published %s\n", ref)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Package version")
	cmd.Flags().StringVar(&description, "description", "", "Package description")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Package tag (repeatable)")
	cmd.Flags().StringVar(&devKey, "dev-key", "", "Developer key (default: "+DevKeyEnvVar+")")
	return cmd
}

// Output helpers

func outputSummaries(w io.Writer, summaries []RemoteSummary, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	if len(summaries) == 0 {
		fmt.Fprintln(w, "No packages found in registry")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PACKAGE\tVERSION\tFILES\tDESCRIPTION")
	for _, s := range summaries {
		version := s.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.Slug, version, s.Files, s.Description)
	}
	return tw.Flush()
}

func outputPackage(w io.Writer, pkg *Package, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(pkg.Manifest)
	}

	fmt.Fprintf(w, "Package:      %s\n", pkg.Identifier)
	if version, ok := pkg.Manifest["version"].(string); ok && version != "" {
		fmt.Fprintf(w, "Version:      %s\n", version)
	}
	if description, ok := pkg.Manifest["description"].(string); ok && description != "" {
		fmt.Fprintf(w, "Description:  %s\n", description)
	}
	if hash, ok := pkg.Manifest["hash"].(string); ok {
		fmt.Fprintf(w, "Hash:         %s\n", hash)
	}
	fmt.Fprintf(w, "Files:        %d\n", len(pkg.Files))

	if len(pkg.Files) > 0 {
		fmt.Fprintln(w)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TARGET\tSIZE\tSHA256")
		for _, f := range pkg.Files {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", f.Target, len(f.Content), f.SHA256[:16]+"...")
		}
		return tw.Flush()
	}
	return nil
}
