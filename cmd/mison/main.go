package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	mison "github.com/structindex/mison-go"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mison",
		Short:         "Structural-index JSON parsing and field extraction",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().String("backend", "auto", "bitmap backend: auto, scalar, or swar")
	cmd.AddCommand(
		newParseCmd(),
		newGetCmd(),
	)
	return cmd
}

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a whole document and print it re-serialized",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			backend, err := backendFromCmd(cmd)
			if err != nil {
				return err
			}
			level, _ := cmd.Flags().GetInt("level")

			v, err := mison.NewParser(backend, level).Parse(input)
			if err != nil {
				return err
			}

			out := v.AppendJSON(nil)
			if compact, _ := cmd.Flags().GetBool("compact"); !compact {
				out = pretty.Pretty(out)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().Int("level", 8, "nesting levels to index explicitly")
	cmd.Flags().Bool("compact", false, "print compact instead of indented JSON")
	return cmd
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get -p '$.path' [-p ...] [file]",
		Short: "Extract only the named fields, skipping the rest of the document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, _ := cmd.Flags().GetStringArray("path")
			if len(paths) == 0 {
				return fmt.Errorf("at least one --path is required")
			}

			tree := mison.NewQueryTree()
			for _, p := range paths {
				if err := tree.AddPath(p); err != nil {
					return err
				}
			}

			input, err := readInput(args)
			if err != nil {
				return err
			}
			backend, err := backendFromCmd(cmd)
			if err != nil {
				return err
			}

			results, err := mison.NewQueryParser(backend, tree.MaxLevel(), tree).Parse(input)
			if err != nil {
				return err
			}

			indent, _ := cmd.Flags().GetBool("pretty")
			w := cmd.OutOrStdout()
			for i, span := range results {
				if span == nil {
					fmt.Fprintf(w, "%s\t<absent>\n", paths[i])
					continue
				}
				if indent {
					span = pretty.Pretty(span)
				}
				fmt.Fprintf(w, "%s\t%s\n", paths[i], span)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayP("path", "p", nil, "query path, e.g. $.user.name (repeatable)")
	cmd.Flags().Bool("pretty", false, "indent extracted object and array spans")
	return cmd
}

func backendFromCmd(cmd *cobra.Command) (mison.Backend, error) {
	name, _ := cmd.Flags().GetString("backend")
	switch name {
	case "auto":
		return mison.BackendAuto, nil
	case "scalar":
		return mison.BackendScalar, nil
	case "swar":
		return mison.BackendSWAR, nil
	}
	return 0, fmt.Errorf("unknown backend %q", name)
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}
