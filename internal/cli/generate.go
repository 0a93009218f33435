package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pablor21/typegen"
	"github.com/pablor21/typegen/descriptor"
	"github.com/pablor21/typegen/generator"
	"github.com/pablor21/typegen/logger"
	"github.com/pablor21/typegen/types"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		seed    uint64
		format  string
		out     string
		minSize int
		maxSize int
	)

	cmd := &cobra.Command{
		Use:   "generate <type>",
		Short: "Generate a random instance of a type",
		Example: `  typegen generate --seed 42 "List<Map<String, Integer>>"
  typegen generate --pkg ./models --format yaml Human`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.cfg.Generator
			if cmd.Flags().Changed("seed") {
				opts = opts.WithSeed(seed)
			}
			if cmd.Flags().Changed("min-size") {
				opts.MinCollectionSize = minSize
			}
			if cmd.Flags().Changed("max-size") {
				opts.MaxCollectionSize = maxSize
			}
			if opts.MinCollectionSize < 0 || opts.MaxCollectionSize < opts.MinCollectionSize {
				return fmt.Errorf("invalid collection size range [%d,%d]", opts.MinCollectionSize, opts.MaxCollectionSize)
			}
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Format
			}

			t, err := types.Parse(args[0])
			if err != nil {
				return err
			}
			v, err := generator.Generate(descriptor.Analyze(t), generator.NewDefaultPolicy(opts),
				generator.WithLogger(logger.NewTaggedLogger("GEN")))
			if err != nil {
				return err
			}

			if out == "" {
				return encode(cmd.OutOrStdout(), format, types.Export(v))
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := encode(f, format, types.Export(v)); err != nil {
				f.Close()
				return err
			}
			a.log.Info(fmt.Sprintf("wrote %s to %s", t, out))
			return f.Close()
		},
	}

	cmd.Flags().Uint64VarP(&seed, "seed", "s", 0, "seed for deterministic generation")
	cmd.Flags().StringVarP(&format, "format", "f", typegen.FormatJSON, "output format: json, yaml or cbor")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the generated value to a file")
	cmd.Flags().IntVar(&minSize, "min-size", 0, "minimum size of arrays, collections and maps")
	cmd.Flags().IntVar(&maxSize, "max-size", 0, "maximum size of arrays, collections and maps")
	_ = cmd.MarkFlagFilename("out")
	return cmd
}

// encode writes v in format. JSON is indented when w is a terminal.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case typegen.FormatJSON:
		enc := json.NewEncoder(w)
		if isTerminal(w) {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(v)
	case typegen.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case typegen.FormatCBOR:
		return cbor.NewEncoder(w).Encode(v)
	}
	return fmt.Errorf("unsupported output format %q", format)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
