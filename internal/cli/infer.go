package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pablor21/typegen/descriptor"
	"github.com/pablor21/typegen/types"
)

func newInferCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "infer <class> <declared type>",
		Short: "Infer the type arguments of a class from a related declared type",
		Example: `  typegen infer ArrayList "Collection<String>"
  typegen infer Map "HashMap<String, Integer>"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := types.LookupName(args[0])
			if err != nil {
				return err
			}
			declared, err := types.Parse(args[1])
			if err != nil {
				return err
			}
			cd := descriptor.DescribeClass(declared)
			if cd == nil {
				return fmt.Errorf("%s is not a class type", declared)
			}
			env, err := descriptor.Infer(target, cd)
			if err != nil {
				return err
			}
			a.log.Debug(fmt.Sprintf("inferred %d bindings for %s", env.Len(), target.ID()))

			p := &printer{w: cmd.OutOrStdout()}
			p.printf("bindings: %s\n", env)
			p.printf("type: %s\n", types.ResolvedClassType(target, env))
			return p.err
		},
	}
}
