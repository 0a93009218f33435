package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pablor21/typegen/descriptor"
	"github.com/pablor21/typegen/types"
)

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <type>",
		Short: "Print the resolved hierarchy and members of a type",
		Example: `  typegen describe "Map<String, List<Integer>>"
  typegen describe --pkg ./models "Node<String>"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := types.Parse(args[0])
			if err != nil {
				return err
			}
			d := descriptor.Analyze(t)
			if d == nil {
				return fmt.Errorf("cannot describe %s", t)
			}
			a.log.Debug(fmt.Sprintf("describing %s", d.Key()))
			return describe(cmd.OutOrStdout(), d)
		},
	}
}

func describe(w io.Writer, d descriptor.Descriptor) error {
	p := &printer{w: w}
	p.printf("type: %s\n", d.ResolvedType())
	p.printf("key: %s\n", d.Key())
	switch d := d.(type) {
	case *descriptor.ArrayDescriptor:
		p.printf("element: %s\n", d.Elem())
	case *descriptor.ClassDescriptor:
		if env := d.Env(); env.Len() > 0 {
			p.printf("bindings: %s\n", env)
		}
		if outer := d.Outer(); outer != nil {
			p.printf("outer: %s\n", outer)
		}
		for sup := d.Superclass(); sup != nil; sup = sup.Superclass() {
			p.printf("extends: %s\n", sup)
		}
		for _, iface := range d.Interfaces() {
			p.printf("implements: %s\n", iface)
		}
		members := d.Members()
		if len(members) > 0 {
			p.printf("members:\n")
		}
		for _, m := range members {
			p.printf("  %s %s", m.Name(), m.Type)
			if m.Owner.Class() != d.Class() {
				p.printf(" (from %s)", m.Owner)
			}
			p.printf("\n")
		}
	}
	return p.err
}

// printer keeps the first write error
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
