package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"imstyle/pkg/dom"
	"imstyle/pkg/geom"
	"imstyle/pkg/scene"
)

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")

	styleName   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleRect   = lipgloss.NewStyle().Foreground(colorGray)
	styleHidden = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
)

func newDumpCmd() *cobra.Command {
	opts := sceneOptions{}
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "dump <scene.yaml>",
		Short: "Print the laid-out tree with its rects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := layoutScene(loggerFromContext(cmd.Context()), args[0], &opts)
			if err != nil {
				return err
			}
			root := l.scene.Tree.Root()
			if asYAML {
				f := scene.File{
					Width:  l.scene.Viewport.Width,
					Height: l.scene.Viewport.Height,
					Root:   scene.FromTree(root),
				}
				data, err := f.Marshal()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), dumpTree(root).String())
			return err
		},
	}
	opts.register(cmd)
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the tree structure as a scene file")
	return cmd
}

func dumpTree(root dom.Node) treeprint.Tree {
	tree := treeprint.New()
	addChildren(tree.AddBranch(nodeLabel(root)), root)
	return tree
}

func addChildren(branch treeprint.Tree, n dom.Node) {
	for _, c := range n.Children() {
		if c.ChildCount() > 0 {
			addChildren(branch.AddBranch(nodeLabel(c)), c)
		} else {
			branch.AddNode(nodeLabel(c))
		}
	}
}

// nodeLabel renders "#id.class:tag "text" padding-rect".
func nodeLabel(n dom.Node) string {
	name := "*"
	if id := n.ElementID(); id != "" {
		name = "#" + id
	}
	for _, c := range n.Classes() {
		name += "." + c
	}
	for _, t := range n.Tags() {
		name += ":" + t
	}
	label := styleName.Render(name)
	if s := n.Text(); s != "" {
		label += fmt.Sprintf(" %q", s)
	}

	b := n.Bounds()
	if !n.Style().Layout.Visible || b.Padding.Size().Empty() {
		return label + " " + styleHidden.Render("(not rendered)")
	}
	return label + " " + styleRect.Render(formatRect(b.Padding)+" content "+formatRect(b.Content))
}

func formatRect(r geom.Rect) string {
	return fmt.Sprintf("%g,%g %gx%g", r.X, r.Y, r.Width, r.Height)
}
