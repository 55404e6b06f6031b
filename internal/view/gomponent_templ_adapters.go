package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// nodeComponent lets a gomponents tree be used where a templ.Component is expected.
type nodeComponent struct {
	node gomponents.Node
}

func (a nodeComponent) Render(_ context.Context, w io.Writer) error {
	return a.node.Render(w)
}

// AdaptGomponentToTempl converts a gomponents node into a templ.Component.
func AdaptGomponentToTempl(node gomponents.Node) templ.Component {
	return nodeComponent{node: node}
}

// componentNode embeds a templ.Component in a gomponents tree. gomponents does
// not carry a context, so the component renders with the one captured here.
type componentNode struct {
	ctx       context.Context
	component templ.Component
}

func (a componentNode) Render(w io.Writer) error {
	return a.component.Render(a.ctx, w)
}

// AdaptTemplToGomponent converts a templ.Component into a gomponents node.
func AdaptTemplToGomponent(ctx context.Context, component templ.Component) gomponents.Node {
	if ctx == nil {
		ctx = context.Background()
	}
	return componentNode{ctx: ctx, component: component}
}
