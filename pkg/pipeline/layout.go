package pipeline

import (
	"github.com/matzehuels/chartgrid/pkg/chart/layout"
	"github.com/matzehuels/chartgrid/pkg/chart/renderable"
	"github.com/matzehuels/chartgrid/pkg/document"
)

// Build turns a document into a chart renderable.
func Build(doc *document.Document) (renderable.Renderable[Pick], error) {
	chart, err := doc.Build()
	if err != nil {
		return renderable.Renderable[Pick]{}, err
	}
	return layout.ToRenderable(chart), nil
}
