package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/gridcompose/pkg/geometry"
	"github.com/matzehuels/gridcompose/pkg/render/outline"
	"github.com/matzehuels/gridcompose/pkg/render/treeviz"
)

// RenderFromLayout generates artifacts in the requested formats.
func RenderFromLayout(ctx context.Context, l geometry.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = geometry.MarshalLayout(l)
		case FormatText:
			data = []byte(outline.Render(l, outline.Options{Detailed: opts.Detailed}))
		case FormatDOT, FormatSVG, FormatPNG:
			if dot == "" {
				dot = treeviz.ToDOT(l, treeviz.Options{Detailed: opts.Detailed})
			}
			switch format {
			case FormatDOT:
				data = []byte(dot)
			case FormatSVG:
				data, err = treeviz.RenderSVG(ctx, dot)
			case FormatPNG:
				data, err = treeviz.RenderPNG(ctx, dot)
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
