package geometry

import "github.com/matzehuels/gridcompose/pkg/grid"

// Resolve packs the items of section into a group tree for a container of
// the given width. The width must already exclude the section's horizontal
// insets. Spacing and line spacing are taken from the first item.
//
// Resolve returns nil for sections without items and for row and column
// styles with a zero count. It panics if an item has a fit height.
func Resolve(section grid.Section, containerWidth float64) *Node {
	items := section.Items
	if len(items) == 0 {
		return nil
	}
	style := section.Style()
	if style.IsEmpty() {
		return nil
	}
	if containerWidth < 0 {
		containerWidth = 0
	}

	switch style.Kind {
	case grid.Flow:
		return resolveFlow(items, containerWidth)
	case grid.FixedColumns:
		return resolveFixedColumns(items, style.Count, containerWidth)
	case grid.DynamicColumns:
		return resolveDynamicColumns(items, style.Count, containerWidth)
	case grid.FixedRows:
		return resolveFixedRows(items, style.Count, containerWidth)
	case grid.DynamicRows:
		return resolveDynamicRows(items, style.Count, containerWidth)
	}
	return nil
}

type spacing struct {
	item float64
	line float64
}

func spacingOf(items []grid.ViewItem) spacing {
	first := items[0].Item
	return spacing{item: first.ItemSpacing(), line: first.LineSpacing()}
}

// columnFraction is the width fraction of one of n columns separated by
// gap in a container of width cw.
func columnFraction(cw, gap float64, n int) float64 {
	if cw <= 0 {
		return 1 / float64(n)
	}
	return (cw - float64(n-1)*gap) / (cw * float64(n))
}

func spaced(total float64, count int, gap float64) float64 {
	if count <= 1 {
		return total
	}
	return total + gap*float64(count-1)
}

// resolveFlow packs items into rows left to right. Spacing is charged only
// between items of a row, never before the first.
func resolveFlow(items []grid.ViewItem, cw float64) *Node {
	sp := spacingOf(items)

	type row struct {
		items []grid.ViewItem
		width float64
	}
	var rows []row
	for _, v := range items {
		w := v.Item.Size().WidthValue(cw)
		if n := len(rows); n > 0 && rows[n-1].width+sp.item+w <= cw {
			rows[n-1].items = append(rows[n-1].items, v)
			rows[n-1].width += sp.item + w
			continue
		}
		rows = append(rows, row{items: []grid.ViewItem{v}, width: w})
	}

	groups := make([]*Node, 0, len(rows))
	var total float64
	var anyEstimated bool
	for _, r := range rows {
		var maxHeight float64
		var estimated bool
		leaves := make([]*Node, 0, len(r.items))
		for _, v := range r.items {
			size := v.Item.Size()
			maxHeight = max(maxHeight, size.HeightValue())
			estimated = estimated || size.Height.IsEstimated()
			leaves = append(leaves, leaf(v.Key(), Size{
				Width:  widthDimension(size.Width),
				Height: heightDimension(size.Height),
			}))
		}
		total += maxHeight
		anyEstimated = anyEstimated || estimated
		groups = append(groups, group(NodeHorizontal, Size{
			Width:  Fractional(1),
			Height: absoluteOrEstimated(maxHeight, estimated),
		}, sp.item, leaves))
	}

	return group(NodeVertical, Size{
		Width:  Fractional(1),
		Height: absoluteOrEstimated(spaced(total, len(groups), sp.line), anyEstimated),
	}, sp.line, groups)
}

func resolveFixedColumns(items []grid.ViewItem, n int, cw float64) *Node {
	sp := spacingOf(items)
	fraction := columnFraction(cw, sp.item, n)
	height := items[0].Item.Size().HeightValue()

	var rows []*Node
	for start := 0; start < len(items); start += n {
		end := min(start+n, len(items))
		leaves := make([]*Node, 0, end-start)
		for _, v := range items[start:end] {
			leaves = append(leaves, leaf(v.Key(), Size{Width: Fractional(fraction), Height: Absolute(height)}))
		}
		rows = append(rows, group(NodeHorizontal, Size{
			Width:  Fractional(1),
			Height: Absolute(height),
		}, sp.item, leaves))
	}

	return group(NodeVertical, Size{
		Width:  Fractional(1),
		Height: Absolute(spaced(float64(len(rows))*height, len(rows), sp.line)),
	}, sp.line, rows)
}

// strided splits items into n groups: group c holds items[k] for every
// k with k mod n == c.
func strided(items []grid.ViewItem, n int) [][]grid.ViewItem {
	groups := make([][]grid.ViewItem, n)
	for k, v := range items {
		groups[k%n] = append(groups[k%n], v)
	}
	return groups
}

// resolveDynamicColumns stacks items[k] into column k mod n. Items arrive
// already interleaved by compose.Build, so this is a second stride over
// the regrouped order, not its inverse.
func resolveDynamicColumns(items []grid.ViewItem, n int, cw float64) *Node {
	sp := spacingOf(items)
	fraction := columnFraction(cw, sp.item, n)

	columns := make([]*Node, 0, n)
	var maxHeight float64
	var anyEstimated bool
	for _, col := range strided(items, n) {
		var total float64
		var estimated bool
		leaves := make([]*Node, 0, len(col))
		for _, v := range col {
			h := v.Item.Size().Height
			total += h.Resolve(grid.AxisHeight, 0)
			estimated = estimated || h.IsEstimated()
			leaves = append(leaves, leaf(v.Key(), Size{Width: Fractional(1), Height: heightDimension(h)}))
		}

		height := spaced(total, len(col), sp.line)
		maxHeight = max(maxHeight, height)
		anyEstimated = anyEstimated || estimated
		columns = append(columns, group(NodeVertical, Size{
			Width:  Fractional(fraction),
			Height: absoluteOrEstimated(height, estimated),
		}, sp.line, leaves))
	}

	return group(NodeHorizontal, Size{
		Width:  Fractional(1),
		Height: absoluteOrEstimated(maxHeight, anyEstimated),
	}, sp.item, columns)
}

func resolveFixedRows(items []grid.ViewItem, n int, cw float64) *Node {
	sp := spacingOf(items)
	rows := min(len(items), n)
	size := items[0].Item.Size()
	itemWidth := size.WidthValue(cw)
	itemHeight := size.HeightValue()

	var columns []*Node
	for start := 0; start < len(items); start += rows {
		end := min(start+rows, len(items))
		leaves := make([]*Node, 0, end-start)
		for _, v := range items[start:end] {
			leaves = append(leaves, leaf(v.Key(), Size{Width: Absolute(itemWidth), Height: Absolute(itemHeight)}))
		}
		columns = append(columns, group(NodeVertical, Size{
			Width:  Absolute(itemWidth),
			Height: Absolute(spaced(itemHeight*float64(len(leaves)), len(leaves), sp.line)),
		}, sp.line, leaves))
	}

	return group(NodeHorizontal, Size{
		Width:  Absolute(spaced(itemWidth*float64(len(columns)), len(columns), sp.item)),
		Height: Absolute(spaced(itemHeight*float64(rows), rows, sp.line)),
	}, sp.item, columns)
}

// resolveDynamicRows lays items[k] into strip k mod n, like
// resolveDynamicColumns. Fewer items than n yield one strip per item.
func resolveDynamicRows(items []grid.ViewItem, n int, cw float64) *Node {
	sp := spacingOf(items)
	rows := min(len(items), n)

	strips := make([]*Node, 0, rows)
	var maxWidth, totalHeight float64
	var widthEstimated, heightEstimated bool
	for _, strip := range strided(items, n)[:rows] {
		var width, height float64
		var estW, estH bool
		leaves := make([]*Node, 0, len(strip))
		for _, v := range strip {
			size := v.Item.Size()
			w := size.WidthValue(cw)
			h := size.HeightValue()
			width += w
			height = max(height, h)
			estW = estW || size.Width.IsEstimated()
			estH = estH || size.Height.IsEstimated()
			leaves = append(leaves, leaf(v.Key(), Size{
				Width:  absoluteOrEstimated(w, size.Width.IsEstimated()),
				Height: heightDimension(size.Height),
			}))
		}

		width = spaced(width, len(strip), sp.item)
		maxWidth = max(maxWidth, width)
		totalHeight += height
		widthEstimated = widthEstimated || estW
		heightEstimated = heightEstimated || estH
		strips = append(strips, group(NodeHorizontal, Size{
			Width:  absoluteOrEstimated(width, estW),
			Height: absoluteOrEstimated(height, estH),
		}, sp.item, leaves))
	}

	return group(NodeVertical, Size{
		Width:  absoluteOrEstimated(maxWidth, widthEstimated),
		Height: absoluteOrEstimated(spaced(totalHeight, rows, sp.line), heightEstimated),
	}, sp.line, strips)
}
