package formatters

import "github.com/migratehq/depscope/objgraph"

// kindColors assigns a fill color per object kind so chains are readable at
// a glance: code objects in warm tones, data objects in cool ones.
var kindColors = map[objgraph.Kind]string{
	objgraph.KindProcedure:   "#fff3b0",
	objgraph.KindFunction:    "#ffe0b0",
	objgraph.KindTrigger:     "#ffc9b0",
	objgraph.KindView:        "#c9e4ff",
	objgraph.KindTable:       "#b0d5f0",
	objgraph.KindUIComponent: "#d5c9ff",
}

const unknownKindColor = "#e0e0e0"

func kindColor(kind objgraph.Kind) string {
	if color, ok := kindColors[kind]; ok {
		return color
	}
	return unknownKindColor
}
