// Package core provides the value types shared by every renderer stage:
// the tagged Color, the Cell with its dirty bit, sparse cell Patches, and
// integer Rects. It has no dependencies on the other renderer packages so
// grid, layer, compositor and display can all import it.
package core
