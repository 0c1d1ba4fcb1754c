// Package export writes figure tessellations as STL meshes.
package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/Faultbox/geosim/pkg/figure"
)

// Format selects the STL encoding.
type Format int

const (
	ASCII Format = iota
	Binary
)

func (f Format) String() string {
	if f == Binary {
		return "binary"
	}
	return "ascii"
}

const binaryHeaderSize = 80

// WriteFigure writes the figure at its current progress.
func WriteFigure(w io.Writer, fig *figure.Figure, format Format) error {
	name := fmt.Sprintf("%s-%03.0f", fig.Type, fig.Progress*100)
	return WriteSTL(w, name, fig.Triangles(), format)
}

// WriteSTL encodes triangles in the given format. Facet normals are
// derived from the vertex winding.
func WriteSTL(w io.Writer, name string, tris []figure.Triangle, format Format) error {
	switch format {
	case ASCII:
		return writeASCII(w, name, tris)
	case Binary:
		return writeBinary(w, name, tris)
	}
	return fmt.Errorf("unknown STL format %d", int(format))
}

func writeASCII(w io.Writer, name string, tris []figure.Triangle) error {
	name = strings.ReplaceAll(name, " ", "_")
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range tris {
		n := t.Normal()
		fmt.Fprintf(bw, "  facet normal %e %e %e\n", n.X, n.Y, n.Z)
		fmt.Fprintln(bw, "    outer loop")
		for _, v := range t {
			fmt.Fprintf(bw, "      vertex %e %e %e\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintln(bw, "    endloop")
		fmt.Fprintln(bw, "  endfacet")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing ASCII STL: %w", err)
	}
	return nil
}

func writeBinary(w io.Writer, name string, tris []figure.Triangle) error {
	if uint64(len(tris)) > math.MaxUint32 {
		return fmt.Errorf("too many triangles for binary STL: %d", len(tris))
	}
	bw := bufio.NewWriter(w)

	// The header must not start with "solid" or readers take it for ASCII.
	header := make([]byte, binaryHeaderSize)
	copy(header, "geosim "+name)
	if _, err := bw.Write(header); err != nil {
		return fmt.Errorf("writing STL header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(tris))); err != nil {
		return fmt.Errorf("writing triangle count: %w", err)
	}

	var facet [12]float32
	for i, t := range tris {
		n := t.Normal()
		facet[0], facet[1], facet[2] = float32(n.X), float32(n.Y), float32(n.Z)
		for j, v := range t {
			facet[3+3*j] = float32(v.X)
			facet[4+3*j] = float32(v.Y)
			facet[5+3*j] = float32(v.Z)
		}
		if err := binary.Write(bw, binary.LittleEndian, facet); err != nil {
			return fmt.Errorf("writing triangle %d: %w", i, err)
		}
		// Attribute byte count, unused
		if err := binary.Write(bw, binary.LittleEndian, uint16(0)); err != nil {
			return fmt.Errorf("writing triangle %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing binary STL: %w", err)
	}
	return nil
}
