package loaders

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/DennyLindberg/Monte-Carlo-Ray-Tracer/pkg/core"
)

// LoadOBJ reads a Wavefront OBJ file and returns its faces as triangle
// vertex triples. Faces with more than three vertices are fan-triangulated.
// Only positions are read; normals, texture coordinates, materials and
// groups are ignored.
func LoadOBJ(path string) ([][3]core.Vec3, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer file.Close()

	var vertices []core.Vec3
	var triangles [][3]core.Vec3

	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNumber)
			}
			v, err := parseVertex(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			vertices = append(vertices, v)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNumber)
			}
			indices := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				index, err := parseFaceIndex(ref, len(vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNumber, err)
				}
				indices = append(indices, index)
			}
			// Fan triangulation around the first vertex
			for i := 1; i < len(indices)-1; i++ {
				triangles = append(triangles, [3]core.Vec3{
					vertices[indices[0]],
					vertices[indices[i]],
					vertices[indices[i+1]],
				})
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return triangles, nil
}

func parseVertex(fields []string) (core.Vec3, error) {
	var coords [3]float64
	for i, f := range fields {
		value, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("bad vertex coordinate %q", f)
		}
		coords[i] = value
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

// parseFaceIndex resolves a face vertex reference ("7", "7/1", "7//2",
// "-1") to a zero-based vertex index.
func parseFaceIndex(ref string, vertexCount int) (int, error) {
	if slash := strings.IndexByte(ref, '/'); slash >= 0 {
		ref = ref[:slash]
	}
	index, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q", ref)
	}
	if index < 0 {
		index = vertexCount + index
	} else {
		index--
	}
	if index < 0 || index >= vertexCount {
		return 0, fmt.Errorf("face index %q out of range", ref)
	}
	return index, nil
}
