package scene

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// PLYInfo carries header details that are not geometry.
type PLYInfo struct {
	TextureFile string
}

// LoadPLY reads an ASCII PLY mesh. Vertices may carry texture coordinates
// (s/t or u/v) and colors (red/green/blue); faces may carry a color that
// overrides the averaged vertex color.
func LoadPLY(reader io.Reader) (*Mesh, *PLYInfo, error) {
	scanner := bufio.NewScanner(reader)
	info := &PLYInfo{}

	var vertexCount, faceCount int
	var currentElement string
	vertexProps := map[string]int{}
	faceProps := 0
	faceColorAt := -1

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "ply" {
		return nil, nil, fmt.Errorf("missing ply magic")
	}

header:
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 2 || parts[1] != "ascii" {
				return nil, nil, fmt.Errorf("unsupported ply format %q", strings.Join(parts[1:], " "))
			}
		case "comment":
			if len(parts) >= 3 && parts[1] == "TextureFile" {
				info.TextureFile = parts[2]
			}
		case "element":
			if len(parts) != 3 {
				return nil, nil, fmt.Errorf("malformed element line %q", scanner.Text())
			}
			currentElement = parts[1]
			n, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, nil, fmt.Errorf("bad %s count: %w", parts[1], err)
			}
			switch currentElement {
			case "vertex":
				vertexCount = n
			case "face":
				faceCount = n
			}
		case "property":
			name := parts[len(parts)-1]
			switch currentElement {
			case "vertex":
				vertexProps[name] = len(vertexProps)
			case "face":
				if name == "red" || name == "diffuse_red" {
					faceColorAt = faceProps
				}
				faceProps++
			}
		case "end_header":
			break header
		}
	}

	lookup := func(names ...string) int {
		for _, n := range names {
			if i, ok := vertexProps[n]; ok {
				return i
			}
		}
		return -1
	}
	xi, yi, zi := lookup("x"), lookup("y"), lookup("z")
	if xi < 0 || yi < 0 || zi < 0 {
		return nil, nil, fmt.Errorf("vertex element lacks x/y/z")
	}
	ui, vi := lookup("s", "u", "texture_u"), lookup("t", "v", "texture_v")
	ri, gi, bi := lookup("red", "diffuse_red"), lookup("green", "diffuse_green"), lookup("blue", "diffuse_blue")
	hasUV := ui >= 0 && vi >= 0
	hasVertexColor := ri >= 0 && gi >= 0 && bi >= 0

	type plyVertex struct {
		pos mgl64.Vec3
		uv  mgl64.Vec2
		col color.RGBA
	}

	vertices := make([]plyVertex, 0, vertexCount)
	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return nil, nil, fmt.Errorf("unexpected end of file while reading vertices")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < len(vertexProps) {
			return nil, nil, fmt.Errorf("invalid vertex data on line %d", i)
		}
		vals := make([]float64, len(parts))
		for j, p := range parts {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("vertex %d: %w", i, err)
			}
			vals[j] = v
		}
		pv := plyVertex{
			pos: mgl64.Vec3{vals[xi], vals[yi], vals[zi]},
			col: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		}
		if hasUV {
			pv.uv = mgl64.Vec2{vals[ui], vals[vi]}
		}
		if hasVertexColor {
			pv.col = color.RGBA{R: uint8(vals[ri]), G: uint8(vals[gi]), B: uint8(vals[bi]), A: 255}
		}
		vertices = append(vertices, pv)
	}

	mesh := NewMesh()
	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return nil, nil, fmt.Errorf("unexpected end of file while reading faces")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			return nil, nil, fmt.Errorf("empty face on line %d", i)
		}
		numFaceVerts, err := strconv.Atoi(parts[0])
		if err != nil || len(parts) < numFaceVerts+1 {
			return nil, nil, fmt.Errorf("invalid face data on line %d", i)
		}
		if numFaceVerts < 3 {
			return nil, nil, fmt.Errorf("face %d has %d vertices, need at least 3", i, numFaceVerts)
		}

		indices := make([]int, numFaceVerts)
		var r, g, b uint32
		for j := 0; j < numFaceVerts; j++ {
			idx, err := strconv.Atoi(parts[j+1])
			if err != nil || idx < 0 || idx >= len(vertices) {
				return nil, nil, fmt.Errorf("face %d references bad vertex %q", i, parts[j+1])
			}
			v := vertices[idx]
			indices[j] = mesh.AddVertex(v.pos, v.uv)
			r += uint32(v.col.R)
			g += uint32(v.col.G)
			b += uint32(v.col.B)
		}

		faceColor := color.RGBA{
			R: uint8(r / uint32(numFaceVerts)),
			G: uint8(g / uint32(numFaceVerts)),
			B: uint8(b / uint32(numFaceVerts)),
			A: 255,
		}
		// Face properties after the index list are laid out in header order.
		if faceColorAt >= 1 && len(parts) >= numFaceVerts+1+faceColorAt+2 {
			at := numFaceVerts + faceColorAt
			cr, _ := strconv.ParseUint(parts[at], 10, 8)
			cg, _ := strconv.ParseUint(parts[at+1], 10, 8)
			cb, _ := strconv.ParseUint(parts[at+2], 10, 8)
			faceColor = color.RGBA{R: uint8(cr), G: uint8(cg), B: uint8(cb), A: 255}
		}
		mesh.AddFace(indices, faceColor)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("error reading from PLY source: %w", err)
	}
	return mesh, info, nil
}
