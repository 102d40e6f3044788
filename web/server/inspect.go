package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
	"github.com/df07/go-bvh-raytracer/pkg/material"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool           `json:"hit"`
	MaterialType string         `json:"materialType"`
	GeometryType string         `json:"geometryType"`
	Point        [3]float64     `json:"point"`
	Normal       [3]float64     `json:"normal"`
	Distance     float64        `json:"distance"`
	FrontFace    bool           `json:"frontFace"`
	Properties   map[string]any `json:"properties"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	channel := func(x float64) int {
		return int(255 * math.Max(0, math.Min(x, 1)))
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.X), channel(c.Y), channel(c.Z))
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]any) {
	properties := make(map[string]any)

	switch m := mat.(type) {
	case *material.Lambertian:
		if solid, ok := m.Albedo.(*material.SolidColor); ok {
			properties["albedo"] = vecArray(solid.Color)
			properties["color"] = hexColor(solid.Color)
		} else {
			properties["texture"] = fmt.Sprintf("%T", m.Albedo)
		}
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff"
		return "dielectric", properties

	case *material.DiffuseLight:
		properties["emission"] = vecArray(m.Power)
		properties["color"] = hexColor(m.Power)
		return "diffuse_light", properties

	case *material.Layered:
		outerType, outerProps := extractMaterialInfo(m.Outer)
		innerType, innerProps := extractMaterialInfo(m.Inner)
		properties["outer"] = map[string]any{"type": outerType, "properties": outerProps}
		properties["inner"] = map[string]any{"type": innerType, "properties": innerProps}
		return "layered", properties

	case *material.Mix:
		material1Type, material1Props := extractMaterialInfo(m.Material1)
		material2Type, material2Props := extractMaterialInfo(m.Material2)
		properties["material1"] = map[string]any{"type": material1Type, "properties": material1Props}
		properties["material2"] = map[string]any{"type": material2Type, "properties": material2Props}
		properties["ratio"] = m.Ratio
		properties["description"] = fmt.Sprintf("%.0f%% %s, %.0f%% %s",
			(1-m.Ratio)*100, material1Type, m.Ratio*100, material2Type)
		return "mixed", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts detailed geometry information. Instances report
// the wrapped shape with their transform added to the properties.
func extractGeometryInfo(shape geometry.Shape) (string, map[string]any) {
	properties := make(map[string]any)

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Quad:
		properties["corner"] = vecArray(geom.Q)
		properties["u"] = vecArray(geom.U)
		properties["v"] = vecArray(geom.V)
		properties["normal"] = vecArray(geom.Normal)
		return "quad", properties

	case *geometry.Triangle:
		properties["corner"] = vecArray(geom.Q)
		properties["u"] = vecArray(geom.U)
		properties["v"] = vecArray(geom.V)
		properties["normal"] = vecArray(geom.Normal)
		return "triangle", properties

	case *geometry.Disc:
		properties["center"] = vecArray(geom.Q)
		properties["radius"] = geom.Radius
		properties["normal"] = vecArray(geom.Normal)
		return "disc", properties

	case *geometry.TriangleMesh:
		properties["triangleCount"] = geom.TriangleCount()
		properties["boundingBox"] = boundingBoxInfo(geom.BoundingBox())
		return "triangle_mesh", properties

	case *geometry.BVH:
		stats := geom.Stats()
		properties["shapes"] = stats.TotalShapes
		properties["boundingBox"] = boundingBoxInfo(geom.BoundingBox())
		return "group", properties

	case *geometry.Translation:
		innerType, innerProps := extractGeometryInfo(geom.Shape)
		innerProps["translate"] = vecArray(geom.Offset)
		return innerType, innerProps

	case *geometry.Rotation:
		innerType, innerProps := extractGeometryInfo(geom.Shape)
		innerProps["rotate"] = map[string]any{"axis": geom.Axis.String(), "degrees": geom.Degrees}
		return innerType, innerProps

	default:
		return "unknown", properties
	}
}

func boundingBoxInfo(box core.AABB) map[string]any {
	return map[string]any{
		"min": [3]float64{box.X.Min, box.Y.Min, box.Z.Min},
		"max": [3]float64{box.X.Max, box.Y.Max, box.Z.Max},
	}
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Shape     geometry.Shape // Top-level scene shape that was hit, nil if unknown
}

// inspectPixel casts a ray through the center of pixel (row, col) and returns the first object hit
func inspectPixel(sceneObj *scene.Scene, row, col int) InspectResult {
	ray := sceneObj.Camera.GetPixelCenterRay(row, col)
	rayT := core.NewInterval(integrator.ShadowAcneEpsilon, math.Inf(1))

	hit, isHit := sceneObj.BVH.Hit(ray, rayT)
	if !isHit {
		return InspectResult{Hit: false}
	}

	// The BVH does not report which shape it hit, so find the top-level shape with the same hit
	for _, shape := range sceneObj.Shapes {
		if shapeHit, ok := shape.Hit(ray, core.NewInterval(rayT.Min, hit.T+0.001)); ok && shapeHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Shape: shape}
		}
	}

	return InspectResult{Hit: true, HitRecord: hit}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	col, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	row, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	sceneObj, err := s.openScene(req, s.logger)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if col < 0 || col >= sceneObj.Camera.ImageWidth() || row < 0 || row >= sceneObj.Camera.ImageHeight() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	result := inspectPixel(sceneObj, row, col)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := "unknown", map[string]any{}
	if result.Shape != nil {
		geometryType, geometryProps = extractGeometryInfo(result.Shape)
	}

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(result.HitRecord.Point),
		Normal:       vecArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]any{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
