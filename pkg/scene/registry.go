package scene

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-bvh-raytracer/pkg/geometry"
)

// ErrUnknownScene is returned for a scene ID that is not built in
var ErrUnknownScene = errors.New("unknown scene")

// builtinGroup is the group name of every built-in scene
const builtinGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id" yaml:"id"`                   // Unique identifier
	Name        string `json:"name" yaml:"name"`               // Scene name
	Description string `json:"description" yaml:"description"` // Optional description
	Group       string `json:"group" yaml:"group"`             // Grouping category
	Type        string `json:"type" yaml:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath" yaml:"filePath"`       // Path to the scene file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name" yaml:"name"`
	Scenes []SceneInfo `json:"scenes" yaml:"scenes"`
}

// builtinScene pairs a scene's metadata with its builder
type builtinScene struct {
	info  SceneInfo
	build func(camera geometry.CameraConfig) (*Scene, error)
}

// builtinScenes lists every built-in scene in display order
var builtinScenes = []builtinScene{
	{
		info: SceneInfo{ID: "default", Name: "Default Scene", Description: "Metal, glass and coated spheres on a ground quad"},
		build: func(camera geometry.CameraConfig) (*Scene, error) {
			return NewDefaultScene(camera), nil
		},
	},
	{
		info: SceneInfo{ID: "sphere-over-ground", Name: "Sphere Over Ground", Description: "One diffuse sphere on a huge ground sphere"},
		build: func(camera geometry.CameraConfig) (*Scene, error) {
			return NewSphereOverGroundScene(camera), nil
		},
	},
	{
		info: SceneInfo{ID: "random-spheres", Name: "Random Spheres", Description: "Hundreds of small random spheres around three large ones"},
		build: func(camera geometry.CameraConfig) (*Scene, error) {
			return NewRandomSpheresScene(42, camera), nil
		},
	},
	{
		info: SceneInfo{ID: "sphere-grid", Name: "Sphere Grid", Description: "20x20 grid of rainbow-colored metallic spheres"},
		build: func(camera geometry.CameraConfig) (*Scene, error) {
			return NewSphereGridScene(20, camera), nil
		},
	},
	{
		info: SceneInfo{ID: "cornell-box", Name: "Cornell Box", Description: "Cornell box with a ceiling light and two rotated boxes"},
		build: func(camera geometry.CameraConfig) (*Scene, error) {
			return NewCornellScene(camera), nil
		},
	},
	{
		info: SceneInfo{ID: "planar", Name: "Planar Primitives", Description: "Quads, a triangle and a disc with checker and composite materials"},
		build: func(camera geometry.CameraConfig) (*Scene, error) {
			return NewPlanarScene(camera), nil
		},
	},
	{
		info: SceneInfo{ID: "lights", Name: "Area Lights", Description: "Checkered spheres lit by an emissive sphere and quad"},
		build: func(camera geometry.CameraConfig) (*Scene, error) {
			return NewLightScene(camera), nil
		},
	},
	{
		info: SceneInfo{ID: "textures", Name: "Texture Mapping", Description: "Image and checker textures on every primitive kind"},
		build: func(camera geometry.CameraConfig) (*Scene, error) {
			return NewTextureTestScene(camera), nil
		},
	},
	{
		info: SceneInfo{ID: "triangle-mesh", Name: "Triangle Meshes", Description: "Box, pyramid and icosahedron meshes"},
		build: func(camera geometry.CameraConfig) (*Scene, error) {
			return NewTriangleMeshScene(camera)
		},
	},
}

// BuiltinScenes returns the metadata of every built-in scene
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtinScenes))
	for i, b := range builtinScenes {
		infos[i] = b.info
		infos[i].Group = builtinGroup
		infos[i].Type = "builtin"
	}
	return infos
}

// NewBuiltinScene builds the built-in scene with the given ID. Non-zero fields of
// camera override the scene's own camera.
func NewBuiltinScene(id string, camera geometry.CameraConfig) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.build(camera)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// sceneFileExtensions are the config formats picked up by ListSceneFiles
var sceneFileExtensions = map[string]bool{".toml": true, ".yaml": true, ".yml": true}

// ListSceneFiles scans dir for scene config files. A missing directory yields no scenes.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return []SceneInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !sceneFileExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := ParseSceneFileMetadata(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseSceneFileMetadata extracts metadata from the leading "# Key: value"
// comments of a TOML or YAML scene file. Missing keys fall back to values
// derived from the file name.
func ParseSceneFileMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       "file:" + nameWithoutExt,
		Name:     titleCase(nameWithoutExt),
		Group:    "Scene Files",
		Type:     "file",
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info, fmt.Errorf("failed to read scene metadata: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Stop parsing at first non-comment line
		if !strings.HasPrefix(line, "#") {
			break
		}

		key, value, ok := strings.Cut(strings.TrimSpace(strings.TrimPrefix(line, "#")), ":")
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Scene":
			info.Name = value
		case "Description":
			info.Description = value
		case "Group":
			info.Group = value
		}
	}

	return info, scanner.Err()
}

// ListAllScenes returns built-in scenes followed by the scene files in dir,
// grouped by category with the built-in group first
func ListAllScenes(dir string) ([]SceneGroup, error) {
	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, err
	}

	groupMap := make(map[string][]SceneInfo)
	for _, info := range append(BuiltinScenes(), files...) {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	groups := []SceneGroup{{Name: builtinGroup, Scenes: groupMap[builtinGroup]}}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	for _, groupName := range groupNames {
		groups = append(groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return groups, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
