package shtranslate

import (
	"path/filepath"
	"strings"
)

// Stage identifies a shader pipeline stage.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
	StageCompute
	StageGeometry
	StageTessControl
	StageTessEval
)

var stageNames = map[string]Stage{
	"vertex":       StageVertex,
	"fragment":     StageFragment,
	"compute":      StageCompute,
	"geometry":     StageGeometry,
	"tess_control": StageTessControl,
	"tess_eval":    StageTessEval,
}

// String returns the protocol name of the stage.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	case StageGeometry:
		return "geometry"
	case StageTessControl:
		return "tess_control"
	case StageTessEval:
		return "tess_eval"
	}
	return "unknown"
}

// ParseStage maps a protocol stage name to a Stage. The second result is
// false for unrecognized names.
func ParseStage(name string) (Stage, bool) {
	s, ok := stageNames[name]
	return s, ok
}

// StageFromFilename deduces the shader stage from a source file extension:
//
//	.frag*  fragment
//	.vert*  vertex
//	.comp*  compute
//	.geom*  geometry
//	.tcs*   tessellation control
//	.tes*   tessellation evaluation
//
// Unrecognized extensions default to fragment.
func StageFromFilename(path string) Stage {
	ext := filepath.Ext(path)
	switch {
	case strings.HasPrefix(ext, ".frag"):
		return StageFragment
	case strings.HasPrefix(ext, ".vert"):
		return StageVertex
	case strings.HasPrefix(ext, ".comp"):
		return StageCompute
	case strings.HasPrefix(ext, ".geom"):
		return StageGeometry
	case strings.HasPrefix(ext, ".tcs"):
		return StageTessControl
	case strings.HasPrefix(ext, ".tes"):
		return StageTessEval
	}
	return StageFragment
}
