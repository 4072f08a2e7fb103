package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	cueyaml "cuelang.org/go/encoding/yaml"

	"github.com/lobis/restG4/internal/ir"
)

// LoadPath reads a physics description from a file or a CUE package
// directory and compiles it.
//
// Directories are loaded as a CUE package. Files are chosen by extension:
// .cue and .json are compiled as CUE (JSON is a CUE subset), .yaml and .yml
// are decoded through CUE's YAML encoding so every format shares one schema.
func LoadPath(path string) (*ir.PhysicsConfig, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		v, err := loadDir(path)
		if err != nil {
			return nil, err
		}
		return CompileRoot(v)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return CompileSource(path, src)
}

// CompileSource compiles physics description source. The filename selects
// the decoder and appears in error positions.
func CompileSource(filename string, src []byte) (*ir.PhysicsConfig, error) {
	ctx := cuecontext.New()

	var v cue.Value
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".yaml", ".yml":
		f, err := cueyaml.Extract(filename, src)
		if err != nil {
			return nil, formatCUEError(err)
		}
		v = ctx.BuildFile(f)
	case ".cue", ".json", "":
		v = ctx.CompileBytes(src, cue.Filename(filename))
	default:
		return nil, fmt.Errorf("unsupported config format %q: use .cue, .json, .yaml or .yml", ext)
	}

	return CompileRoot(v)
}

func loadDir(dir string) (cue.Value, error) {
	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return cue.Value{}, fmt.Errorf("no CUE instances loaded from %s", dir)
	}

	inst := instances[0]
	if inst.Err != nil {
		return cue.Value{}, fmt.Errorf("loading CUE files: %w", inst.Err)
	}

	v := ctx.BuildInstance(inst)
	if err := v.Err(); err != nil {
		return cue.Value{}, formatCUEError(err)
	}
	return v, nil
}
