// Package script runs batches of export and import steps described in JSON.
//
//	{"steps": [
//	  {"action": "export", "doc": "hero.json", "image": "hero.png", "out": "build", "grid": "16x16"},
//	  {"action": "import", "tex": "build/hero.tex", "atlas": "build/hero.xml", "out": "sprites"}
//	]}
//
// Steps are independent and may run concurrently, so a step must not
// consume files produced by another step of the same script.
package script

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/texatlas"
	"github.com/phanxgames/texatlas/internal/config"
)

// Step is a single action in a script.
type Step struct {
	Action string `json:"action"` // "export" or "import"
	Label  string `json:"label,omitempty"`
	Out    string `json:"out"`

	// export
	Doc          string `json:"doc,omitempty"`
	Image        string `json:"image,omitempty"`
	Grid         string `json:"grid,omitempty"`
	NoAtlas      bool   `json:"noAtlas,omitempty"`
	PixelFormat  string `json:"pixelFormat,omitempty"`
	TextureType  string `json:"textureType,omitempty"`
	MipmapFilter string `json:"mipmapFilter,omitempty"`
	Mipmaps      bool   `json:"mipmaps,omitempty"`
	Premultiply  bool   `json:"premultiply,omitempty"`

	// import
	Tex   string `json:"tex,omitempty"`
	Atlas string `json:"atlas,omitempty"`
}

// Script is the top-level JSON structure of a script file.
type Script struct {
	Steps []Step `json:"steps"`
}

// Load parses and validates a JSON script.
func Load(data []byte) (*Script, error) {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

// LoadFile reads and parses the script at path.
func LoadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Load(data)
}

// Validate checks that the step names a known action with its required
// fields and that its options parse.
func (s Step) Validate() error {
	switch s.Action {
	case "export":
		if s.Doc == "" {
			return fmt.Errorf("export: missing doc")
		}
	case "import":
		if s.Tex == "" {
			return fmt.Errorf("import: missing tex")
		}
	case "":
		return fmt.Errorf("missing action")
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
	if s.Out == "" {
		return fmt.Errorf("%s: missing out", s.Action)
	}
	if s.Action == "export" {
		if _, err := s.grid(); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if _, err := s.EncodeOptions(); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	return nil
}

func (s Step) grid() (*texatlas.Extent, error) {
	if s.Grid == "" {
		return nil, nil
	}
	return config.ParseGrid(s.Grid)
}

// EncodeOptions returns the step's texture options. Empty names keep the
// texatlas defaults.
func (s Step) EncodeOptions() (texatlas.EncodeOptions, error) {
	opts := texatlas.DefaultEncodeOptions()
	var err error
	if s.PixelFormat != "" {
		if opts.PixelFormat, err = texatlas.ParsePixelFormat(s.PixelFormat); err != nil {
			return opts, err
		}
	}
	if s.TextureType != "" {
		if opts.TextureType, err = texatlas.ParseTextureType(s.TextureType); err != nil {
			return opts, err
		}
	}
	if s.MipmapFilter != "" {
		if opts.MipmapFilter, err = texatlas.ParseMipmapFilter(s.MipmapFilter); err != nil {
			return opts, err
		}
	}
	opts.GenerateMipmaps = s.Mipmaps
	opts.PreMultiplyAlpha = s.Premultiply
	return opts, nil
}

// StepResult is the outcome of one step.
type StepResult struct {
	Index  int
	Action string
	Label  string

	// Exported holds the files written by an export step, in write order.
	Exported []texatlas.Result
	// Import is set for import steps; Written lists the sprite PNGs.
	Import  *texatlas.ImportResult
	Written []string
}

// Messages returns the human readable lines for the result.
func (r StepResult) Messages() []string {
	var out []string
	for _, e := range r.Exported {
		out = append(out, e.Message)
	}
	if r.Import != nil {
		for i, reg := range r.Import.Regions {
			line := reg.Summary()
			if i < len(r.Written) && r.Written[i] != "" {
				line += " -> " + r.Written[i]
			}
			out = append(out, line)
		}
	}
	return out
}

// Run executes steps with at most workers running at once. Results are
// returned in step order. The first failure cancels steps that have not
// started yet and is returned once running steps finish.
func Run(ctx context.Context, env *texatlas.Env, steps []Step, workers int) ([]StepResult, error) {
	if env == nil {
		env = &texatlas.Env{}
	}
	results := make([]StepResult, len(steps))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, st := range steps {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := runStep(env, st)
			if err != nil {
				return fmt.Errorf("step %d (%s): %w", i+1, st.Action, err)
			}
			res.Index = i
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func runStep(env *texatlas.Env, st Step) (StepResult, error) {
	if err := st.Validate(); err != nil {
		return StepResult{}, err
	}
	res := StepResult{Action: st.Action, Label: st.Label}
	if err := os.MkdirAll(st.Out, 0o755); err != nil {
		return res, fmt.Errorf("create output directory: %w", err)
	}
	switch st.Action {
	case "export":
		exported, err := runExport(env, st)
		res.Exported = exported
		return res, err
	default:
		imp, written, err := runImport(env, st)
		res.Import, res.Written = imp, written
		return res, err
	}
}

func runExport(env *texatlas.Env, st Step) ([]texatlas.Result, error) {
	doc, err := texatlas.LoadDocument(st.Doc)
	if err != nil {
		return nil, err
	}
	grid, _ := st.grid()

	if st.Image == "" {
		if grid != nil {
			doc.Grid = grid
		}
		r, err := env.ExportAtlas(doc, st.Out)
		if err != nil {
			return nil, err
		}
		return []texatlas.Result{r}, nil
	}

	codec := env.Codec
	if codec == nil {
		codec = texatlas.ImageCodec{}
	}
	img, err := codec.Decode(st.Image)
	if err != nil {
		return nil, err
	}
	opts, _ := st.EncodeOptions()
	return env.Export(doc, st.Out, img, texatlas.ExportOptions{
		Encode: opts,
		Atlas:  !st.NoAtlas,
		Grid:   grid,
	})
}

func runImport(env *texatlas.Env, st Step) (*texatlas.ImportResult, []string, error) {
	imp, err := env.ImportTex(st.Tex, st.Atlas)
	if err != nil {
		return nil, nil, err
	}
	written := make([]string, 0, len(imp.Regions))
	for _, r := range imp.Regions {
		if r.Width == 0 || r.Height == 0 {
			written = append(written, "")
			continue
		}
		path, err := texatlas.WriteRegionPNG(st.Out, r)
		if err != nil {
			return imp, written, err
		}
		written = append(written, path)
	}
	return imp, written, nil
}
