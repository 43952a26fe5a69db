package templates

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
)

// DefaultSetID is the template set shipped with the binary
const DefaultSetID = "bunker"

//go:embed defaults/*.yaml
var defaults embed.FS

// Config configures the YAML repository
type Config struct {
	// Dir holds extra *.yaml template sets; empty loads only the built-in sets
	Dir string

	// SkipDefaults leaves the built-in sets out
	SkipDefaults bool
}

// Validate validates the config
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SkipDefaults && c.Dir == "" {
		vb.Field("Dir", "is required when defaults are skipped")
	}

	return vb.Build()
}

// YAMLRepository serves template sets decoded from YAML files
type YAMLRepository struct {
	mu   sync.RWMutex
	sets map[string]*layout.TemplateSet
}

// Ensure YAMLRepository implements Repository
var _ Repository = (*YAMLRepository)(nil)

// NewYAML loads and validates every template set up front
func NewYAML(cfg *Config) (*YAMLRepository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	r := &YAMLRepository{
		sets: make(map[string]*layout.TemplateSet),
	}

	if !cfg.SkipDefaults {
		if err := r.loadFS(defaults, "defaults"); err != nil {
			return nil, errors.Wrap(err, "failed to load built-in template sets")
		}
	}
	if cfg.Dir != "" {
		if err := r.loadFS(os.DirFS(cfg.Dir), "."); err != nil {
			return nil, errors.Wrapf(err, "failed to load template sets from %s", cfg.Dir)
		}
	}

	slog.Info("Template sets loaded", "count", len(r.sets), "dir", cfg.Dir)

	return r, nil
}

func (r *YAMLRepository) loadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return errors.Wrap(err, "failed to read template directory")
	}

	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}

		file := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", file)
		}

		set, err := Decode(data)
		if err != nil {
			return errors.Wrapf(err, "template file %s", entry.Name())
		}
		if err := r.add(set); err != nil {
			return errors.Wrapf(err, "template file %s", entry.Name())
		}
	}

	return nil
}

func (r *YAMLRepository) add(set *layout.TemplateSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sets[set.ID]; exists {
		return errors.AlreadyExistsf("template set %s is defined twice", set.ID)
	}
	r.sets[set.ID] = set
	return nil
}

// Decode parses and validates one template set document
func Decode(data []byte) (*layout.TemplateSet, error) {
	var set layout.TemplateSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, errors.InvalidArgumentf("failed to parse template set: %v", err)
	}
	if err := set.Validate(); err != nil {
		return nil, errors.Wrapf(err, "template set %q is invalid", set.ID)
	}
	return &set, nil
}

// Get retrieves a template set by ID
func (r *YAMLRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument("template set ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	set, exists := r.sets[input.ID]
	if !exists {
		return nil, errors.NotFoundf("template set %s not found", input.ID)
	}

	return &GetOutput{TemplateSet: set}, nil
}

// List returns every loaded template set ordered by ID
func (r *YAMLRepository) List(_ context.Context, _ *ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sets := make([]*layout.TemplateSet, 0, len(r.sets))
	for _, set := range r.sets {
		sets = append(sets, set)
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].ID < sets[j].ID })

	return &ListOutput{TemplateSets: sets}, nil
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
