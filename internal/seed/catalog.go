// Package seed provides the read-only catalog of bundled lesson content.
// Each seed is a YAML document named <seed_name>.yaml; the file stem is the
// seed name. The default catalog is embedded into the binary.
package seed

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/triplingo-backend/internal/domain"
)

//go:embed catalog/*.yaml
var embedded embed.FS

const fileExt = ".yaml"

// Catalog is an immutable set of seeds keyed by name.
type Catalog struct {
	seeds map[string]domain.Seed
}

type yamlSeed struct {
	Destination    string          `yaml:"destination"`
	BaseLanguage   string          `yaml:"base_language"`
	TargetLanguage string          `yaml:"target_language"`
	Situations     []yamlSituation `yaml:"situations"`
}

type yamlSituation struct {
	Title     string       `yaml:"title"`
	SortOrder *int         `yaml:"sort_order"`
	Phrases   []yamlPhrase `yaml:"phrases"`
}

type yamlPhrase struct {
	Target  string   `yaml:"target"`
	Meaning string   `yaml:"meaning"`
	Notes   string   `yaml:"notes"`
	Tags    []string `yaml:"tags"`
}

// Default returns the catalog embedded into the binary.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "catalog")
	if err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	return Load(sub)
}

// LoadDir reads a catalog from a directory on disk.
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("seed catalog: %s is not a directory", dir)
	}
	return Load(os.DirFS(dir))
}

// Load parses every *.yaml file at the root of fsys. Any invalid seed fails
// the whole load.
func Load(fsys fs.FS) (*Catalog, error) {
	files, err := fs.Glob(fsys, "*"+fileExt)
	if err != nil {
		return nil, fmt.Errorf("seed catalog: list files: %w", err)
	}

	c := &Catalog{seeds: make(map[string]domain.Seed, len(files))}
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), fileExt)

		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("seed catalog: read %s: %w", file, err)
		}

		s, err := parse(name, data)
		if err != nil {
			return nil, fmt.Errorf("seed catalog: %s: %w", name, err)
		}
		c.seeds[name] = s
	}

	return c, nil
}

// Lookup returns the seed with the given name or *domain.UnknownSeedError.
func (c *Catalog) Lookup(name string) (domain.Seed, error) {
	s, ok := c.seeds[name]
	if !ok {
		return domain.Seed{}, &domain.UnknownSeedError{Name: name}
	}
	return s, nil
}

// Names returns all seed names in lexical order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.seeds))
	for name := range c.seeds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parse(name string, data []byte) (domain.Seed, error) {
	var raw yamlSeed
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.Seed{}, fmt.Errorf("decode yaml: %w", err)
	}

	s := domain.Seed{
		Name:            name,
		DestinationName: strings.TrimSpace(raw.Destination),
		BaseLanguage:    strings.TrimSpace(raw.BaseLanguage),
		TargetLanguage:  strings.TrimSpace(raw.TargetLanguage),
		Situations:      make([]domain.SeedSituation, 0, len(raw.Situations)),
	}

	for i, rs := range raw.Situations {
		sit := domain.SeedSituation{
			Title:     strings.TrimSpace(rs.Title),
			SortOrder: i,
			Phrases:   make([]domain.SeedPhrase, 0, len(rs.Phrases)),
		}
		if rs.SortOrder != nil {
			sit.SortOrder = *rs.SortOrder
		}

		for _, rp := range rs.Phrases {
			p := domain.SeedPhrase{
				TargetText:     strings.TrimSpace(rp.Target),
				EnglishMeaning: strings.TrimSpace(rp.Meaning),
				Tags:           domain.NormalizeTags(rp.Tags),
			}
			if notes := strings.TrimSpace(rp.Notes); notes != "" {
				p.Notes = &notes
			}
			sit.Phrases = append(sit.Phrases, p)
		}
		s.Situations = append(s.Situations, sit)
	}

	if err := validate(s); err != nil {
		return domain.Seed{}, err
	}
	return s, nil
}

// validate enforces the uniqueness rules the importer relies on.
func validate(s domain.Seed) error {
	var errs []domain.FieldError

	if s.DestinationName == "" {
		errs = append(errs, domain.FieldError{Field: "destination", Message: "required"})
	}

	var titles []string
	for i, sit := range s.Situations {
		field := fmt.Sprintf("situations[%d]", i)
		if sit.Title == "" {
			errs = append(errs, domain.FieldError{Field: field + ".title", Message: "required"})
		} else if slices.Contains(titles, sit.Title) {
			errs = append(errs, domain.FieldError{Field: field + ".title", Message: fmt.Sprintf("duplicate title %q", sit.Title)})
		}
		titles = append(titles, sit.Title)

		var targets []string
		for j, p := range sit.Phrases {
			pfield := fmt.Sprintf("%s.phrases[%d]", field, j)
			if p.TargetText == "" {
				errs = append(errs, domain.FieldError{Field: pfield + ".target", Message: "required"})
			} else if slices.Contains(targets, p.TargetText) {
				errs = append(errs, domain.FieldError{Field: pfield + ".target", Message: fmt.Sprintf("duplicate target %q", p.TargetText)})
			}
			targets = append(targets, p.TargetText)

			if p.EnglishMeaning == "" {
				errs = append(errs, domain.FieldError{Field: pfield + ".meaning", Message: "required"})
			}
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
