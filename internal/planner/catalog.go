package planner

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"specialcare/internal/i18n"
	"specialcare/internal/models"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

var defaultCatalogSource = mustParseCatalog(defaultCatalogYAML)

// Fallback pool used when a day ends up with too few activities
const (
	fallbackDomain = models.DomainAttention
	fallbackTier   = models.LevelAverage
)

type activityDef struct {
	Key      string              `yaml:"key"`
	Type     models.ActivityType `yaml:"type"`
	Duration int                 `yaml:"duration"`
	GameType string              `yaml:"game_type"`
	Online   bool                `yaml:"online"`
	MinAge   int                 `yaml:"min_age"`
}

// A domain either has performance tiers or one flat list
type domainDef struct {
	Tiers      map[models.PerformanceLevel][]activityDef `yaml:"tiers"`
	Activities []activityDef                             `yaml:"activities"`
}

// CatalogSource is the language-independent catalog definition
type CatalogSource struct {
	Domains map[models.Domain]domainDef `yaml:"domains"`
}

// DefaultCatalogSource returns the catalog compiled into the binary
func DefaultCatalogSource() *CatalogSource {
	return defaultCatalogSource
}

// ParseCatalog decodes and validates a YAML catalog definition
func ParseCatalog(data []byte) (*CatalogSource, error) {
	var src CatalogSource
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := src.validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &src, nil
}

func mustParseCatalog(data []byte) *CatalogSource {
	src, err := ParseCatalog(data)
	if err != nil {
		panic(err)
	}
	return src
}

func (s *CatalogSource) validate() error {
	var errs []error
	check := func(where string, defs []activityDef) {
		if len(defs) == 0 {
			errs = append(errs, fmt.Errorf("%s: no activities", where))
		}
		for i, d := range defs {
			switch {
			case d.Key == "":
				errs = append(errs, fmt.Errorf("%s[%d]: key is required", where, i))
			case !d.Type.Valid():
				errs = append(errs, fmt.Errorf("%s[%d] %s: unknown type %q", where, i, d.Key, d.Type))
			case d.Duration <= 0:
				errs = append(errs, fmt.Errorf("%s[%d] %s: duration must be positive", where, i, d.Key))
			case d.MinAge < 0:
				errs = append(errs, fmt.Errorf("%s[%d] %s: negative min_age", where, i, d.Key))
			}
		}
	}

	for domain, def := range s.Domains {
		if !domain.Valid() {
			errs = append(errs, fmt.Errorf("unknown domain %q", domain))
			continue
		}
		if (len(def.Tiers) == 0) == (len(def.Activities) == 0) {
			errs = append(errs, fmt.Errorf("%s: exactly one of tiers or activities is required", domain))
			continue
		}
		for tier, defs := range def.Tiers {
			if !tier.Valid() {
				errs = append(errs, fmt.Errorf("%s: unknown tier %q", domain, tier))
				continue
			}
			check(fmt.Sprintf("%s.%s", domain, tier), defs)
		}
		if len(def.Activities) > 0 {
			check(string(domain), def.Activities)
		}
	}

	fb, ok := s.Domains[fallbackDomain]
	if !ok || len(fb.Tiers[fallbackTier]) == 0 {
		errs = append(errs, fmt.Errorf("%s.%s fallback tier is required", fallbackDomain, fallbackTier))
	}
	return errors.Join(errs...)
}

// Catalog is the catalog rendered for one language
type Catalog struct {
	Language string
	tiers    map[models.Domain]map[models.PerformanceLevel][]models.Activity
	flat     map[models.Domain][]models.Activity
}

func renderCatalog(src *CatalogSource, tr i18n.Translator, lang string) *Catalog {
	render := func(defs []activityDef) []models.Activity {
		out := make([]models.Activity, 0, len(defs))
		for _, d := range defs {
			out = append(out, models.Activity{
				Key:          d.Key,
				Type:         d.Type,
				Name:         tr.T(lang, "activity.name."+d.Key, nil),
				Duration:     d.Duration,
				Description:  tr.T(lang, "activity.desc."+d.Key, nil),
				MinAge:       d.MinAge,
				Online:       d.Online,
				GameType:     d.GameType,
				Instructions: tr.T(lang, "activity.instruction."+d.Key, nil),
			})
		}
		return out
	}

	c := &Catalog{
		Language: lang,
		tiers:    make(map[models.Domain]map[models.PerformanceLevel][]models.Activity),
		flat:     make(map[models.Domain][]models.Activity),
	}
	for domain, def := range src.Domains {
		if len(def.Tiers) > 0 {
			c.tiers[domain] = make(map[models.PerformanceLevel][]models.Activity, len(def.Tiers))
			for tier, defs := range def.Tiers {
				c.tiers[domain][tier] = render(defs)
			}
			continue
		}
		c.flat[domain] = render(def.Activities)
	}
	return c
}

// Pool returns a copy of the candidate list for a domain. Tiered domains
// use the given tier, or the average tier when that one is not defined.
// Domains absent from the catalog return nil
func (c *Catalog) Pool(domain models.Domain, tier models.PerformanceLevel) []models.Activity {
	if tiers, ok := c.tiers[domain]; ok {
		list, ok := tiers[tier]
		if !ok {
			list = tiers[models.LevelAverage]
		}
		return append([]models.Activity(nil), list...)
	}
	if list, ok := c.flat[domain]; ok {
		return append([]models.Activity(nil), list...)
	}
	return nil
}

// catalogCache memoizes rendered catalogs per language
type catalogCache struct {
	mu      sync.Mutex
	entries map[string]*Catalog
}

func newCatalogCache() *catalogCache {
	return &catalogCache{entries: make(map[string]*Catalog)}
}

func (c *catalogCache) get(lang string, build func() *Catalog) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cat, ok := c.entries[lang]; ok {
		return cat
	}
	cat := build()
	c.entries[lang] = cat
	return cat
}

func (c *catalogCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Catalog)
}
