package subjects

import (
	"github.com/KirkDiggler/lesson-forge/internal/content"
	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
	"github.com/KirkDiggler/lesson-forge/internal/errors"
)

type constructor func(cfg Config, scorer *content.DifficultyScorer) (Plugin, error)

func constructors() map[lesson.Subject]constructor {
	return map[lesson.Subject]constructor{
		lesson.SubjectMathematics:  newMathPlugin,
		lesson.SubjectScience:      newSciencePlugin,
		lesson.SubjectHistory:      newHistoryPlugin,
		lesson.SubjectLanguageArts: newLanguagePlugin,
	}
}

// RegistryConfig builds a Registry. Empty Configs means DefaultConfigs and
// empty DifficultyKeywords means the default keyword table.
type RegistryConfig struct {
	Configs            []Config
	DifficultyKeywords []content.KeywordLevel
}

// Registry holds one plugin per configured subject
type Registry struct {
	plugins map[lesson.Subject]Plugin
	order   []lesson.Subject
}

// NewRegistry constructs a plugin for every config
func NewRegistry(cfg *RegistryConfig) (*Registry, error) {
	if cfg == nil {
		cfg = &RegistryConfig{}
	}
	configs := cfg.Configs
	if len(configs) == 0 {
		configs = DefaultConfigs()
	}

	scorer := content.NewDifficultyScorer(cfg.DifficultyKeywords)
	ctors := constructors()

	r := &Registry{plugins: make(map[lesson.Subject]Plugin, len(configs))}
	for _, c := range configs {
		ctor, ok := ctors[c.Subject]
		if !ok {
			return nil, errors.Configurationf("no plugin for subject %q", c.Subject)
		}
		if _, dup := r.plugins[c.Subject]; dup {
			return nil, errors.Configurationf("subject %q configured twice", c.Subject)
		}

		plugin, err := ctor(c, scorer)
		if err != nil {
			return nil, err
		}
		r.plugins[c.Subject] = plugin
		r.order = append(r.order, c.Subject)
	}

	return r, nil
}

// Get returns the plugin for a subject
func (r *Registry) Get(subject lesson.Subject) (Plugin, error) {
	plugin, ok := r.plugins[subject]
	if !ok {
		return nil, errors.Configurationf("no configuration for subject %q", subject).
			WithMeta("subject", string(subject))
	}
	return plugin, nil
}

// Subjects lists the configured subjects in configuration order
func (r *Registry) Subjects() []lesson.Subject {
	out := make([]lesson.Subject, len(r.order))
	copy(out, r.order)
	return out
}

// PathAliases maps each subject to the extra names it is detected by
func (r *Registry) PathAliases() map[lesson.Subject][]string {
	aliases := make(map[lesson.Subject][]string, len(r.plugins))
	for s, p := range r.plugins {
		aliases[s] = p.Config().PathAliases
	}
	return aliases
}

// RequiredSymbols maps each subject to the symbols its scripts must define
func (r *Registry) RequiredSymbols() map[lesson.Subject][]string {
	symbols := make(map[lesson.Subject][]string, len(r.plugins))
	for s, p := range r.plugins {
		symbols[s] = p.RequiredSymbols()
	}
	return symbols
}

// DetermineSubject detects the subject a source path belongs to
func (r *Registry) DetermineSubject(path string) (lesson.Subject, error) {
	return content.DetermineSubject(path, r.PathAliases())
}
