// Package validator checks generated Lua scripts in stages: syntax,
// structure, grade level, difficulty, subject symbols and safety.
package validator

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
	"github.com/KirkDiggler/lesson-forge/internal/errors"
)

// Validator validates a finished script
type Validator interface {
	Validate(script string, target Context) *ValidationResult
}

// Stage is one pure check over a script
type Stage struct {
	Name  string
	Check func(script string, target Context) []ValidationError
}

// Config holds the validator's dependencies
type Config struct {
	// Rules defaults to DefaultRules
	Rules *Rules
	// SubjectSymbols replaces the rules' symbol table when set
	SubjectSymbols map[lesson.Subject][]string
	Logger         *zap.Logger
}

// Validate checks the rule patterns compile
func (c *Config) Validate() error {
	if c.Rules == nil {
		return nil
	}
	vb := errors.NewValidationBuilder()
	if _, err := regexp.Compile(c.Rules.InitPattern); err != nil {
		vb.InvalidField("init_pattern", err.Error())
	}
	for _, p := range c.Rules.DangerousPatterns {
		if _, err := regexp.Compile(p.Pattern); err != nil {
			vb.Fieldf("dangerous_patterns", "%q: %s", p.Pattern, err.Error())
		}
	}
	return vb.Build()
}

type validator struct {
	rules  *Rules
	stages []Stage
	logger *zap.Logger
}

var _ Validator = (*validator)(nil)

// New creates a validator
func New(cfg *Config) (Validator, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	rules := cfg.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	if cfg.SubjectSymbols != nil {
		copied := *rules
		copied.SubjectSymbols = cfg.SubjectSymbols
		rules = &copied
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &validator{
		rules:  rules,
		stages: Stages(rules),
		logger: logger,
	}, nil
}

// Stages builds the post-syntax stages over a rule set, in run order
func Stages(rules *Rules) []Stage {
	return []Stage{
		{Name: string(TypeStructure), Check: structureStage(rules)},
		{Name: string(TypeGradeLevel), Check: gradeLevelStage(rules)},
		{Name: string(TypeDifficulty), Check: difficultyStage},
		{Name: string(TypeSubject), Check: subjectStage(rules)},
		{Name: string(TypeSafety), Check: safetyStage(rules)},
	}
}

// Validate runs every stage. Empty input and syntax errors stop the run;
// otherwise each stage runs regardless of earlier findings.
func (v *validator) Validate(script string, target Context) *ValidationResult {
	result := NewResult()

	if strings.TrimSpace(script) == "" {
		result.Add(finding(TypeContent, SeverityError, "Script is empty"))
		v.log(result, target)
		return result
	}

	for _, f := range checkSyntax(script) {
		result.Add(f)
	}
	if result.HasErrors() {
		v.log(result, target)
		return result
	}

	for _, stage := range v.stages {
		for _, f := range stage.Check(script, target) {
			result.Add(f)
		}
	}

	v.log(result, target)
	return result
}

func (v *validator) log(result *ValidationResult, target Context) {
	v.logger.Debug("validated script",
		zap.String("subject", string(target.Subject)),
		zap.Int("grade_level", target.GradeLevel),
		zap.Int("difficulty", target.Difficulty),
		zap.Bool("valid", result.IsValid),
		zap.Int("errors", len(result.Errors)),
		zap.Int("warnings", len(result.Warnings)),
	)
}
