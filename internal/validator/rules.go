package validator

import (
	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
)

// GradeBand groups grade levels for keyword checks
type GradeBand string

// Grade bands
const (
	BandElementary GradeBand = "elementary"
	BandMiddle     GradeBand = "middle"
	BandHigh       GradeBand = "high"
)

// BandFor maps a grade to its band: up to 5 is elementary, up to 8 middle
func BandFor(grade int) GradeBand {
	switch {
	case grade <= 5:
		return BandElementary
	case grade <= 8:
		return BandMiddle
	default:
		return BandHigh
	}
}

// RequiredElement is a token every script must contain
type RequiredElement struct {
	Token   string
	Message string
}

// DangerousPattern is a regular expression for an operation scripts must
// not perform.
type DangerousPattern struct {
	Pattern     string
	Description string
}

// Rules are the tables the stages check against
type Rules struct {
	GradeKeywords    map[GradeBand][]string
	MinGradeKeywords int
	RequiredElements []RequiredElement
	// InitPattern must match an init or start function definition
	InitPattern       string
	DangerousPatterns []DangerousPattern
	SubjectSymbols    map[lesson.Subject][]string
	// SymbolMessages overrides the finding message for a missing symbol
	SymbolMessages map[string]string
}

// DefaultRules returns the compiled-in rule tables
func DefaultRules() *Rules {
	return &Rules{
		GradeKeywords: map[GradeBand][]string{
			BandElementary: {"basic", "simple", "fun", "game", "play", "learn", "easy", "beginner", "start", "help"},
			BandMiddle:     {"intermediate", "challenge", "explore", "discover", "investigate", "analyze", "practice"},
			BandHigh:       {"advanced", "complex", "theoretical", "abstract", "research", "evaluate", "synthesize"},
		},
		MinGradeKeywords: 3,
		RequiredElements: []RequiredElement{
			{Token: "function", Message: "Missing function definitions"},
			{Token: "local", Message: "Missing local variable declarations"},
			{Token: "end", Message: "Missing block endings"},
			{Token: "return", Message: "Missing return statements"},
		},
		InitPattern: `function\s+(?:[\w.]+[:.])?(init|start)\s*\(`,
		DangerousPatterns: []DangerousPattern{
			{Pattern: `\bos\.`, Description: "Operating system access"},
			{Pattern: `\bio\.`, Description: "File system access"},
			{Pattern: `require\s*\(`, Description: "External module loading"},
			{Pattern: `loadfile\s*\(`, Description: "File loading"},
			{Pattern: `dofile\s*\(`, Description: "File execution"},
		},
		SubjectSymbols: map[lesson.Subject][]string{
			lesson.SubjectMathematics:  {"generateProblem", "checkAnswer", "difficulty"},
			lesson.SubjectScience:      {"setupExperiment", "checkResults", "safetyChecks"},
			lesson.SubjectHistory:      {"loadHistoricalData", "displayTimeline", "checkHistoricalAccuracy"},
			lesson.SubjectLanguageArts: {"processText", "checkGrammar", "vocabularyCheck"},
		},
		SymbolMessages: map[string]string{
			"generateProblem":         "Missing problem generation function",
			"checkAnswer":             "Missing answer validation function",
			"difficulty":              "Missing difficulty handling",
			"setupExperiment":         "Missing experiment setup function",
			"checkResults":            "Missing results validation",
			"safetyChecks":            "Missing safety checks",
			"loadHistoricalData":      "Missing historical data loading",
			"displayTimeline":         "Missing timeline display",
			"checkHistoricalAccuracy": "Missing historical accuracy checks",
			"processText":             "Missing text processing function",
			"checkGrammar":            "Missing grammar checking",
			"vocabularyCheck":         "Missing vocabulary validation",
		},
	}
}
