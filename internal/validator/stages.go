package validator

import (
	"fmt"
	"regexp"
	"strings"
)

var loopPattern = regexp.MustCompile(`\b(for|while)\b`)

func structureStage(rules *Rules) func(string, Context) []ValidationError {
	initPattern := regexp.MustCompile(rules.InitPattern)

	return func(script string, _ Context) []ValidationError {
		var out []ValidationError
		for _, el := range rules.RequiredElements {
			if !strings.Contains(script, el.Token) {
				out = append(out, finding(TypeStructure, SeverityError, el.Message))
			}
		}
		if !initPattern.MatchString(script) {
			out = append(out, finding(TypeStructure, SeverityError, "Missing initialization function (init or start)"))
		}
		return out
	}
}

func gradeLevelStage(rules *Rules) func(string, Context) []ValidationError {
	return func(script string, target Context) []ValidationError {
		lower := strings.ToLower(script)
		band := BandFor(target.GradeLevel)

		var out []ValidationError
		found := 0
		for _, kw := range rules.GradeKeywords[band] {
			if strings.Contains(lower, kw) {
				found++
			}
		}
		if found < rules.MinGradeKeywords {
			out = append(out, finding(TypeGradeLevel, SeverityWarning, fmt.Sprintf(
				"Script may not be appropriate for grade %d. Expected more grade-appropriate content.",
				target.GradeLevel)))
		}

		if band == BandElementary {
			for _, kw := range rules.GradeKeywords[BandHigh] {
				if strings.Contains(lower, kw) {
					out = append(out, finding(TypeGradeLevel, SeverityWarning,
						fmt.Sprintf("Found complex concept '%s' in elementary-level script", kw)))
				}
			}
		}
		return out
	}
}

func difficultyStage(script string, target Context) []ValidationError {
	loops := loopPattern.MatchString(script)

	switch {
	case target.Difficulty == 1 && loops:
		return []ValidationError{finding(TypeDifficulty, SeverityWarning, "Easy difficulty should avoid complex loops")}
	case target.Difficulty == 3 && !loops:
		return []ValidationError{finding(TypeDifficulty, SeverityWarning, "Hard difficulty should include more complex logic")}
	}
	return nil
}

func subjectStage(rules *Rules) func(string, Context) []ValidationError {
	return func(script string, target Context) []ValidationError {
		symbols, ok := rules.SubjectSymbols[target.Subject]
		if !ok {
			return []ValidationError{finding(TypeSubject, SeverityInfo,
				fmt.Sprintf("No subject-specific checks for %q", target.Subject))}
		}

		var out []ValidationError
		for _, symbol := range symbols {
			if strings.Contains(script, symbol) {
				continue
			}
			msg, ok := rules.SymbolMessages[symbol]
			if !ok {
				msg = fmt.Sprintf("Missing required element: %s", symbol)
			}
			out = append(out, finding(TypeSubject, SeverityError, msg))
		}
		return out
	}
}

func safetyStage(rules *Rules) func(string, Context) []ValidationError {
	type compiled struct {
		re   *regexp.Regexp
		desc string
	}
	patterns := make([]compiled, len(rules.DangerousPatterns))
	for i, p := range rules.DangerousPatterns {
		patterns[i] = compiled{re: regexp.MustCompile(p.Pattern), desc: p.Description}
	}

	return func(script string, _ Context) []ValidationError {
		var out []ValidationError
		for _, p := range patterns {
			for _, loc := range p.re.FindAllStringIndex(script, -1) {
				out = append(out, findingAt(TypeSafety, SeverityError, lineOf(script, loc[0]),
					"Potentially unsafe operation: "+p.desc))
			}
		}
		return out
	}
}

func lineOf(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}
