package llm

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
)

const systemPrompt = "You are a Roblox educational game generator that creates personalized Lua scripts " +
	"based on templates and teacher requirements. Reply with the Lua script only."

// BuildPrompt renders the system and user messages for a request
func BuildPrompt(input *GenerateInput) (system, user string) {
	req := input.Request
	var b strings.Builder

	b.WriteString("Generate a Lua script based on the following template and requirements:\n\n")

	b.WriteString("Teacher Info:\n")
	fmt.Fprintf(&b, "- Name: %s\n", req.Teacher.Name)
	fmt.Fprintf(&b, "- School: %s\n", req.Teacher.School)
	fmt.Fprintf(&b, "- Grade Level: %d\n", req.Teacher.GradeLevel)
	fmt.Fprintf(&b, "- Teaching Style: %s\n\n", req.Teacher.PreferredTeachingStyle)

	b.WriteString("Game Requirements:\n")
	fmt.Fprintf(&b, "- Subject: %s\n", req.Request.Subject.DirName())
	fmt.Fprintf(&b, "- Topic: %s\n", req.Request.Topic)
	fmt.Fprintf(&b, "- Learning Objectives: %s\n", strings.Join(req.Request.LearningObjectives, ", "))
	fmt.Fprintf(&b, "- Grade Level: %d\n", req.Request.GradeLevel)
	fmt.Fprintf(&b, "- Difficulty: %s\n", difficultyName(req.Request.Difficulty))
	if req.Request.GameType != "" {
		fmt.Fprintf(&b, "- Game Type: %s\n", req.Request.GameType)
	}
	if req.Request.TimeLimit != nil {
		fmt.Fprintf(&b, "- Time Limit: %d minutes\n", *req.Request.TimeLimit)
	}

	if req.Request.CustomContent != "" {
		b.WriteString("\nCustom Content:\n")
		b.WriteString(req.Request.CustomContent)
		b.WriteString("\n")
	}

	if len(input.Examples) > 0 {
		b.WriteString("\nExample Problems:\n")
		for _, ex := range input.Examples {
			fmt.Fprintf(&b, "- %s\n", ex)
		}
	}

	b.WriteString("\nTemplate:\n")
	b.WriteString(input.TemplateContent)
	if !strings.HasSuffix(input.TemplateContent, "\n") {
		b.WriteString("\n")
	}

	b.WriteString("\nGenerate a complete Lua script that follows the template structure but is personalized " +
		"for this teacher and their requirements. Ensure all game mechanics and content are appropriate " +
		"for the specified grade level and difficulty.\n")

	return systemPrompt, b.String()
}

func difficultyName(d int) string {
	switch d {
	case lesson.DifficultyEasy:
		return "Easy"
	case lesson.DifficultyMedium:
		return "Medium"
	case lesson.DifficultyHard:
		return "Hard"
	}
	return fmt.Sprintf("%d", d)
}

// ExtractScript strips a surrounding markdown code fence from a completion
func ExtractScript(completion string) string {
	text := strings.TrimSpace(completion)
	if text == "" {
		return ""
	}
	if !strings.HasPrefix(text, "```") {
		return text + "\n"
	}

	// drop the opening fence line, including any language tag
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	} else {
		return ""
	}
	if i := strings.LastIndex(text, "```"); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return text + "\n"
}
