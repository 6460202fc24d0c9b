package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
	"github.com/KirkDiggler/lesson-forge/internal/errors"
	"github.com/KirkDiggler/lesson-forge/internal/orchestrators/generation"
)

var generateFlags struct {
	requestFile   string
	lms           bool
	teacher       string
	school        string
	subject       string
	topic         string
	objectives    []string
	grade         int
	difficulty    int
	customContent string
	gameType      string
	output        string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a validated script from a teacher's request",
	Long: `Generate asks the language model for a script personalized from the first
compatible template, validates it and writes it to the output directory.

The request comes from --request (a JSON file with "teacher" and "request"
objects) or from the individual flags, which override the file. With --lms
the file is a flat learning management system record instead (teacher_name,
objectives, teaching_style, ...); its difficulty defaults to 1.`,
	RunE: runGenerate,
}

func init() {
	bindGenerateFlags(generateCmd)
}

func bindGenerateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&generateFlags.requestFile, "request", "", "JSON request file")
	f.BoolVar(&generateFlags.lms, "lms", false, "the request file is a flat LMS record")
	f.StringVar(&generateFlags.teacher, "teacher", "", "teacher name")
	f.StringVar(&generateFlags.school, "school", "", "school name")
	f.StringVar(&generateFlags.subject, "subject", "", "subject")
	f.StringVar(&generateFlags.topic, "topic", "", "lesson topic")
	f.StringArrayVar(&generateFlags.objectives, "objective", nil, "learning objective (repeatable)")
	f.IntVar(&generateFlags.grade, "grade", 0, "grade level (1-12)")
	f.IntVar(&generateFlags.difficulty, "difficulty", 0, "difficulty (1-3)")
	f.StringVar(&generateFlags.customContent, "custom-content", "", "extra content for the model")
	f.StringVar(&generateFlags.gameType, "game-type", "", "game type hint")
	f.StringVar(&generateFlags.output, "output", "", "output file (default under the output directory)")
}

// requestFile is the layout of a --request file
type requestFile struct {
	Teacher lesson.TeacherProfile `json:"teacher"`
	Request lesson.GameRequest    `json:"request"`
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	input, err := buildGenerateInput(cmd)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), appOptions{withLLM: true, templates: true})
	if err != nil {
		return err
	}
	defer a.close()

	out, err := a.service.GenerateScript(cmd.Context(), input)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Request:  %s\n", out.RequestID)
	fmt.Fprintf(w, "Template: %s\n", out.Template.Key())
	if out.Cached {
		fmt.Fprintln(w, "Source:   cache")
	}
	printResult(w, out.Result)

	if !out.Accepted {
		return errors.ValidationFailed("generated script failed validation")
	}
	fmt.Fprintf(w, "Wrote %s\n", out.Path)
	return nil
}

func buildGenerateInput(cmd *cobra.Command) (*generation.GenerateScriptInput, error) {
	var rf requestFile
	if generateFlags.requestFile != "" {
		var err error
		rf, err = readRequestFile(generateFlags.requestFile, generateFlags.lms)
		if err != nil {
			return nil, err
		}
	}

	f := cmd.Flags()
	if f.Changed("teacher") {
		rf.Teacher.Name = generateFlags.teacher
	}
	if f.Changed("school") {
		rf.Teacher.School = generateFlags.school
	}
	if f.Changed("subject") {
		rf.Request.Subject = lesson.Subject(generateFlags.subject)
	}
	if f.Changed("topic") {
		rf.Request.Topic = generateFlags.topic
	}
	if f.Changed("objective") {
		rf.Request.LearningObjectives = generateFlags.objectives
	}
	if f.Changed("grade") {
		rf.Request.GradeLevel = generateFlags.grade
	}
	if f.Changed("difficulty") {
		rf.Request.Difficulty = generateFlags.difficulty
	}
	if f.Changed("custom-content") {
		rf.Request.CustomContent = generateFlags.customContent
	}
	if f.Changed("game-type") {
		rf.Request.GameType = generateFlags.gameType
	}

	return &generation.GenerateScriptInput{
		Teacher:    rf.Teacher,
		Request:    rf.Request,
		OutputPath: generateFlags.output,
	}, nil
}

func readRequestFile(path string, lms bool) (requestFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return requestFile{}, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read request file").
			WithPath(path)
	}

	if !lms {
		var rf requestFile
		if err := json.Unmarshal(b, &rf); err != nil {
			return requestFile{}, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse request file").
				WithPath(path)
		}
		return rf, nil
	}

	var record lesson.LMSRecord
	if err := json.Unmarshal(b, &record); err != nil {
		return requestFile{}, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse LMS record").
			WithPath(path)
	}
	return requestFile{Teacher: record.Teacher(), Request: record.GameRequest()}, nil
}
