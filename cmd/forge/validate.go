package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/lesson-forge/internal/errors"
	"github.com/KirkDiggler/lesson-forge/internal/orchestrators/generation"
	"github.com/KirkDiggler/lesson-forge/internal/validator"
)

var validateFlags struct {
	subject    string
	grade      int
	difficulty int
	json       bool
}

var validateCmd = &cobra.Command{
	Use:   "validate <script.lua>",
	Short: "Validate a Lua script",
	Long: `Validate runs the syntax, structure, grade level, difficulty, subject and
safety checks over a script. It exits with status 2 when any check reports an
error.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVar(&validateFlags.subject, "subject", "", "subject the script teaches")
	f.IntVar(&validateFlags.grade, "grade", 5, "target grade level")
	f.IntVar(&validateFlags.difficulty, "difficulty", 2, "target difficulty")
	f.BoolVar(&validateFlags.json, "json", false, "print the result as JSON")
}

func runValidate(cmd *cobra.Command, args []string) error {
	script, err := os.ReadFile(args[0])
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read script").WithPath(args[0])
	}

	a, err := newApp(cmd.Context(), appOptions{})
	if err != nil {
		return err
	}
	defer a.close()

	out, err := a.service.ValidateScript(cmd.Context(), &generation.ValidateScriptInput{
		Script:     string(script),
		Subject:    validateFlags.subject,
		GradeLevel: validateFlags.grade,
		Difficulty: validateFlags.difficulty,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if validateFlags.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out.Result); err != nil {
			return errors.Wrap(err, "failed to encode result")
		}
	} else {
		printResult(w, out.Result)
	}

	if !out.Result.IsValid {
		return errors.ValidationFailed("script failed validation")
	}
	if !validateFlags.json {
		fmt.Fprintln(w, "Script is valid")
	}
	return nil
}

func printResult(w io.Writer, result *validator.ValidationResult) {
	if s := result.String(); s != "" {
		fmt.Fprintln(w, s)
	}
}
