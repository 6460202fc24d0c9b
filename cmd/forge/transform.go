package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/lesson-forge/internal/orchestrators/generation"
)

var transformFlags struct {
	subject   string
	outputDir string
}

var transformCmd = &cobra.Command{
	Use:   "transform <source.lua>",
	Short: "Inject an existing lesson file into its subject template",
	Long: `Transform extracts the content of a lesson file, fills the subject's
template with it and writes the result. The subject is detected from the
source path unless --subject is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runTransform,
}

func init() {
	f := transformCmd.Flags()
	f.StringVar(&transformFlags.subject, "subject", "", "subject (default detected from the path)")
	f.StringVar(&transformFlags.outputDir, "to", "", "output directory (default the configured one)")
}

func runTransform(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), appOptions{templates: true})
	if err != nil {
		return err
	}
	defer a.close()

	out, err := a.service.TransformFromFile(cmd.Context(), &generation.TransformFromFileInput{
		SourcePath: args[0],
		Subject:    transformFlags.subject,
		OutputDir:  transformFlags.outputDir,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Transformed %s into %s (%d items)\nWrote %s\n",
		args[0], out.Template.Key(), out.Items, out.Path)
	return nil
}
