package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
	"github.com/KirkDiggler/lesson-forge/internal/errors"
	"github.com/KirkDiggler/lesson-forge/internal/orchestrators/generation"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect and maintain the template store",
}

var templatesListCmd = &cobra.Command{
	Use:   "list <subject>",
	Short: "List a subject's templates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), appOptions{templates: true})
		if err != nil {
			return err
		}
		defer a.close()

		out, err := a.service.ListTemplates(cmd.Context(), &generation.ListTemplatesInput{Subject: args[0]})
		if err != nil {
			return err
		}
		return printTemplates(cmd.OutOrStdout(), out.Templates)
	},
}

var compatibleFlags struct {
	grade      int
	difficulty int
}

var templatesCompatibleCmd = &cobra.Command{
	Use:   "compatible <subject>",
	Short: "List the templates that support a grade and difficulty",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), appOptions{templates: true})
		if err != nil {
			return err
		}
		defer a.close()

		out, err := a.service.ListCompatibleTemplates(cmd.Context(), &generation.ListCompatibleTemplatesInput{
			Subject:    args[0],
			GradeLevel: compatibleFlags.grade,
			Difficulty: compatibleFlags.difficulty,
		})
		if err != nil {
			return err
		}
		if len(out.Templates) == 0 {
			return errors.NotFoundf("no %s template supports grade %d at difficulty %d",
				args[0], compatibleFlags.grade, compatibleFlags.difficulty)
		}
		return printTemplates(cmd.OutOrStdout(), out.Templates)
	},
}

var updateFlags struct {
	set string
}

var templatesUpdateCmd = &cobra.Command{
	Use:   "update <subject> <name>",
	Short: "Merge fields into a template's metadata",
	Long: `Update merges a JSON object into a template's metadata file, for example

  forge templates update mathematics MathQuest --set '{"max_grade": 8, "tags": ["fractions"]}'

The merged metadata is validated before it is written.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var updates map[string]any
		if err := json.Unmarshal([]byte(updateFlags.set), &updates); err != nil {
			return errors.WrapWithCode(err, errors.CodeInvalidArgument, "--set must be a JSON object")
		}

		a, err := newApp(cmd.Context(), appOptions{templates: true})
		if err != nil {
			return err
		}
		defer a.close()

		out, err := a.service.UpdateTemplateMetadata(cmd.Context(), &generation.UpdateTemplateMetadataInput{
			Subject: args[0],
			Name:    args[1],
			Updates: updates,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out.Template.Metadata)
	},
}

func init() {
	templatesCompatibleCmd.Flags().IntVar(&compatibleFlags.grade, "grade", 0, "grade level (1-12)")
	templatesCompatibleCmd.Flags().IntVar(&compatibleFlags.difficulty, "difficulty", 0, "difficulty (1-3)")
	_ = templatesCompatibleCmd.MarkFlagRequired("grade")
	_ = templatesCompatibleCmd.MarkFlagRequired("difficulty")

	templatesUpdateCmd.Flags().StringVar(&updateFlags.set, "set", "", "JSON object of metadata fields")
	_ = templatesUpdateCmd.MarkFlagRequired("set")

	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesCompatibleCmd)
	templatesCmd.AddCommand(templatesUpdateCmd)
}

func printTemplates(w io.Writer, found []*lesson.Template) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TEMPLATE\tVERSION\tGRADES\tDIFFICULTIES\tDESCRIPTION")
	for _, t := range found {
		fmt.Fprintf(tw, "%s\t%s\t%d-%d\t%v\t%s\n",
			t.Key(),
			t.Metadata.Version,
			t.Metadata.MinGrade,
			t.Metadata.MaxGrade,
			t.Metadata.SupportedDifficulties,
			t.Metadata.Description,
		)
	}
	return tw.Flush()
}
