package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/lesson-forge/internal/errors"
	"github.com/KirkDiggler/lesson-forge/internal/orchestrators/generation"
)

var previewFlags struct {
	subject   string
	samples   int
	fragments bool
}

var previewCmd = &cobra.Command{
	Use:   "preview <source>",
	Short: "Show what a lesson file would produce",
	Long: `Preview runs a lesson file through the subject plugin and prints the
extracted fields, the items found and a few rendered sample problems.
Nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	f := previewCmd.Flags()
	f.StringVar(&previewFlags.subject, "subject", "", "subject (required)")
	f.IntVar(&previewFlags.samples, "samples", 0, "number of samples to render")
	f.BoolVar(&previewFlags.fragments, "fragments", false, "print the generated Lua fragments")
	_ = previewCmd.MarkFlagRequired("subject")
}

func runPreview(cmd *cobra.Command, args []string) error {
	text, err := os.ReadFile(args[0])
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeExtraction, "failed to read source").WithPath(args[0])
	}

	a, err := newApp(cmd.Context(), appOptions{})
	if err != nil {
		return err
	}
	defer a.close()

	out, err := a.service.PreviewContent(cmd.Context(), &generation.PreviewContentInput{
		Subject: previewFlags.subject,
		Text:    string(text),
		Samples: previewFlags.samples,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Subject:     %s\n", out.Subject)
	fmt.Fprintf(w, "Title:       %s\n", out.Common.Title)
	fmt.Fprintf(w, "Description: %s\n", out.Common.Description)
	fmt.Fprintf(w, "Topics:      %s\n", strings.Join(out.Common.Topics, ", "))
	if missing := out.Common.Missing(); len(missing) > 0 {
		fmt.Fprintf(w, "Missing:     %s\n", strings.Join(missing, ", "))
	}

	fmt.Fprintf(w, "\nItems (%d):\n", len(out.Items))
	for _, item := range out.Items {
		fmt.Fprintf(w, "  - [%s] %s\n", item.ItemType(), item.ItemTemplate())
	}

	if len(out.Samples) > 0 {
		fmt.Fprintln(w, "\nSamples:")
		for _, sample := range out.Samples {
			fmt.Fprintf(w, "  - %s\n", sample)
		}
	}

	if previewFlags.fragments {
		names := make([]string, 0, len(out.Fragments))
		for name := range out.Fragments {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "\n-- %s\n%s\n", name, out.Fragments[name])
		}
	}
	return nil
}
