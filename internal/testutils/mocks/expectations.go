// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"
	"path/filepath"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
	"github.com/KirkDiggler/lesson-forge/internal/repositories/output"
	outputmock "github.com/KirkDiggler/lesson-forge/internal/repositories/output/mock"
	"github.com/KirkDiggler/lesson-forge/internal/repositories/templates"
	templatesmock "github.com/KirkDiggler/lesson-forge/internal/repositories/templates/mock"
)

// ExpectRequestSnapshot accepts one snapshot written under dir and reports
// the path the filesystem sink would have used
func ExpectRequestSnapshot(mockOutput *outputmock.MockRepository, dir string) *gomock.Call {
	return mockOutput.EXPECT().
		WriteRequestSnapshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *output.WriteRequestSnapshotInput) (*output.WriteRequestSnapshotOutput, error) {
			return &output.WriteRequestSnapshotOutput{
				Path: filepath.Join(input.Dir, "requests", input.Request.ID+".json"),
			}, nil
		})
}

// ExpectScriptWrite accepts one script write and echoes its path
func ExpectScriptWrite(mockOutput *outputmock.MockRepository) *gomock.Call {
	return mockOutput.EXPECT().
		WriteScript(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *output.WriteScriptInput) (*output.WriteScriptOutput, error) {
			return &output.WriteScriptOutput{Path: input.Path}, nil
		})
}

// ExpectCompatibleTemplates answers one compatibility query with found
func ExpectCompatibleTemplates(mockTemplates *templatesmock.MockRepository, subject lesson.Subject, grade, difficulty int, found ...*lesson.Template) *gomock.Call {
	return mockTemplates.EXPECT().
		ListCompatible(gomock.Any(), &templates.ListCompatibleInput{
			Subject:    subject,
			GradeLevel: grade,
			Difficulty: difficulty,
		}).
		Return(&templates.ListCompatibleOutput{Templates: found}, nil)
}

// ExpectTemplate answers one lookup of subject/name with tmpl
func ExpectTemplate(mockTemplates *templatesmock.MockRepository, subject lesson.Subject, name string, tmpl *lesson.Template) *gomock.Call {
	return mockTemplates.EXPECT().
		Get(gomock.Any(), &templates.GetInput{Subject: subject, Name: name}).
		Return(&templates.GetOutput{Template: tmpl}, nil)
}
