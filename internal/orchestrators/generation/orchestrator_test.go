package generation_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/KirkDiggler/lesson-forge/internal/clients/llm"
	llmmock "github.com/KirkDiggler/lesson-forge/internal/clients/llm/mock"
	"github.com/KirkDiggler/lesson-forge/internal/content"
	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
	"github.com/KirkDiggler/lesson-forge/internal/errors"
	"github.com/KirkDiggler/lesson-forge/internal/metrics"
	"github.com/KirkDiggler/lesson-forge/internal/orchestrators/generation"
	"github.com/KirkDiggler/lesson-forge/internal/pkg/clock"
	"github.com/KirkDiggler/lesson-forge/internal/pkg/idgen"
	"github.com/KirkDiggler/lesson-forge/internal/repositories/output"
	outputmock "github.com/KirkDiggler/lesson-forge/internal/repositories/output/mock"
	"github.com/KirkDiggler/lesson-forge/internal/repositories/templates"
	templatesmock "github.com/KirkDiggler/lesson-forge/internal/repositories/templates/mock"
	"github.com/KirkDiggler/lesson-forge/internal/subjects"
	"github.com/KirkDiggler/lesson-forge/internal/testutils"
	"github.com/KirkDiggler/lesson-forge/internal/testutils/mocks"
	"github.com/KirkDiggler/lesson-forge/internal/validator"
)

// fixedRoller always rolls the same face, clamped to the die size
type fixedRoller struct {
	face int
}

func (r *fixedRoller) Roll(size int) (int, error) {
	if r.face > size {
		return size, nil
	}
	return r.face, nil
}

func (r *fixedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i], _ = r.Roll(size)
	}
	return out, nil
}

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockTemplate *templatesmock.MockRepository
	mockOutput   *outputmock.MockRepository
	mockLLM      *llmmock.MockClient
	registry     *prometheus.Registry
	clock        *clock.Fixed
	outputDir    string
	orchestrator generation.Service
	ctx          context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockTemplate = templatesmock.NewMockRepository(s.ctrl)
	s.mockOutput = outputmock.NewMockRepository(s.ctrl)
	s.mockLLM = llmmock.NewMockClient(s.ctrl)
	s.registry = prometheus.NewRegistry()
	s.clock = clock.NewFixed(time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC))
	s.outputDir = s.T().TempDir()
	s.ctx = context.Background()

	subjectRegistry, err := subjects.NewRegistry(nil)
	s.Require().NoError(err)
	v, err := validator.New(&validator.Config{SubjectSymbols: subjectRegistry.RequiredSymbols()})
	s.Require().NoError(err)
	recorder, err := metrics.NewRecorder(s.registry)
	s.Require().NoError(err)

	orch, err := generation.NewOrchestrator(&generation.Config{
		TemplateRepo: s.mockTemplate,
		OutputRepo:   s.mockOutput,
		Registry:     subjectRegistry,
		Validator:    v,
		IDGenerator:  idgen.NewSequential("req"),
		OutputDir:    s.outputDir,
		LLMClient:    s.mockLLM,
		Clock:        s.clock,
		Roller:       &fixedRoller{face: 1},
		Metrics:      recorder,
		Logger:       zaptest.NewLogger(s.T()),
	})
	s.Require().NoError(err)
	s.orchestrator = orch
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func mathTemplate() *lesson.Template {
	return &lesson.Template{
		Subject: lesson.SubjectMathematics,
		Content: testutils.MathQuestTemplate,
		Path:    "templates/Mathematics/MathQuest.lua",
		Metadata: lesson.TemplateMetadata{
			Name:                  "MathQuest",
			Version:               "1.0.0",
			Subject:               "Mathematics",
			MinGrade:              1,
			MaxGrade:              12,
			SupportedDifficulties: []int{1, 2, 3},
		},
	}
}

func generateInput() *generation.GenerateScriptInput {
	return &generation.GenerateScriptInput{
		Teacher: lesson.TeacherProfile{
			ID:   "t-1",
			Name: "Ms. Rivera",
		},
		Request: lesson.GameRequest{
			Subject:            "Mathematics",
			Topic:              "Fractions",
			LearningObjectives: []string{"Compare halves and quarters"},
			GradeLevel:         3,
			Difficulty:         2,
		},
	}
}

func (s *OrchestratorTestSuite) expectCheckedSnapshot() {
	s.mockOutput.EXPECT().
		WriteRequestSnapshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *output.WriteRequestSnapshotInput) (*output.WriteRequestSnapshotOutput, error) {
			s.Assert().Equal(s.outputDir, input.Dir)
			s.Assert().Equal("req_1", input.Request.ID)
			s.Assert().Equal(lesson.SubjectMathematics, input.Request.Request.Subject)
			s.Assert().Equal(3, input.Request.Teacher.GradeLevel)
			s.Assert().True(s.clock.Now().Equal(input.Request.Timestamp))
			return &output.WriteRequestSnapshotOutput{Path: filepath.Join(input.Dir, "requests", "req_1.json")}, nil
		})
}

func (s *OrchestratorTestSuite) expectCompatible(found ...*lesson.Template) {
	mocks.ExpectCompatibleTemplates(s.mockTemplate, lesson.SubjectMathematics, 3, 2, found...)
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := generation.NewOrchestrator(&generation.Config{})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	for _, field := range []string{"TemplateRepo", "OutputRepo", "Registry", "Validator", "IDGenerator", "OutputDir"} {
		s.Assert().Contains(err.Error(), field)
	}

	_, err = generation.NewOrchestrator(nil)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGenerateScriptAccepted() {
	s.expectCheckedSnapshot()
	s.expectCompatible(mathTemplate())

	s.mockLLM.EXPECT().
		GenerateScript(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *llm.GenerateInput) (*llm.GenerateOutput, error) {
			s.Assert().Equal(testutils.MathQuestTemplate, input.TemplateContent)
			s.Assert().Equal("req_1", input.Request.ID)
			s.Assert().Len(input.Examples, generation.DefaultSampleCount)
			for _, example := range input.Examples {
				s.Assert().NotContains(example, "{a}")
			}
			return &llm.GenerateOutput{Script: testutils.MathQuestTemplate}, nil
		})

	expectedPath := filepath.Join(s.outputDir, "Mathematics", "t_1_fractions_20240501_093000.lua")
	s.mockOutput.EXPECT().
		WriteScript(gomock.Any(), &output.WriteScriptInput{
			Path:    expectedPath,
			Content: testutils.MathQuestTemplate,
		}).
		Return(&output.WriteScriptOutput{Path: expectedPath}, nil)

	out, err := s.orchestrator.GenerateScript(s.ctx, generateInput())
	s.Require().NoError(err)

	s.Assert().True(out.Accepted)
	s.Assert().False(out.Cached)
	s.Assert().Equal("req_1", out.RequestID)
	s.Assert().Equal(expectedPath, out.Path)
	s.Assert().Equal("mathematics/MathQuest", out.Template.Key())
	s.Assert().True(out.Result.IsValid)

	expected := `
# HELP forge_scripts_generated_total Scripts produced by the generate flow, by subject and outcome
# TYPE forge_scripts_generated_total counter
forge_scripts_generated_total{outcome="accepted",subject="mathematics"} 1
`
	s.Assert().NoError(testutil.GatherAndCompare(s.registry, strings.NewReader(expected), "forge_scripts_generated_total"))
}

func (s *OrchestratorTestSuite) TestGenerateScriptOutputPathOverride() {
	mocks.ExpectRequestSnapshot(s.mockOutput, s.outputDir)
	s.expectCompatible(mathTemplate())
	s.mockLLM.EXPECT().
		GenerateScript(gomock.Any(), gomock.Any()).
		Return(&llm.GenerateOutput{Script: testutils.MathQuestTemplate, Cached: true}, nil)

	override := filepath.Join(s.outputDir, "custom.lua")
	s.mockOutput.EXPECT().
		WriteScript(gomock.Any(), &output.WriteScriptInput{Path: override, Content: testutils.MathQuestTemplate}).
		Return(&output.WriteScriptOutput{Path: override}, nil)

	input := generateInput()
	input.OutputPath = override

	out, err := s.orchestrator.GenerateScript(s.ctx, input)
	s.Require().NoError(err)
	s.Assert().True(out.Accepted)
	s.Assert().True(out.Cached)
	s.Assert().Equal(override, out.Path)
}

func (s *OrchestratorTestSuite) TestGenerateScriptNamesFileByTeacherName() {
	mocks.ExpectRequestSnapshot(s.mockOutput, s.outputDir)
	s.expectCompatible(mathTemplate())
	s.mockLLM.EXPECT().
		GenerateScript(gomock.Any(), gomock.Any()).
		Return(&llm.GenerateOutput{Script: testutils.MathQuestTemplate}, nil)
	mocks.ExpectScriptWrite(s.mockOutput)

	input := generateInput()
	input.Teacher.ID = ""

	out, err := s.orchestrator.GenerateScript(s.ctx, input)
	s.Require().NoError(err)
	s.Assert().Equal(filepath.Join(s.outputDir, "Mathematics", "ms_rivera_fractions_20240501_093000.lua"), out.Path)
}

func (s *OrchestratorTestSuite) TestGenerateScriptRejected() {
	mocks.ExpectRequestSnapshot(s.mockOutput, s.outputDir)
	s.expectCompatible(mathTemplate())

	script := strings.ReplaceAll(testutils.MathQuestTemplate, "checkAnswer", "verify")
	s.mockLLM.EXPECT().
		GenerateScript(gomock.Any(), gomock.Any()).
		Return(&llm.GenerateOutput{Script: script}, nil)
	// no WriteScript expectation: a rejected script is never written

	out, err := s.orchestrator.GenerateScript(s.ctx, generateInput())
	s.Require().NoError(err)

	s.Assert().False(out.Accepted)
	s.Assert().Empty(out.Path)
	s.Assert().Equal(script, out.Script)
	s.Require().True(out.Result.HasErrors())
	s.Assert().Equal("Missing answer validation function", out.Result.Errors[0].Message)

	count, err := testutil.GatherAndCount(s.registry, "forge_validation_findings_total")
	s.Require().NoError(err)
	s.Assert().Positive(count)

	expected := `
# HELP forge_scripts_generated_total Scripts produced by the generate flow, by subject and outcome
# TYPE forge_scripts_generated_total counter
forge_scripts_generated_total{outcome="rejected",subject="mathematics"} 1
`
	s.Assert().NoError(testutil.GatherAndCompare(s.registry, strings.NewReader(expected), "forge_scripts_generated_total"))
}

func (s *OrchestratorTestSuite) TestGenerateScriptNoCompatibleTemplate() {
	mocks.ExpectRequestSnapshot(s.mockOutput, s.outputDir)
	s.expectCompatible()

	_, err := s.orchestrator.GenerateScript(s.ctx, generateInput())
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
	s.Assert().Contains(err.Error(), "grade 3 at difficulty 2")
}

func (s *OrchestratorTestSuite) TestGenerateScriptLLMFailure() {
	mocks.ExpectRequestSnapshot(s.mockOutput, s.outputDir)
	s.expectCompatible(mathTemplate())
	s.mockLLM.EXPECT().
		GenerateScript(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("model unreachable"))

	_, err := s.orchestrator.GenerateScript(s.ctx, generateInput())
	s.Require().Error(err)
	s.Assert().True(errors.IsUnavailable(err))
}

func (s *OrchestratorTestSuite) TestGenerateScriptInvalidInput() {
	testCases := []struct {
		name     string
		mutate   func(*generation.GenerateScriptInput)
		contains string
		config   bool
	}{
		{
			name:     "unknown subject",
			mutate:   func(in *generation.GenerateScriptInput) { in.Request.Subject = "astrology" },
			contains: "unsupported subject",
			config:   true,
		},
		{
			name:     "grade too high",
			mutate:   func(in *generation.GenerateScriptInput) { in.Request.GradeLevel = 13 },
			contains: "request.grade_level",
		},
		{
			name:     "difficulty zero",
			mutate:   func(in *generation.GenerateScriptInput) { in.Request.Difficulty = 0 },
			contains: "request.difficulty",
		},
		{
			name:     "blank topic",
			mutate:   func(in *generation.GenerateScriptInput) { in.Request.Topic = "   " },
			contains: "request.topic",
		},
		{
			name:     "missing teacher",
			mutate:   func(in *generation.GenerateScriptInput) { in.Teacher.Name = "" },
			contains: "teacher.name",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			input := generateInput()
			tc.mutate(input)

			_, err := s.orchestrator.GenerateScript(s.ctx, input)
			s.Require().Error(err)
			s.Assert().Contains(err.Error(), tc.contains)
			if tc.config {
				s.Assert().True(errors.IsConfiguration(err))
			} else {
				s.Assert().True(errors.IsInvalidArgument(err))
			}
		})
	}
}

func (s *OrchestratorTestSuite) TestGenerateScriptWithoutLLM() {
	subjectRegistry, err := subjects.NewRegistry(nil)
	s.Require().NoError(err)
	v, err := validator.New(nil)
	s.Require().NoError(err)

	orch, err := generation.NewOrchestrator(&generation.Config{
		TemplateRepo: s.mockTemplate,
		OutputRepo:   s.mockOutput,
		Registry:     subjectRegistry,
		Validator:    v,
		IDGenerator:  idgen.NewSequential("req"),
		OutputDir:    s.outputDir,
	})
	s.Require().NoError(err)

	_, err = orch.GenerateScript(s.ctx, generateInput())
	s.Require().Error(err)
	s.Assert().Equal(errors.CodeFailedPrecondition, errors.GetCode(err))
}

func (s *OrchestratorTestSuite) TestTransformFromFile() {
	source := testutils.WriteFile(s.T(), s.T().TempDir(), "lessons/maths/addition.lua", testutils.MathLessonSource)

	mocks.ExpectTemplate(s.mockTemplate, lesson.SubjectMathematics, "MathQuest", mathTemplate())

	var written string
	expectedPath := filepath.Join(s.outputDir, "Mathematics", "addition_adventure.lua")
	s.mockOutput.EXPECT().
		WriteScript(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *output.WriteScriptInput) (*output.WriteScriptOutput, error) {
			s.Assert().Equal(expectedPath, input.Path)
			written = input.Content
			return &output.WriteScriptOutput{Path: input.Path}, nil
		})

	out, err := s.orchestrator.TransformFromFile(s.ctx, &generation.TransformFromFileInput{SourcePath: source})
	s.Require().NoError(err)

	s.Assert().Equal(lesson.SubjectMathematics, out.Subject)
	s.Assert().Equal(2, out.Items)
	s.Assert().Equal(expectedPath, out.Path)
	s.Assert().Equal(written, out.Script)
	s.Assert().False(content.HasMarkers(out.Script))
	s.Assert().Contains(out.Script, "{name} has {a} apples and finds {b} more")
	s.Assert().Contains(out.Script, "function MathQuestArena:checkAnswer")
	s.Assert().NoError(content.CheckBalance(out.Script))

	count, err := testutil.GatherAndCount(s.registry, "forge_transforms_total")
	s.Require().NoError(err)
	s.Assert().Equal(1, count)
}

func (s *OrchestratorTestSuite) TestTransformFromFileScoresTitle() {
	source := testutils.WriteFile(s.T(), s.T().TempDir(), "lessons/maths/addition.lua",
		testutils.MathLessonSource+"-- next unit: multiplication\n")

	mocks.ExpectTemplate(s.mockTemplate, lesson.SubjectMathematics, "MathQuest", mathTemplate())
	mocks.ExpectScriptWrite(s.mockOutput)

	out, err := s.orchestrator.TransformFromFile(s.ctx, &generation.TransformFromFileInput{SourcePath: source})
	s.Require().NoError(err)
	s.Assert().Contains(out.Script, "name = \"Addition Challenge\",\n            difficulty = 1,")
}

func (s *OrchestratorTestSuite) TestTransformFromFileOverrides() {
	source := testutils.WriteFile(s.T(), s.T().TempDir(), "lesson.lua", testutils.MathLessonSource)
	otherDir := s.T().TempDir()

	mocks.ExpectTemplate(s.mockTemplate, lesson.SubjectMathematics, "MathQuest", mathTemplate())
	mocks.ExpectScriptWrite(s.mockOutput)

	out, err := s.orchestrator.TransformFromFile(s.ctx, &generation.TransformFromFileInput{
		SourcePath: source,
		Subject:    "math",
		OutputDir:  otherDir,
	})
	s.Require().NoError(err)
	s.Assert().Equal(filepath.Join(otherDir, "Mathematics", "addition_adventure.lua"), out.Path)
}

func (s *OrchestratorTestSuite) TestTransformFromFileErrors() {
	dir := s.T().TempDir()
	undetectable := testutils.WriteFile(s.T(), dir, "lesson.lua", testutils.MathLessonSource)
	untitled := testutils.WriteFile(s.T(), dir, "maths/untitled.lua",
		strings.Replace(testutils.MathLessonSource, `title = "Addition Adventure",`, "", 1))

	testCases := []struct {
		name  string
		input *generation.TransformFromFileInput
		check func(error) bool
	}{
		{
			name:  "missing file",
			input: &generation.TransformFromFileInput{SourcePath: filepath.Join(dir, "maths", "absent.lua")},
			check: errors.IsExtraction,
		},
		{
			name:  "no subject in path",
			input: &generation.TransformFromFileInput{SourcePath: undetectable},
			check: errors.IsAmbiguousSubject,
		},
		{
			name:  "unknown subject override",
			input: &generation.TransformFromFileInput{SourcePath: undetectable, Subject: "music"},
			check: errors.IsConfiguration,
		},
		{
			name:  "missing title",
			input: &generation.TransformFromFileInput{SourcePath: untitled},
			check: errors.IsExtraction,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.TransformFromFile(s.ctx, tc.input)
			s.Require().Error(err)
			s.Assert().True(tc.check(err), err.Error())
		})
	}
}

func (s *OrchestratorTestSuite) TestTransformFromFileBrokenTemplate() {
	source := testutils.WriteFile(s.T(), s.T().TempDir(), "maths/addition.lua", testutils.MathLessonSource)

	broken := mathTemplate()
	broken.Content = strings.Replace(broken.Content, "-- [INJECT_PROBLEMS]", "", 1)
	mocks.ExpectTemplate(s.mockTemplate, lesson.SubjectMathematics, "MathQuest", broken)

	_, err := s.orchestrator.TransformFromFile(s.ctx, &generation.TransformFromFileInput{SourcePath: source})
	s.Require().Error(err)
	s.Assert().True(errors.IsInjection(err))
	s.Assert().Equal(broken.Path, errors.GetMeta(err)["path"])

	expected := `
# HELP forge_transforms_total Source-to-template transforms by subject and outcome
# TYPE forge_transforms_total counter
forge_transforms_total{outcome="error",subject="mathematics"} 1
`
	s.Assert().NoError(testutil.GatherAndCompare(s.registry, strings.NewReader(expected), "forge_transforms_total"))
}

func (s *OrchestratorTestSuite) TestValidateScript() {
	out, err := s.orchestrator.ValidateScript(s.ctx, &generation.ValidateScriptInput{
		Script:     `os.execute("rm -rf /")`,
		Subject:    "Mathematics",
		GradeLevel: 3,
		Difficulty: 1,
	})
	s.Require().NoError(err)
	s.Assert().False(out.Result.IsValid)

	var safety int
	for _, f := range out.Result.Errors {
		if f.Type == validator.TypeSafety {
			safety++
		}
	}
	s.Assert().Positive(safety)

	_, err = s.orchestrator.ValidateScript(s.ctx, &generation.ValidateScriptInput{Script: "x = 1", Subject: "music"})
	s.Assert().True(errors.IsConfiguration(err))
}

func (s *OrchestratorTestSuite) TestListTemplates() {
	s.mockTemplate.EXPECT().
		ListForSubject(gomock.Any(), &templates.ListForSubjectInput{Subject: lesson.SubjectMathematics}).
		Return(&templates.ListForSubjectOutput{Templates: []*lesson.Template{mathTemplate()}}, nil)

	out, err := s.orchestrator.ListTemplates(s.ctx, &generation.ListTemplatesInput{Subject: "maths"})
	s.Require().NoError(err)
	s.Assert().Len(out.Templates, 1)
}

func (s *OrchestratorTestSuite) TestListCompatibleTemplates() {
	s.Run("passes the filter through", func() {
		s.expectCompatible(mathTemplate())

		out, err := s.orchestrator.ListCompatibleTemplates(s.ctx, &generation.ListCompatibleTemplatesInput{
			Subject:    "mathematics",
			GradeLevel: 3,
			Difficulty: 2,
		})
		s.Require().NoError(err)
		s.Assert().Len(out.Templates, 1)
	})

	s.Run("rejects out of range values", func() {
		_, err := s.orchestrator.ListCompatibleTemplates(s.ctx, &generation.ListCompatibleTemplatesInput{
			Subject:    "mathematics",
			GradeLevel: 0,
			Difficulty: 4,
		})
		s.Require().Error(err)
		s.Assert().True(errors.IsInvalidArgument(err))
		s.Assert().Contains(err.Error(), "grade_level")
		s.Assert().Contains(err.Error(), "difficulty")
	})
}

func (s *OrchestratorTestSuite) TestUpdateTemplateMetadata() {
	updates := map[string]any{"max_grade": 8}
	updated := mathTemplate()
	updated.Metadata.MaxGrade = 8

	s.mockTemplate.EXPECT().
		UpdateMetadata(gomock.Any(), &templates.UpdateMetadataInput{
			Subject: lesson.SubjectMathematics,
			Name:    "MathQuest",
			Updates: updates,
		}).
		Return(&templates.UpdateMetadataOutput{Template: updated}, nil)

	out, err := s.orchestrator.UpdateTemplateMetadata(s.ctx, &generation.UpdateTemplateMetadataInput{
		Subject: "Mathematics",
		Name:    "MathQuest",
		Updates: updates,
	})
	s.Require().NoError(err)
	s.Assert().Equal(8, out.Template.Metadata.MaxGrade)

	_, err = s.orchestrator.UpdateTemplateMetadata(s.ctx, &generation.UpdateTemplateMetadataInput{
		Subject: "Mathematics",
		Name:    "MathQuest",
	})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestUpdateTemplateMetadataNotFound() {
	s.mockTemplate.EXPECT().
		UpdateMetadata(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("template not found"))

	_, err := s.orchestrator.UpdateTemplateMetadata(s.ctx, &generation.UpdateTemplateMetadataInput{
		Subject: "Mathematics",
		Name:    "Missing",
		Updates: map[string]any{"author": "x"},
	})
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestPreviewContent() {
	out, err := s.orchestrator.PreviewContent(s.ctx, &generation.PreviewContentInput{
		Subject: "mathematics",
		Text:    testutils.MathLessonSource,
		Samples: 4,
	})
	s.Require().NoError(err)

	s.Assert().Equal(lesson.SubjectMathematics, out.Subject)
	s.Assert().Equal("Addition Adventure", out.Common.Title)
	s.Assert().Len(out.Items, 2)
	s.Assert().Contains(out.Fragments, "problems")
	s.Require().Len(out.Samples, 4)
	s.Assert().Equal("1 + 1 = ?", out.Samples[0])
	s.Assert().Equal("Alex has 1 apples and finds 1 more", out.Samples[1])
	s.Assert().Equal(out.Samples[0], out.Samples[2])
}

func (s *OrchestratorTestSuite) TestPreviewContentDefaultsAndErrors() {
	s.Run("default sample count", func() {
		out, err := s.orchestrator.PreviewContent(s.ctx, &generation.PreviewContentInput{
			Subject: "mathematics",
			Text:    testutils.MathLessonSource,
		})
		s.Require().NoError(err)
		s.Assert().Len(out.Samples, generation.DefaultSampleCount)
	})

	s.Run("negative sample count", func() {
		_, err := s.orchestrator.PreviewContent(s.ctx, &generation.PreviewContentInput{
			Subject: "mathematics",
			Samples: -1,
		})
		s.Assert().True(errors.IsInvalidArgument(err))
	})
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
