package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// MathQuestTemplate is a minimal mathematics template
const MathQuestTemplate = `-- MathQuest arena
local MathQuestArena = {}
MathQuestArena.__index = MathQuestArena

function MathQuestArena.new(difficulty)
    local self = setmetatable({}, MathQuestArena)
    self.difficulty = difficulty or 1
    self.score = 0
    self.dungeons = {
        -- [INJECT_DUNGEONS]
    }
    return self
end

-- [INJECT_PROBLEMS]

function MathQuestArena:generateProblem(topic, difficulty)
    return { question = "1 + 1 = ?", answer = 2, topic = topic, difficulty = difficulty }
end

function MathQuestArena:checkAnswer(problem, answer)
    if problem.answer == answer then
        self.score = self.score + 1
        return true
    end
    return false
end

function MathQuestArena:init()
    self.currentDungeon = nil
    return self
end

return MathQuestArena
`

// BioLabTemplate is a minimal science template
const BioLabTemplate = `-- BioLab simulator
local BioLabSimulator = {}
BioLabSimulator.__index = BioLabSimulator

BioLabSimulator.experiments = {
    -- [INJECT_EXPERIMENTS]
}

-- [INJECT_EQUIPMENT_SETUP]

function BioLabSimulator.new()
    local self = setmetatable({}, BioLabSimulator)
    self.results = {}
    return self
end

-- [INJECT_EXPERIMENT_GENERATOR]

function BioLabSimulator:generateExperiment(topic)
    return nil
end

function BioLabSimulator:setupExperiment(name)
    local experiment = self.experiments[name]
    if experiment == nil then
        return false
    end
    self.current = experiment
    return self:safetyChecks()
end

function BioLabSimulator:safetyChecks()
    local setup = BioLabSimulator.equipmentSetup or {}
    return setup.safetyLevel ~= nil
end

function BioLabSimulator:checkResults(observed)
    table.insert(self.results, observed)
    return #self.results
end

function BioLabSimulator:init()
    self.current = nil
    return self
end

return BioLabSimulator
`

// HistoryQuestTemplate is a minimal history template
const HistoryQuestTemplate = `-- HistoryQuest timeline game
local HistoryQuest = {}
HistoryQuest.__index = HistoryQuest

HistoryQuest.scenarios = {
    -- [INJECT_SCENARIOS]
}

HistoryQuest.artifacts = {
    -- [INJECT_ARTIFACTS]
}

HistoryQuest.activities = {
    -- [INJECT_ACTIVITIES]
}

function HistoryQuest:loadHistoricalData()
    local data = { scenarios = self.scenarios, artifacts = self.artifacts }
    return data
end

function HistoryQuest:displayTimeline()
    local lines = {}
    for index, scenario in ipairs(self.scenarios) do
        lines[index] = scenario.period .. ": " .. scenario.template
    end
    return table.concat(lines, "\n")
end

function HistoryQuest:checkHistoricalAccuracy(answer, expected)
    if answer == expected then
        return true
    end
    return false
end

function HistoryQuest:start()
    self.progress = 0
    return self
end

return HistoryQuest
`

// LanguageQuestTemplate is a minimal language arts template
const LanguageQuestTemplate = `-- LanguageQuest word game
local LanguageQuest = {}
LanguageQuest.__index = LanguageQuest

LanguageQuest.exercises = {
    -- [INJECT_EXERCISES]
}

LanguageQuest.skills = {
    -- [INJECT_SKILLS]
}

LanguageQuest.resources = {
    -- [INJECT_RESOURCES]
}

function LanguageQuest:processText(text)
    local words = {}
    for word in string.gmatch(text, "%a+") do
        table.insert(words, word)
    end
    return words
end

function LanguageQuest:checkGrammar(sentence)
    local first = string.sub(sentence, 1, 1)
    return first == string.upper(first)
end

function LanguageQuest:vocabularyCheck(word, meaning)
    local entry = self.glossary and self.glossary[word]
    return entry == meaning
end

function LanguageQuest:init()
    self.glossary = {}
    return self
end

return LanguageQuest
`

// MathLessonSource is a lesson file carrying every common field and one
// extractable problem.
const MathLessonSource = `-- addition lesson
local lesson = {
    title = "Addition Adventure",
    description = "Practice adding small numbers",
    topics = {"addition", "counting"},
    difficulty = 1,
}

local problems = {
    { type = "addition", template = "{a} + {b} = ?", range = { min = 1, max = 10 } },
    { type = "addition_word", template = "{name} has {a} apples and finds {b} more", range = { min = 1, max = 5 } },
}

return lesson
`

// TemplateFixtures maps <SubjectDir>/<file> to template content
func TemplateFixtures() map[string]string {
	return map[string]string{
		"Mathematics/MathQuest.lua":      MathQuestTemplate,
		"Science/BioLabSimulator.lua":    BioLabTemplate,
		"History/HistoryQuest.lua":       HistoryQuestTemplate,
		"LanguageArts/LanguageQuest.lua": LanguageQuestTemplate,
	}
}

// WriteFile writes content under root, creating parent directories, and
// returns the full path.
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// WriteTemplateTree writes every template fixture under a fresh temp dir
// and returns its root.
func WriteTemplateTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range TemplateFixtures() {
		WriteFile(t, root, rel, content)
	}
	return root
}
