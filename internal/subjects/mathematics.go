package subjects

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/lesson-forge/internal/content"
)

// Dungeon is one arena area of the math game, one per topic
type Dungeon struct {
	Key        string
	Name       string
	Difficulty int
	Monsters   []string
	Boss       string
	Topics     []string
}

// MathGameData is the mathematics bundle: dungeons and the problem
// generator.
type MathGameData struct {
	Title      string
	Difficulty int
	Topics     []string
	Dungeons   []Dungeon
	Problems   []content.MathProblem
}

var _ GameData = (*MathGameData)(nil)

type mathPlugin struct {
	*base
}

func newMathPlugin(cfg Config, scorer *content.DifficultyScorer) (Plugin, error) {
	b, err := newBase(cfg, scorer, buildMathProblem)
	if err != nil {
		return nil, err
	}
	return &mathPlugin{base: b}, nil
}

func buildMathProblem(match []string) (content.Item, error) {
	lo, err := content.Atoi("range.min", match[3])
	if err != nil {
		return nil, err
	}
	hi, err := content.Atoi("range.max", match[4])
	if err != nil {
		return nil, err
	}
	return content.MathProblem{
		Type:     match[1],
		Template: match[2],
		Range:    content.NumberRange{Min: lo, Max: hi},
	}, nil
}

// Transform scores the text, builds a dungeon per topic and uses either
// the extracted problems or ones generated from the catalog.
func (p *mathPlugin) Transform(input *TransformInput) (GameData, error) {
	if input == nil {
		input = &TransformInput{}
	}

	difficulty := p.score(input)
	topics := topicsOrFallback(input, "basic_math")

	var problems []content.MathProblem
	for _, item := range input.items() {
		if mp, ok := item.(content.MathProblem); ok {
			problems = append(problems, mp)
		}
	}
	if len(problems) == 0 {
		problems = GenerateProblems(input.scoreText(), difficulty)
	}

	data := &MathGameData{
		Title:      input.Common.Title,
		Difficulty: difficulty,
		Topics:     topics,
		Problems:   problems,
	}
	for _, topic := range topics {
		label := content.TitleCase(strings.ReplaceAll(topic, "_", " "))
		data.Dungeons = append(data.Dungeons, Dungeon{
			Key:        content.CleanName(topic),
			Name:       label + " Challenge",
			Difficulty: difficulty,
			Monsters:   []string{label + " Novice", label + " Adept", label + " Master"},
			Boss:       label + " Grandmaster",
			Topics:     []string{topic},
		})
	}

	return data, nil
}

func (d *MathGameData) Items() []content.Item {
	items := make([]content.Item, len(d.Problems))
	for i, p := range d.Problems {
		items[i] = p
	}
	return items
}

func (d *MathGameData) Fragments() map[string]string {
	return map[string]string{
		"dungeons": d.renderDungeons(),
		"problems": d.renderProblems(),
	}
}

func (d *MathGameData) renderDungeons() string {
	var sb strings.Builder
	for _, dg := range d.Dungeons {
		fmt.Fprintf(&sb, "        [%s] = {\n", content.LuaString(dg.Key))
		fmt.Fprintf(&sb, "            name = %s,\n", content.LuaString(dg.Name))
		fmt.Fprintf(&sb, "            difficulty = %d,\n", dg.Difficulty)
		fmt.Fprintf(&sb, "            monsters = %s,\n", content.LuaStringList(dg.Monsters))
		fmt.Fprintf(&sb, "            boss = %s,\n", content.LuaString(dg.Boss))
		fmt.Fprintf(&sb, "            topics = %s,\n", content.LuaStringList(dg.Topics))
		sb.WriteString("        },\n")
	}
	return sb.String()
}

func (d *MathGameData) renderProblems() string {
	var sb strings.Builder
	sb.WriteString("MathQuestArena.problemTemplates = {\n")
	for _, p := range d.Problems {
		fmt.Fprintf(&sb, "    { type = %s, template = %s, range = { min = %d, max = %d } },\n",
			content.LuaString(p.Type), content.LuaString(p.Template), p.Range.Min, p.Range.Max)
	}
	sb.WriteString("}\n\n")
	sb.WriteString(mathGenerator)
	return sb.String()
}

// mathGenerator replaces MathQuestArena:generateProblem. It picks a
// template for the topic, rolls its placeholders and computes the answer.
// For templates with a "?" operand the answer is the operand it hides.
const mathGenerator = `function MathQuestArena:generateProblem(topic, difficulty)
    local level = difficulty or 1
    local pool = {}
    for _, entry in ipairs(self.problemTemplates) do
        if entry.type == topic or entry.type == topic .. "_word" then
            table.insert(pool, entry)
        end
    end
    if #pool == 0 then
        pool = self.problemTemplates
    end

    local entry = pool[math.random(#pool)]
    local kind = entry.type:gsub("_word$", "")
    local names = { "Alex", "Sam", "Jordan", "Taylor", "Casey", "Morgan" }
    local function roll()
        return math.random(entry.range.min, entry.range.max)
    end

    local lhs, rhs = entry.template:match("^(.-)=(.*)$")
    lhs = lhs or entry.template
    local function uses(key)
        return lhs:find("{" .. key .. "}", 1, true) ~= nil
    end

    local values = { a = roll(), b = roll(), c = roll(), d = roll() }
    local total
    if kind == "subtraction" then
        if values.b > values.a then
            values.a, values.b = values.b, values.a
        end
        total = values.a - values.b
        if uses("c") then
            total = total - values.c
        end
        if uses("d") then
            total = total - values.d
        end
    elseif kind == "multiplication" then
        total = values.a * values.b
        if uses("c") then
            if lhs:find("+", 1, true) then
                total = total + values.c
            else
                total = total * values.c
            end
        end
    elseif kind == "division" then
        total = values.a
        if uses("c") then
            total = total + values.c
        end
        values.result = values.a * values.b
    else
        total = values.a + values.b
        if uses("c") then
            total = total + values.c
        end
        if uses("d") then
            total = total + values.d
        end
    end
    values.result = values.result or total

    local answer = total
    local target = rhs and rhs:match("^%s*{(%w+)}%s*$")
    if target then
        local operands = { "a", "b", "c", "d" }
        if kind == "division" then
            operands = { "result", "b", "c" }
        end
        for _, key in ipairs(operands) do
            if not uses(key) then
                answer = values[key]
                break
            end
        end
        values[target] = total
    end
    values.name = names[math.random(#names)]

    local question = entry.template:gsub("{(%w+)}", function(key)
        return tostring(values[key] or key)
    end)

    return {
        question = question,
        answer = answer,
        topic = topic,
        difficulty = level,
    }
end
`
