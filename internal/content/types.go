package content

// Item is one structured record pulled out of source text: a math problem,
// an experiment, a history scenario or a language exercise.
type Item interface {
	ItemType() string
	ItemTemplate() string
}

// Ranged is implemented by items that carry a numeric range
type Ranged interface {
	NumberRange() NumberRange
}

// NumberRange is an inclusive numeric range
type NumberRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// MathProblem is a problem template with the range its numbers are drawn from
type MathProblem struct {
	Type     string      `json:"type"`
	Template string      `json:"template"`
	Range    NumberRange `json:"range"`
}

func (p MathProblem) ItemType() string         { return p.Type }
func (p MathProblem) ItemTemplate() string     { return p.Template }
func (p MathProblem) NumberRange() NumberRange { return p.Range }

// Experiment is a science lab activity
type Experiment struct {
	Type      string   `json:"type"`
	Template  string   `json:"template"`
	Equipment []string `json:"equipment"`
	Safety    []string `json:"safety"`
}

func (e Experiment) ItemType() string     { return e.Type }
func (e Experiment) ItemTemplate() string { return e.Template }

// Scenario is a history role-play scenario
type Scenario struct {
	Type     string   `json:"type"`
	Template string   `json:"template"`
	Period   string   `json:"period"`
	Figures  []string `json:"figures"`
}

func (s Scenario) ItemType() string     { return s.Type }
func (s Scenario) ItemTemplate() string { return s.Template }

// Exercise is a language arts exercise
type Exercise struct {
	Type       string   `json:"type"`
	Template   string   `json:"template"`
	Skills     []string `json:"skills"`
	Activities []string `json:"activities"`
}

func (e Exercise) ItemType() string     { return e.Type }
func (e Exercise) ItemTemplate() string { return e.Template }

// CommonFields are the subject-independent fields of a source file.
// Absent fields keep their zero value; Difficulty is nil when absent.
type CommonFields struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	Difficulty  *int     `json:"difficulty,omitempty"`
}

// Missing lists the common fields that were not found
func (c CommonFields) Missing() []string {
	var missing []string
	if c.Title == "" {
		missing = append(missing, "title")
	}
	if c.Description == "" {
		missing = append(missing, "description")
	}
	if len(c.Topics) == 0 {
		missing = append(missing, "topics")
	}
	if c.Difficulty == nil {
		missing = append(missing, "difficulty")
	}
	return missing
}

// ExtractedContent is the subject-specific content of a source file: the
// items of the subject's content type plus the other required sections as
// string lists.
type ExtractedContent struct {
	ContentType string
	Items       []Item
	Sections    map[string][]string
}

// Has reports whether a section was found. The content-type section is
// always present, even when no item matched.
func (c *ExtractedContent) Has(section string) bool {
	if section == c.ContentType {
		return true
	}
	_, ok := c.Sections[section]
	return ok
}

// Missing lists the required sections that were not found
func (c *ExtractedContent) Missing(required []string) []string {
	var missing []string
	for _, section := range required {
		if !c.Has(section) {
			missing = append(missing, section)
		}
	}
	return missing
}

// Section returns a section's entries, nil when absent
func (c *ExtractedContent) Section(name string) []string {
	return c.Sections[name]
}
