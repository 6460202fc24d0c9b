package lesson

import "time"

// TeacherProfile describes the teacher a script is generated for
type TeacherProfile struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	School                 string   `json:"school"`
	GradeLevel             int      `json:"grade_level"`
	Subjects               []string `json:"subjects"`
	PreferredTeachingStyle string   `json:"preferred_teaching_style"`
}

// GameRequest is what the teacher asked for
type GameRequest struct {
	Subject            Subject  `json:"subject"`
	Topic              string   `json:"topic"`
	LearningObjectives []string `json:"learning_objectives"`
	GradeLevel         int      `json:"grade_level"`
	Difficulty         int      `json:"difficulty"`
	CustomContent      string   `json:"custom_content,omitempty"`
	GameType           string   `json:"game_type,omitempty"`
	TimeLimit          *int     `json:"time_limit,omitempty"`
}

// GenerationRequest is the snapshot written before generation and the
// context handed to the LLM client.
type GenerationRequest struct {
	ID        string         `json:"id"`
	Teacher   TeacherProfile `json:"teacher"`
	Request   GameRequest    `json:"request"`
	Timestamp time.Time      `json:"timestamp"`
}
