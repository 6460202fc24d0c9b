package lesson

// DefaultLMSDifficulty applies when an LMS record carries no difficulty
const DefaultLMSDifficulty = DifficultyEasy

// LMSRecord is the flat course record a learning management system exports.
// It carries the teacher and the request in one object.
type LMSRecord struct {
	TeacherID     string   `json:"teacher_id"`
	TeacherName   string   `json:"teacher_name"`
	School        string   `json:"school"`
	GradeLevel    int      `json:"grade_level"`
	Subjects      []string `json:"subjects"`
	TeachingStyle string   `json:"teaching_style"`
	Subject       Subject  `json:"subject"`
	Topic         string   `json:"topic"`
	Objectives    []string `json:"objectives"`
	Difficulty    int      `json:"difficulty"`
	CustomContent string   `json:"custom_content,omitempty"`
	GameType      string   `json:"game_type,omitempty"`
	TimeLimit     *int     `json:"time_limit,omitempty"`
}

// Teacher returns the teacher half of the record
func (r *LMSRecord) Teacher() TeacherProfile {
	return TeacherProfile{
		ID:                     r.TeacherID,
		Name:                   r.TeacherName,
		School:                 r.School,
		GradeLevel:             r.GradeLevel,
		Subjects:               r.Subjects,
		PreferredTeachingStyle: r.TeachingStyle,
	}
}

// GameRequest returns the request half of the record. The record's grade
// is both the teacher's and the request's.
func (r *LMSRecord) GameRequest() GameRequest {
	difficulty := r.Difficulty
	if difficulty == 0 {
		difficulty = DefaultLMSDifficulty
	}
	return GameRequest{
		Subject:            r.Subject,
		Topic:              r.Topic,
		LearningObjectives: r.Objectives,
		GradeLevel:         r.GradeLevel,
		Difficulty:         difficulty,
		CustomContent:      r.CustomContent,
		GameType:           r.GameType,
		TimeLimit:          r.TimeLimit,
	}
}
