package scriptcache

import (
	"crypto/md5" // #nosec G501 // cache key, not a security boundary
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
	"github.com/KirkDiggler/lesson-forge/internal/errors"
	"github.com/KirkDiggler/lesson-forge/internal/pkg/clock"
)

type normalizedRequest struct {
	Teacher lesson.TeacherProfile `json:"teacher"`
	Request lesson.GameRequest    `json:"request"`
}

type envelope struct {
	GameData  normalizedRequest `json:"game_data"`
	Template  string            `json:"template"`
	Timestamp string            `json:"timestamp"`
}

// Fingerprint keys a request against a template for one day. The request ID
// and timestamp are ignored; subject and topic compare case-insensitively.
func Fingerprint(req *lesson.GenerationRequest, templateContent string, day time.Time) (string, error) {
	if req == nil {
		return "", errors.InvalidArgument("request is required")
	}

	normalized := normalizedRequest{
		Teacher: req.Teacher,
		Request: req.Request,
	}
	normalized.Request.Subject = lesson.Subject(strings.ToLower(strings.TrimSpace(string(req.Request.Subject))))
	normalized.Request.Topic = strings.ToLower(strings.TrimSpace(req.Request.Topic))

	b, err := json.Marshal(envelope{
		GameData:  normalized,
		Template:  templateContent,
		Timestamp: clock.DayStamp(day),
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal fingerprint")
	}

	return hashHex(b), nil
}

func hashHex(b []byte) string {
	sum := md5.Sum(b) // #nosec G401
	return hex.EncodeToString(sum[:])
}

func newEntry(fingerprint string, input *SetInput, now time.Time) *CacheEntry {
	return &CacheEntry{
		Fingerprint: fingerprint,
		Response:    input.Response,
		CreatedAt:   now,
		Metadata: EntryMetadata{
			Subject:      string(input.Request.Request.Subject),
			GradeLevel:   input.Request.Request.GradeLevel,
			Difficulty:   input.Request.Request.Difficulty,
			TemplateHash: hashHex([]byte(input.TemplateContent)),
		},
	}
}

func validateSet(input *SetInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.Request == nil {
		vb.RequiredField("request")
	}
	errors.ValidateRequired("response", input.Response, vb)
	return vb.Build()
}

func validateGet(input *GetInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}
	if input.Request == nil {
		return errors.InvalidArgument("request is required")
	}
	return nil
}
