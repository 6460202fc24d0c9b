// Package scriptcache stores generated scripts keyed by a fingerprint of the
// normalized request, the template and the current day.
package scriptcache

//go:generate mockgen -destination=mock/mock_repository.go -package=scriptcachemock github.com/KirkDiggler/lesson-forge/internal/repositories/scriptcache Repository

import (
	"context"
	"sort"
	"time"

	"github.com/KirkDiggler/lesson-forge/internal/entities/lesson"
)

const (
	// KeyPrefix namespaces cache entries in Redis
	KeyPrefix = "script_cache:"

	// DefaultTTL is how long an entry lives when the config leaves TTL unset
	DefaultTTL = 24 * time.Hour
)

// Repository defines the script cache
type Repository interface {
	// Get returns the cached response for the request and template
	// Returns errors.NotFound on a miss or an expired entry
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Set stores a response for the request and template
	Set(ctx context.Context, input *SetInput) (*SetOutput, error)

	// Clear removes every entry
	Clear(ctx context.Context) (*ClearOutput, error)

	// ClearExpired removes entries older than the TTL
	ClearExpired(ctx context.Context) (*ClearOutput, error)

	// Stats counts entries and lists the subjects they cover
	Stats(ctx context.Context) (*StatsOutput, error)
}

// CacheEntry is a stored LLM response
type CacheEntry struct {
	Fingerprint string        `json:"fingerprint"`
	Response    string        `json:"response"`
	CreatedAt   time.Time     `json:"created_at"`
	Metadata    EntryMetadata `json:"metadata"`
}

// EntryMetadata describes what produced an entry
type EntryMetadata struct {
	Subject      string `json:"subject"`
	GradeLevel   int    `json:"grade_level"`
	Difficulty   int    `json:"difficulty"`
	TemplateHash string `json:"template_hash"`
}

// GetInput identifies an entry
type GetInput struct {
	Request         *lesson.GenerationRequest
	TemplateContent string
}

// GetOutput holds the entry
type GetOutput struct {
	Entry *CacheEntry
}

// SetInput holds the response to store
type SetInput struct {
	Request         *lesson.GenerationRequest
	TemplateContent string
	Response        string
}

// SetOutput holds the stored entry
type SetOutput struct {
	Entry *CacheEntry
}

// ClearOutput reports how many entries were removed
type ClearOutput struct {
	Removed int
}

// StatsOutput summarizes the cache. Entries that cannot be decoded are not
// counted.
type StatsOutput struct {
	Total    int
	Expired  int
	Active   int
	Subjects []string
}

func (e *CacheEntry) expired(now time.Time, ttl time.Duration) bool {
	return !now.Before(e.CreatedAt.Add(ttl))
}

func buildStats(entries []*CacheEntry, now time.Time, ttl time.Duration) *StatsOutput {
	out := &StatsOutput{Subjects: []string{}}
	seen := make(map[string]bool)
	for _, e := range entries {
		out.Total++
		if e.expired(now, ttl) {
			out.Expired++
		}
		if s := e.Metadata.Subject; s != "" && !seen[s] {
			seen[s] = true
			out.Subjects = append(out.Subjects, s)
		}
	}
	out.Active = out.Total - out.Expired
	sort.Strings(out.Subjects)
	return out
}
