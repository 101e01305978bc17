package backend

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"reviewlens/internal/core/chart"

	json "github.com/goccy/go-json"
)

// Timestamp decodes the backend's date strings, with or without zone; null stays zero
type Timestamp struct{ time.Time }

// UnmarshalJSON accepts RFC 3339, naive datetimes and plain dates
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	v, err := chart.ParseDate(s)
	if err != nil {
		return err
	}
	t.Time = v
	return nil
}

// MarshalJSON writes RFC 3339, null for the zero value
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// Named is an id and display name, used for categories and developers
type Named struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Game is the game detail record
type Game struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"image_url"`
	ReleaseDate Timestamp `json:"release_date"`
}

// GameListItem is one row of the games listing
type GameListItem struct {
	Game
	Categories []Named `json:"categories"`
	Developers []Named `json:"developers"`
	Score      float64 `json:"score"`
	NumReviews int64   `json:"num_reviews"`
}

// GameList is a page of games and the unpaged total
type GameList struct {
	Games        []GameListItem `json:"games"`
	QuerySummary struct {
		Total int64 `json:"total"`
	} `json:"query_summary"`
}

// Total is the match count before paging
func (l GameList) Total() int64 { return l.QuerySummary.Total }

// Sort fields accepted by the games listing
const (
	SortName        = "name"
	SortScore       = "score"
	SortNumReviews  = "num_reviews"
	SortReleaseDate = "release_date"
)

// GameFilter is the games listing query
// Sort is field=asc|desc, e.g. score=desc
type GameFilter struct {
	Limit        int
	Offset       int
	Name         string
	Sort         string
	MinScore     *float64
	MaxScore     *float64
	MinReviews   *int64
	MaxReviews   *int64
	MinRelease   time.Time
	MaxRelease   time.Time
	CategoryIDs  []int
	DeveloperIDs []int
}

// Values encodes f the way GET /games/ reads it
func (f GameFilter) Values() url.Values {
	q := url.Values{}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	if s := strings.TrimSpace(f.Name); s != "" {
		q.Set("name", s)
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	if f.MinScore != nil {
		q.Set("min_score", strconv.FormatFloat(*f.MinScore, 'f', -1, 64))
	}
	if f.MaxScore != nil {
		q.Set("max_score", strconv.FormatFloat(*f.MaxScore, 'f', -1, 64))
	}
	if f.MinReviews != nil {
		q.Set("min_num_reviews", strconv.FormatInt(*f.MinReviews, 10))
	}
	if f.MaxReviews != nil {
		q.Set("max_num_reviews", strconv.FormatInt(*f.MaxReviews, 10))
	}
	if !f.MinRelease.IsZero() {
		q.Set("min_release_date", f.MinRelease.Format("2006-01-02"))
	}
	if !f.MaxRelease.IsZero() {
		q.Set("max_release_date", f.MaxRelease.Format("2006-01-02"))
	}
	if len(f.CategoryIDs) > 0 {
		q.Set("categories", joinInts(f.CategoryIDs))
	}
	if len(f.DeveloperIDs) > 0 {
		q.Set("developers", joinInts(f.DeveloperIDs))
	}
	return q
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// Aspect categories the backend scores
var Aspects = []string{"overall", "gameplay", "performance_bugs", "price", "audio_visuals", "community"}

// ReviewAspect is one aspect mention in a review
type ReviewAspect struct {
	Category string  `json:"category"`
	Polarity string  `json:"polarity"`
	Term     string  `json:"term,omitempty"`
	Score    float64 `json:"score,omitempty"`
}

// Review is a single scored review
type Review struct {
	ID                string         `json:"id"`
	GameID            int            `json:"game_id"`
	Text              string         `json:"text"`
	Summary           string         `json:"summary"`
	Language          string         `json:"language"`
	Score             float64        `json:"score"`
	CreatedAt         Timestamp      `json:"created_at"`
	Source            *Named         `json:"source"`
	Aspects           []ReviewAspect `json:"aspects"`
	AspectSumPolarity map[string]int `json:"aspect_sum_polarity"`
}

// ReviewList is a page of reviews and the unpaged total
type ReviewList struct {
	Reviews []Review `json:"reviews"`
	Total   int64    `json:"total"`
}

// ReviewFilter is the reviews listing query
type ReviewFilter struct {
	GameID     int
	Skip       int
	Limit      int
	SourceIDs  []int
	Aspects    []string
	Polarities []string
}

// Values encodes f the way GET /reviews/ reads it
func (f ReviewFilter) Values() url.Values {
	q := url.Values{}
	q.Set("game_id", strconv.Itoa(f.GameID))
	if f.Skip > 0 {
		q.Set("skip", strconv.Itoa(f.Skip))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if len(f.SourceIDs) > 0 {
		q.Set("source", joinInts(f.SourceIDs))
	}
	if len(f.Aspects) > 0 {
		q.Set("aspect", strings.Join(f.Aspects, ","))
	}
	if len(f.Polarities) > 0 {
		q.Set("polarity", strings.Join(f.Polarities, ","))
	}
	return q
}

// TermCount is one wordcloud entry, a [term, count] pair on the wire
type TermCount struct {
	Term  string
	Count int64
}

// UnmarshalJSON reads the pair form
func (tc *TermCount) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("wordcloud term: want [term, count], got %s", b)
	}
	if err := json.Unmarshal(pair[0], &tc.Term); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &tc.Count)
}

// WordCloud is the top terms per aspect category and polarity
type WordCloud struct {
	Categories map[string]map[string][]TermCount `json:"categories"`
}

// Top returns at most n terms for category and polarity
func (w WordCloud) Top(category, polarity string, n int) []TermCount {
	terms := w.Categories[category][polarity]
	if n >= 0 && len(terms) > n {
		return terms[:n]
	}
	return terms
}

// UserUpdate is the PATCH /users/{id} body; nil fields are left alone
type UserUpdate struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}
