package store

import "time"

// Profile is the site owner's singleton record. There is conceptually one
// row; Upsert replaces it.
type Profile struct {
	Name            string `json:"name"`
	Title           string `json:"title"`
	Bio             string `json:"bio"`
	Location        string `json:"location"`
	Email           string `json:"email"`
	YearsExperience int    `json:"years_experience"`
	PatentCount     int    `json:"patent_count"`
	GitHubURL       string `json:"github_url"`
	LinkedInURL     string `json:"linkedin_url"`
	TwitterURL      string `json:"twitter_url"`
}

type SkillCategory struct {
	ID              int64    `json:"id"`
	Category        string   `json:"category"`
	Items           []string `json:"items"`
	Specializations []string `json:"specializations"`
	SortOrder       int      `json:"sort_order"`
}

type Experience struct {
	ID           int64    `json:"id"`
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	Period       string   `json:"period"`
	Location     string   `json:"location"`
	Type         string   `json:"type"` // e.g. "Full-time", "Contract"
	Achievements []string `json:"achievements"`
	SortOrder    int      `json:"sort_order"`
}

// Patent status values form a closed set; writes are validated against it.
const (
	PatentStatusAwarded     = "Awarded"
	PatentStatusContributor = "Contributor"
)

type Patent struct {
	ID          int64  `json:"id"`
	Number      string `json:"number"`
	Title       string `json:"title"`
	Year        int    `json:"year"`
	Company     string `json:"company"`
	Status      string `json:"status"` // "Awarded" or "Contributor"
	Description string `json:"description"`
	Category    string `json:"category"`
	SortOrder   int    `json:"sort_order"`
}

type Project struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Description  string   `json:"description"`
	Impact       string   `json:"impact"`
	Technologies []string `json:"technologies"`
	Featured     bool     `json:"featured"`
	SortOrder    int      `json:"sort_order"`
}

type Company struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Period      string `json:"period"`
	SortOrder   int    `json:"sort_order"`
}

type BlogPost struct {
	ID          int64      `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	Tags        []string   `json:"tags"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Testimonial struct {
	ID        int64  `json:"id"`
	Author    string `json:"author"`
	Role      string `json:"role"`
	Company   string `json:"company"`
	Quote     string `json:"quote"`
	SortOrder int    `json:"sort_order"`
}

// ChatPrompt is a suggested question surfaced in the chat widget.
type ChatPrompt struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	SortOrder int    `json:"sort_order"`
}

// ContextDoc is freeform supplementary text injected into the LLM
// grounding context in addition to the structured entities.
type ContextDoc struct {
	ID        int64   `json:"id"`
	Label     string  `json:"label"`
	Body      string  `json:"body"`
	Source    *string `json:"source"` // Nullable
	SortOrder int     `json:"sort_order"`
}

// Media kind values form a closed set; writes are validated against it.
const (
	MediaKindImage    = "image"
	MediaKindDocument = "document"
	MediaKindAudio    = "audio"
)

type MediaAsset struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label"`
	URL       string    `json:"url"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

type Conversation struct {
	ID        string    `json:"id"` // UUID
	CreatedAt time.Time `json:"created_at"`
}

// Message roles form a closed set.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	ID             string    `json:"id"` // UUID
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"` // "user" or "assistant"
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}
