package core

import (
	"fmt"
	"strings"

	"github.com/janedoe/portfolio-server/internal/store"
)

// ContentReader is the slice of the content store the context builder
// needs. *store.SQLiteStore satisfies it.
type ContentReader interface {
	GetProfile() (*store.Profile, error)
	ListExperience() ([]store.Experience, error)
	ListPatents() ([]store.Patent, error)
	ListProjects() ([]store.Project, error)
	ListSkillCategories() ([]store.SkillCategory, error)
	ListContextDocs() ([]store.ContextDoc, error)
}

// ContextBuilder flattens the content store into a single grounding
// document for the LLM. The document is rebuilt from the store on every
// chat turn so the model always sees current content; entity counts are
// small enough that the full read is cheap.
type ContextBuilder struct {
	content ContentReader
}

func NewContextBuilder(content ContentReader) *ContextBuilder {
	return &ContextBuilder{content: content}
}

// Build produces the grounding document: labeled sections in a fixed
// order, with empty sections omitted entirely. Any store read error is
// returned as-is; a turn must never be answered from partial context.
func (b *ContextBuilder) Build() (string, error) {
	var doc strings.Builder

	profile, err := b.content.GetProfile()
	if err != nil {
		return "", fmt.Errorf("failed to read profile: %w", err)
	}
	if profile != nil {
		doc.WriteString("# Profile\n")
		fmt.Fprintf(&doc, "%s — %s\n", profile.Name, profile.Title)
		if profile.Location != "" {
			fmt.Fprintf(&doc, "Location: %s\n", profile.Location)
		}
		if profile.YearsExperience > 0 {
			fmt.Fprintf(&doc, "Years of experience: %d\n", profile.YearsExperience)
		}
		if profile.PatentCount > 0 {
			fmt.Fprintf(&doc, "Patents held: %d\n", profile.PatentCount)
		}
		if profile.Bio != "" {
			doc.WriteString(profile.Bio)
			doc.WriteString("\n")
		}
		doc.WriteString("\n")
	}

	experience, err := b.content.ListExperience()
	if err != nil {
		return "", fmt.Errorf("failed to read experience: %w", err)
	}
	if len(experience) > 0 {
		doc.WriteString("# Work Experience\n")
		for _, e := range experience {
			fmt.Fprintf(&doc, "## %s at %s", e.Role, e.Company)
			if e.Period != "" {
				fmt.Fprintf(&doc, " (%s)", e.Period)
			}
			doc.WriteString("\n")
			if e.Location != "" || e.Type != "" {
				fmt.Fprintf(&doc, "%s\n", strings.TrimSpace(strings.Join(nonEmpty(e.Location, e.Type), ", ")))
			}
			for _, a := range e.Achievements {
				fmt.Fprintf(&doc, "- %s\n", a)
			}
		}
		doc.WriteString("\n")
	}

	patents, err := b.content.ListPatents()
	if err != nil {
		return "", fmt.Errorf("failed to read patents: %w", err)
	}
	if len(patents) > 0 {
		doc.WriteString("# Patents\n")
		for _, p := range patents {
			fmt.Fprintf(&doc, "- %s: %s (%s, %d)", p.Number, p.Title, p.Status, p.Year)
			if p.Company != "" {
				fmt.Fprintf(&doc, " at %s", p.Company)
			}
			doc.WriteString("\n")
			if p.Description != "" {
				fmt.Fprintf(&doc, "  %s\n", p.Description)
			}
			if p.Category != "" {
				fmt.Fprintf(&doc, "  Category: %s\n", p.Category)
			}
		}
		doc.WriteString("\n")
	}

	projects, err := b.content.ListProjects()
	if err != nil {
		return "", fmt.Errorf("failed to read projects: %w", err)
	}
	if len(projects) > 0 {
		doc.WriteString("# Projects\n")
		for _, p := range projects {
			fmt.Fprintf(&doc, "## %s", p.Title)
			if p.Company != "" {
				fmt.Fprintf(&doc, " (%s)", p.Company)
			}
			doc.WriteString("\n")
			if p.Description != "" {
				fmt.Fprintf(&doc, "%s\n", p.Description)
			}
			if p.Impact != "" {
				fmt.Fprintf(&doc, "Impact: %s\n", p.Impact)
			}
			if len(p.Technologies) > 0 {
				fmt.Fprintf(&doc, "Technologies: %s\n", strings.Join(p.Technologies, ", "))
			}
		}
		doc.WriteString("\n")
	}

	skills, err := b.content.ListSkillCategories()
	if err != nil {
		return "", fmt.Errorf("failed to read skills: %w", err)
	}
	if len(skills) > 0 {
		doc.WriteString("# Skills\n")
		for _, c := range skills {
			fmt.Fprintf(&doc, "%s: %s\n", c.Category, strings.Join(c.Items, ", "))
			if len(c.Specializations) > 0 {
				fmt.Fprintf(&doc, "  Specializations: %s\n", strings.Join(c.Specializations, ", "))
			}
		}
		doc.WriteString("\n")
	}

	docs, err := b.content.ListContextDocs()
	if err != nil {
		return "", fmt.Errorf("failed to read context docs: %w", err)
	}
	if len(docs) > 0 {
		doc.WriteString("# Additional Context\n")
		for _, d := range docs {
			fmt.Fprintf(&doc, "## %s\n%s\n", d.Label, d.Body)
			if d.Source != nil && *d.Source != "" {
				fmt.Fprintf(&doc, "Source: %s\n", *d.Source)
			}
		}
		doc.WriteString("\n")
	}

	return strings.TrimSpace(doc.String()), nil
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
