package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janedoe/portfolio-server/internal/store"
)

// fakeContent returns canned content and can be made to fail per reader.
type fakeContent struct {
	profile    *store.Profile
	experience []store.Experience
	patents    []store.Patent
	projects   []store.Project
	skills     []store.SkillCategory
	docs       []store.ContextDoc
	failWith   error
}

func (f *fakeContent) GetProfile() (*store.Profile, error) {
	return f.profile, f.failWith
}
func (f *fakeContent) ListExperience() ([]store.Experience, error) {
	return f.experience, f.failWith
}
func (f *fakeContent) ListPatents() ([]store.Patent, error)          { return f.patents, f.failWith }
func (f *fakeContent) ListProjects() ([]store.Project, error)        { return f.projects, f.failWith }
func (f *fakeContent) ListSkillCategories() ([]store.SkillCategory, error) {
	return f.skills, f.failWith
}
func (f *fakeContent) ListContextDocs() ([]store.ContextDoc, error) { return f.docs, f.failWith }

func TestBuildOmitsEmptySections(t *testing.T) {
	content := &fakeContent{
		profile: &store.Profile{Name: "Jane Doe", Title: "Engineer"},
		experience: []store.Experience{
			{Company: "Acme", Role: "Engineer", Achievements: []string{"Shipped X"}},
		},
	}

	doc, err := NewContextBuilder(content).Build()
	require.NoError(t, err)

	assert.Contains(t, doc, "Jane Doe")
	assert.Contains(t, doc, "Acme")
	assert.Contains(t, doc, "Shipped X")
	assert.NotContains(t, doc, "# Patents")
	assert.NotContains(t, doc, "# Projects")
	assert.NotContains(t, doc, "# Skills")
	assert.NotContains(t, doc, "# Additional Context")
}

func TestBuildSectionOrder(t *testing.T) {
	source := "resume"
	content := &fakeContent{
		profile:    &store.Profile{Name: "Jane Doe", Title: "Engineer"},
		experience: []store.Experience{{Company: "Acme", Role: "Engineer"}},
		patents: []store.Patent{
			{Number: "US 1", Title: "Widget", Status: store.PatentStatusAwarded, Year: 2020},
		},
		projects: []store.Project{{Title: "Orchestrator", Technologies: []string{"Go"}}},
		skills: []store.SkillCategory{
			{Category: "Systems", Items: []string{"Go", "C"}, Specializations: []string{"Go"}},
		},
		docs: []store.ContextDoc{{Label: "Consulting", Body: "Available.", Source: &source}},
	}

	doc, err := NewContextBuilder(content).Build()
	require.NoError(t, err)

	sections := []string{
		"# Profile",
		"# Work Experience",
		"# Patents",
		"# Projects",
		"# Skills",
		"# Additional Context",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(doc, section)
		require.NotEqual(t, -1, idx, "missing section %q", section)
		assert.Greater(t, idx, last, "section %q out of order", section)
		last = idx
	}

	// Exactly one occurrence of each header.
	for _, section := range sections {
		assert.Equal(t, 1, strings.Count(doc, section), "duplicate section %q", section)
	}
}

func TestBuildPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("database is locked")
	content := &fakeContent{failWith: storeErr}

	_, err := NewContextBuilder(content).Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
}

func TestBuildEmptyStore(t *testing.T) {
	doc, err := NewContextBuilder(&fakeContent{}).Build()
	require.NoError(t, err)
	assert.Empty(t, doc)
}
