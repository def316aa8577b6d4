package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore creates a fresh SQLite store in a temp directory.
func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProfileUpsert(t *testing.T) {
	s := setupStore(t)

	// Empty store has no profile.
	profile, err := s.GetProfile()
	require.NoError(t, err)
	assert.Nil(t, profile)

	require.NoError(t, s.UpsertProfile(&Profile{Name: "Jane Doe", Title: "Engineer", YearsExperience: 20}))

	profile, err = s.GetProfile()
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, 20, profile.YearsExperience)

	// Upsert replaces the singleton row.
	require.NoError(t, s.UpsertProfile(&Profile{Name: "Jane Doe", Title: "Principal Engineer"}))
	profile, err = s.GetProfile()
	require.NoError(t, err)
	assert.Equal(t, "Principal Engineer", profile.Title)
}

func TestExperienceCRUD(t *testing.T) {
	s := setupStore(t)

	e := Experience{
		Company:      "Acme",
		Role:         "Engineer",
		Period:       "2018 - Present",
		Achievements: []string{"Shipped X", "Led Y"},
		SortOrder:    2,
	}
	require.NoError(t, s.CreateExperience(&e))
	assert.NotZero(t, e.ID)

	first := Experience{Company: "Initech", Role: "Firmware Engineer", SortOrder: 1}
	require.NoError(t, s.CreateExperience(&first))

	entries, err := s.ListExperience()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// sort_order governs listing.
	assert.Equal(t, "Initech", entries[0].Company)
	assert.Equal(t, []string{"Shipped X", "Led Y"}, entries[1].Achievements)

	e.Role = "Principal Engineer"
	require.NoError(t, s.UpdateExperience(&e))
	entries, err = s.ListExperience()
	require.NoError(t, err)
	assert.Equal(t, "Principal Engineer", entries[1].Role)

	require.NoError(t, s.DeleteExperience(e.ID))
	entries, err = s.ListExperience()
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	assert.ErrorIs(t, s.DeleteExperience(e.ID), ErrNotFound)
	assert.ErrorIs(t, s.UpdateExperience(&e), ErrNotFound)
}

func TestPatentStatusConstraint(t *testing.T) {
	s := setupStore(t)

	ok := Patent{Number: "US 1", Title: "Widget", Status: PatentStatusAwarded}
	require.NoError(t, s.CreatePatent(&ok))

	bad := Patent{Number: "US 2", Title: "Gadget", Status: "Pending"}
	assert.Error(t, s.CreatePatent(&bad))
}

func TestBlogPosts(t *testing.T) {
	s := setupStore(t)

	draft := BlogPost{Slug: "draft-post", Title: "Draft", Tags: []string{"go"}}
	require.NoError(t, s.CreateBlogPost(&draft))

	published := BlogPost{Slug: "hello-world", Title: "Hello", Published: true}
	require.NoError(t, s.CreateBlogPost(&published))
	require.NotNil(t, published.PublishedAt)

	public, err := s.ListBlogPosts(true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "hello-world", public[0].Slug)

	all, err := s.ListBlogPosts(false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	post, err := s.GetBlogPostBySlug("draft-post")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, []string{"go"}, post.Tags)

	missing, err := s.GetBlogPostBySlug("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// Slugs are unique.
	dup := BlogPost{Slug: "hello-world", Title: "Again"}
	assert.Error(t, s.CreateBlogPost(&dup))
}

func TestConversationsAndMessages(t *testing.T) {
	s := setupStore(t)

	conv, err := s.CreateConversation()
	require.NoError(t, err)
	assert.NotEmpty(t, conv.ID)

	got, err := s.GetConversation(conv.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, conv.ID, got.ID)

	missing, err := s.GetConversation("no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)

	first := Message{ConversationID: conv.ID, Role: RoleUser, Content: "A"}
	require.NoError(t, s.CreateMessage(&first))
	second := Message{ConversationID: conv.ID, Role: RoleAssistant, Content: "B"}
	require.NoError(t, s.CreateMessage(&second))
	third := Message{ConversationID: conv.ID, Role: RoleUser, Content: "C"}
	require.NoError(t, s.CreateMessage(&third))

	messages, err := s.GetMessages(conv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, []string{"A", "B", "C"},
		[]string{messages[0].Content, messages[1].Content, messages[2].Content})
}

func TestMessageRequiresConversation(t *testing.T) {
	s := setupStore(t)

	orphan := Message{ConversationID: "no-such-conversation", Role: RoleUser, Content: "hi"}
	assert.Error(t, s.CreateMessage(&orphan))
}

func TestContextDocs(t *testing.T) {
	s := setupStore(t)

	source := "https://example.com/cv"
	withSource := ContextDoc{Label: "CV", Body: "Full CV text", Source: &source, SortOrder: 2}
	require.NoError(t, s.CreateContextDoc(&withSource))
	noSource := ContextDoc{Label: "Consulting", Body: "Available", SortOrder: 1}
	require.NoError(t, s.CreateContextDoc(&noSource))

	docs, err := s.ListContextDocs()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Consulting", docs[0].Label)
	assert.Nil(t, docs[0].Source)
	require.NotNil(t, docs[1].Source)
	assert.Equal(t, source, *docs[1].Source)
}

func TestSeedDemoData(t *testing.T) {
	s := setupStore(t)

	require.NoError(t, s.SeedDemoData())

	profile, err := s.GetProfile()
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Jane Doe", profile.Name)

	prompts, err := s.ListChatPrompts()
	require.NoError(t, err)
	assert.NotEmpty(t, prompts)

	// Seeding twice refuses to clobber existing content.
	assert.Error(t, s.SeedDemoData())
}
