package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a targeted row does not exist. The API
// layer maps it to 404.
var ErrNotFound = errors.New("record not found")

// Profile

func (s *SQLiteStore) GetProfile() (*Profile, error) {
	var p Profile
	err := s.db.QueryRow(`SELECT name, title, bio, location, email, years_experience,
        patent_count, github_url, linkedin_url, twitter_url FROM profile WHERE id = 1`).
		Scan(&p.Name, &p.Title, &p.Bio, &p.Location, &p.Email, &p.YearsExperience,
			&p.PatentCount, &p.GitHubURL, &p.LinkedInURL, &p.TwitterURL)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not configured yet
		}
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}
	return &p, nil
}

func (s *SQLiteStore) UpsertProfile(p *Profile) error {
	_, err := s.db.Exec(`INSERT INTO profile (id, name, title, bio, location, email,
        years_experience, patent_count, github_url, linkedin_url, twitter_url)
        VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (id) DO UPDATE SET
            name = excluded.name, title = excluded.title, bio = excluded.bio,
            location = excluded.location, email = excluded.email,
            years_experience = excluded.years_experience,
            patent_count = excluded.patent_count,
            github_url = excluded.github_url, linkedin_url = excluded.linkedin_url,
            twitter_url = excluded.twitter_url`,
		p.Name, p.Title, p.Bio, p.Location, p.Email, p.YearsExperience,
		p.PatentCount, p.GitHubURL, p.LinkedInURL, p.TwitterURL)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// Skill categories

func (s *SQLiteStore) ListSkillCategories() ([]SkillCategory, error) {
	rows, err := s.db.Query(`SELECT id, category, items_json, specializations_json, sort_order
        FROM skill_categories ORDER BY sort_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query skill categories: %w", err)
	}
	defer rows.Close()

	var categories []SkillCategory
	for rows.Next() {
		var c SkillCategory
		var itemsJSON, specsJSON string
		if err := rows.Scan(&c.ID, &c.Category, &itemsJSON, &specsJSON, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan skill category row: %w", err)
		}
		if c.Items, err = unmarshalList(itemsJSON); err != nil {
			return nil, err
		}
		if c.Specializations, err = unmarshalList(specsJSON); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *SQLiteStore) CreateSkillCategory(c *SkillCategory) error {
	itemsJSON, err := marshalList(c.Items)
	if err != nil {
		return err
	}
	specsJSON, err := marshalList(c.Specializations)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`INSERT INTO skill_categories (category, items_json, specializations_json, sort_order)
        VALUES (?, ?, ?, ?)`, c.Category, itemsJSON, specsJSON, c.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to insert skill category: %w", err)
	}
	c.ID, _ = res.LastInsertId()
	return nil
}

func (s *SQLiteStore) UpdateSkillCategory(c *SkillCategory) error {
	itemsJSON, err := marshalList(c.Items)
	if err != nil {
		return err
	}
	specsJSON, err := marshalList(c.Specializations)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE skill_categories SET category = ?, items_json = ?,
        specializations_json = ?, sort_order = ? WHERE id = ?`,
		c.Category, itemsJSON, specsJSON, c.SortOrder, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update skill category: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) DeleteSkillCategory(id int64) error {
	res, err := s.db.Exec("DELETE FROM skill_categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete skill category: %w", err)
	}
	return requireAffected(res)
}

// Experience

func (s *SQLiteStore) ListExperience() ([]Experience, error) {
	rows, err := s.db.Query(`SELECT id, company, role, period, location, type, achievements_json, sort_order
        FROM experience ORDER BY sort_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query experience: %w", err)
	}
	defer rows.Close()

	var entries []Experience
	for rows.Next() {
		var e Experience
		var achievementsJSON string
		if err := rows.Scan(&e.ID, &e.Company, &e.Role, &e.Period, &e.Location, &e.Type,
			&achievementsJSON, &e.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan experience row: %w", err)
		}
		if e.Achievements, err = unmarshalList(achievementsJSON); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) CreateExperience(e *Experience) error {
	achievementsJSON, err := marshalList(e.Achievements)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`INSERT INTO experience (company, role, period, location, type, achievements_json, sort_order)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Company, e.Role, e.Period, e.Location, e.Type, achievementsJSON, e.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to insert experience: %w", err)
	}
	e.ID, _ = res.LastInsertId()
	return nil
}

func (s *SQLiteStore) UpdateExperience(e *Experience) error {
	achievementsJSON, err := marshalList(e.Achievements)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE experience SET company = ?, role = ?, period = ?, location = ?,
        type = ?, achievements_json = ?, sort_order = ? WHERE id = ?`,
		e.Company, e.Role, e.Period, e.Location, e.Type, achievementsJSON, e.SortOrder, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update experience: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) DeleteExperience(id int64) error {
	res, err := s.db.Exec("DELETE FROM experience WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete experience: %w", err)
	}
	return requireAffected(res)
}

// Patents

func (s *SQLiteStore) ListPatents() ([]Patent, error) {
	rows, err := s.db.Query(`SELECT id, number, title, year, company, status, description, category, sort_order
        FROM patents ORDER BY sort_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query patents: %w", err)
	}
	defer rows.Close()

	var patents []Patent
	for rows.Next() {
		var p Patent
		if err := rows.Scan(&p.ID, &p.Number, &p.Title, &p.Year, &p.Company, &p.Status,
			&p.Description, &p.Category, &p.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan patent row: %w", err)
		}
		patents = append(patents, p)
	}
	return patents, rows.Err()
}

func (s *SQLiteStore) CreatePatent(p *Patent) error {
	res, err := s.db.Exec(`INSERT INTO patents (number, title, year, company, status, description, category, sort_order)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Number, p.Title, p.Year, p.Company, p.Status, p.Description, p.Category, p.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to insert patent: %w", err)
	}
	p.ID, _ = res.LastInsertId()
	return nil
}

func (s *SQLiteStore) UpdatePatent(p *Patent) error {
	res, err := s.db.Exec(`UPDATE patents SET number = ?, title = ?, year = ?, company = ?,
        status = ?, description = ?, category = ?, sort_order = ? WHERE id = ?`,
		p.Number, p.Title, p.Year, p.Company, p.Status, p.Description, p.Category, p.SortOrder, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update patent: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) DeletePatent(id int64) error {
	res, err := s.db.Exec("DELETE FROM patents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete patent: %w", err)
	}
	return requireAffected(res)
}

// Projects

func (s *SQLiteStore) ListProjects() ([]Project, error) {
	rows, err := s.db.Query(`SELECT id, title, company, description, impact, technologies_json, featured, sort_order
        FROM projects ORDER BY sort_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		var techJSON string
		if err := rows.Scan(&p.ID, &p.Title, &p.Company, &p.Description, &p.Impact,
			&techJSON, &p.Featured, &p.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		if p.Technologies, err = unmarshalList(techJSON); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *SQLiteStore) CreateProject(p *Project) error {
	techJSON, err := marshalList(p.Technologies)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`INSERT INTO projects (title, company, description, impact, technologies_json, featured, sort_order)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Company, p.Description, p.Impact, techJSON, p.Featured, p.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	p.ID, _ = res.LastInsertId()
	return nil
}

func (s *SQLiteStore) UpdateProject(p *Project) error {
	techJSON, err := marshalList(p.Technologies)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE projects SET title = ?, company = ?, description = ?, impact = ?,
        technologies_json = ?, featured = ?, sort_order = ? WHERE id = ?`,
		p.Title, p.Company, p.Description, p.Impact, techJSON, p.Featured, p.SortOrder, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) DeleteProject(id int64) error {
	res, err := s.db.Exec("DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return requireAffected(res)
}

// Companies

func (s *SQLiteStore) ListCompanies() ([]Company, error) {
	rows, err := s.db.Query(`SELECT id, name, description, website, period, sort_order
        FROM companies ORDER BY sort_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Website, &c.Period, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan company row: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (s *SQLiteStore) CreateCompany(c *Company) error {
	res, err := s.db.Exec(`INSERT INTO companies (name, description, website, period, sort_order)
        VALUES (?, ?, ?, ?, ?)`, c.Name, c.Description, c.Website, c.Period, c.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to insert company: %w", err)
	}
	c.ID, _ = res.LastInsertId()
	return nil
}

func (s *SQLiteStore) UpdateCompany(c *Company) error {
	res, err := s.db.Exec(`UPDATE companies SET name = ?, description = ?, website = ?,
        period = ?, sort_order = ? WHERE id = ?`,
		c.Name, c.Description, c.Website, c.Period, c.SortOrder, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) DeleteCompany(id int64) error {
	res, err := s.db.Exec("DELETE FROM companies WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	return requireAffected(res)
}

// Blog posts

func (s *SQLiteStore) ListBlogPosts(publishedOnly bool) ([]BlogPost, error) {
	query := `SELECT id, slug, title, excerpt, content, tags_json, published, published_at, created_at, updated_at
        FROM blog_posts`
	if publishedOnly {
		query += " WHERE published = TRUE"
	}
	query += " ORDER BY COALESCE(published_at, created_at) DESC"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query blog posts: %w", err)
	}
	defer rows.Close()

	var posts []BlogPost
	for rows.Next() {
		post, err := scanBlogPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func (s *SQLiteStore) GetBlogPostBySlug(slug string) (*BlogPost, error) {
	row := s.db.QueryRow(`SELECT id, slug, title, excerpt, content, tags_json, published, published_at, created_at, updated_at
        FROM blog_posts WHERE slug = ?`, slug)
	post, err := scanBlogPost(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

func scanBlogPost(scan func(dest ...any) error) (*BlogPost, error) {
	var p BlogPost
	var tagsJSON string
	var publishedAt sql.NullTime
	err := scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Content, &tagsJSON,
		&p.Published, &publishedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan blog post row: %w", err)
	}
	if p.Tags, err = unmarshalList(tagsJSON); err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		p.PublishedAt = &publishedAt.Time
	}
	return &p, nil
}

func (s *SQLiteStore) CreateBlogPost(p *BlogPost) error {
	tagsJSON, err := marshalList(p.Tags)
	if err != nil {
		return err
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Published && p.PublishedAt == nil {
		p.PublishedAt = &now
	}
	res, err := s.db.Exec(`INSERT INTO blog_posts (slug, title, excerpt, content, tags_json, published, published_at, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Excerpt, p.Content, tagsJSON, p.Published, p.PublishedAt, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert blog post: %w", err)
	}
	p.ID, _ = res.LastInsertId()
	return nil
}

func (s *SQLiteStore) UpdateBlogPost(p *BlogPost) error {
	tagsJSON, err := marshalList(p.Tags)
	if err != nil {
		return err
	}
	now := time.Now()
	p.UpdatedAt = now
	if p.Published && p.PublishedAt == nil {
		p.PublishedAt = &now
	}
	res, err := s.db.Exec(`UPDATE blog_posts SET slug = ?, title = ?, excerpt = ?, content = ?,
        tags_json = ?, published = ?, published_at = ?, updated_at = ? WHERE id = ?`,
		p.Slug, p.Title, p.Excerpt, p.Content, tagsJSON, p.Published, p.PublishedAt, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update blog post: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) DeleteBlogPost(id int64) error {
	res, err := s.db.Exec("DELETE FROM blog_posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}
	return requireAffected(res)
}

// Testimonials

func (s *SQLiteStore) ListTestimonials() ([]Testimonial, error) {
	rows, err := s.db.Query(`SELECT id, author, role, company, quote, sort_order
        FROM testimonials ORDER BY sort_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query testimonials: %w", err)
	}
	defer rows.Close()

	var testimonials []Testimonial
	for rows.Next() {
		var t Testimonial
		if err := rows.Scan(&t.ID, &t.Author, &t.Role, &t.Company, &t.Quote, &t.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan testimonial row: %w", err)
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, rows.Err()
}

func (s *SQLiteStore) CreateTestimonial(t *Testimonial) error {
	res, err := s.db.Exec(`INSERT INTO testimonials (author, role, company, quote, sort_order)
        VALUES (?, ?, ?, ?, ?)`, t.Author, t.Role, t.Company, t.Quote, t.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to insert testimonial: %w", err)
	}
	t.ID, _ = res.LastInsertId()
	return nil
}

func (s *SQLiteStore) UpdateTestimonial(t *Testimonial) error {
	res, err := s.db.Exec(`UPDATE testimonials SET author = ?, role = ?, company = ?,
        quote = ?, sort_order = ? WHERE id = ?`,
		t.Author, t.Role, t.Company, t.Quote, t.SortOrder, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update testimonial: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) DeleteTestimonial(id int64) error {
	res, err := s.db.Exec("DELETE FROM testimonials WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete testimonial: %w", err)
	}
	return requireAffected(res)
}

// Chat prompts

func (s *SQLiteStore) ListChatPrompts() ([]ChatPrompt, error) {
	rows, err := s.db.Query("SELECT id, text, sort_order FROM chat_prompts ORDER BY sort_order ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query chat prompts: %w", err)
	}
	defer rows.Close()

	var prompts []ChatPrompt
	for rows.Next() {
		var p ChatPrompt
		if err := rows.Scan(&p.ID, &p.Text, &p.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan chat prompt row: %w", err)
		}
		prompts = append(prompts, p)
	}
	return prompts, rows.Err()
}

func (s *SQLiteStore) CreateChatPrompt(p *ChatPrompt) error {
	res, err := s.db.Exec("INSERT INTO chat_prompts (text, sort_order) VALUES (?, ?)", p.Text, p.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to insert chat prompt: %w", err)
	}
	p.ID, _ = res.LastInsertId()
	return nil
}

func (s *SQLiteStore) DeleteChatPrompt(id int64) error {
	res, err := s.db.Exec("DELETE FROM chat_prompts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete chat prompt: %w", err)
	}
	return requireAffected(res)
}

// Context docs

func (s *SQLiteStore) ListContextDocs() ([]ContextDoc, error) {
	rows, err := s.db.Query("SELECT id, label, body, source, sort_order FROM context_docs ORDER BY sort_order ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query context docs: %w", err)
	}
	defer rows.Close()

	var docs []ContextDoc
	for rows.Next() {
		var d ContextDoc
		var source sql.NullString
		if err := rows.Scan(&d.ID, &d.Label, &d.Body, &source, &d.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan context doc row: %w", err)
		}
		if source.Valid {
			d.Source = &source.String
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (s *SQLiteStore) CreateContextDoc(d *ContextDoc) error {
	res, err := s.db.Exec("INSERT INTO context_docs (label, body, source, sort_order) VALUES (?, ?, ?, ?)",
		d.Label, d.Body, d.Source, d.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to insert context doc: %w", err)
	}
	d.ID, _ = res.LastInsertId()
	return nil
}

func (s *SQLiteStore) UpdateContextDoc(d *ContextDoc) error {
	res, err := s.db.Exec("UPDATE context_docs SET label = ?, body = ?, source = ?, sort_order = ? WHERE id = ?",
		d.Label, d.Body, d.Source, d.SortOrder, d.ID)
	if err != nil {
		return fmt.Errorf("failed to update context doc: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) DeleteContextDoc(id int64) error {
	res, err := s.db.Exec("DELETE FROM context_docs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete context doc: %w", err)
	}
	return requireAffected(res)
}

// Media assets

func (s *SQLiteStore) ListMediaAssets() ([]MediaAsset, error) {
	rows, err := s.db.Query("SELECT id, label, url, kind, created_at FROM media_assets ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query media assets: %w", err)
	}
	defer rows.Close()

	var assets []MediaAsset
	for rows.Next() {
		var m MediaAsset
		if err := rows.Scan(&m.ID, &m.Label, &m.URL, &m.Kind, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan media asset row: %w", err)
		}
		assets = append(assets, m)
	}
	return assets, rows.Err()
}

func (s *SQLiteStore) CreateMediaAsset(m *MediaAsset) error {
	m.CreatedAt = time.Now()
	res, err := s.db.Exec("INSERT INTO media_assets (label, url, kind, created_at) VALUES (?, ?, ?, ?)",
		m.Label, m.URL, m.Kind, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert media asset: %w", err)
	}
	m.ID, _ = res.LastInsertId()
	return nil
}

func (s *SQLiteStore) DeleteMediaAsset(id int64) error {
	res, err := s.db.Exec("DELETE FROM media_assets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete media asset: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
