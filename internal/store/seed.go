package store

import "fmt"

// SeedDemoData populates an empty store with demo content so the site
// renders something before the admin has edited anything. It refuses to
// run against a store that already has a profile.
func (s *SQLiteStore) SeedDemoData() error {
	existing, err := s.GetProfile()
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("store already seeded (profile exists)")
	}

	if err := s.UpsertProfile(&Profile{
		Name:            "Jane Doe",
		Title:           "Principal Hardware/Software Engineer",
		Bio:             "Engineer with two decades of experience spanning silicon validation, embedded systems, and cloud platforms. Inventor on multiple granted patents.",
		Location:        "Austin, TX",
		Email:           "jane@janedoe.dev",
		YearsExperience: 20,
		PatentCount:     6,
		GitHubURL:       "https://github.com/janedoe",
		LinkedInURL:     "https://linkedin.com/in/janedoe",
	}); err != nil {
		return err
	}

	experience := []Experience{
		{
			Company:  "Acme Semiconductor",
			Role:     "Principal Engineer",
			Period:   "2018 - Present",
			Location: "Austin, TX",
			Type:     "Full-time",
			Achievements: []string{
				"Led post-silicon validation for three chip generations",
				"Built an automated regression lab that cut bring-up time by 40%",
			},
			SortOrder: 1,
		},
		{
			Company:  "Initech Systems",
			Role:     "Senior Firmware Engineer",
			Period:   "2011 - 2018",
			Location: "Round Rock, TX",
			Type:     "Full-time",
			Achievements: []string{
				"Shipped firmware for a family of industrial controllers",
			},
			SortOrder: 2,
		},
	}
	for i := range experience {
		if err := s.CreateExperience(&experience[i]); err != nil {
			return err
		}
	}

	patents := []Patent{
		{
			Number:      "US 10,123,456",
			Title:       "Adaptive thermal throttling for multi-die packages",
			Year:        2019,
			Company:     "Acme Semiconductor",
			Status:      PatentStatusAwarded,
			Description: "Dynamic per-die thermal budget allocation.",
			Category:    "Silicon",
			SortOrder:   1,
		},
		{
			Number:      "US 9,876,543",
			Title:       "Secure firmware rollback prevention",
			Year:        2017,
			Company:     "Initech Systems",
			Status:      PatentStatusContributor,
			Description: "Monotonic counter scheme for update integrity.",
			Category:    "Firmware",
			SortOrder:   2,
		},
	}
	for i := range patents {
		if err := s.CreatePatent(&patents[i]); err != nil {
			return err
		}
	}

	projects := []Project{
		{
			Title:        "Validation Lab Orchestrator",
			Company:      "Acme Semiconductor",
			Description:  "Distributed test scheduler driving 200+ lab benches.",
			Impact:       "Cut silicon bring-up time by 40%",
			Technologies: []string{"Go", "gRPC", "PostgreSQL"},
			Featured:     true,
			SortOrder:    1,
		},
	}
	for i := range projects {
		if err := s.CreateProject(&projects[i]); err != nil {
			return err
		}
	}

	skills := []SkillCategory{
		{
			Category:        "Systems",
			Items:           []string{"Go", "C", "Rust", "Linux kernel"},
			Specializations: []string{"Go", "C"},
			SortOrder:       1,
		},
		{
			Category:  "Silicon",
			Items:     []string{"Post-silicon validation", "JTAG", "Thermal characterization"},
			SortOrder: 2,
		},
	}
	for i := range skills {
		if err := s.CreateSkillCategory(&skills[i]); err != nil {
			return err
		}
	}

	prompts := []ChatPrompt{
		{Text: "What patents does Jane hold?", SortOrder: 1},
		{Text: "Tell me about Jane's work at Acme Semiconductor", SortOrder: 2},
		{Text: "What technologies does Jane specialize in?", SortOrder: 3},
	}
	for i := range prompts {
		if err := s.CreateChatPrompt(&prompts[i]); err != nil {
			return err
		}
	}

	consulting := "Available for consulting engagements in silicon validation, embedded firmware, and backend systems. Typical engagements run 3-6 months."
	if err := s.CreateContextDoc(&ContextDoc{
		Label:     "Consulting",
		Body:      consulting,
		SortOrder: 1,
	}); err != nil {
		return err
	}

	return nil
}
