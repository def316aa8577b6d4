package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Public read endpoints backing the site's sections. All of them are
// plain store reads; list ordering comes from each entity's sort_order.

func (h *APIHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := h.contentStore.GetProfile()
	if err != nil {
		h.logger.Error("failed to get profile", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "Profile not configured")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *APIHandler) ListSkillsHandler(w http.ResponseWriter, r *http.Request) {
	skills, err := h.contentStore.ListSkillCategories()
	if err != nil {
		h.logger.Error("failed to list skills", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to list skills")
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (h *APIHandler) ListExperienceHandler(w http.ResponseWriter, r *http.Request) {
	experience, err := h.contentStore.ListExperience()
	if err != nil {
		h.logger.Error("failed to list experience", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to list experience")
		return
	}
	writeJSON(w, http.StatusOK, experience)
}

func (h *APIHandler) ListPatentsHandler(w http.ResponseWriter, r *http.Request) {
	patents, err := h.contentStore.ListPatents()
	if err != nil {
		h.logger.Error("failed to list patents", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to list patents")
		return
	}
	writeJSON(w, http.StatusOK, patents)
}

func (h *APIHandler) ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	projects, err := h.contentStore.ListProjects()
	if err != nil {
		h.logger.Error("failed to list projects", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to list projects")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *APIHandler) ListCompaniesHandler(w http.ResponseWriter, r *http.Request) {
	companies, err := h.contentStore.ListCompanies()
	if err != nil {
		h.logger.Error("failed to list companies", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to list companies")
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

func (h *APIHandler) ListTestimonialsHandler(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.contentStore.ListTestimonials()
	if err != nil {
		h.logger.Error("failed to list testimonials", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to list testimonials")
		return
	}
	writeJSON(w, http.StatusOK, testimonials)
}

func (h *APIHandler) ListBlogPostsHandler(w http.ResponseWriter, r *http.Request) {
	// The public listing only shows published posts; drafts are admin-only.
	posts, err := h.contentStore.ListBlogPosts(true)
	if err != nil {
		h.logger.Error("failed to list blog posts", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to list blog posts")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *APIHandler) GetBlogPostHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.contentStore.GetBlogPostBySlug(slug)
	if err != nil {
		h.logger.Error("failed to get blog post", zap.String("slug", slug), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to get blog post")
		return
	}
	if post == nil || !post.Published {
		writeError(w, http.StatusNotFound, "Blog post not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *APIHandler) ListMediaHandler(w http.ResponseWriter, r *http.Request) {
	assets, err := h.contentStore.ListMediaAssets()
	if err != nil {
		h.logger.Error("failed to list media assets", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to list media assets")
		return
	}
	writeJSON(w, http.StatusOK, assets)
}
