package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/janedoe/portfolio-server/internal/auth"
	"github.com/janedoe/portfolio-server/internal/store"
)

// Admin auth

type LoginRequest struct {
	Password string `json:"password"`
}

func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "Password is required")
		return
	}

	if !auth.CheckPasswordHash(req.Password, h.adminPassHash) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Generate()
	if err != nil {
		h.logger.Error("failed to generate admin token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *APIHandler) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if err := h.tokens.Validate(tokenString); err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func urlID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// decodeBody decodes the JSON request body into v, responding with 400 on
// failure. Returns false if the handler should stop.
func (h *APIHandler) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// respondMutation maps store mutation results onto HTTP responses.
func (h *APIHandler) respondMutation(w http.ResponseWriter, err error, action string) {
	if err == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Record not found")
		return
	}
	h.logger.Error("admin mutation failed", zap.String("action", action), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "Failed to "+action)
}

// Profile

func (h *APIHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var p store.Profile
	if !h.decodeBody(w, r, &p) {
		return
	}
	if p.Name == "" {
		writeError(w, http.StatusBadRequest, "Profile name is required")
		return
	}
	if err := h.contentStore.UpsertProfile(&p); err != nil {
		h.logger.Error("failed to update profile", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Skills

func (h *APIHandler) CreateSkillCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var c store.SkillCategory
	if !h.decodeBody(w, r, &c) {
		return
	}
	if c.Category == "" {
		writeError(w, http.StatusBadRequest, "Category is required")
		return
	}
	if err := h.contentStore.CreateSkillCategory(&c); err != nil {
		h.respondMutation(w, err, "create skill category")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *APIHandler) UpdateSkillCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	var c store.SkillCategory
	if !h.decodeBody(w, r, &c) {
		return
	}
	c.ID = id
	h.respondMutation(w, h.contentStore.UpdateSkillCategory(&c), "update skill category")
}

func (h *APIHandler) DeleteSkillCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	h.respondMutation(w, h.contentStore.DeleteSkillCategory(id), "delete skill category")
}

// Experience

func (h *APIHandler) CreateExperienceHandler(w http.ResponseWriter, r *http.Request) {
	var e store.Experience
	if !h.decodeBody(w, r, &e) {
		return
	}
	if e.Company == "" || e.Role == "" {
		writeError(w, http.StatusBadRequest, "Company and role are required")
		return
	}
	if err := h.contentStore.CreateExperience(&e); err != nil {
		h.respondMutation(w, err, "create experience")
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *APIHandler) UpdateExperienceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	var e store.Experience
	if !h.decodeBody(w, r, &e) {
		return
	}
	e.ID = id
	h.respondMutation(w, h.contentStore.UpdateExperience(&e), "update experience")
}

func (h *APIHandler) DeleteExperienceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	h.respondMutation(w, h.contentStore.DeleteExperience(id), "delete experience")
}

// Patents

func validPatentStatus(status string) bool {
	return status == store.PatentStatusAwarded || status == store.PatentStatusContributor
}

func (h *APIHandler) CreatePatentHandler(w http.ResponseWriter, r *http.Request) {
	var p store.Patent
	if !h.decodeBody(w, r, &p) {
		return
	}
	if !validPatentStatus(p.Status) {
		writeError(w, http.StatusBadRequest, "Status must be 'Awarded' or 'Contributor'")
		return
	}
	if err := h.contentStore.CreatePatent(&p); err != nil {
		h.respondMutation(w, err, "create patent")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *APIHandler) UpdatePatentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	var p store.Patent
	if !h.decodeBody(w, r, &p) {
		return
	}
	if !validPatentStatus(p.Status) {
		writeError(w, http.StatusBadRequest, "Status must be 'Awarded' or 'Contributor'")
		return
	}
	p.ID = id
	h.respondMutation(w, h.contentStore.UpdatePatent(&p), "update patent")
}

func (h *APIHandler) DeletePatentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	h.respondMutation(w, h.contentStore.DeletePatent(id), "delete patent")
}

// Projects

func (h *APIHandler) CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	var p store.Project
	if !h.decodeBody(w, r, &p) {
		return
	}
	if p.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if err := h.contentStore.CreateProject(&p); err != nil {
		h.respondMutation(w, err, "create project")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *APIHandler) UpdateProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	var p store.Project
	if !h.decodeBody(w, r, &p) {
		return
	}
	p.ID = id
	h.respondMutation(w, h.contentStore.UpdateProject(&p), "update project")
}

func (h *APIHandler) DeleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	h.respondMutation(w, h.contentStore.DeleteProject(id), "delete project")
}

// Companies

func (h *APIHandler) CreateCompanyHandler(w http.ResponseWriter, r *http.Request) {
	var c store.Company
	if !h.decodeBody(w, r, &c) {
		return
	}
	if c.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if err := h.contentStore.CreateCompany(&c); err != nil {
		h.respondMutation(w, err, "create company")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *APIHandler) UpdateCompanyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	var c store.Company
	if !h.decodeBody(w, r, &c) {
		return
	}
	c.ID = id
	h.respondMutation(w, h.contentStore.UpdateCompany(&c), "update company")
}

func (h *APIHandler) DeleteCompanyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	h.respondMutation(w, h.contentStore.DeleteCompany(id), "delete company")
}

// Testimonials

func (h *APIHandler) CreateTestimonialHandler(w http.ResponseWriter, r *http.Request) {
	var t store.Testimonial
	if !h.decodeBody(w, r, &t) {
		return
	}
	if t.Author == "" || t.Quote == "" {
		writeError(w, http.StatusBadRequest, "Author and quote are required")
		return
	}
	if err := h.contentStore.CreateTestimonial(&t); err != nil {
		h.respondMutation(w, err, "create testimonial")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *APIHandler) UpdateTestimonialHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	var t store.Testimonial
	if !h.decodeBody(w, r, &t) {
		return
	}
	t.ID = id
	h.respondMutation(w, h.contentStore.UpdateTestimonial(&t), "update testimonial")
}

func (h *APIHandler) DeleteTestimonialHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	h.respondMutation(w, h.contentStore.DeleteTestimonial(id), "delete testimonial")
}

// Blog posts

func (h *APIHandler) ListAllBlogPostsHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := h.contentStore.ListBlogPosts(false)
	if err != nil {
		h.logger.Error("failed to list blog posts", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to list blog posts")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *APIHandler) CreateBlogPostHandler(w http.ResponseWriter, r *http.Request) {
	var p store.BlogPost
	if !h.decodeBody(w, r, &p) {
		return
	}
	if p.Slug == "" || p.Title == "" {
		writeError(w, http.StatusBadRequest, "Slug and title are required")
		return
	}
	if err := h.contentStore.CreateBlogPost(&p); err != nil {
		h.respondMutation(w, err, "create blog post")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *APIHandler) UpdateBlogPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	var p store.BlogPost
	if !h.decodeBody(w, r, &p) {
		return
	}
	p.ID = id
	h.respondMutation(w, h.contentStore.UpdateBlogPost(&p), "update blog post")
}

func (h *APIHandler) DeleteBlogPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	h.respondMutation(w, h.contentStore.DeleteBlogPost(id), "delete blog post")
}

// Chat prompts

func (h *APIHandler) CreateChatPromptHandler(w http.ResponseWriter, r *http.Request) {
	var p store.ChatPrompt
	if !h.decodeBody(w, r, &p) {
		return
	}
	if p.Text == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}
	if err := h.contentStore.CreateChatPrompt(&p); err != nil {
		h.respondMutation(w, err, "create chat prompt")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *APIHandler) DeleteChatPromptHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	h.respondMutation(w, h.contentStore.DeleteChatPrompt(id), "delete chat prompt")
}

// Context docs

func (h *APIHandler) ListContextDocsHandler(w http.ResponseWriter, r *http.Request) {
	docs, err := h.contentStore.ListContextDocs()
	if err != nil {
		h.logger.Error("failed to list context docs", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to list context docs")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *APIHandler) CreateContextDocHandler(w http.ResponseWriter, r *http.Request) {
	var d store.ContextDoc
	if !h.decodeBody(w, r, &d) {
		return
	}
	if d.Label == "" || d.Body == "" {
		writeError(w, http.StatusBadRequest, "Label and body are required")
		return
	}
	if err := h.contentStore.CreateContextDoc(&d); err != nil {
		h.respondMutation(w, err, "create context doc")
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *APIHandler) UpdateContextDocHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	var d store.ContextDoc
	if !h.decodeBody(w, r, &d) {
		return
	}
	d.ID = id
	h.respondMutation(w, h.contentStore.UpdateContextDoc(&d), "update context doc")
}

func (h *APIHandler) DeleteContextDocHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	h.respondMutation(w, h.contentStore.DeleteContextDoc(id), "delete context doc")
}

// Media assets

func validMediaKind(kind string) bool {
	switch kind {
	case store.MediaKindImage, store.MediaKindDocument, store.MediaKindAudio:
		return true
	}
	return false
}

func (h *APIHandler) CreateMediaAssetHandler(w http.ResponseWriter, r *http.Request) {
	var m store.MediaAsset
	if !h.decodeBody(w, r, &m) {
		return
	}
	if m.Label == "" || m.URL == "" {
		writeError(w, http.StatusBadRequest, "Label and URL are required")
		return
	}
	if !validMediaKind(m.Kind) {
		writeError(w, http.StatusBadRequest, "Kind must be 'image', 'document' or 'audio'")
		return
	}
	if err := h.contentStore.CreateMediaAsset(&m); err != nil {
		h.respondMutation(w, err, "create media asset")
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *APIHandler) DeleteMediaAssetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	h.respondMutation(w, h.contentStore.DeleteMediaAsset(id), "delete media asset")
}
