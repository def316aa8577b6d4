package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(h *APIHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		// Public content reads
		r.Get("/profile", h.GetProfileHandler)
		r.Get("/skills", h.ListSkillsHandler)
		r.Get("/experience", h.ListExperienceHandler)
		r.Get("/patents", h.ListPatentsHandler)
		r.Get("/projects", h.ListProjectsHandler)
		r.Get("/companies", h.ListCompaniesHandler)
		r.Get("/testimonials", h.ListTestimonialsHandler)
		r.Get("/media", h.ListMediaHandler)
		r.Get("/blog/posts", h.ListBlogPostsHandler)
		r.Get("/blog/posts/{slug}", h.GetBlogPostHandler)

		// Chat + voice
		r.Route("/chat", func(r chi.Router) {
			r.Get("/prompts", h.ListChatPromptsHandler)
			r.Post("/conversations", h.CreateConversationHandler)
			r.Get("/conversations/{conversationID}", h.GetConversationHandler)
			r.Get("/conversations/{conversationID}/messages", h.GetMessagesHandler)
			r.Post("/conversations/{conversationID}/messages", h.PostMessageHandler)
			r.Post("/conversations/{conversationID}/retry", h.RetryLastTurnHandler)
			r.Post("/text-to-speech", h.TextToSpeechHandler)
		})

		// Admin back-office
		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.LoginHandler)

			r.Group(func(r chi.Router) {
				r.Use(h.AdminAuthMiddleware)

				r.Put("/profile", h.UpdateProfileHandler)

				r.Post("/skills", h.CreateSkillCategoryHandler)
				r.Put("/skills/{id}", h.UpdateSkillCategoryHandler)
				r.Delete("/skills/{id}", h.DeleteSkillCategoryHandler)

				r.Post("/experience", h.CreateExperienceHandler)
				r.Put("/experience/{id}", h.UpdateExperienceHandler)
				r.Delete("/experience/{id}", h.DeleteExperienceHandler)

				r.Post("/patents", h.CreatePatentHandler)
				r.Put("/patents/{id}", h.UpdatePatentHandler)
				r.Delete("/patents/{id}", h.DeletePatentHandler)

				r.Post("/projects", h.CreateProjectHandler)
				r.Put("/projects/{id}", h.UpdateProjectHandler)
				r.Delete("/projects/{id}", h.DeleteProjectHandler)

				r.Post("/companies", h.CreateCompanyHandler)
				r.Put("/companies/{id}", h.UpdateCompanyHandler)
				r.Delete("/companies/{id}", h.DeleteCompanyHandler)

				r.Post("/testimonials", h.CreateTestimonialHandler)
				r.Put("/testimonials/{id}", h.UpdateTestimonialHandler)
				r.Delete("/testimonials/{id}", h.DeleteTestimonialHandler)

				r.Get("/blog/posts", h.ListAllBlogPostsHandler)
				r.Post("/blog/posts", h.CreateBlogPostHandler)
				r.Put("/blog/posts/{id}", h.UpdateBlogPostHandler)
				r.Delete("/blog/posts/{id}", h.DeleteBlogPostHandler)

				r.Post("/chat/prompts", h.CreateChatPromptHandler)
				r.Delete("/chat/prompts/{id}", h.DeleteChatPromptHandler)

				r.Get("/chat/context-docs", h.ListContextDocsHandler)
				r.Post("/chat/context-docs", h.CreateContextDocHandler)
				r.Put("/chat/context-docs/{id}", h.UpdateContextDocHandler)
				r.Delete("/chat/context-docs/{id}", h.DeleteContextDocHandler)

				r.Post("/media", h.CreateMediaAssetHandler)
				r.Delete("/media/{id}", h.DeleteMediaAssetHandler)
			})
		})
	})

	return r
}

// requestLogger logs one line per request through the shared zap logger.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
