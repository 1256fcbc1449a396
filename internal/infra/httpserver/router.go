package httpserver

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/litholens/prospector/internal/application/analyze"
	"github.com/litholens/prospector/internal/application/collection"
	domai "github.com/litholens/prospector/internal/domain/ai"
	"github.com/litholens/prospector/internal/domain/rocks"
	"github.com/litholens/prospector/internal/infra/imaging"
	"github.com/litholens/prospector/internal/infra/wiki"
	"github.com/litholens/prospector/internal/middleware"
)

//go:embed web
var webFS embed.FS

type Router struct {
	analyzeSvc    *analyze.Service
	collectionSvc *collection.Service
	wikiClient    *wiki.Client
	logger        *zap.Logger
}

// Options wires the cross-cutting pieces into the router.
type Options struct {
	AllowedOrigins []string
	HealthCheckers map[string]middleware.HealthChecker
	Logger         *zap.Logger
}

func NewRouter(analyzeSvc *analyze.Service, collectionSvc *collection.Service, wikiClient *wiki.Client, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	r := &Router{
		analyzeSvc:    analyzeSvc,
		collectionSvc: collectionSvc,
		wikiClient:    wikiClient,
		logger:        opts.Logger,
	}

	mux := chi.NewRouter()
	mux.Use(middleware.Logging(opts.Logger))
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(30, 5))
	if len(opts.AllowedOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
	}

	mux.Get("/health", middleware.HealthHandler(opts.HealthCheckers))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/session", r.wrap(r.handleSession))
		rt.Post("/session/reset", r.wrap(r.handleSessionReset))
		rt.Get("/collection", r.wrap(r.handleCollectionList))
		rt.Post("/collection", r.wrap(r.handleCollectionSave))
		rt.Get("/collection/{id}", r.wrap(r.handleCollectionGet))
		rt.Delete("/collection/{id}", r.wrap(r.handleCollectionDelete))
		rt.Get("/achievements", r.wrap(r.handleAchievements))
		rt.Get("/facts/random", r.wrap(r.handleRandomFact))
		rt.Get("/thumbnail", r.wrap(r.handleThumbnail))
	})

	mux.Handle("/*", webHandler())

	return mux
}

// webHandler serves the embedded app shell at the root.
func webHandler() http.Handler {
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, imaging.ErrNotImage):
				http.Error(w, "the uploaded file is not a readable image", http.StatusBadRequest)
			case errors.Is(err, sql.ErrNoRows):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, domai.ErrQuotaExceeded):
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
			case errors.Is(err, errBadRequest):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				r.logger.Error("request failed", zap.String("path", req.URL.Path), zap.Error(err))
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
		}
	}
}

var errBadRequest = errors.New("bad request")

func badRequestf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// POST /v1/analyze
// Multipart form: "image" file plus optional "location" text.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, middleware.MaxUploadBytes)
	if err := req.ParseMultipartForm(middleware.MaxUploadBytes); err != nil {
		return badRequestf("invalid multipart form: %v", err)
	}

	file, header, err := req.FormFile("image")
	if err != nil {
		return badRequestf("image file is required")
	}
	defer file.Close()

	if err := middleware.ValidateImageContentType(header.Header.Get("Content-Type")); err != nil {
		return badRequestf("%v", err)
	}

	location := middleware.SanitizeString(req.FormValue("location"))

	middleware.IncrementAnalyses()
	middleware.IncrementAnalysesRunning()
	defer middleware.DecrementAnalysesRunning()

	result, err := r.analyzeSvc.Analyze(req.Context(), file, location)
	if err != nil {
		middleware.IncrementAnalysesFailed()
		// Leave raw provider errors out of the response, the session
		// snapshot already carries the user-facing message.
		if errors.Is(err, imaging.ErrNotImage) || errors.Is(err, domai.ErrQuotaExceeded) {
			return err
		}
		snap := r.analyzeSvc.State.Snapshot()
		return writeJSON(w, http.StatusBadGateway, map[string]any{
			"error": snap.Error,
		})
	}

	return writeJSON(w, http.StatusOK, map[string]any{
		"analysis": result.Analysis,
		"image":    result.Image.DataURI,
		"saved":    r.collectionSvc.IsSaved(result.Analysis),
	})
}

// GET /v1/session
func (r *Router) handleSession(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, http.StatusOK, r.analyzeSvc.State.Snapshot())
}

// POST /v1/session/reset
func (r *Router) handleSessionReset(w http.ResponseWriter, req *http.Request) error {
	fact := r.analyzeSvc.Reset()
	return writeJSON(w, http.StatusOK, map[string]any{
		"status": "idle",
		"fact":   fact,
	})
}

// GET /v1/collection?category=
func (r *Router) handleCollectionList(w http.ResponseWriter, req *http.Request) error {
	category := req.URL.Query().Get("category")
	if category == "" {
		category = rocks.FilterAll
	}
	items := r.collectionSvc.Filter(category)
	return writeJSON(w, http.StatusOK, map[string]any{
		"rocks": items,
		"count": len(items),
	})
}

// POST /v1/collection
// Body: {"analysis": {...}, "image": "data:image/jpeg;base64,..."}
func (r *Router) handleCollectionSave(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Analysis json.RawMessage `json:"analysis"`
		Image    string          `json:"image"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequestf("invalid JSON body: %v", err)
	}
	if len(body.Analysis) == 0 {
		return badRequestf("analysis is required")
	}

	// Untrusted input goes through the same sanitizer as backend output.
	analysis, err := rocks.Parse(body.Analysis)
	if err != nil {
		return badRequestf("invalid analysis: %v", err)
	}

	entry, err := r.collectionSvc.Save(req.Context(), analysis, body.Image)
	if err != nil {
		if errors.Is(err, rocks.ErrNotPersisted) {
			return writeJSON(w, http.StatusAccepted, map[string]any{
				"rock":    entry,
				"warning": "saved for this session only, persistence failed",
			})
		}
		return err
	}

	middleware.IncrementRocksSaved()
	return writeJSON(w, http.StatusCreated, map[string]any{"rock": entry})
}

// GET /v1/collection/{id}
// Fetches one saved entry and switches the session view to it.
func (r *Router) handleCollectionGet(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateRockID(id); err != nil {
		return badRequestf("%v", err)
	}

	entry, ok := r.collectionSvc.Get(rocks.RockID(id))
	if !ok {
		return sql.ErrNoRows
	}

	r.analyzeSvc.State.Show(entry)
	return writeJSON(w, http.StatusOK, map[string]any{"rock": entry})
}

// DELETE /v1/collection/{id}
func (r *Router) handleCollectionDelete(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateRockID(id); err != nil {
		return badRequestf("%v", err)
	}

	if err := r.collectionSvc.Delete(req.Context(), rocks.RockID(id)); err != nil {
		if errors.Is(err, rocks.ErrNotPersisted) {
			return writeJSON(w, http.StatusAccepted, map[string]any{
				"warning": "removed for this session only, persistence failed",
			})
		}
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// GET /v1/achievements
func (r *Router) handleAchievements(w http.ResponseWriter, req *http.Request) error {
	badges, progress := r.collectionSvc.Achievements()
	return writeJSON(w, http.StatusOK, map[string]any{
		"badges":   badges,
		"progress": progress,
	})
}

// GET /v1/facts/random
func (r *Router) handleRandomFact(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, http.StatusOK, map[string]any{"fact": rocks.RandomFact()})
}

// GET /v1/thumbnail?name=&size=
// A missing thumbnail is a normal outcome, not an error.
func (r *Router) handleThumbnail(w http.ResponseWriter, req *http.Request) error {
	name := middleware.SanitizeString(req.URL.Query().Get("name"))
	if name == "" {
		return badRequestf("name is required")
	}
	size, _ := strconv.Atoi(req.URL.Query().Get("size"))
	size = middleware.ValidateThumbSize(size)

	url, err := r.wikiClient.Thumbnail(req.Context(), name, size)
	if err != nil {
		r.logger.Warn("thumbnail lookup failed", zap.String("name", name), zap.Error(err))
		url = ""
	}
	return writeJSON(w, http.StatusOK, map[string]any{"url": url})
}
