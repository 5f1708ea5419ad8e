package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Size limits for rendered previews
const (
	minSize  = 16
	maxSize  = 2000
	maxDepth = 32
)

// Server renders built-in scenes over HTTP
type Server struct {
	port    int
	console *Console
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port, console: NewConsole(consoleHistory)}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string        `json:"scene"`    // Built-in scene name
	Width    int           `json:"width"`    // Image width, defaults to the scene's
	Height   int           `json:"height"`   // Image height, defaults to the scene's
	MaxDepth int           `json:"maxDepth"` // Reflection and refraction budget
	Format   output.Format `json:"format"`   // Response image format
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	Hits             int     `json:"hits"`
	HitRatio         float64 `json:"hitRatio"`
	AverageLuminance float64 `json:"averageLuminance"`
	ElapsedMs        int64   `json:"elapsedMs"`
}

// Start installs the console logger and serves until the listener fails
func (s *Server) Start() error {
	core.SetLogger(slog.New(s.console.Handler(slog.LevelInfo,
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))))

	addr := fmt.Sprintf(":%d", s.port)
	core.Logger().Info("starting web server", "addr", "http://localhost"+addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/scenes", s.handleScenes)
	mux.HandleFunc("GET /api/render", s.handleRender)
	mux.HandleFunc("GET /api/inspect", s.handleInspect)
	mux.HandleFunc("GET /api/console", s.handleConsole)
	return mux
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes with their default views
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	type sceneInfo struct {
		Name        string  `json:"name"`
		Width       int     `json:"width"`
		Height      int     `json:"height"`
		FieldOfView float64 `json:"fieldOfView"` // Degrees
		Objects     int     `json:"objects"`
		Lights      int     `json:"lights"`
	}

	var scenes []sceneInfo
	for _, name := range scene.Names() {
		preset, err := scene.Lookup(name)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		scenes = append(scenes, sceneInfo{
			Name:        name,
			Width:       preset.View.Width,
			Height:      preset.View.Height,
			FieldOfView: preset.View.FieldOfView * 180 / math.Pi,
			Objects:     preset.World.GetPrimitiveCount(),
			Lights:      len(preset.World.Lights),
		})
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleRender renders a scene and responds with the encoded image. Render
// statistics travel in the X-Render-Stats header.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, preset, err := s.parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	camera, err := newCamera(preset.View, req.Width, req.Height)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rt := renderer.NewRaytracer(preset.World, camera)
	rt.SetMaxDepth(req.MaxDepth)
	canvas, stats := rt.Render()

	var buf bytes.Buffer
	if err := output.Encode(&buf, canvas, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	statsJSON, err := json.Marshal(Stats{
		TotalPixels:      stats.TotalPixels,
		Hits:             stats.Hits,
		HitRatio:         stats.HitRatio(),
		AverageLuminance: stats.AverageLuminance,
		ElapsedMs:        stats.Duration.Milliseconds(),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", contentType(req.Format))
	w.Header().Set("X-Render-Stats", string(statsJSON))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseRenderRequest reads the query and builds the requested scene.
// Width and height default to the scene's own view.
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, *scene.Preset, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	preset, err := scene.Lookup(req.Scene)
	if err != nil {
		return nil, nil, err
	}

	if req.Width, err = parseIntParam(values, "width", preset.View.Width, minSize, maxSize); err != nil {
		return nil, nil, err
	}
	if req.Height, err = parseIntParam(values, "height", preset.View.Height, minSize, maxSize); err != nil {
		return nil, nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", renderer.DefaultMaxDepth, 0, maxDepth); err != nil {
		return nil, nil, err
	}

	req.Format = output.FormatPNG
	if f := values.Get("format"); f != "" {
		if req.Format, err = output.ParseFormat(f); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", errBadParam, err)
		}
	}

	if req.Width*req.Height > 800*600 && req.MaxDepth > 10 {
		core.Logger().Warn("large image with deep recursion may render slowly",
			"width", req.Width, "height", req.Height, "maxDepth", req.MaxDepth)
	}
	return req, preset, nil
}

// newCamera builds a camera for the view at the requested size
func newCamera(view scene.View, width, height int) (*renderer.Camera, error) {
	camera, err := renderer.NewCamera(width, height, view.FieldOfView)
	if err != nil {
		return nil, err
	}
	if err := camera.SetTransform(view.Transform()); err != nil {
		return nil, err
	}
	return camera, nil
}

var errBadParam = errors.New("invalid parameter")

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("%w: %s=%q", errBadParam, key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%w: %s must be between %d and %d, got %d", errBadParam, key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func contentType(f output.Format) string {
	switch f {
	case output.FormatPNG:
		return "image/png"
	case output.FormatBMP:
		return "image/bmp"
	case output.FormatTIFF:
		return "image/tiff"
	default:
		return "image/x-portable-pixmap"
	}
}

func statusFor(err error) int {
	if errors.Is(err, scene.ErrUnknownScene) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
