package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/kadro-api/internal/importer"
	"github.com/kadro-api/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	posHandler    *PositionHandler
	tasraHandler  *TasraPositionHandler
	personHandler *PersonnelHandler
	importHandler *ImportHandler
}

// NewRouter создаёт новый роутер
func NewRouter(
	posHandler *PositionHandler,
	tasraHandler *TasraPositionHandler,
	personHandler *PersonnelHandler,
	importHandler *ImportHandler,
	logger *slog.Logger,
) *Router {
	return &Router{
		mux:           http.NewServeMux(),
		logger:        logger,
		posHandler:    posHandler,
		tasraHandler:  tasraHandler,
		personHandler: personHandler,
		importHandler: importHandler,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	r.mux.HandleFunc("/positions", r.positionsRouter)
	r.mux.HandleFunc("/positions/", r.positionsRouter)
	r.mux.HandleFunc("/tasra-positions", r.tasraRouter)
	r.mux.HandleFunc("/tasra-positions/", r.tasraRouter)
	r.mux.HandleFunc("/personnel", r.personnelRouter)
	r.mux.HandleFunc("/personnel/", r.personnelRouter)

	// Health check
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}

// positionsRouter обрабатывает все запросы к /positions
func (r *Router) positionsRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.Trim(strings.TrimPrefix(req.URL.Path, "/positions"), "/")

	switch {
	case path == "":
		switch req.Method {
		case http.MethodGet:
			r.posHandler.List(w, req)
		case http.MethodPost:
			r.posHandler.Create(w, req)
		default:
			methodNotAllowed(w)
		}
	case path == "tree" && req.Method == http.MethodGet:
		r.posHandler.Tree(w, req)
	case path == "export" && req.Method == http.MethodGet:
		r.posHandler.Export(w, req)
	case path == "import" && req.Method == http.MethodPost:
		r.importHandler.Handle(importer.KindPosition)(w, req)
	case !strings.Contains(path, "/"):
		// /positions/{id}
		switch req.Method {
		case http.MethodPatch:
			r.posHandler.Update(w, req)
		case http.MethodDelete:
			r.posHandler.Delete(w, req)
		default:
			methodNotAllowed(w)
		}
	default:
		notFound(w)
	}
}

// tasraRouter обрабатывает все запросы к /tasra-positions
func (r *Router) tasraRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.Trim(strings.TrimPrefix(req.URL.Path, "/tasra-positions"), "/")

	switch {
	case path == "":
		switch req.Method {
		case http.MethodGet:
			r.tasraHandler.List(w, req)
		case http.MethodPost:
			r.tasraHandler.Create(w, req)
		default:
			methodNotAllowed(w)
		}
	case path == "import" && req.Method == http.MethodPost:
		r.importHandler.Handle(importer.KindTasraPosition)(w, req)
	case !strings.Contains(path, "/"):
		switch req.Method {
		case http.MethodPatch:
			r.tasraHandler.Update(w, req)
		case http.MethodDelete:
			r.tasraHandler.Delete(w, req)
		default:
			methodNotAllowed(w)
		}
	default:
		notFound(w)
	}
}

// personnelRouter обрабатывает все запросы к /personnel
func (r *Router) personnelRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.Trim(strings.TrimPrefix(req.URL.Path, "/personnel"), "/")

	switch {
	case path == "":
		switch req.Method {
		case http.MethodGet:
			r.personHandler.List(w, req)
		case http.MethodPost:
			r.personHandler.Create(w, req)
		default:
			methodNotAllowed(w)
		}
	case path == "import" && req.Method == http.MethodPost:
		r.importHandler.Handle(importer.KindPersonnel)(w, req)
	case !strings.Contains(path, "/") && req.Method == http.MethodDelete:
		r.personHandler.Delete(w, req)
	case !strings.Contains(path, "/"):
		methodNotAllowed(w)
	default:
		notFound(w)
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
}

func notFound(w http.ResponseWriter) {
	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}
