package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/kasuboski/mediaindex/pkg/library"
	"github.com/kasuboski/mediaindex/pkg/logger"
	"github.com/kasuboski/mediaindex/pkg/media"
	"github.com/kasuboski/mediaindex/pkg/pagination"
	"github.com/kasuboski/mediaindex/pkg/scanner"
	"github.com/kasuboski/mediaindex/pkg/storage"
	"go.uber.org/zap"
)

type GenericResponse struct {
	Error    string `json:"error,omitempty"`
	Response any    `json:"response"`
}

// ItemsResponse is a page of stored items
type ItemsResponse struct {
	Items []storage.Item  `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

// CollectionScanner runs a full scan of a collection
type CollectionScanner interface {
	ScanCollection(ctx context.Context, coll media.Collection, opts library.ScanOptions) (scanner.Summary, error)
}

// Server exposes the stored items of the configured collections and lets clients trigger scans
type Server struct {
	baseLogger  *zap.SugaredLogger
	storage     storage.Storage
	scanner     CollectionScanner
	collections []media.Collection
}

// New creates a new media server
func New(logger *zap.SugaredLogger, store storage.Storage, scanner CollectionScanner, collections []media.Collection) Server {
	return Server{
		baseLogger:  logger,
		storage:     store,
		scanner:     scanner,
		collections: collections,
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) error {
	return writeResponse(w, status, GenericResponse{
		Error: err.Error(),
	})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	_, err = w.Write(b)
	return err
}

// Router builds the routes served by Serve
func (s Server) Router() http.Handler {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()

	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/collections", s.ListCollections()).Methods(http.MethodGet)
	v1.HandleFunc("/collections/{collection}/items", s.ListItems()).Methods(http.MethodGet)
	v1.HandleFunc("/collections/{collection}/scan", s.ScanCollection()).Methods(http.MethodPost)

	v1.HandleFunc("/movies/{id}", s.GetMovie()).Methods(http.MethodGet)
	v1.HandleFunc("/shows/{id}", s.GetShow()).Methods(http.MethodGet)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
	)(rtr)
}

// Serve starts the http server and blocks until ctx is done
func (s Server) Serve(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Router(),
	}

	errs := make(chan error, 1)
	go func() {
		s.baseLogger.Infow("serving...", "port", port)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := GenericResponse{
			Response: "ok",
		}
		writeResponse(w, http.StatusOK, response)
	}
}

// ListCollections lists the configured collections
func (s Server) ListCollections() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, GenericResponse{Response: s.collections})
	}
}

// ListItems lists the stored items of a collection. Items flagged deleted are only included with deleted=true.
func (s Server) ListItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		coll, ok := s.collection(w, r)
		if !ok {
			return
		}

		params, err := ParsePaginationParams(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		items, err := s.storage.ListItems(r.Context(), coll.ID)
		if err != nil {
			log.Errorw("failed to list items", "collection", coll.Name, "error", err)
			writeErrorResponse(w, http.StatusInternalServerError, errors.New("failed to list items"))
			return
		}

		if r.URL.Query().Get("deleted") != "true" {
			live := make([]storage.Item, 0, len(items))
			for _, item := range items {
				if !item.Deleted {
					live = append(live, item)
				}
			}
			items = live
		}

		page, meta := pagination.Slice(items, params)
		writeResponse(w, http.StatusOK, GenericResponse{Response: ItemsResponse{Items: page, Meta: meta}})
	}
}

// ScanCollection scans a collection and responds with the summary once done
func (s Server) ScanCollection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		coll, ok := s.collection(w, r)
		if !ok {
			return
		}

		opts := library.ScanOptions{OnlyNfo: r.URL.Query().Get("onlyNfo") == "true"}
		summary, err := s.scanner.ScanCollection(r.Context(), coll, opts)
		if err != nil {
			log.Errorw("failed to scan collection", "collection", coll.Name, "error", err)
			writeErrorResponse(w, http.StatusInternalServerError, fmt.Errorf("failed to scan collection %s", coll.Name))
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: summary})
	}
}

// GetMovie returns a stored movie by id
func (s Server) GetMovie() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		movie, err := s.storage.GetMovieByID(r.Context(), id)
		respondItem(w, r, movie, err)
	}
}

// GetShow returns a stored show by id with its live seasons and episodes
func (s Server) GetShow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		show, err := s.storage.GetShowByID(r.Context(), id)
		if err != nil {
			respondItem(w, r, nil, err)
			return
		}
		respondItem(w, r, show.Live(), nil)
	}
}

func respondItem(w http.ResponseWriter, r *http.Request, item any, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeErrorResponse(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		logger.FromCtx(r.Context()).Errorw("failed to get item", "error", err)
		writeErrorResponse(w, http.StatusInternalServerError, errors.New("failed to get item"))
		return
	}

	writeResponse(w, http.StatusOK, GenericResponse{Response: item})
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, errors.New("invalid id"))
		return 0, false
	}
	return id, true
}

// collection resolves the collection route variable by id or name
func (s Server) collection(w http.ResponseWriter, r *http.Request) (media.Collection, bool) {
	key := mux.Vars(r)["collection"]
	for _, coll := range s.collections {
		if coll.Name == key || strconv.FormatInt(coll.ID, 10) == key {
			return coll, true
		}
	}

	writeErrorResponse(w, http.StatusNotFound, fmt.Errorf("collection %s not found", key))
	return media.Collection{}, false
}
