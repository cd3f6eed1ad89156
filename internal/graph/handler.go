package graph

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/photogram/photogram/internal/loader"
	"github.com/photogram/photogram/internal/metrics"
	"github.com/photogram/photogram/internal/repository"
)

// Handler serves GraphQL over HTTP. Each request gets its own loader
// bundle; the bundle and its caches die with the request.
type Handler struct {
	schema    *graphql.Schema
	repo      *repository.Repository
	loaderCfg loader.Config
	logger    *slog.Logger
	recorder  metrics.Recorder
	maxBody   int64
}

// HandlerConfig holds dependencies for the GraphQL handler.
type HandlerConfig struct {
	Repository *repository.Repository
	LoaderCfg  loader.Config
	Logger     *slog.Logger
	Recorder   metrics.Recorder
	// MaxBodySize limits request bodies, in bytes. Zero means no limit.
	MaxBodySize int64
}

// NewHandler parses the schema and returns the /graphql handler.
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Recorder == nil {
		cfg.Recorder = metrics.NewNoop()
	}
	if cfg.LoaderCfg.Recorder == nil {
		cfg.LoaderCfg.Recorder = cfg.Recorder
	}

	schema := graphql.MustParseSchema(Schema, NewResolver(NewStore(cfg.Repository)), graphql.UseStringDescriptions())

	return &Handler{
		schema:    schema,
		repo:      cfg.Repository,
		loaderCfg: cfg.LoaderCfg,
		logger:    cfg.Logger,
		recorder:  cfg.Recorder,
		maxBody:   cfg.MaxBodySize,
	}
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// ServeHTTP executes one GraphQL request.
//
// POST /graphql
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	h.recorder.IncGraphQLRequest()

	body := r.Body
	if h.maxBody > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var req graphqlRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		http.Error(w, `{"errors":[{"message":"malformed request body"}]}`, http.StatusBadRequest)
		return
	}

	// Fresh loaders per request: the cache must not outlive this
	// request's consistency snapshot.
	ctx := loader.ContextWithLoaders(r.Context(), loader.NewLoaders(h.repo, h.loaderCfg))

	response := h.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)

	for _, respErr := range response.Errors {
		h.logger.Warn("graphql field error",
			slog.String("error", respErr.Error()),
			slog.Any("path", respErr.Path),
		)
	}

	out, err := json.Marshal(response)
	if err != nil {
		h.logger.Error("failed to marshal graphql response", slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(out)

	h.recorder.ObserveGraphQLDuration(time.Since(start))
}
