package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/ostia"
	"github.com/aretw0/ostia/pkg/alphabet"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/sample"
	"github.com/aretw0/ostia/pkg/service"
)

// ModelsURI is the resource listing stored models.
const ModelsURI = "ostia://models"

// ModelList is the structured result of list_models.
type ModelList struct {
	Models []string `json:"models" jsonschema_description:"Identifiers of stored models"`
}

// TranslateResult is the structured result of translate and apply.
type TranslateResult struct {
	Output  string          `json:"output,omitempty" jsonschema_description:"Translated string, when the model has alphabets"`
	Symbols domain.Sequence `json:"symbols,omitempty" jsonschema_description:"Output symbol indices"`
	Defined bool            `json:"defined" jsonschema_description:"Whether the transducer is defined on the input"`
}

// GraphResult is the structured result of get_graph.
type GraphResult struct {
	Mermaid string `json:"mermaid" jsonschema_description:"Mermaid flowchart of the transducer"`
}

// Server exposes the model service as an MCP server.
type Server struct {
	service   *service.Service
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(svc *service.Service) *Server {
	s := &Server{
		service:   svc,
		mcpServer: server.NewMCPServer("ostia-mcp", strings.TrimSpace(ostia.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_models",
		mcp.WithDescription("List the identifiers of stored transducers."),
		mcp.WithOutputSchema[ModelList](),
	), mcp.NewStructuredToolHandler(s.handleListModels))

	s.mcpServer.AddTool(mcp.NewTool("learn",
		mcp.WithDescription("Learn a subsequential transducer from input/output string samples and store it."),
		mcp.WithString("samples", mcp.Required(), mcp.Description(`JSON array of {"input": "...", "output": "..."} pairs`)),
		mcp.WithString("name", mcp.Description("Model name")),
		mcp.WithString("alphabet", mcp.Description("Tokenisation mode: chars (default) or words")),
		mcp.WithOutputSchema[service.Summary](),
	), mcp.NewStructuredToolHandler(s.handleLearn))

	s.mcpServer.AddTool(mcp.NewTool("translate",
		mcp.WithDescription("Translate a string with a stored transducer."),
		mcp.WithString("model_id", mcp.Required(), mcp.Description("Model identifier")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string")),
		mcp.WithOutputSchema[TranslateResult](),
	), mcp.NewStructuredToolHandler(s.handleTranslate))

	s.mcpServer.AddTool(mcp.NewTool("apply",
		mcp.WithDescription("Apply a stored transducer to a sequence of input symbol indices."),
		mcp.WithString("model_id", mcp.Required(), mcp.Description("Model identifier")),
		mcp.WithString("symbols", mcp.Required(), mcp.Description("JSON array of input symbol indices")),
		mcp.WithOutputSchema[TranslateResult](),
	), mcp.NewStructuredToolHandler(s.handleApply))

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Render a stored transducer as a Mermaid flowchart, optionally tracing an input."),
		mcp.WithString("model_id", mcp.Required(), mcp.Description("Model identifier")),
		mcp.WithString("trace", mcp.Description("Input string whose path is highlighted")),
		mcp.WithOutputSchema[GraphResult](),
	), mcp.NewStructuredToolHandler(s.handleGraph))
}

func (s *Server) handleListModels(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ModelList, error) {
	ids, err := s.service.List(ctx)
	if err != nil {
		return ModelList{}, fmt.Errorf("list failed: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ModelList{Models: ids}, nil
}

func (s *Server) handleLearn(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (service.Summary, error) {
	raw, _ := args["samples"].(string)
	set := &sample.Set{}
	if err := json.Unmarshal([]byte(raw), &set.Pairs); err != nil {
		return service.Summary{}, fmt.Errorf("invalid samples: %w", err)
	}
	set.Name, _ = args["name"].(string)
	if mode, ok := args["alphabet"].(string); ok {
		set.Alphabet = alphabet.Mode(mode)
	}

	summary, err := s.service.Learn(ctx, set)
	if err != nil {
		slog.Warn("MCP Learn: rejected", "error", err)
		return service.Summary{}, fmt.Errorf("learn failed: %w", err)
	}
	return summary, nil
}

func (s *Server) handleTranslate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TranslateResult, error) {
	id, _ := args["model_id"].(string)
	input, _ := args["input"].(string)

	out, ok, err := s.service.Translate(ctx, id, input)
	if err != nil {
		return TranslateResult{}, fmt.Errorf("translate failed: %w", err)
	}
	return TranslateResult{Output: out, Defined: ok}, nil
}

func (s *Server) handleApply(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TranslateResult, error) {
	id, _ := args["model_id"].(string)
	raw, _ := args["symbols"].(string)

	var seq domain.Sequence
	if err := json.Unmarshal([]byte(raw), &seq); err != nil {
		return TranslateResult{}, fmt.Errorf("invalid symbols: %w", err)
	}
	out, ok, err := s.service.Apply(ctx, id, seq)
	if err != nil {
		return TranslateResult{}, fmt.Errorf("apply failed: %w", err)
	}
	return TranslateResult{Symbols: out, Defined: ok}, nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GraphResult, error) {
	id, _ := args["model_id"].(string)
	trace, _ := args["trace"].(string)

	mermaid, err := s.service.Graph(ctx, id, trace)
	if err != nil {
		return GraphResult{}, fmt.Errorf("graph failed: %w", err)
	}
	return GraphResult{Mermaid: mermaid}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(ModelsURI, "Stored transducers",
		mcp.WithMIMEType("application/json"),
	), s.readModels)
}

func (s *Server) readModels(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ids, err := s.service.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	summaries := make([]service.Summary, 0, len(ids))
	for _, id := range ids {
		summary, err := s.service.Describe(ctx, id)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	jsonBytes, _ := json.Marshal(summaries)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ModelsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
