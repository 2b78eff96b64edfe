package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/passage"
	"github.com/aretw0/passage/pkg/domain"
	"github.com/aretw0/passage/pkg/policy"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// Tool, resource and prompt names exposed to agents.
const (
	ToolGetRequirements = "get_requirements"
	ToolGetVisaPolicy   = "get_visa_policy"
	ResourcePolicies    = "passage://policies"
	PromptAssistant     = "travel_assistant"
)

// Service defines what the MCP server needs from the Passage service.
type Service interface {
	GetRequirements(ctx context.Context, from, to string, duration any, purpose string) domain.Result
	VisaPolicy(origin, destination string) (domain.VisaPolicy, bool)
	Policies() []policy.Entry
	Rules() policy.Rules
}

var _ Service = (*passage.Service)(nil)

// VisaPolicyResponse is the structured output of get_visa_policy.
type VisaPolicyResponse struct {
	FromCountry string            `json:"from_country" jsonschema_description:"Origin country, title-cased"`
	ToCountry   string            `json:"to_country" jsonschema_description:"Destination country, title-cased"`
	Listed      bool              `json:"listed" jsonschema_description:"False when no bilateral entry exists and the conservative default applies"`
	Policy      domain.VisaPolicy `json:"policy" jsonschema_description:"Visa facts for the directional pair"`
}

// PoliciesDocument is the content of the passage://policies resource.
type PoliciesDocument struct {
	Policies []policy.Entry `json:"policies"`
	Rules    RulesDocument  `json:"rules"`
}

// RulesDocument lists the destination rule sets.
type RulesDocument struct {
	InsuranceRequired []string `json:"insurance_required"`
	HighCost          []string `json:"high_cost"`
}

type requirementsArgs struct {
	FromCountry  string `mapstructure:"from_country"`
	ToCountry    string `mapstructure:"to_country"`
	TripDuration any    `mapstructure:"trip_duration"`
	TripPurpose  string `mapstructure:"trip_purpose"`
}

type visaArgs struct {
	FromCountry string `json:"from_country"`
	ToCountry   string `json:"to_country"`
}

// Server wraps the Passage service and exposes it as an MCP Server.
type Server struct {
	service   Service
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(service Service) *Server {
	s := &Server{
		service: service,
		mcpServer: server.NewMCPServer("passage-mcp", strings.TrimSpace(passage.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
			server.WithPromptCapabilities(false),
			server.WithRecovery(),
		),
	}
	s.registerTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

// MCPServer returns the underlying protocol server, e.g. for in-process clients.
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
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
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
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
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

// durationSchema accepts the number and numeric-string forms the handler decodes.
var durationSchema = map[string]any{
	"type":        []string{"integer", "string"},
	"minimum":     1,
	"pattern":     `^\s*\+?[0-9]+\s*$`,
	"description": `Length of stay in days: a positive whole number, given as a number (10) or a numeric string ("10")`,
}

func (s *Server) registerTools() {
	// TOOL: get_requirements
	requirementsTool := mcp.NewTool(ToolGetRequirements,
		mcp.WithDescription("Analyze the documentation requirements for a traveler's international trip. "+
			"Returns required and optional documents, visa facts and a summary, or an object with an 'error' field."),
		mcp.WithString(domain.FieldFromCountry, mcp.Required(), mcp.Description("The traveler's country of citizenship, e.g. Canada")),
		mcp.WithString(domain.FieldToCountry, mcp.Required(), mcp.Description("The destination country, e.g. Japan")),
		mcp.WithNumber(domain.FieldTripDuration, mcp.Required()),
		mcp.WithString(domain.FieldTripPurpose,
			mcp.Description("Purpose of travel: tourism, business, transit, study, work, family visit or other. Defaults to tourism")),
		mcp.WithOutputSchema[domain.RequirementReport](),
	)
	requirementsTool.InputSchema.Properties[domain.FieldTripDuration] = durationSchema
	s.mcpServer.AddTool(requirementsTool, s.handleGetRequirements)

	// TOOL: get_visa_policy
	visaTool := mcp.NewTool(ToolGetVisaPolicy,
		mcp.WithDescription("Look up the visa facts for travel from one country to another. Pairs are directional."),
		mcp.WithString(domain.FieldFromCountry, mcp.Required(), mcp.Description("Origin country")),
		mcp.WithString(domain.FieldToCountry, mcp.Required(), mcp.Description("Destination country")),
		mcp.WithOutputSchema[VisaPolicyResponse](),
	)
	s.mcpServer.AddTool(visaTool, mcp.NewStructuredToolHandler(s.handleVisaPolicy))
}

func (s *Server) handleGetRequirements(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args requirementsArgs
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &args,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(request.GetArguments()); err != nil {
		slog.Warn("MCP get_requirements: Invalid arguments", "error", err)
		return errorResult(fmt.Errorf("invalid arguments: %w", err)), nil
	}

	var missing []string
	if strings.TrimSpace(args.FromCountry) == "" {
		missing = append(missing, domain.FieldFromCountry)
	}
	if strings.TrimSpace(args.ToCountry) == "" {
		missing = append(missing, domain.FieldToCountry)
	}
	if len(missing) > 0 {
		return errorResult(fmt.Errorf("missing required argument(s): %s", strings.Join(missing, ", "))), nil
	}

	res := s.service.GetRequirements(ctx, args.FromCountry, args.ToCountry, args.TripDuration, args.TripPurpose)
	if !res.OK() {
		slog.Debug("MCP get_requirements: Request rejected", "error", res.Err.Error)
		return errorResult(errors.New(res.Err.Error)), nil
	}

	text, err := json.Marshal(res.Report)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return structuredResult(res.Report, string(text)), nil
}

func (s *Server) handleVisaPolicy(ctx context.Context, request mcp.CallToolRequest, args visaArgs) (VisaPolicyResponse, error) {
	if strings.TrimSpace(args.FromCountry) == "" || strings.TrimSpace(args.ToCountry) == "" {
		return VisaPolicyResponse{}, fmt.Errorf("%s and %s are required", domain.FieldFromCountry, domain.FieldToCountry)
	}

	p, listed := s.service.VisaPolicy(args.FromCountry, args.ToCountry)
	return VisaPolicyResponse{
		FromCountry: domain.NormalizeCountry(args.FromCountry).Display(),
		ToCountry:   domain.NormalizeCountry(args.ToCountry).Display(),
		Listed:      listed,
		Policy:      p,
	}, nil
}

// errorResult reports a recoverable failure as the {"error": ...} object, flagged as a tool error.
func errorResult(err error) *mcp.CallToolResult {
	obj := domain.ErrorResult{Error: err.Error()}
	text, _ := json.Marshal(obj)
	res := structuredResult(obj, string(text))
	res.IsError = true
	return res
}

// structuredResult carries v as structured content, with its JSON as the text fallback for
// clients that predate structured output.
func structuredResult(v any, text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content:           []mcp.Content{mcp.NewTextContent(text)},
		StructuredContent: v,
	}
}

func (s *Server) registerResources() {
	// EXPOSE: passage://policies
	s.mcpServer.AddResource(mcp.NewResource(ResourcePolicies, "Bilateral Visa Policies",
		mcp.WithResourceDescription("Listed country pairs and the destination rule sets"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		rules := s.service.Rules()
		doc := PoliciesDocument{
			Policies: s.service.Policies(),
			Rules: RulesDocument{
				InsuranceRequired: rules.InsuranceRequired(),
				HighCost:          rules.HighCost(),
			},
		}
		jsonBytes, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to encode policies: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ResourcePolicies,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

const assistantIntro = "Hello! I am your travel documentation assistant. I can tell you which documents " +
	"and visas you need for an international trip. Tell me your country of citizenship, your " +
	"destination, how many days you will stay and the purpose of the trip (tourism, business, " +
	"transit, study, work, family visit or other)."

func (s *Server) registerPrompts() {
	s.mcpServer.AddPrompt(mcp.NewPrompt(PromptAssistant,
		mcp.WithPromptDescription("Introduce the travel documentation assistant and ask for the trip details"),
	), func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return mcp.NewGetPromptResult(
			"Travel documentation assistant",
			[]mcp.PromptMessage{
				mcp.NewPromptMessage(mcp.RoleAssistant, mcp.NewTextContent(assistantIntro)),
			},
		), nil
	})
}
