package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	sessionsURI      = "mindlog://sessions"
	sessionURIPrefix = "mindlog://sessions/"
	entryURIPrefix   = "mindlog://entries/"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerSessionsResource(srv, svc)
	registerSessionTemplate(srv, svc)
	registerEntryTemplate(srv, svc)
}

func registerSessionsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		sessionsURI,
		"Sessions",
		mcp.WithResourceDescription("All journal sessions with entry counts and cached summaries."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		sessions, err := svc.ListSessions(ctx)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"sessions": sessions,
			"count":    len(sessions),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerSessionTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		sessionURIPrefix+"{date}",
		"Session Entries",
		mcp.WithTemplateDescription("Entries and summary of one day's session."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		raw := strings.TrimPrefix(request.Params.URI, sessionURIPrefix)
		if raw == "" {
			return nil, fmt.Errorf("session date is required")
		}
		key, err := svc.ParseSession(raw)
		if err != nil {
			return nil, err
		}
		dto, err := svc.SessionByID(ctx, key)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"session": dto})
	})
}

func registerEntryTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		entryURIPrefix+"{id}",
		"Entry Details",
		mcp.WithTemplateDescription("A single entry with its reflection."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := strings.TrimPrefix(request.Params.URI, entryURIPrefix)
		if id == "" {
			return nil, fmt.Errorf("entry id is required")
		}
		dto, err := svc.EntryByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"entry": dto})
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
