package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/mindlog/pkg/entry"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerWriteEntryTool(srv, svc)
	registerListSessionsTool(srv, svc)
	registerSearchEntriesTool(srv, svc)
	registerSummarizeSessionTool(srv, svc)
	registerGetSummaryTool(srv, svc)
	registerChatEntryTool(srv, svc)
}

func registerWriteEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"write_entry",
		mcp.WithDescription("Write a journal entry for today and return it with its AI reflection."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("What the writer wants to journal about."),
		),
		mcp.WithNumber("importance",
			mcp.Description("Importance from 1 to 5. Defaults to 3."),
		),
		mcp.WithNumber("mood",
			mcp.Description("Mood from 1 to 10. Omit to leave unset."),
		),
		mcp.WithString("topic",
			mcp.Description("Topic tag such as work, life, school, relationships, goals or emotions."),
		),
		mcp.WithBoolean("stressed",
			mcp.Description("Whether the writer feels stressed."),
		),
		mcp.WithBoolean("motivated",
			mcp.Description("Whether the writer feels motivated."),
		),
		mcp.WithString("insight",
			mcp.Description("How deep the reflection should go."),
			mcp.Enum("gentle", "balanced", "deep"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.Params.Arguments
		text, _ := args["text"].(string)
		if strings.TrimSpace(text) == "" {
			return mcp.NewToolResultError("'text' parameter is required and must be a non-empty string."), nil
		}

		meta, err := metadataFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.WriteEntry(ctx, WriteEntryOptions{Text: text, Metadata: meta})
		if err != nil {
			if dto.ID != "" {
				return mcp.NewToolResultError(fmt.Sprintf("entry %s saved but the reflection failed: %v", dto.ID, err)), nil
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListSessionsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_sessions",
		mcp.WithDescription("List journal sessions, newest first, with entry counts and cached summaries."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessions, err := svc.ListSessions(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"sessions": sessions,
			"count":    len(sessions),
		})
	})
}

func registerSearchEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_entries",
		mcp.WithDescription("Search entries and reflections for text, case-insensitively."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to look for."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, _ := request.Params.Arguments["query"].(string)
		if strings.TrimSpace(query) == "" {
			return mcp.NewToolResultError("'query' parameter is required and must be a non-empty string."), nil
		}
		limit := 0
		if v, ok := request.Params.Arguments["limit"].(float64); ok {
			limit = int(v)
		}

		entries, err := svc.SearchEntries(ctx, query, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query":   query,
			"entries": entries,
			"count":   len(entries),
		})
	})
}

func registerSummarizeSessionTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"summarize_session",
		mcp.WithDescription("Generate a fresh summary of a session's most important entries and cache it."),
		mcp.WithString("session",
			mcp.Required(),
			mcp.Description("Session date as YYYY-MM-DD, today or yesterday."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, err := sessionArg(svc, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Summarize(ctx, key)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerGetSummaryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_summary",
		mcp.WithDescription("Return the cached summary of a session without generating a new one."),
		mcp.WithString("session",
			mcp.Required(),
			mcp.Description("Session date as YYYY-MM-DD, today or yesterday."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, err := sessionArg(svc, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.GetSummary(ctx, key)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerChatEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"chat_entry",
		mcp.WithDescription("Continue the conversation about an entry. Without a message the current thread is returned."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier."),
		),
		mcp.WithString("message",
			mcp.Description("Follow-up question or thought."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, _ := request.Params.Arguments["id"].(string)
		if strings.TrimSpace(id) == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}
		message, _ := request.Params.Arguments["message"].(string)

		dto, err := svc.ChatEntry(ctx, strings.TrimSpace(id), message)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func sessionArg(svc *Service, request mcp.CallToolRequest) (string, error) {
	raw, _ := request.Params.Arguments["session"].(string)
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("'session' parameter is required")
	}
	return svc.ParseSession(raw)
}

// metadataFromArgs reads entry metadata from tool arguments. JSON numbers
// arrive as float64.
func metadataFromArgs(args map[string]any) (entry.Metadata, error) {
	meta := entry.DefaultMetadata()
	if v, ok := args["importance"].(float64); ok {
		meta.Importance = int(v)
	}
	if v, ok := args["mood"].(float64); ok {
		meta.Mood = int(v)
	}
	if v, ok := args["topic"].(string); ok {
		meta.Topic = v
	}
	if v, ok := args["stressed"].(bool); ok {
		meta.Stressed = v
	}
	if v, ok := args["motivated"].(bool); ok {
		meta.Motivated = v
	}
	if v, ok := args["insight"].(string); ok {
		level, err := entry.ParseInsight(v)
		if err != nil {
			return meta, err
		}
		meta.InsightLevel = level
	}
	return meta, meta.Validate()
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
