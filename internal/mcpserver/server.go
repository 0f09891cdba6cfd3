// Package mcpserver exposes the distiller as a Model Context Protocol tool
// over stdio, so agents can shrink large JSON payloads before reading them.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jacobprice808/json-distiller/distill"
)

const toolName = "distill_json_content"

// New builds the MCP server with the distill tool registered.
func New(version string, log distill.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"json-distiller",
		version,
		server.WithToolCapabilities(false),
	)

	tool := mcp.NewTool(toolName,
		mcp.WithDescription(
			"Distill a large JSON document into a compact structural summary: "+
				"runs of list elements sharing the same deep structure collapse into "+
				"one concrete example plus a count. Use this to inspect big, "+
				"repetitive payloads without reading every element."),
		mcp.WithString("json_string",
			mcp.Required(),
			mcp.Description("The JSON document to distill, as a string."),
		),
		mcp.WithBoolean("strict_typing",
			mcp.DefaultBool(true),
			mcp.Description("Treat int and float fields as distinct structures."),
		),
		mcp.WithNumber("repeat_threshold",
			mcp.DefaultNumber(2),
			mcp.Description("Minimum run length before repeated siblings are summarized. Must be >= 1."),
		),
		mcp.WithBoolean("position_dependent",
			mcp.DefaultBool(false),
			mcp.Description("Show one example per structure per nesting depth instead of one globally."),
		),
	)
	s.AddTool(tool, distillHandler(log))
	return s
}

// Serve runs the MCP server on stdio until the client disconnects.
func Serve(version string, log distill.Logger) error {
	log.Infof("mcp stdio server starting")
	return server.ServeStdio(New(version, log))
}

func distillHandler(log distill.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		src, err := req.RequireString("json_string")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		opts := distill.DefaultOptions()
		opts.StrictTyping = req.GetBool("strict_typing", true)
		opts.RepeatThreshold = req.GetInt("repeat_threshold", 2)
		opts.PositionDependent = req.GetBool("position_dependent", false)
		opts.Logger = log
		if opts.RepeatThreshold < 1 {
			return mcp.NewToolResultError(
				fmt.Sprintf("repeat_threshold must be >= 1, got %d", opts.RepeatThreshold)), nil
		}

		root, err := distill.DecodeJSON([]byte(src))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid JSON input: %v", err)), nil
		}

		env, res, err := distill.DistillDocument(root, opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		out, err := distill.EncodeJSON(env, "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
		}

		log.With(map[string]any{
			"input_nodes":  res.InputNodes,
			"output_nodes": res.OutputNodes,
		}).Infof("tool call distilled a document")
		return mcp.NewToolResultText(string(out)), nil
	}
}
