package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/abl-cortex/internal/service"
)

// AddDefinitionTool registers abl_definition. Registration functions are
// composable so hosts can expose a subset of the tools.
func AddDefinitionTool(s *server.MCPServer, svc *service.Service) {
	tool := mcp.NewTool(
		"abl_definition",
		mcp.WithDescription("Find the definition of the symbol at a position in an ABL source file. Searches preprocessor defines, buffer aliases, local definitions, functions from include files and the database schema, in that order."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Source file path, absolute or workspace-relative")),
		mcp.WithNumber("line",
			mcp.Required(),
			mcp.Description("1-based line number of the position")),
		mcp.WithNumber("column",
			mcp.Required(),
			mcp.Description("1-based column number of the position")),
	)
	s.AddTool(tool, createDefinitionHandler(svc))
}

func createDefinitionHandler(svc *service.Service) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}
		file, ok := args["file"].(string)
		if !ok || file == "" {
			return mcp.NewToolResultError("file parameter is required"), nil
		}
		line, ok := args["line"].(float64)
		if !ok {
			return mcp.NewToolResultError("line parameter is required"), nil
		}
		column, ok := args["column"].(float64)
		if !ok {
			return mcp.NewToolResultError("column parameter is required"), nil
		}

		def, found, err := svc.Definition(ctx, file, int(line), int(column))
		if err != nil {
			return nil, fmt.Errorf("definition lookup failed: %w", err)
		}
		return jsonResult(newDefinitionResponse(def, found))
	}
}

// AddCheckTool registers abl_check.
func AddCheckTool(s *server.MCPServer, svc *service.Service) {
	tool := mcp.NewTool(
		"abl_check",
		mcp.WithDescription("Diagnose an ABL source file: syntax errors, wrong argument counts, unknown variables and functions, and type mismatches. Symbols defined by include files are taken into account."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Source file path, absolute or workspace-relative")),
	)
	s.AddTool(tool, createCheckHandler(svc))
}

func createCheckHandler(svc *service.Service) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}
		file, ok := args["file"].(string)
		if !ok || file == "" {
			return mcp.NewToolResultError("file parameter is required"), nil
		}

		diags, err := svc.Check(ctx, file)
		if err != nil {
			return nil, fmt.Errorf("check failed: %w", err)
		}
		return jsonResult(newCheckResponse(file, diags))
	}
}

// AddSymbolsTool registers abl_symbols.
func AddSymbolsTool(s *server.MCPServer, svc *service.Service) {
	tool := mcp.NewTool(
		"abl_symbols",
		mcp.WithDescription("List the definition symbols of an ABL source file and its include files: variables, functions, procedures, temp-tables, buffers and streams."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Source file path, absolute or workspace-relative")),
		mcp.WithString("prefix",
			mcp.Description("Case-insensitive name prefix filter")),
	)
	s.AddTool(tool, createSymbolsHandler(svc))
}

func createSymbolsHandler(svc *service.Service) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}
		file, ok := args["file"].(string)
		if !ok || file == "" {
			return mcp.NewToolResultError("file parameter is required"), nil
		}
		prefix, _ := args["prefix"].(string)

		items, err := svc.Symbols(ctx, file, prefix)
		if err != nil {
			return nil, fmt.Errorf("symbol listing failed: %w", err)
		}
		return jsonResult(newSymbolsResponse(items))
	}
}

func jsonResult(response any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
