// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes vault statistics tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/vaultstats/internal/apperr"
	"github.com/starford/vaultstats/internal/dashboard"
	"github.com/starford/vaultstats/internal/models"
)

const fieldsURI = "vaultstats://fields"

// StatsService is the statistics source behind the tools.
type StatsService interface {
	Stats(ctx context.Context) (*models.VaultStatistics, error)
	Heatmap(ctx context.Context, series string, months int) (*models.HeatmapData, error)
}

// Server wraps the MCP server with the statistics tools.
type Server struct {
	mcp *server.MCPServer
	svc StatsService
}

// New creates a new MCP server with all tools registered.
func New(svc StatsService, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"vaultstats",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("get_vault_stats",
		mcp.WithDescription("Compute the full statistics snapshot of the vault: totals, word statistics, "+
			"link graph figures, tag, date, file type and folder distributions. "+
			"Field meanings are documented in the "+fieldsURI+" resource."),
	), s.getVaultStats)

	s.mcp.AddTool(mcp.NewTool("get_top_tags",
		mcp.WithDescription("List the most used tags with their note counts and percentages."),
		mcp.WithNumber("limit", mcp.Description("Number of tags to return (1-10, default 10)")),
	), s.getTopTags)

	s.mcp.AddTool(mcp.NewTool("get_hub_notes",
		mcp.WithDescription("List the notes with the most internal links, plus the orphan note count."),
	), s.getHubNotes)

	s.mcp.AddTool(mcp.NewTool("get_activity",
		mcp.WithDescription("Daily activity over the last months: active days, totals and streaks."),
		mcp.WithString("series", mcp.Description("creations or modifications (default creations)"),
			mcp.Enum(dashboard.SeriesCreations, dashboard.SeriesModifications)),
		mcp.WithNumber("months", mcp.Description("Months to cover (3-24, default from config)")),
	), s.getActivity)

	s.mcp.AddTool(mcp.NewTool("get_stats_fields",
		mcp.WithDescription("Explain every field of the statistics snapshot."),
	), s.getStatsFields)

	s.mcp.AddResource(
		mcp.NewResource(fieldsURI, "Vault statistics fields",
			mcp.WithResourceDescription("Meaning and rounding rules of every statistics field."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFieldsResource,
	)

	return s
}

// Serve speaks the MCP stdio transport over in and out until ctx is done or
// in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) getVaultStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.svc.Stats(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(st)
}

type topTagsResult struct {
	Tags       []models.TagInfo `json:"tags"`
	TotalTags  int              `json:"totalTags"`
	UniqueTags int              `json:"uniqueTags"`
	Untagged   int              `json:"notesWithoutTags"`
}

func (s *Server) getTopTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)
	if limit < 1 {
		return mcp.NewToolResultError("limit must be at least 1"), nil
	}
	st, err := s.svc.Stats(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tags := st.TagDistribution
	if limit < len(tags) {
		tags = tags[:limit]
	}
	return jsonResult(topTagsResult{
		Tags:       tags,
		TotalTags:  st.TotalTags,
		UniqueTags: len(st.UniqueTags),
		Untagged:   st.NotesWithoutTags,
	})
}

type hubNotesResult struct {
	Hubs              []models.NoteInfo `json:"hubNotes"`
	OrphanNotes       int               `json:"orphanNotes"`
	ConnectivityScore int               `json:"connectivityScore"`
}

func (s *Server) getHubNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.svc.Stats(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(hubNotesResult{
		Hubs:              st.HubNotes,
		OrphanNotes:       st.OrphanNotes,
		ConnectivityScore: st.ConnectivityScore,
	})
}

// activityResult is the heatmap without its empty days and week grouping.
type activityResult struct {
	Series        string                `json:"series"`
	From          string                `json:"from"`
	To            string                `json:"to"`
	Total         int                   `json:"total"`
	MaxCount      int                   `json:"maxCount"`
	CurrentStreak int                   `json:"currentStreak"`
	LongestStreak int                   `json:"longestStreak"`
	ActiveDays    []models.ActivityCell `json:"activeDays"`
}

func (s *Server) getActivity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	series := req.GetString("series", dashboard.SeriesCreations)
	months := req.GetInt("months", 0)

	hm, err := s.svc.Heatmap(ctx, series, months)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidSeries) {
			return mcp.NewToolResultError("series must be creations or modifications"), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	active := make([]models.ActivityCell, 0)
	for _, c := range hm.Cells {
		if c.Count > 0 {
			active = append(active, c)
		}
	}
	return jsonResult(activityResult{
		Series:        hm.Series,
		From:          hm.From,
		To:            hm.To,
		Total:         hm.Total,
		MaxCount:      hm.MaxCount,
		CurrentStreak: hm.CurrentStreak,
		LongestStreak: hm.LongestStreak,
		ActiveDays:    active,
	})
}

func (s *Server) getStatsFields(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(StatsFieldsDoc), nil
}

func (s *Server) readFieldsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      fieldsURI,
			MIMEType: "text/markdown",
			Text:     StatsFieldsDoc,
		},
	}, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
