package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/vaultstats/internal/dashboard"
	"github.com/starford/vaultstats/internal/models"
)

// fakeService serves a fixed snapshot and builds heatmaps from it.
type fakeService struct {
	st  *models.VaultStatistics
	err error
}

func (f *fakeService) Stats(ctx context.Context) (*models.VaultStatistics, error) {
	return f.st, f.err
}

func (f *fakeService) Heatmap(ctx context.Context, series string, months int) (*models.HeatmapData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return dashboard.HeatmapOf(f.st, series, months, time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))
}

func testServer(t *testing.T) *Server {
	t.Helper()
	var tags []models.TagInfo
	for i := 0; i < 10; i++ {
		tags = append(tags, models.TagInfo{Tag: fmt.Sprintf("#t%d", i), Count: 10 - i})
	}
	st := &models.VaultStatistics{
		TotalNotes:        12,
		TotalTags:         60,
		UniqueTags:        make([]string, 14),
		TagDistribution:   tags,
		NotesWithoutTags:  2,
		OrphanNotes:       3,
		ConnectivityScore: 75,
		HubNotes:          []models.NoteInfo{{Path: "hub.md", Name: "hub", LinkCount: 9}},
		CreationsByDate: []models.DateCount{
			{Date: "2024-06-13", Count: 1},
			{Date: "2024-06-14", Count: 2},
			{Date: "2024-06-15", Count: 4},
		},
		ModificationsByDate: []models.DateCount{{Date: "2024-01-02", Count: 5}},
	}
	return New(&fakeService{st: st}, "test")
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no test helper for calling a tool, so handlers are invoked directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "get_vault_stats":
		result, err = srv.getVaultStats(ctx, req)
	case "get_top_tags":
		result, err = srv.getTopTags(ctx, req)
	case "get_hub_notes":
		result, err = srv.getHubNotes(ctx, req)
	case "get_activity":
		result, err = srv.getActivity(ctx, req)
	case "get_stats_fields":
		result, err = srv.getStatsFields(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func decode(t *testing.T, r *mcp.CallToolResult, v any) {
	t.Helper()
	if r.IsError {
		t.Fatalf("tool error: %s", resultText(r))
	}
	if err := json.Unmarshal([]byte(resultText(r)), v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestGetVaultStats(t *testing.T) {
	srv := testServer(t)
	var st models.VaultStatistics
	decode(t, callTool(t, srv, "get_vault_stats", nil), &st)
	if st.TotalNotes != 12 || st.OrphanNotes != 3 {
		t.Errorf("stats = %+v", st)
	}
}

func TestGetVaultStats_Error(t *testing.T) {
	srv := New(&fakeService{err: errors.New("boom")}, "test")
	r := callTool(t, srv, "get_vault_stats", nil)
	if !r.IsError || !strings.Contains(resultText(r), "boom") {
		t.Errorf("expected tool error, got %q", resultText(r))
	}
}

func TestGetTopTags(t *testing.T) {
	srv := testServer(t)

	var res topTagsResult
	decode(t, callTool(t, srv, "get_top_tags", map[string]any{"limit": float64(3)}), &res)
	if len(res.Tags) != 3 || res.Tags[0].Tag != "#t0" {
		t.Errorf("tags = %+v", res.Tags)
	}
	if res.TotalTags != 60 || res.UniqueTags != 14 || res.Untagged != 2 {
		t.Errorf("totals = %+v", res)
	}

	decode(t, callTool(t, srv, "get_top_tags", nil), &res)
	if len(res.Tags) != 10 {
		t.Errorf("default limit returned %d tags, want 10", len(res.Tags))
	}

	if r := callTool(t, srv, "get_top_tags", map[string]any{"limit": float64(0)}); !r.IsError {
		t.Error("expected error for limit 0")
	}
}

func TestGetHubNotes(t *testing.T) {
	srv := testServer(t)
	var res hubNotesResult
	decode(t, callTool(t, srv, "get_hub_notes", nil), &res)
	if len(res.Hubs) != 1 || res.Hubs[0].Path != "hub.md" || res.OrphanNotes != 3 || res.ConnectivityScore != 75 {
		t.Errorf("hubs = %+v", res)
	}
}

func TestGetActivity(t *testing.T) {
	srv := testServer(t)
	var res activityResult
	decode(t, callTool(t, srv, "get_activity", map[string]any{"months": float64(3)}), &res)
	if res.Series != "creations" || res.To != "2024-06-15" {
		t.Errorf("series=%s to=%s", res.Series, res.To)
	}
	if len(res.ActiveDays) != 3 || res.Total != 7 || res.MaxCount != 4 {
		t.Errorf("active=%d total=%d max=%d", len(res.ActiveDays), res.Total, res.MaxCount)
	}
	if res.CurrentStreak != 3 || res.LongestStreak != 3 {
		t.Errorf("streaks = %d/%d, want 3/3", res.CurrentStreak, res.LongestStreak)
	}
	if res.ActiveDays[2].Level != 4 {
		t.Errorf("busiest day level = %d, want 4", res.ActiveDays[2].Level)
	}
}

func TestGetActivity_InvalidSeries(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "get_activity", map[string]any{"series": "words"})
	if !r.IsError {
		t.Error("expected error for unknown series")
	}
}

func TestFieldsResource(t *testing.T) {
	srv := testServer(t)
	contents, err := srv.readFieldsResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.URI != fieldsURI || !strings.Contains(tc.Text, "connectivityScore") {
		t.Errorf("resource = %+v", contents[0])
	}
	if resultText(callTool(t, srv, "get_stats_fields", nil)) != StatsFieldsDoc {
		t.Error("get_stats_fields should return the fields document")
	}
}
