package domain

import (
	"context"
	"fmt"
	"log"

	"github.com/louisbranch/nums/internal/gaps"
	"github.com/louisbranch/nums/internal/gaps/storage"
	"github.com/louisbranch/nums/internal/platform/timeouts"
	"github.com/louisbranch/nums/internal/solver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// defaultGapLimit is the number of records returned when the caller sets none.
const defaultGapLimit = 10

// GapsInput represents the MCP tool input for a gap analysis.
type GapsInput struct {
	Dice        int    `json:"dice" jsonschema:"number of dice, 3 or 4"`
	Min         uint32 `json:"min,omitempty" jsonschema:"first value of the scan range"`
	Max         uint32 `json:"max,omitempty" jsonschema:"end of the scan range, exclusive; 0 uses 100 for three dice and 1000 for four"`
	Limit       int    `json:"limit,omitempty" jsonschema:"number of hardest multisets to return, default 10"`
	Expressions bool   `json:"expressions,omitempty" jsonschema:"include the simplest expression for each closest value"`
}

// GapRecord represents one multiset of a gap analysis.
type GapRecord struct {
	Faces          []int  `json:"faces" jsonschema:"dice faces in ascending order"`
	Margin         Margin `json:"margin" jsonschema:"widest unreachable stretch"`
	ReachableCount int    `json:"reachable_count" jsonschema:"number of reachable values in the range"`
	Expression     string `json:"expression,omitempty" jsonschema:"simplest expression for the closest value"`
}

// GapsResult represents the MCP tool output for a gap analysis.
type GapsResult struct {
	Dice      int         `json:"dice" jsonschema:"number of dice"`
	Min       uint32      `json:"min" jsonschema:"first value of the scan range"`
	Max       uint32      `json:"max" jsonschema:"end of the scan range, exclusive"`
	Multisets int         `json:"multisets" jsonschema:"number of multisets analysed"`
	Records   []GapRecord `json:"records" jsonschema:"hardest multisets first"`
	RunID     int64       `json:"run_id,omitempty" jsonschema:"stored run id when a gap store is configured"`
}

// GapsTool defines the MCP tool schema for gap analysis.
func GapsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "dice_gaps",
		Description: "Finds, for every dice multiset, the value in a range that is hardest to reach",
	}
}

// GapsHandler runs a gap analysis. When store is non-nil the full run is
// saved and its id returned.
func GapsHandler(store storage.RunStore) mcp.ToolHandlerFor[GapsInput, GapsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GapsInput) (*mcp.CallToolResult, GapsResult, error) {
		if input.Dice < solver.MinDice || input.Dice > solver.MaxDice {
			return nil, GapsResult{}, solver.ErrInvalidDiceCount
		}
		limit := input.Limit
		if limit < 0 {
			return nil, GapsResult{}, fmt.Errorf("limit must not be negative")
		}
		if limit == 0 {
			limit = defaultGapLimit
		}
		lo, hi := solver.Value(input.Min), solver.Value(input.Max)
		if hi == 0 {
			_, hi = gaps.DefaultRange(input.Dice)
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.GapAnalysis)
		defer cancel()
		records, err := gaps.Analyze(runCtx, gaps.Config{
			Dice:        input.Dice,
			Min:         lo,
			Max:         hi,
			Expressions: input.Expressions,
		})
		if err != nil {
			return nil, GapsResult{}, fmt.Errorf("gap analysis: %w", err)
		}

		n := min(limit, len(records))
		result := GapsResult{
			Dice:      input.Dice,
			Min:       uint32(lo),
			Max:       uint32(hi),
			Multisets: len(records),
			Records:   make([]GapRecord, 0, n),
		}
		for _, rec := range records[:n] {
			faces := make([]int, len(rec.Faces))
			for i, f := range rec.Faces {
				faces[i] = int(f)
			}
			result.Records = append(result.Records, GapRecord{
				Faces:          faces,
				Margin:         *toMargin(rec.Margin),
				ReachableCount: len(rec.Reachable),
				Expression:     rec.Expression,
			})
		}

		if store != nil {
			id, err := store.SaveRun(ctx, storage.Run{Dice: input.Dice, Min: lo, Max: hi, Records: records})
			if err != nil {
				log.Printf("mcp gap run not saved: dice=%d err=%v", input.Dice, err)
			} else {
				result.RunID = id
			}
		}
		return nil, result, nil
	}
}
