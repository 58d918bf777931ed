package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/nums/internal/gaps"
	"github.com/louisbranch/nums/internal/solver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SolveInput represents the MCP tool input for enumerating expressions.
type SolveInput struct {
	Faces       []int  `json:"faces" jsonschema:"one face per die, 1 to 6, three or four dice"`
	Target      uint32 `json:"target" jsonschema:"number to reach"`
	Limit       int    `json:"limit,omitempty" jsonschema:"maximum number of expressions to return, 0 for all"`
	SimpleScore bool   `json:"simple_score,omitempty" jsonschema:"order by the simple score instead of the detailed one"`
}

// SolveResult represents the MCP tool output for enumerating expressions.
type SolveResult struct {
	Target      uint32   `json:"target" jsonschema:"number that was searched for"`
	Count       int      `json:"count" jsonschema:"number of distinct expressions found"`
	Expressions []string `json:"expressions" jsonschema:"expressions reaching the target, simplest first"`
}

// ReachableInput represents the MCP tool input for probing a range.
type ReachableInput struct {
	Faces []int  `json:"faces" jsonschema:"one face per die, 1 to 6, three or four dice"`
	Min   uint32 `json:"min,omitempty" jsonschema:"first value of the scan range"`
	Max   uint32 `json:"max,omitempty" jsonschema:"end of the scan range, exclusive; 0 uses 100 for three dice and 1000 for four"`
}

// ReachableResult represents the MCP tool output for probing a range.
type ReachableResult struct {
	Min    uint32   `json:"min" jsonschema:"first value of the scan range"`
	Max    uint32   `json:"max" jsonschema:"end of the scan range, exclusive"`
	Values []uint32 `json:"values" jsonschema:"reachable values in ascending order"`
	Margin *Margin  `json:"margin,omitempty" jsonschema:"widest unreachable stretch, absent when nothing is reachable"`
}

// Margin describes the widest unreachable stretch of a range.
type Margin struct {
	Distance uint32 `json:"distance" jsonschema:"distance from the midpoint to the nearest reachable value"`
	Midpoint uint32 `json:"midpoint" jsonschema:"hardest value to reach"`
	Closest  uint32 `json:"closest" jsonschema:"reachable value nearest the midpoint"`
}

// SolveTool defines the MCP tool schema for enumerating expressions.
func SolveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "dice_solve",
		Description: "Lists every expression that reaches a target from the given dice faces",
	}
}

// ReachableTool defines the MCP tool schema for probing a range.
func ReachableTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "dice_reachable",
		Description: "Lists the values in a range that the given dice faces can reach",
	}
}

// SolveHandler enumerates the expressions for one target.
func SolveHandler() mcp.ToolHandlerFor[SolveInput, SolveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SolveInput) (*mcp.CallToolResult, SolveResult, error) {
		if err := ctx.Err(); err != nil {
			return nil, SolveResult{}, err
		}
		if input.Limit < 0 {
			return nil, SolveResult{}, fmt.Errorf("limit must not be negative")
		}
		faces, err := toFaces(input.Faces)
		if err != nil {
			return nil, SolveResult{}, err
		}
		engine, err := solver.NewEngine(len(faces))
		if err != nil {
			return nil, SolveResult{}, err
		}
		exprs, err := engine.Enumerate(solver.Value(input.Target), faces)
		if err != nil {
			return nil, SolveResult{}, fmt.Errorf("enumerate: %w", err)
		}
		if input.SimpleScore {
			solver.SortBySimpleScore(exprs)
		}

		result := SolveResult{Target: input.Target, Count: len(exprs), Expressions: []string{}}
		for i, e := range exprs {
			if input.Limit > 0 && i == input.Limit {
				break
			}
			result.Expressions = append(result.Expressions, e.String())
		}
		return nil, result, nil
	}
}

// ReachableHandler probes a range for one set of faces.
func ReachableHandler() mcp.ToolHandlerFor[ReachableInput, ReachableResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ReachableInput) (*mcp.CallToolResult, ReachableResult, error) {
		if err := ctx.Err(); err != nil {
			return nil, ReachableResult{}, err
		}
		faces, err := toFaces(input.Faces)
		if err != nil {
			return nil, ReachableResult{}, err
		}
		engine, err := solver.NewEngine(len(faces))
		if err != nil {
			return nil, ReachableResult{}, err
		}
		lo, hi := solver.Value(input.Min), solver.Value(input.Max)
		if hi == 0 {
			_, hi = gaps.DefaultRange(len(faces))
		}
		values, err := engine.Probe(lo, hi, faces)
		if err != nil {
			return nil, ReachableResult{}, fmt.Errorf("probe: %w", err)
		}

		result := ReachableResult{Min: uint32(lo), Max: uint32(hi), Values: make([]uint32, len(values))}
		for i, v := range values {
			result.Values[i] = uint32(v)
		}
		if margin, err := gaps.FindMargin(values, lo, hi); err == nil {
			result.Margin = toMargin(margin)
		}
		return nil, result, nil
	}
}

func toFaces(values []int) ([]solver.Face, error) {
	if len(values) < solver.MinDice || len(values) > solver.MaxDice {
		return nil, fmt.Errorf("%w: got %d faces", solver.ErrInvalidDiceCount, len(values))
	}
	faces := make([]solver.Face, len(values))
	for i, v := range values {
		if v < int(solver.MinFace) || v > int(solver.MaxFace) {
			return nil, fmt.Errorf("%w: got %d", solver.ErrInvalidFace, v)
		}
		faces[i] = solver.Face(v)
	}
	return faces, nil
}

func toMargin(m gaps.Margin) *Margin {
	return &Margin{Distance: uint32(m.Distance), Midpoint: uint32(m.Midpoint), Closest: uint32(m.Closest)}
}
