package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/raster-tools-mcp/internal/imaging"
	"github.com/ironsheep/raster-tools-mcp/internal/pipeline"
	"github.com/ironsheep/raster-tools-mcp/internal/raster"
	"github.com/ironsheep/raster-tools-mcp/internal/threshold"
)

// errInvalidArgs marks argument errors that are reported as invalid params
// rather than tool failures.
var errInvalidArgs = errors.New("invalid arguments")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_threshold").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Malformed arguments and unknown tools return -32602. Failures inside a
// tool return -32000 with the error string as data.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, CodeInvalidParams, "Invalid params", err.Error())
	}

	s.log.Debug().Str("tool", params.Name).Msg("tool call")
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		event := s.log.Error()
		if isInputError(err) || errors.Is(err, errInvalidArgs) {
			event = s.log.Warn()
		}
		event.Err(err).Str("tool", params.Name).Msg("tool failed")
		if errors.Is(err, errInvalidArgs) {
			return s.errorResponse(req.ID, CodeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, CodeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Every processing tool follows the same path: decode arguments, load and
// crop the source image into a grid, run a step list through the pipeline
// package, then encode (and optionally save) the result.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_grayscale":
		return s.handleImageGrayscale(args)
	case "image_threshold":
		return s.handleImageThreshold(args)
	case "image_transform":
		return s.handleImageTransform(args)
	case "image_morphology":
		return s.handleImageMorphology(args)
	case "image_pipeline":
		return s.handleImagePipeline(args)
	default:
		return nil, fmt.Errorf("%w: unknown tool: %s", errInvalidArgs, name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	mcpErr := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		mcpErr.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   mcpErr,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments, tagging failures as invalid params.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArgs, err)
	}
	return nil
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (a imageLoadArgs) validate() error {
	if a.Path == "" {
		return fmt.Errorf("%w: path is required", errInvalidArgs)
	}
	return nil
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Raster Processing Handlers ===

// sourceArgs are shared by every processing tool.
type sourceArgs struct {
	Path       string         `json:"path"`
	Region     imaging.Region `json:"region"`
	OutputPath string         `json:"output_path"`
}

// RasterResult is returned by every processing tool.
type RasterResult struct {
	*imaging.GridResult

	// SavedTo is the file the result was written to, when output_path was set.
	SavedTo string `json:"saved_to,omitempty"`

	// Level and Cut describe the global threshold, when one ran.
	Level *uint8   `json:"level,omitempty"`
	Cut   *float64 `json:"cut,omitempty"`

	// Warnings lists parameter adjustments made while processing.
	Warnings []string `json:"warnings,omitempty"`

	// Applied lists the operations that ran, in order.
	Applied []string `json:"applied,omitempty"`
}

// process loads the source region, runs steps over it and packages the
// result.
func (s *Server) process(src sourceArgs, steps []pipeline.Step) (*RasterResult, error) {
	if src.Path == "" {
		return nil, fmt.Errorf("%w: path is required", errInvalidArgs)
	}

	g, err := imaging.LoadRegion(s.cache, src.Path, src.Region)
	if err != nil {
		return nil, err
	}

	res, err := pipeline.Run(g, steps)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		s.log.Warn().Str("path", src.Path).Msg(w)
	}

	encoded, err := imaging.EncodeGrid(res.Grid)
	if err != nil {
		return nil, err
	}
	out := &RasterResult{
		GridResult: encoded,
		Level:      res.Level,
		Warnings:   res.Warnings,
		Applied:    res.Applied,
	}
	if res.Level != nil {
		cut := (&threshold.Global{Level: *res.Level}).Cut()
		out.Cut = &cut
	}

	if src.OutputPath != "" {
		if err := imaging.SaveGrid(src.OutputPath, res.Grid); err != nil {
			return nil, err
		}
		out.SavedTo = src.OutputPath
		s.log.Info().Str("path", src.OutputPath).Stringer("grid", res.Grid).Msg("saved result")
	}
	return out, nil
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a sourceArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Region.IsZero() {
		return nil, fmt.Errorf("%w: region is required", errInvalidArgs)
	}
	return s.process(a, nil)
}

type imageGrayscaleArgs struct {
	sourceArgs
}

func (s *Server) handleImageGrayscale(args json.RawMessage) (interface{}, error) {
	var a imageGrayscaleArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.process(a.sourceArgs, []pipeline.Step{{Op: pipeline.OpGray}})
}

type imageThresholdArgs struct {
	sourceArgs
	Method    string  `json:"method"`
	BlockSize int     `json:"block_size"`
	Offset    float64 `json:"offset"`
}

// Threshold methods accepted by image_threshold.
const (
	MethodOtsu  = "otsu"
	MethodLocal = "local"
)

func (s *Server) handleImageThreshold(args json.RawMessage) (interface{}, error) {
	var a imageThresholdArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	steps := []pipeline.Step{{Op: pipeline.OpGray}}
	switch a.Method {
	case "", MethodOtsu:
		steps = append(steps, pipeline.Step{Op: pipeline.OpOtsu})
	case MethodLocal:
		steps = append(steps, pipeline.Step{Op: pipeline.OpLocal, BlockSize: a.BlockSize, Offset: a.Offset})
	default:
		return nil, fmt.Errorf("%w: unknown threshold method %q", errInvalidArgs, a.Method)
	}
	return s.process(a.sourceArgs, steps)
}

type imageTransformArgs struct {
	sourceArgs
	Angle     float64       `json:"angle"`
	ShiftX    float64       `json:"dx"`
	ShiftY    float64       `json:"dy"`
	Scale     *float64      `json:"scale"`
	Order     int           `json:"order"`
	Fill      pipeline.Fill `json:"fill"`
	Expand    bool          `json:"expand"`
	Grayscale bool          `json:"grayscale"`
}

func (s *Server) handleImageTransform(args json.RawMessage) (interface{}, error) {
	var a imageTransformArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	var steps []pipeline.Step
	if a.Grayscale {
		steps = append(steps, pipeline.Step{Op: pipeline.OpGray})
	}
	steps = append(steps, pipeline.Step{
		Op:     pipeline.OpTransform,
		Angle:  a.Angle,
		ShiftX: a.ShiftX,
		ShiftY: a.ShiftY,
		Scale:  a.Scale,
		Order:  a.Order,
		Fill:   a.Fill,
		Expand: a.Expand,
	})
	return s.process(a.sourceArgs, steps)
}

type imageMorphologyArgs struct {
	sourceArgs
	Op         string `json:"op"`
	Radius     *int   `json:"radius"`
	Shape      string `json:"shape"`
	Iterations *int   `json:"iterations"`
	Binarize   bool   `json:"binarize"`
}

func (s *Server) handleImageMorphology(args json.RawMessage) (interface{}, error) {
	var a imageMorphologyArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	switch a.Op {
	case pipeline.OpErode, pipeline.OpDilate, pipeline.OpOpen, pipeline.OpClose:
	default:
		return nil, fmt.Errorf("%w: unknown morphology op %q", errInvalidArgs, a.Op)
	}

	steps := []pipeline.Step{{Op: pipeline.OpGray}}
	if a.Binarize {
		steps = append(steps, pipeline.Step{Op: pipeline.OpOtsu})
	}
	steps = append(steps, pipeline.Step{
		Op:         a.Op,
		Radius:     a.Radius,
		Shape:      a.Shape,
		Iterations: a.Iterations,
	})
	return s.process(a.sourceArgs, steps)
}

type imagePipelineArgs struct {
	sourceArgs
	Steps []pipeline.Step `json:"steps"`
}

func (s *Server) handleImagePipeline(args json.RawMessage) (interface{}, error) {
	var a imagePipelineArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Steps) == 0 {
		return nil, fmt.Errorf("%w: steps must not be empty", errInvalidArgs)
	}
	return s.process(a.sourceArgs, a.Steps)
}

// isInputError reports whether err came from the caller's data rather than
// the server, so it can be logged at a lower level.
func isInputError(err error) bool {
	for _, kind := range []error{
		raster.ErrShape, raster.ErrEmptyInput, raster.ErrInvalidParameter,
		raster.ErrInvalidInput, raster.ErrOutOfBounds,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
