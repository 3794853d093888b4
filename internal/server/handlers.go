package server

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/ironsheep/pixel-tools-mcp/internal/histogram"
	"github.com/ironsheep/pixel-tools-mcp/internal/imaging"
	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
	"github.com/ironsheep/pixel-tools-mcp/internal/region"
	"github.com/ironsheep/pixel-tools-mcp/internal/transform"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_invert").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if s.debug {
		log.Printf("tool %s finished in %s (err=%v)", params.Name, time.Since(start), err)
	}
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
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
// Each transform handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Takes a copy of the working raster from the cache
//  4. Runs the transform on the copy
//  5. Stores the copy back as the new working raster and encodes it
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_reset":
		return s.handleImageReset(args)

	// Point Transforms
	case "image_invert":
		return s.handleImageInvert(args)
	case "image_threshold":
		return s.handleImageThreshold(args)
	case "image_hue":
		return s.handleImageHue(args)
	case "image_saturation":
		return s.handleImageSaturation(args)
	case "image_value":
		return s.handleImageValue(args)
	case "image_contrast":
		return s.handleImageContrast(args)
	case "image_multiply":
		return s.handleImageMultiply(args)
	case "image_pipeline":
		return s.handleImagePipeline(args)

	// Statistics
	case "image_histogram":
		return s.handleImageHistogram(args)
	case "image_bin_histogram":
		return s.handleImageBinHistogram(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	case "image_average_region":
		return s.handleImageAverageRegion(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure the error is logged and an empty string returned.
func mustMarshalJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("Failed to marshal tool result: %v", err)
		return ""
	}
	return string(b)
}

// decodeArgs unmarshals tool arguments, treating a missing object as empty.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	return json.Unmarshal(args, v)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageReset(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	b, err := s.cache.Reset(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Dimensions(b), nil
}

// === Point Transform Handlers ===

// transformArgs holds the arguments every transform tool accepts.
type transformArgs struct {
	Path       string  `json:"path"`
	OutputPath string  `json:"output_path,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
}

// applyTransform runs fn on a copy of the working raster for a.Path. On
// success the copy becomes the working raster; on failure the cache is
// left as it was.
func (s *Server) applyTransform(a transformArgs, fn func(*raster.Buffer) error) (*imaging.EncodeResult, error) {
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	b, err := s.cache.Get(a.Path)
	if err != nil {
		return nil, err
	}
	if err := fn(b); err != nil {
		return nil, err
	}
	if a.OutputPath != "" {
		if err := imaging.Save(b, a.OutputPath); err != nil {
			return nil, err
		}
	}
	if err := s.cache.Put(a.Path, b); err != nil {
		return nil, err
	}

	result, err := imaging.Encode(b, a.Scale)
	if err != nil {
		return nil, err
	}
	result.SavedTo = a.OutputPath
	return result, nil
}

func (s *Server) handleImageInvert(args json.RawMessage) (interface{}, error) {
	var a transformArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.applyTransform(a, transform.Invert)
}

type imageThresholdArgs struct {
	transformArgs
	Threshold *int `json:"threshold,omitempty"`
}

func (s *Server) handleImageThreshold(args json.RawMessage) (interface{}, error) {
	var a imageThresholdArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	t := 128
	if a.Threshold != nil {
		t = *a.Threshold
	}
	return s.applyTransform(a.transformArgs, func(b *raster.Buffer) error {
		return transform.Threshold(b, t)
	})
}

type imageHueArgs struct {
	transformArgs
	Degrees float64 `json:"degrees"`
}

func (s *Server) handleImageHue(args json.RawMessage) (interface{}, error) {
	var a imageHueArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.applyTransform(a.transformArgs, func(b *raster.Buffer) error {
		return transform.Hue(b, a.Degrees)
	})
}

type imageAmountArgs struct {
	transformArgs
	Amount float64 `json:"amount"`
}

func (s *Server) handleImageSaturation(args json.RawMessage) (interface{}, error) {
	var a imageAmountArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.applyTransform(a.transformArgs, func(b *raster.Buffer) error {
		return transform.Saturation(b, a.Amount)
	})
}

func (s *Server) handleImageValue(args json.RawMessage) (interface{}, error) {
	var a imageAmountArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.applyTransform(a.transformArgs, func(b *raster.Buffer) error {
		return transform.Value(b, a.Amount)
	})
}

type imageContrastArgs struct {
	transformArgs
	Factor *float64 `json:"factor,omitempty"`
}

func (s *Server) handleImageContrast(args json.RawMessage) (interface{}, error) {
	var a imageContrastArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Factor == nil {
		return nil, fmt.Errorf("%w: factor is required", raster.ErrParameterOutOfRange)
	}
	factor := *a.Factor
	return s.applyTransform(a.transformArgs, func(b *raster.Buffer) error {
		return transform.Contrast(b, factor)
	})
}

type imageMultiplyArgs struct {
	transformArgs
	R *float64 `json:"r,omitempty"`
	G *float64 `json:"g,omitempty"`
	B *float64 `json:"b,omitempty"`
}

func (s *Server) handleImageMultiply(args json.RawMessage) (interface{}, error) {
	var a imageMultiplyArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	orOne := func(f *float64) float64 {
		if f == nil {
			return 1
		}
		return *f
	}
	mr, mg, mb := orOne(a.R), orOne(a.G), orOne(a.B)
	return s.applyTransform(a.transformArgs, func(b *raster.Buffer) error {
		return transform.Multiply(b, mr, mg, mb)
	})
}

type imagePipelineArgs struct {
	transformArgs
	Steps []transform.Op `json:"steps"`
}

func (s *Server) handleImagePipeline(args json.RawMessage) (interface{}, error) {
	var a imagePipelineArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	pipeline := transform.Pipeline(a.Steps)
	return s.applyTransform(a.transformArgs, func(b *raster.Buffer) error {
		out, err := pipeline.Run(b)
		if err != nil {
			return err
		}
		copy(b.Pix, out.Pix)
		return nil
	})
}

// === Statistics Handlers ===

type imageHistogramArgs struct {
	Path    string `json:"path"`
	Channel string `json:"channel,omitempty"`
	Bins    int    `json:"bins,omitempty"`
}

// HistogramResult is the histogram of one channel of the working raster.
type HistogramResult struct {
	Channel string    `json:"channel"`
	Bins    []int     `json:"bins"`
	Max     int       `json:"max"`
	Total   int       `json:"total"`
	Binned  []float64 `json:"binned,omitempty"`
}

func (s *Server) handleImageHistogram(args json.RawMessage) (interface{}, error) {
	var a imageHistogramArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Channel == "" {
		a.Channel = "r"
	}
	ch, err := histogram.ParseChannel(a.Channel)
	if err != nil {
		return nil, err
	}

	b, err := s.cache.Get(a.Path)
	if err != nil {
		return nil, err
	}
	h, err := histogram.Compute(b, ch)
	if err != nil {
		return nil, err
	}

	result := &HistogramResult{
		Channel: ch.String(),
		Bins:    h.Slice(),
		Max:     h.Max,
		Total:   h.Total(),
	}
	if a.Bins != 0 {
		binned, err := h.Bin(a.Bins)
		if err != nil {
			return nil, err
		}
		result.Binned = binned
	}
	return result, nil
}

type imageBinHistogramArgs struct {
	Histogram []int `json:"histogram"`
	Bins      int   `json:"bins"`
}

// BinnedResult is a histogram reduced to fewer buckets.
type BinnedResult struct {
	Bins   int       `json:"bins"`
	Values []float64 `json:"values"`
}

func (s *Server) handleImageBinHistogram(args json.RawMessage) (interface{}, error) {
	var a imageBinHistogramArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	values, err := histogram.Bin(a.Histogram, a.Bins)
	if err != nil {
		return nil, err
	}
	return &BinnedResult{Bins: a.Bins, Values: values}, nil
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	b, err := s.cache.Get(a.Path)
	if err != nil {
		return nil, err
	}
	return region.Sample(b, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Path   string                `json:"path"`
	Points []region.LabeledPoint `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	b, err := s.cache.Get(a.Path)
	if err != nil {
		return nil, err
	}
	samples, err := region.SamplePoints(b, a.Points)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"samples": samples}, nil
}

type imageAverageRegionArgs struct {
	Path   string `json:"path"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleImageAverageRegion(args json.RawMessage) (interface{}, error) {
	var a imageAverageRegionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	b, err := s.cache.Get(a.Path)
	if err != nil {
		return nil, err
	}
	return region.Describe(b, a.X, a.Y, a.Width, a.Height)
}
