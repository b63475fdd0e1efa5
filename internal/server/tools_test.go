package server

import (
	"encoding/json"
	"testing"
)

var expectedTools = []string{
	"image_load",
	"image_dimensions",
	"image_crop",
	"image_grayscale",
	"image_threshold",
	"image_transform",
	"image_morphology",
	"image_pipeline",
}

func toolsByName() map[string]Tool {
	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}
	return toolMap
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()
	if len(tools) != len(expectedTools) {
		t.Errorf("tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	toolMap := toolsByName()
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			if len(required) == 0 || required[0] != "path" {
				t.Errorf("required: got %v, want path first", required)
			}
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required property %q is not defined", r)
				}
			}
		})
	}
}

func TestToolDefinitions_ProcessingProperties(t *testing.T) {
	toolMap := toolsByName()

	for _, name := range expectedTools {
		if name == "image_load" || name == "image_dimensions" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			props := toolMap[name].InputSchema["properties"].(map[string]interface{})
			for _, p := range []string{"path", "region", "output_path"} {
				if _, ok := props[p]; !ok {
					t.Errorf("missing shared property %q", p)
				}
			}
		})
	}
}

func TestToolDefinitions_ToolSpecificProperties(t *testing.T) {
	toolMap := toolsByName()

	tests := []struct {
		tool  string
		props []string
	}{
		{"image_threshold", []string{"method", "block_size", "offset"}},
		{"image_transform", []string{"angle", "dx", "dy", "scale", "order", "fill", "expand", "grayscale"}},
		{"image_morphology", []string{"op", "radius", "shape", "iterations", "binarize"}},
		{"image_pipeline", []string{"steps"}},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			props := toolMap[tt.tool].InputSchema["properties"].(map[string]interface{})
			for _, p := range tt.props {
				prop, ok := props[p].(map[string]interface{})
				if !ok {
					t.Errorf("missing property %q", p)
					continue
				}
				if prop["description"] == "" || prop["description"] == nil {
					t.Errorf("property %q has no description", p)
				}
			}
		})
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer()
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	data, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatalf("tools/list result does not marshal: %v", err)
	}
	var decoded struct {
		Tools []struct {
			Name        string                 `json:"name"`
			InputSchema map[string]interface{} `json:"inputSchema"`
		} `json:"tools"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to decode tools/list: %v", err)
	}
	if len(decoded.Tools) != len(expectedTools) {
		t.Errorf("tools: got %d, want %d", len(decoded.Tools), len(expectedTools))
	}
}
