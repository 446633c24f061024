package picker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const pickFunctionName = "pick_moose_objects"

// systemPrompt states the companion rules so the model usually complies on
// its own; the repair tier in Complete guarantees them either way.
const systemPrompt = `You are a selector of MOOSE objects.
RULES:
• If you choose any HeatConduction kernel you must also pick:
    - at least one Variables/* object.
    - at least one BCs/* object (e.g. DirichletBC or NeumannBC).
• Always pick one Mesh/* generator and one Outputs/* block.
Return the shortest list that satisfies the request and these rules.
• If unsure, include the mesh generator, a primary variable, appropriate boundary conditions, and a basic output block.`

// OpenAISelector picks objects through the chat-completions API using a
// forced tool call whose argument schema carries the allowed enumeration.
type OpenAISelector struct {
	client   *http.Client
	apiKey   string
	model    string
	endpoint string
}

// NewOpenAISelector builds a selector. baseURL may be empty for the public
// API, or point at a compatible proxy (with or without the /v1 suffix).
func NewOpenAISelector(apiKey, model, baseURL string) *OpenAISelector {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = "https://api.openai.com/v1/chat/completions"
	} else {
		endpoint = strings.TrimRight(endpoint, "/")
		if !strings.HasSuffix(endpoint, "/chat/completions") {
			if strings.HasSuffix(endpoint, "/v1") {
				endpoint += "/chat/completions"
			} else {
				endpoint += "/v1/chat/completions"
			}
		}
	}
	return &OpenAISelector{
		client:   &http.Client{Timeout: 90 * time.Second},
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatTool struct {
	Type     string       `json:"type"`
	Function toolFunction `json:"function"`
}

type toolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

type chatRequest struct {
	Model      string        `json:"model"`
	Messages   []chatMessage `json:"messages"`
	Tools      []chatTool    `json:"tools"`
	ToolChoice any           `json:"tool_choice"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			ToolCalls []struct {
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

// Pick implements Selector. One request, no retry: a transport failure or a
// structurally invalid response is fatal to the enclosing selection.
func (s *OpenAISelector) Pick(ctx context.Context, prompt string, allowed []string) ([]string, error) {
	if strings.TrimSpace(s.apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(s.model) == "" {
		return nil, fmt.Errorf("model name is required")
	}

	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Tools: []chatTool{{
			Type: "function",
			Function: toolFunction{
				Name: pickFunctionName,
				Description: "Return the MOOSE object names needed to satisfy the request. " +
					"Choose ONLY from the provided list.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"objects": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string", "enum": allowed},
						},
					},
					"required": []string{"objects"},
				},
			},
		}},
		ToolChoice: map[string]any{
			"type":     "function",
			"function": map[string]any{"name": pickFunctionName},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call chat completions: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat completions returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse chat response: %w", err)
	}
	if len(parsed.Choices) == 0 || len(parsed.Choices[0].Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("chat response contains no tool call")
	}

	call := parsed.Choices[0].Message.ToolCalls[0].Function
	if call.Name != pickFunctionName {
		return nil, fmt.Errorf("unexpected tool call %q", call.Name)
	}

	var args struct {
		Objects []string `json:"objects"`
	}
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		return nil, fmt.Errorf("parse tool call arguments: %w", err)
	}

	return args.Objects, nil
}
