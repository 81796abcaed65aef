package models

// ToolCallEnvelope wraps a single tool invocation from the voice-assistant
// layer. The call ID is opaque and is only echoed back for correlation.
type ToolCallEnvelope struct {
	ToolCallID string         `json:"toolCallId"` // Opaque identifier assigned by the caller
	Parameters map[string]any `json:"parameters"` // Raw parameter map, validated per operation
}

// ToolCallResult is one entry of the enveloped response. The result field
// carries the operation outcome JSON-encoded as a string, as the tool layer
// expects.
type ToolCallResult struct {
	ToolCallID string `json:"toolCallId"`
	Result     string `json:"result"`
}

// ToolCallResponse is the enveloped response body. It is returned with HTTP
// 200 regardless of the embedded outcome; failure is signalled by the
// success field inside the encoded result.
type ToolCallResponse struct {
	Results []ToolCallResult `json:"results"`
}
