// Package api holds the wire types shared by the HTTP endpoint, the MCP
// tools, and their clients.
package api

// SyntaxRequest asks for the rendered snippets of an ordered list of
// Block/Object names.
type SyntaxRequest struct {
	Objects []string `json:"objects"`
}

// SyntaxReply carries the concatenated snippet text.
type SyntaxReply struct {
	Syntax string `json:"syntax"`
}

// ErrorReply is the body of every non-2xx response from the endpoint.
type ErrorReply struct {
	Error string `json:"error"`
}
