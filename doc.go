// Package agentlab provides a small runtime for building tool-calling AI
// agents on top of OpenAI-compatible chat completion APIs.
//
// The package supports:
//   - Agent definitions with instructions and callable tools
//   - The tool-invocation loop (completion, tool execution, follow-up)
//   - Typed conversation messages
//   - Concurrent fan-out/fan-in execution of independent agents
//   - YAML-defined agent flows
//
// Key Components:
//   - Agent: an AI agent with specific instructions and capabilities
//   - Runner: drives the completion and tool-execution loop
//   - ConcurrentFlow: runs several agents against the same input in parallel
//   - CompletionClient: the interface to OpenAI-compatible APIs
package agentlab
