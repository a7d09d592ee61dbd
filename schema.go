package agentlab

import (
	"reflect"

	"github.com/openai/openai-go"
)

// functionSchema builds the JSON schema for a tool's parameters in the
// shape the chat completion API expects.
func functionSchema(f AgentFunction) (properties map[string]interface{}, required []string) {
	properties = make(map[string]interface{})
	required = make([]string, 0)

	for _, param := range f.Parameters() {
		schema := map[string]interface{}{
			"type": jsonType(param.Type),
		}
		if param.Description != "" {
			schema["description"] = param.Description
		}
		properties[param.Name] = schema
		if param.Required {
			required = append(required, param.Name)
		}
	}
	return properties, required
}

// completionTools converts an agent's functions into the tools field of a
// chat completion request.
func completionTools(agent *Agent) []openai.ChatCompletionToolParam {
	var tools []openai.ChatCompletionToolParam
	for _, f := range agent.Functions {
		if f == nil {
			continue
		}
		properties, required := functionSchema(f)
		tools = append(tools, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        f.Name(),
				Description: openai.String(f.Description()),
				Parameters: openai.FunctionParameters{
					"type":       "object",
					"properties": properties,
					"required":   required,
				},
			},
		})
	}
	return tools
}

// jsonType converts Go types to JSON schema types.
func jsonType(t reflect.Type) string {
	if t == nil {
		return "string"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct, reflect.Interface:
		return "object"
	default:
		return "string"
	}
}
