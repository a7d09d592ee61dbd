package agentlab

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"
)

// CompletionClient is the interface to an OpenAI-compatible chat
// completion API. It is the only seam between the runtime and the model
// provider; tests substitute a mock implementation.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

type openAIClientWrapper struct {
	client openai.Client
}

// NewOpenAIClient creates a CompletionClient for the OpenAI API.
func NewOpenAIClient(apiKey string) CompletionClient {
	if apiKey == "" {
		return nil
	}

	return &openAIClientWrapper{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}
}

// NewOpenAIClientWithBaseURL creates a CompletionClient for an
// OpenAI-compatible endpoint at a custom base URL.
func NewOpenAIClientWithBaseURL(apiKey string, baseURL string) CompletionClient {
	if apiKey == "" {
		return nil
	}

	if baseURL == "" {
		return NewOpenAIClient(apiKey)
	}

	return &openAIClientWrapper{
		client: openai.NewClient(option.WithAPIKey(apiKey), option.WithBaseURL(baseURL)),
	}
}

// NewAzureOpenAIClient creates a CompletionClient for Azure OpenAI.
func NewAzureOpenAIClient(apiKey, endpoint, apiVersion string) CompletionClient {
	if apiKey == "" || endpoint == "" {
		return nil
	}
	if apiVersion == "" {
		apiVersion = "2024-06-01"
	}

	return &openAIClientWrapper{
		client: openai.NewClient(
			azure.WithEndpoint(endpoint, apiVersion),
			azure.WithAPIKey(apiKey),
		),
	}
}

// ClientFromEnv builds a CompletionClient from the environment. OPENAI_API_KEY
// (optionally with OPENAI_API_BASE) takes precedence; otherwise the
// AZURE_OPENAI_API_KEY / AZURE_OPENAI_API_BASE / AZURE_OPENAI_API_VERSION
// variables are used. Returns an error listing the missing variables when
// neither provider is configured.
func ClientFromEnv() (CompletionClient, error) {
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		return NewOpenAIClientWithBaseURL(apiKey, os.Getenv("OPENAI_API_BASE")), nil
	}

	azureAPIKey := os.Getenv("AZURE_OPENAI_API_KEY")
	azureAPIBase := os.Getenv("AZURE_OPENAI_API_BASE")
	azureAPIVersion := os.Getenv("AZURE_OPENAI_API_VERSION")

	var missingEnvs []string
	if azureAPIKey == "" {
		missingEnvs = append(missingEnvs, "OPENAI_API_KEY or AZURE_OPENAI_API_KEY")
	}
	if azureAPIBase == "" {
		missingEnvs = append(missingEnvs, "AZURE_OPENAI_API_BASE")
	}

	if len(missingEnvs) > 0 {
		return nil, fmt.Errorf("required environment variables not set: %s", strings.Join(missingEnvs, ", "))
	}

	return NewAzureOpenAIClient(azureAPIKey, azureAPIBase, azureAPIVersion), nil
}

// CreateChatCompletion implements CompletionClient.
func (c *openAIClientWrapper) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}

	return completion, nil
}
