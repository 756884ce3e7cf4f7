package llm

import (
	"context"
	"math"
	"testing"

	"github.com/uploadai/uploadai/internal/config"
)

func TestGatewayResolvesConfiguredProviders(t *testing.T) {
	gw := NewGateway(config.LLMConfig{
		OpenAIKey:       "sk-test",
		OllamaURL:       "http://localhost:11434",
		DefaultProvider: "openai",
	})

	if _, err := gw.Provider("openai"); err != nil {
		t.Errorf("Provider(openai) error = %v", err)
	}
	if _, err := gw.Provider("ollama"); err != nil {
		t.Errorf("Provider(ollama) error = %v", err)
	}
	if _, err := gw.Provider("anthropic"); err == nil {
		t.Error("Provider(anthropic) succeeded without a key")
	}
}

func TestGatewayChatUnknownProviderFailsFast(t *testing.T) {
	gw := NewGateway(config.LLMConfig{OpenAIKey: "sk-test", DefaultProvider: "openai"})

	_, err := gw.Chat(context.Background(), ChatRequest{Provider: "mistral", Model: "m"})
	if err == nil {
		t.Fatal("Chat() with unknown provider succeeded, want error")
	}
	if _, err := gw.ChatStream(context.Background(), ChatRequest{Provider: "mistral", Model: "m"}); err == nil {
		t.Fatal("ChatStream() with unknown provider succeeded, want error")
	}
}

func TestGatewayListModels(t *testing.T) {
	gw := NewGateway(config.LLMConfig{OpenAIKey: "sk-test", DefaultProvider: "openai"})

	models := gw.ListModels()
	if len(models) == 0 {
		t.Fatal("ListModels() returned nothing")
	}
	found := false
	for _, m := range models {
		if m.Provider == "openai" && m.Model == "gpt-3.5-turbo-16k" {
			found = true
		}
	}
	if !found {
		t.Error("gpt-3.5-turbo-16k missing from openai model list")
	}
}

func TestTemperatureZeroIsNotDroppedByClient(t *testing.T) {
	got := temperature(0)
	if got == 0 {
		t.Fatal("temperature(0) = 0, would be treated as unset by the client")
	}
	if got != math.SmallestNonzeroFloat32 {
		t.Errorf("temperature(0) = %v, want smallest nonzero float32", got)
	}
	if temperature(0.5) != 0.5 {
		t.Errorf("temperature(0.5) = %v, want 0.5", temperature(0.5))
	}
}

func TestCalculateCost(t *testing.T) {
	cost := CalculateCost("gpt-3.5-turbo-16k", 1000, 500)
	want := 0.003 + 0.5*0.004
	if math.Abs(cost-want) > 1e-9 {
		t.Errorf("CalculateCost() = %v, want %v", cost, want)
	}

	if got := CalculateCost("unknown-model", 1000, 1000); got != 0 {
		t.Errorf("CalculateCost(unknown) = %v, want 0", got)
	}
}
