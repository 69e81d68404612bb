package openrouter

import "testing"

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if got := NewClient(Config{APIKey: "   "}); got != nil {
		t.Fatalf("expected nil client without an api key, got %v", got)
	}
}

func TestNewClientBuildsWithHeaders(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{
		APIKey:   "sk-or-test",
		BaseURL:  "https://openrouter.ai/api/v1/",
		SiteURL:  "https://bankbot.example",
		SiteName: "BankBot",
	})
	if client == nil {
		t.Fatal("expected a client when an api key is configured")
	}
}
