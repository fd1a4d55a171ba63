package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"google.golang.org/genai"
)

// chatSystemPrompt keeps the assistant on the rails of the storefront: it
// answers product and application questions and points anything deeper at
// customer service.
const chatSystemPrompt = `You are the BuildMart assistant, a chatbot for a construction-materials online store.

About the store:
- BuildMart sells construction chemicals and building products: waterproofing,
  concrete repair mortars, flooring systems, sealants and adhesives, and
  roofing solutions.
- Customers range from individual homeowners to large contractors.

Your role:
- Help customers find the right product for their construction need.
- Answer questions about product specifications, applications and benefits.
- Give basic application guidance; for complex technical questions, suggest
  contacting the technical support team.
- Help customers find distributors or reach customer service.

Guidelines:
- Keep answers short and focused on the store's products and construction topics.
- If you do not know the answer, say so and point the customer at customer service.
- Recommend specific products from the store's range where appropriate.
- Answer in the language the question was asked in.`

type ChatHandler struct {
	Client *genai.Client
	Model  string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat proxies the conversation to the hosted model and streams the reply
// back as server-sent events, one data frame per generated chunk.
func (h *ChatHandler) Chat(c echo.Context) error {
	if h.Client == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "chat is not configured")
	}

	var req struct {
		Messages []chatMessage `json:"messages"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(req.Messages) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "messages are required")
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		var role genai.Role = genai.RoleUser
		if m.Role == "assistant" || m.Role == "model" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(chatSystemPrompt, genai.RoleUser),
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ctx := c.Request().Context()
	for resp, err := range h.Client.Models.GenerateContentStream(ctx, h.Model, contents, cfg) {
		if err != nil {
			c.Logger().Errorf("genai stream error: %v", err)
			fmt.Fprintf(w, "event: error\ndata: %q\n\n", "generation failed")
			w.Flush()
			return nil
		}
		text := resp.Text()
		if text == "" {
			continue
		}
		data, err := json.Marshal(echo.Map{"content": text})
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		w.Flush()
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	w.Flush()
	return nil
}
