package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/barberflow/barberflow-server/internal/domain/booking"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Frases fixas usadas quando a chamada generativa falha ou não está
// configurada. A primeira é a linha de contingência original do painel.
var fallbacks = []string{
	"A arte de barbear é o toque final na confiança de um homem. Tenha um ótimo dia de trabalho!",
	"A excelência está nos detalhes.",
	"Cada cliente na cadeira é uma reputação sendo construída.",
	"Navalha afiada, atenção dobrada: atendimento premium começa no preparo.",
}

// ======================================================
// GEMINI (REST)
// ======================================================

type geminiRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// ======================================================
// PROVIDER
// ======================================================

// Provider entrega a "Dica do Mestre" do painel de gerência. Nunca falha
// para o chamador: sem chave, sem rede ou com resposta vazia, devolve uma
// frase fixa. Puramente cosmético — nada do core de agendamento depende dele.
type Provider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	cache   *redis.Client // nil quando REDIS_URL não está configurado
	loc     *time.Location
}

func NewProvider(apiKey, model string, cache *redis.Client, loc *time.Location) *Provider {
	if apiKey == "" {
		log.Printf("insight: GEMINI_API_KEY not set, serving canned quotes only")
	}

	return &Provider{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: cache,
		loc:   loc,
	}
}

// DailyInsight devolve a frase do dia para a contagem de agendamentos de
// hoje, com cache por data para não chamar o provedor a cada render.
func (p *Provider) DailyInsight(ctx context.Context, appointmentCount int) string {
	today := time.Now().In(p.loc).Format(booking.DateLayout)
	key := "insight:" + today

	if p.cache != nil {
		if v, err := p.cache.Get(ctx, key).Result(); err == nil && v != "" {
			return v
		}
	}

	text := p.generate(ctx, appointmentCount)
	if text == "" {
		return fallbacks[appointmentCount%len(fallbacks)]
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, key, text, p.untilEndOfDay()).Err(); err != nil {
			log.Printf("insight: failed to cache quote: %v", err)
		}
	}

	return text
}

func (p *Provider) generate(ctx context.Context, appointmentCount int) string {
	if p.apiKey == "" {
		return ""
	}

	prompt := fmt.Sprintf(
		"Sou um barbeiro e tenho %d agendamentos hoje. Me dê uma frase curta e "+
			"motivacional de \"Dica do Mestre\" para começar o dia e um breve "+
			"conselho sobre atendimento ao cliente premium.",
		appointmentCount,
	)

	reqBody := geminiRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     0.8,
			MaxOutputTokens: 150,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return ""
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return ""
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("insight: gemini call failed: %v", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("insight: gemini returned status %d", resp.StatusCode)
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	var out geminiResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return ""
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return ""
	}

	return out.Candidates[0].Content.Parts[0].Text
}

func (p *Provider) untilEndOfDay() time.Duration {
	now := time.Now().In(p.loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, p.loc).AddDate(0, 0, 1)
	return midnight.Sub(now)
}
