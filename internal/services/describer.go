package services

import (
	"context"
	"fmt"
	"strings"

	"vitrine/internal/models"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

// Fallback texts returned by Describe instead of an error.
const (
	DescriptionUnavailable = "Serviço de IA indisponível. A chave de API não foi configurada."
	DescriptionFailed      = "Não foi possível gerar a descrição. Tente novamente."
)

// TextGenerator is the generative text backend.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string, schema map[string]interface{}) (string, error)
}

var draftSchema = map[string]interface{}{
	"type": "OBJECT",
	"properties": map[string]interface{}{
		"name":        map[string]interface{}{"type": "STRING"},
		"description": map[string]interface{}{"type": "STRING"},
		"price":       map[string]interface{}{"type": "NUMBER"},
		"imageUrl":    map[string]interface{}{"type": "STRING"},
	},
	"required": []string{"name"},
}

// Describer writes product copy with a TextGenerator.
type Describer struct {
	gen    TextGenerator
	logger *zap.Logger
}

// NewDescriber creates a new Describer. gen may be nil when no API key is
// configured.
func NewDescriber(gen TextGenerator, logger *zap.Logger) *Describer {
	return &Describer{gen: gen, logger: logger}
}

// Describe returns a short marketing description for itemName. It never
// fails: without a generator, or when the call fails, a fixed message is
// returned in place of the description.
func (d *Describer) Describe(ctx context.Context, itemName string) string {
	if d.gen == nil {
		return DescriptionUnavailable
	}
	prompt := fmt.Sprintf("Gere uma descrição de produto curta, encantadora e otimizada para SEO para um item artesanal chamado %q. "+
		"Destaque a qualidade única e o toque pessoal. Mantenha o texto com no máximo 2 frases.", itemName)
	text, err := d.gen.GenerateText(ctx, prompt)
	if err != nil {
		d.logger.Error("Error calling text generator", zap.String("item", itemName), zap.Error(err))
		return DescriptionFailed
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return DescriptionFailed
	}
	return text
}

// AutoFill extracts a product draft from the page at url. Unlike Describe
// it reports failures to the caller.
func (d *Describer) AutoFill(ctx context.Context, url string) (*models.ProductDraft, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fieldError("url", "Field 'url' is required")
	}
	if d.gen == nil {
		return nil, ErrAIUnavailable
	}
	prompt := fmt.Sprintf("Analise o seguinte link de produto: %s. Extraia os dados reais do produto. "+
		"Não invente dados. Se não achar o preço, retorne 0. Retorne apenas um JSON conforme o esquema solicitado.", url)
	raw, err := d.gen.GenerateJSON(ctx, prompt, draftSchema)
	if err != nil {
		return nil, fmt.Errorf("autofill failed: %w", err)
	}
	var draft models.ProductDraft
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(raw, &draft); err != nil {
		return nil, fmt.Errorf("autofill returned malformed data: %w", err)
	}
	if draft.Price < 0 {
		draft.Price = 0
	}
	return &draft, nil
}
