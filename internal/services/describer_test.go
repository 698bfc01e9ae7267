package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vitrine/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockTextGenerator is a mock implementation of services.TextGenerator
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(prompt)
	return args.String(0), args.Error(1)
}

func (m *MockTextGenerator) GenerateJSON(ctx context.Context, prompt string, schema map[string]interface{}) (string, error) {
	args := m.Called(prompt, schema)
	return args.String(0), args.Error(1)
}

func TestDescriber_Describe(t *testing.T) {
	ctx := context.Background()

	d := services.NewDescriber(nil, zap.NewNop())
	assert.Equal(t, services.DescriptionUnavailable, d.Describe(ctx, "Tábua"))

	gen := new(MockTextGenerator)
	gen.On("GenerateText", mock.MatchedBy(func(p string) bool { return strings.Contains(p, `"Tábua"`) })).
		Return("  Uma tábua única.  ", nil).Once()
	gen.On("GenerateText", mock.Anything).Return("", errors.New("quota exceeded")).Once()
	gen.On("GenerateText", mock.Anything).Return("", nil).Once()

	d = services.NewDescriber(gen, zap.NewNop())
	assert.Equal(t, "Uma tábua única.", d.Describe(ctx, "Tábua"))
	assert.Equal(t, services.DescriptionFailed, d.Describe(ctx, "Copo"))
	assert.Equal(t, services.DescriptionFailed, d.Describe(ctx, "Placa"))
	gen.AssertExpectations(t)
}

func TestDescriber_AutoFill(t *testing.T) {
	ctx := context.Background()

	_, err := services.NewDescriber(nil, zap.NewNop()).AutoFill(ctx, "https://loja/copo")
	assert.ErrorIs(t, err, services.ErrAIUnavailable)

	gen := new(MockTextGenerator)
	d := services.NewDescriber(gen, zap.NewNop())

	var verr *services.ValidationError
	_, err = d.AutoFill(ctx, " ")
	assert.True(t, errors.As(err, &verr))

	gen.On("GenerateJSON", mock.Anything, mock.Anything).
		Return(`{"name":"Copo Térmico","description":"Inox","price":-3,"imageUrl":"https://img/c.jpg"}`, nil).Once()
	draft, err := d.AutoFill(ctx, "https://loja/copo")
	require.NoError(t, err)
	assert.Equal(t, "Copo Térmico", draft.Name)
	assert.Equal(t, 0.0, draft.Price)
	assert.Equal(t, "https://img/c.jpg", draft.ImageURL)

	gen.On("GenerateJSON", mock.Anything, mock.Anything).Return("not json", nil).Once()
	_, err = d.AutoFill(ctx, "https://loja/copo")
	assert.Error(t, err)

	gen.On("GenerateJSON", mock.Anything, mock.Anything).Return("", errors.New("timeout")).Once()
	_, err = d.AutoFill(ctx, "https://loja/copo")
	assert.Error(t, err)
	gen.AssertExpectations(t)
}
