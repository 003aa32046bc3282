package translator

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/SscSPs/property_market_app/internal/apperrors"
	"github.com/SscSPs/property_market_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTranslator struct {
	calls int32
	out   string
	err   error
}

func (c *countingTranslator) Translate(context.Context, string, domain.Language) (string, error) {
	atomic.AddInt32(&c.calls, 1)
	return c.out, c.err
}

func TestRateLimited_FailsFastOverQuota(t *testing.T) {
	next := &countingTranslator{out: "Căn hộ"}
	tr, err := NewRateLimited(next, "2-M")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		out, err := tr.Translate(context.Background(), "Apartment", domain.LanguageVietnamese)
		require.NoError(t, err)
		assert.Equal(t, "Căn hộ", out)
	}

	_, err = tr.Translate(context.Background(), "Apartment", domain.LanguageVietnamese)
	assert.ErrorIs(t, err, apperrors.ErrTransient)
	assert.Equal(t, int32(2), atomic.LoadInt32(&next.calls))
}

func TestNewRateLimited_InvalidFormat(t *testing.T) {
	_, err := NewRateLimited(&countingTranslator{}, "lots")
	assert.Error(t, err)
}
