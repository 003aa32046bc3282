package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/property_market_app/internal/core/domain"
	"github.com/SscSPs/property_market_app/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestContentService_Bank(t *testing.T) {
	cache := &fakeTranslationCache{
		canonical: domain.LanguageEnglish,
		blob: domain.TranslatableBlob{
			domain.LanguageEnglish: {domain.FieldName: "Lao Development Bank", domain.FieldDescription: "State bank"},
			domain.LanguageLao:     {domain.FieldName: "ທະນາຄານພັດທະນາລາວ"},
		},
	}
	svc := services.NewContentService[domain.Bank](cache)
	bank := domain.Bank{BankID: "B1", Name: "Lao Development Bank", Description: "State bank"}

	bank.Translations = svc.SaveTranslations(context.Background(), bank)

	assert.Equal(t, domain.EntityRef{Type: domain.EntityBank, ID: "B1"}, cache.subjects[0].Ref)
	lao := svc.PickTranslatedContent(bank, "LAK")
	assert.Equal(t, "ທະນາຄານພັດທະນາລາວ", lao.Name)
	assert.Equal(t, "State bank", lao.Description, "fields missing from the slot keep canonical text")
	assert.Equal(t, "Lao Development Bank", svc.PickTranslatedContent(bank, "vi").Name)
}

func TestContentService_PickTranslatedContents(t *testing.T) {
	cache := &fakeTranslationCache{canonical: domain.LanguageEnglish}
	svc := services.NewContentService[domain.Location](cache)
	locations := []domain.Location{
		{LocationID: "1", Name: "Vientiane", Translations: domain.TranslatableBlob{domain.LanguageLao: {domain.FieldName: "ວຽງຈັນ"}}},
		{LocationID: "2", Name: "Luang Prabang"},
	}

	out := svc.PickTranslatedContents(locations, "lo")

	assert.Equal(t, "ວຽງຈັນ", out[0].Name)
	assert.Equal(t, "Luang Prabang", out[1].Name)
	assert.Equal(t, "Vientiane", locations[0].Name, "input is not modified")
}
