package domain

// Bank is a partner bank shown next to listings.
type Bank struct {
	BankID       string           `json:"bankID"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Translations TranslatableBlob `json:"translations,omitempty"`
	AuditFields
}

// Location is a searchable place (province, district).
type Location struct {
	LocationID   string           `json:"locationID"`
	Name         string           `json:"name"`
	Translations TranslatableBlob `json:"translations,omitempty"`
	AuditFields
}

// News is an article on the storefront.
type News struct {
	NewsID       string           `json:"newsID"`
	CategoryID   string           `json:"categoryID"`
	Title        string           `json:"title"`
	Summary      string           `json:"summary"`
	Content      string           `json:"content"`
	Translations TranslatableBlob `json:"translations,omitempty"`
	AuditFields
}

// NewsCategory groups news articles.
type NewsCategory struct {
	CategoryID   string           `json:"categoryID"`
	Name         string           `json:"name"`
	Translations TranslatableBlob `json:"translations,omitempty"`
	AuditFields
}

func (b Bank) TranslationSubject() TranslationSubject {
	return TranslationSubject{
		Ref:    EntityRef{Type: EntityBank, ID: b.BankID},
		Fields: TranslatedFields{FieldName: b.Name, FieldDescription: b.Description},
	}
}

func (b Bank) TranslationBlob() TranslatableBlob { return b.Translations }

func (b Bank) WithTranslatedFields(fields TranslatedFields) Bank {
	b.Name = fields.overlay(FieldName, b.Name)
	b.Description = fields.overlay(FieldDescription, b.Description)
	return b
}

func (l Location) TranslationSubject() TranslationSubject {
	return TranslationSubject{
		Ref:    EntityRef{Type: EntityLocation, ID: l.LocationID},
		Fields: TranslatedFields{FieldName: l.Name},
	}
}

func (l Location) TranslationBlob() TranslatableBlob { return l.Translations }

func (l Location) WithTranslatedFields(fields TranslatedFields) Location {
	l.Name = fields.overlay(FieldName, l.Name)
	return l
}

func (n News) TranslationSubject() TranslationSubject {
	return TranslationSubject{
		Ref: EntityRef{Type: EntityNews, ID: n.NewsID},
		Fields: TranslatedFields{
			FieldTitle:   n.Title,
			FieldSummary: n.Summary,
			FieldContent: n.Content,
		},
	}
}

func (n News) TranslationBlob() TranslatableBlob { return n.Translations }

func (n News) WithTranslatedFields(fields TranslatedFields) News {
	n.Title = fields.overlay(FieldTitle, n.Title)
	n.Summary = fields.overlay(FieldSummary, n.Summary)
	n.Content = fields.overlay(FieldContent, n.Content)
	return n
}

func (c NewsCategory) TranslationSubject() TranslationSubject {
	return TranslationSubject{
		Ref:    EntityRef{Type: EntityNewsCategory, ID: c.CategoryID},
		Fields: TranslatedFields{FieldName: c.Name},
	}
}

func (c NewsCategory) TranslationBlob() TranslatableBlob { return c.Translations }

func (c NewsCategory) WithTranslatedFields(fields TranslatedFields) NewsCategory {
	c.Name = fields.overlay(FieldName, c.Name)
	return c
}

// Compile-time checks.
var (
	_ Translatable[Listing]      = Listing{}
	_ Translatable[Bank]         = Bank{}
	_ Translatable[Location]     = Location{}
	_ Translatable[News]         = News{}
	_ Translatable[NewsCategory] = NewsCategory{}
)
