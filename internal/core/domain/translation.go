package domain

// EntityType names an owner of translatable fields.
type EntityType string

const (
	EntityListing      EntityType = "listing"
	EntityBank         EntityType = "bank"
	EntityLocation     EntityType = "location"
	EntityNews         EntityType = "news"
	EntityNewsCategory EntityType = "news_category"
)

// TextField identifies one translatable field of an entity.
type TextField string

const (
	FieldTitle       TextField = "title"
	FieldName        TextField = "name"
	FieldDescription TextField = "description"
	FieldSummary     TextField = "summary"
	FieldContent     TextField = "content"
)

// TranslatedFields is one language slot: {field -> value}.
type TranslatedFields map[TextField]string

// TranslatableBlob holds every language's version of an entity's translatable fields.
// It is replaced wholesale on each save.
type TranslatableBlob map[Language]TranslatedFields

// EntityRef points at the owner of a blob.
type EntityRef struct {
	Type EntityType
	ID   string
}

// TranslationSubject is what the translation cache needs from an entity:
// who owns the blob and the canonical-language source text.
type TranslationSubject struct {
	Ref    EntityRef
	Fields TranslatedFields
}

// Translatable is implemented by entities that carry a TranslatableBlob.
// WithTranslatedFields returns a copy of the entity with the given values overlaid.
type Translatable[T any] interface {
	TranslationSubject() TranslationSubject
	TranslationBlob() TranslatableBlob
	WithTranslatedFields(fields TranslatedFields) T
}

// Lookup returns the slot for lang when it exists and holds at least one value.
func (b TranslatableBlob) Lookup(lang Language) (TranslatedFields, bool) {
	if b == nil {
		return nil, false
	}
	fields, ok := b[lang]
	if !ok || len(fields) == 0 {
		return nil, false
	}
	return fields, true
}

// Clone deep-copies the blob.
func (b TranslatableBlob) Clone() TranslatableBlob {
	if b == nil {
		return nil
	}
	out := make(TranslatableBlob, len(b))
	for lang, fields := range b {
		out[lang] = fields.Clone()
	}
	return out
}

// Clone copies the slot.
func (f TranslatedFields) Clone() TranslatedFields {
	if f == nil {
		return nil
	}
	out := make(TranslatedFields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// overlay returns the value for field from f when present and non-empty, else current.
func (f TranslatedFields) overlay(field TextField, current string) string {
	if v, ok := f[field]; ok && v != "" {
		return v
	}
	return current
}

// PickTranslated returns entity with the cached values for lang overlaid.
// With no cached slot for lang the entity comes back unchanged (canonical text);
// there is no fallback to any other language.
func PickTranslated[T Translatable[T]](entity T, lang Language) T {
	fields, ok := entity.TranslationBlob().Lookup(lang)
	if !ok {
		return entity
	}
	return entity.WithTranslatedFields(fields)
}
