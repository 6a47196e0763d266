package models

const (
	LangEnglish = "en"
	LangArabic  = "ar"

	// DefaultLang applies whenever lang_abbr is omitted, for every entity.
	DefaultLang = LangArabic
)

var Languages = []string{LangEnglish, LangArabic}

func ValidLang(lang string) bool {
	return lang == LangEnglish || lang == LangArabic
}

// LangOrDefault returns lang, or DefaultLang when lang is empty.
func LangOrDefault(lang string) string {
	if lang == "" {
		return DefaultLang
	}
	return lang
}

var AllergiesEN = []string{
	"FISH",
	"EGGS",
	"GLUTEN",
	"MILK",
	"NUTS",
	"CRUSTACEANS",
	"MUSTARD",
	"MOLLUSCS",
	"PEANUTS",
	"SULFITES_10",
	"CELERY",
	"SOYBEANS",
	"LUPIN",
}

var AllergiesAR = []string{
	"سمك",
	"بيض",
	"جلوتين",
	"حليب",
	"مكسرات",
	"قشريات",
	"خردل",
	"رخويات",
	"فول سوداني",
	"كبريتات 10",
	"كرفس",
	"فول الصويا",
	"لوبين",
}

var allergySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(AllergiesEN)+len(AllergiesAR))
	for _, tag := range AllergiesEN {
		set[tag] = struct{}{}
	}
	for _, tag := range AllergiesAR {
		set[tag] = struct{}{}
	}
	return set
}()

func ValidAllergy(tag string) bool {
	_, ok := allergySet[tag]
	return ok
}
