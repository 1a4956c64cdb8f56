package entities

import "strings"

// Language describes a supported language for translation and display.
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
	Flag       string `json:"flag"`
}

// SupportedLanguages is the fixed set of languages the desktop can translate
// between. Defined once at startup and never mutated.
var SupportedLanguages = []Language{
	// Major world languages
	{Code: "en", Name: "English", NativeName: "English", Flag: "🇺🇸"},
	{Code: "es", Name: "Spanish", NativeName: "Español", Flag: "🇪🇸"},
	{Code: "fr", Name: "French", NativeName: "Français", Flag: "🇫🇷"},
	{Code: "de", Name: "German", NativeName: "Deutsch", Flag: "🇩🇪"},
	{Code: "it", Name: "Italian", NativeName: "Italiano", Flag: "🇮🇹"},
	{Code: "pt", Name: "Portuguese", NativeName: "Português", Flag: "🇵🇹"},
	{Code: "ru", Name: "Russian", NativeName: "Русский", Flag: "🇷🇺"},
	{Code: "zh", Name: "Chinese", NativeName: "中文", Flag: "🇨🇳"},
	{Code: "ja", Name: "Japanese", NativeName: "日本語", Flag: "🇯🇵"},
	{Code: "ko", Name: "Korean", NativeName: "한국어", Flag: "🇰🇷"},
	{Code: "ar", Name: "Arabic", NativeName: "العربية", Flag: "🇸🇦"},
	{Code: "hi", Name: "Hindi", NativeName: "हिन्दी", Flag: "🇮🇳"},
	{Code: "th", Name: "Thai", NativeName: "ไทย", Flag: "🇹🇭"},
	{Code: "vi", Name: "Vietnamese", NativeName: "Tiếng Việt", Flag: "🇻🇳"},
	{Code: "nl", Name: "Dutch", NativeName: "Nederlands", Flag: "🇳🇱"},
	{Code: "sv", Name: "Swedish", NativeName: "Svenska", Flag: "🇸🇪"},
	{Code: "da", Name: "Danish", NativeName: "Dansk", Flag: "🇩🇰"},
	{Code: "no", Name: "Norwegian", NativeName: "Norsk", Flag: "🇳🇴"},
	{Code: "fi", Name: "Finnish", NativeName: "Suomi", Flag: "🇫🇮"},
	{Code: "pl", Name: "Polish", NativeName: "Polski", Flag: "🇵🇱"},

	// Additional European languages
	{Code: "cs", Name: "Czech", NativeName: "Čeština", Flag: "🇨🇿"},
	{Code: "hu", Name: "Hungarian", NativeName: "Magyar", Flag: "🇭🇺"},
	{Code: "ro", Name: "Romanian", NativeName: "Română", Flag: "🇷🇴"},
	{Code: "bg", Name: "Bulgarian", NativeName: "Български", Flag: "🇧🇬"},
	{Code: "hr", Name: "Croatian", NativeName: "Hrvatski", Flag: "🇭🇷"},
	{Code: "sk", Name: "Slovak", NativeName: "Slovenčina", Flag: "🇸🇰"},
	{Code: "sl", Name: "Slovenian", NativeName: "Slovenščina", Flag: "🇸🇮"},
	{Code: "et", Name: "Estonian", NativeName: "Eesti", Flag: "🇪🇪"},
	{Code: "lv", Name: "Latvian", NativeName: "Latviešu", Flag: "🇱🇻"},
	{Code: "lt", Name: "Lithuanian", NativeName: "Lietuvių", Flag: "🇱🇹"},

	// Asian languages
	{Code: "bn", Name: "Bengali", NativeName: "বাংলা", Flag: "🇧🇩"},
	{Code: "ur", Name: "Urdu", NativeName: "اردو", Flag: "🇵🇰"},
	{Code: "fa", Name: "Persian", NativeName: "فارسی", Flag: "🇮🇷"},
	{Code: "he", Name: "Hebrew", NativeName: "עברית", Flag: "🇮🇱"},
	{Code: "my", Name: "Burmese", NativeName: "မြန်မာ", Flag: "🇲🇲"},
	{Code: "km", Name: "Khmer", NativeName: "ខ្មែរ", Flag: "🇰🇭"},
	{Code: "lo", Name: "Lao", NativeName: "ລາວ", Flag: "🇱🇦"},

	// Indian languages
	{Code: "gu", Name: "Gujarati", NativeName: "ગુજરાતી", Flag: "🇮🇳"},
	{Code: "kn", Name: "Kannada", NativeName: "ಕನ್ನಡ", Flag: "🇮🇳"},
	{Code: "ml", Name: "Malayalam", NativeName: "മലയാളം", Flag: "🇮🇳"},
	{Code: "mr", Name: "Marathi", NativeName: "मराठी", Flag: "🇮🇳"},
	{Code: "ta", Name: "Tamil", NativeName: "தமிழ்", Flag: "🇮🇳"},
	{Code: "te", Name: "Telugu", NativeName: "తెలుగు", Flag: "🇮🇳"},
	{Code: "pa", Name: "Punjabi", NativeName: "ਪੰਜਾਬੀ", Flag: "🇮🇳"},

	// Southeast Asian languages
	{Code: "id", Name: "Indonesian", NativeName: "Bahasa Indonesia", Flag: "🇮🇩"},
	{Code: "ms", Name: "Malay", NativeName: "Bahasa Melayu", Flag: "🇲🇾"},
	{Code: "tl", Name: "Filipino", NativeName: "Filipino", Flag: "🇵🇭"},

	// African languages
	{Code: "sw", Name: "Swahili", NativeName: "Kiswahili", Flag: "🇰🇪"},
	{Code: "am", Name: "Amharic", NativeName: "አማርኛ", Flag: "🇪🇹"},
	{Code: "ha", Name: "Hausa", NativeName: "Hausa", Flag: "🇳🇬"},
	{Code: "ig", Name: "Igbo", NativeName: "Igbo", Flag: "🇳🇬"},
	{Code: "yo", Name: "Yoruba", NativeName: "Yorùbá", Flag: "🇳🇬"},
	{Code: "zu", Name: "Zulu", NativeName: "isiZulu", Flag: "🇿🇦"},
	{Code: "xh", Name: "Xhosa", NativeName: "isiXhosa", Flag: "🇿🇦"},
	{Code: "af", Name: "Afrikaans", NativeName: "Afrikaans", Flag: "🇿🇦"},
}

var languageByCode = func() map[string]Language {
	m := make(map[string]Language, len(SupportedLanguages))
	for _, l := range SupportedLanguages {
		m[l.Code] = l
	}
	return m
}()

// rtlLanguages is the fixed set of right-to-left language codes.
var rtlLanguages = map[string]bool{
	"ar": true,
	"he": true,
	"fa": true,
	"ur": true,
}

// LookupLanguage returns the language for a code, if supported.
func LookupLanguage(code string) (Language, bool) {
	l, ok := languageByCode[code]
	return l, ok
}

// LanguageName returns the display name for a code. Unknown codes fall back
// to the upper-cased code itself.
func LanguageName(code string, native bool) string {
	l, ok := languageByCode[code]
	if !ok {
		return strings.ToUpper(code)
	}
	if native {
		return l.NativeName
	}
	return l.Name
}

// LanguageFlag returns the flag glyph for a code, or a generic globe for
// unknown codes.
func LanguageFlag(code string) string {
	l, ok := languageByCode[code]
	if !ok {
		return "🌐"
	}
	return l.Flag
}

// IsRTL reports whether a language code is written right-to-left.
func IsRTL(code string) bool {
	return rtlLanguages[code]
}
