// Package toolbox defines the payload shapes exchanged between the proxy
// endpoints and their callers, and the error envelope every failure is
// reported in. It has zero external dependencies.
package toolbox

// Dictionary (dictionaryapi.dev)

type Phonetic struct {
	Text      string   `json:"text"`
	Audio     string   `json:"audio,omitempty"`
	SourceURL string   `json:"sourceUrl,omitempty"`
	License   *License `json:"license,omitempty"`
}

type Definition struct {
	Definition string   `json:"definition"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
	Example    string   `json:"example,omitempty"`
}

type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
	Synonyms     []string     `json:"synonyms"`
	Antonyms     []string     `json:"antonyms"`
}

type License struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type DictionaryEntry struct {
	Word       string     `json:"word"`
	Phonetic   string     `json:"phonetic,omitempty"`
	Phonetics  []Phonetic `json:"phonetics"`
	Meanings   []Meaning  `json:"meanings"`
	License    License    `json:"license"`
	SourceURLs []string   `json:"sourceUrls"`
}

// Prayer times (Aladhan)

type PrayerTimings struct {
	Fajr       string `json:"Fajr"`
	Sunrise    string `json:"Sunrise"`
	Dhuhr      string `json:"Dhuhr"`
	Asr        string `json:"Asr"`
	Sunset     string `json:"Sunset"`
	Maghrib    string `json:"Maghrib"`
	Isha       string `json:"Isha"`
	Imsak      string `json:"Imsak"`
	Midnight   string `json:"Midnight"`
	Firstthird string `json:"Firstthird"`
	Lastthird  string `json:"Lastthird"`
}

type Designation struct {
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
}

type GregorianDate struct {
	Date    string `json:"date"`
	Format  string `json:"format"`
	Day     string `json:"day"`
	Weekday struct {
		En string `json:"en"`
	} `json:"weekday"`
	Month struct {
		Number int    `json:"number"`
		En     string `json:"en"`
	} `json:"month"`
	Year        string      `json:"year"`
	Designation Designation `json:"designation"`
}

type HijriDate struct {
	Date    string `json:"date"`
	Format  string `json:"format"`
	Day     string `json:"day"`
	Weekday struct {
		En string `json:"en"`
		Ar string `json:"ar"`
	} `json:"weekday"`
	Month struct {
		Number int    `json:"number"`
		En     string `json:"en"`
		Ar     string `json:"ar"`
	} `json:"month"`
	Year        string      `json:"year"`
	Designation Designation `json:"designation"`
	Holidays    []string    `json:"holidays"`
}

type PrayerDate struct {
	Readable  string        `json:"readable"`
	Timestamp string        `json:"timestamp"`
	Gregorian GregorianDate `json:"gregorian"`
	Hijri     HijriDate     `json:"hijri"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PrayerMethod struct {
	ID       int                `json:"id"`
	Name     string             `json:"name"`
	Params   map[string]float64 `json:"params"`
	Location Location           `json:"location"`
}

type PrayerMeta struct {
	Latitude                 float64            `json:"latitude"`
	Longitude                float64            `json:"longitude"`
	Timezone                 string             `json:"timezone"`
	Method                   PrayerMethod       `json:"method"`
	LatitudeAdjustmentMethod string             `json:"latitudeAdjustmentMethod"`
	MidnightMode             string             `json:"midnightMode"`
	School                   string             `json:"school"`
	Offset                   map[string]float64 `json:"offset"`
}

type PrayerTimesData struct {
	Timings PrayerTimings `json:"timings"`
	Date    PrayerDate    `json:"date"`
	Meta    PrayerMeta    `json:"meta"`
}

type PrayerTimesResponse struct {
	Code   int             `json:"code"`
	Status string          `json:"status"`
	Data   PrayerTimesData `json:"data"`
}

type QiblaData struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Direction float64 `json:"direction"`
}

type QiblaResponse struct {
	Code   int       `json:"code"`
	Status string    `json:"status"`
	Data   QiblaData `json:"data"`
}

// Translation

type TranslateRequest struct {
	Word           string `json:"word" validate:"required"`
	TargetLanguage string `json:"targetLanguage" validate:"required"`
}

type TranslationResult struct {
	TranslatedText string `json:"translatedText"`
}

// Riddle

type Riddle struct {
	Riddle string `json:"riddle"`
	Answer string `json:"answer"`
}

// FreeToGame

type FreeToGameEntry struct {
	ID                   int    `json:"id"`
	Title                string `json:"title"`
	Thumbnail            string `json:"thumbnail"`
	ShortDescription     string `json:"short_description"`
	GameURL              string `json:"game_url"`
	Genre                string `json:"genre"`
	Platform             string `json:"platform"`
	Publisher            string `json:"publisher"`
	Developer            string `json:"developer"`
	ReleaseDate          string `json:"release_date"`
	FreeToGameProfileURL string `json:"freetogame_profile_url"`
}

// GameFilter holds the optional FreeToGame list filters. Empty fields are
// not sent.
type GameFilter struct {
	Platform string
	Category string
	SortBy   string
}
