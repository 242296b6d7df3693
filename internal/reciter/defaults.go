package reciter

const (
	// DefaultAyahBaseURL serves one MP3 per verse, addressed by global index.
	DefaultAyahBaseURL = "https://cdn.islamic.network/quran/audio/128"
	// DefaultChapterBaseURL serves one MP3 per chapter.
	DefaultChapterBaseURL = "https://download.quranicaudio.com/quran"
	// DefaultChapterAltBaseURL is used by StrategyDoubleSeparator reciters.
	DefaultChapterAltBaseURL = "https://download.quranicaudio.com/qdc"

	DefaultAyahReciterID    = "ar.alafasy"
	DefaultChapterReciterID = "abdul_baset/mujawwad"
)

// DefaultAyahReciters is the verse-level registry shipped with the app.
var DefaultAyahReciters = []Reciter{
	{ID: "ar.alafasy", Name: "Mishary Rashid Alafasy"},
	{ID: "ar.husary", Name: "Mahmoud Khalil Al-Husary"},
	{ID: "ar.minshawi", Name: "Muhammad Siddiq Al-Minshawi"},
	{ID: "ar.muhammadayyoub", Name: "Muhammad Ayyoub"},
	{ID: "ar.mahermuaiqly", Name: "Maher Al Muaiqly"},
	{ID: "ar.shaatree", Name: "Abu Bakr Ash-Shatri"},
	{ID: "ar.ahmedajamy", Name: "Ahmed ibn Ali al-Ajamy"},
}

// ChapterReciter pairs a chapter-level reciter with its naming strategy.
type ChapterReciter struct {
	Reciter
	Naming Strategy
}

// DefaultChapterReciters is the chapter-level registry shipped with the app.
var DefaultChapterReciters = []ChapterReciter{
	{Reciter{ID: "abdul_baset/mujawwad", Name: "Abdul Basit Mujawwad"}, StrategyZeroPadded},
	{Reciter{ID: "abdul_baset/murattal", Name: "Abdul Basit Murattal"}, StrategyZeroPadded},
	{Reciter{ID: "abdurrahmaan_as_sudais/murattal", Name: "Abdurrahmaan As-Sudais"}, StrategyZeroPadded},
	{Reciter{ID: "abu_bakr_shatri/murattal", Name: "Abu Bakr Ash-Shatri"}, StrategyZeroPadded},
	{Reciter{ID: "khalil_al_husary/murattal", Name: "Khalil Al-Husary"}, StrategyZeroPadded},
	{Reciter{ID: "mishari_al_afasy/murattal", Name: "Mishari Al-Afasy"}, StrategyZeroPadded},
	{Reciter{ID: "siddiq_minshawi/murattal", Name: "Siddiq Al-Minshawi"}, StrategyZeroPadded},
	{Reciter{ID: "saud_ash-shuraym/murattal", Name: "Saud Ash-Shuraym"}, StrategyZeroPadded},
	{Reciter{ID: "ahmed_ibn_3ali_al-3ajamy", Name: "Ahmed Ibn 3ali Al-3ajamy"}, StrategyDoubleSeparator},
	{Reciter{ID: "maher_almu3aiqly/year1422-1423", Name: "Maher Almu3aiqly"}, StrategyPlain},
}

// SplitChapterReciters separates a chapter reciter list into the registry
// entries and the resolver's strategy table.
func SplitChapterReciters(list []ChapterReciter) ([]Reciter, map[string]Strategy) {
	recs := make([]Reciter, 0, len(list))
	strategies := make(map[string]Strategy, len(list))
	for _, cr := range list {
		recs = append(recs, cr.Reciter)
		if cr.Naming != "" && cr.Naming != StrategyPlain {
			strategies[cr.ID] = cr.Naming
		}
	}
	return recs, strategies
}
