package search

// The fallback dataset predates the canonical profile schema and keeps its
// own key spellings (camelCase specialty keys, session keys, isPro). It is
// projected into models.OTProfile once, at engine construction.

type seedProfile struct {
	id                   string
	slug                 string
	name                 string
	nameEn               string
	bio                  string
	city                 string
	phone                string
	specialties          []string
	sessionTypes         []string
	insurance            []string
	languages            []string
	feePerSession        int
	isPro                bool
	acceptingNewPatients bool
	daysAgo              int
}

// seedSpecMap translates internal specialty keys to canonical tokens.
// Unknown keys are dropped, never passed through.
var seedSpecMap = map[string]string{
	"paediatrics":       "paediatrics",
	"sensoryProcessing": "sensory-processing",
	"neuro":             "neurological",
	"mentalHealth":      "mental-health",
	"handTherapy":       "hand-therapy",
	"geriatrics":        "geriatrics",
	"vocational":        "vocational",
	"ergonomic":         "ergonomic",
}

// seedSessionMap translates internal session keys to canonical tokens.
var seedSessionMap = map[string]string{
	"inPerson":   "in-person",
	"telehealth": "telehealth",
	"homeVisit":  "home-visit",
}

var seedProfiles = []seedProfile{
	{
		id:                   "seed-1",
		slug:                 "noa-levi",
		name:                 "נועה לוי",
		nameEn:               "Noa Levi",
		bio:                  "מרפאה בעיסוק מומחית בטיפול בילדים עם קשיי ויסות חושי ועיכובים התפתחותיים.",
		city:                 "תל אביב",
		phone:                "052-5551001",
		specialties:          []string{"paediatrics", "sensoryProcessing"},
		sessionTypes:         []string{"inPerson", "telehealth"},
		insurance:            []string{"clalit", "maccabi"},
		languages:            []string{"he", "en"},
		feePerSession:        350,
		isPro:                true,
		acceptingNewPatients: true,
		daysAgo:              420,
	},
	{
		id:                   "seed-2",
		slug:                 "yael-cohen",
		name:                 "יעל כהן",
		nameEn:               "Yael Cohen",
		bio:                  "שיקום נוירולוגי למבוגרים אחרי אירוע מוחי ופגיעות ראש, כולל ביקורי בית.",
		city:                 "חיפה",
		phone:                "054-5551002",
		specialties:          []string{"neuro", "geriatrics"},
		sessionTypes:         []string{"inPerson", "homeVisit"},
		insurance:            []string{"clalit", "leumit"},
		languages:            []string{"he", "ru"},
		feePerSession:        400,
		isPro:                false,
		acceptingNewPatients: true,
		daysAgo:              365,
	},
	{
		id:                   "seed-3",
		slug:                 "amir-mizrahi",
		name:                 "אמיר מזרחי",
		nameEn:               "Amir Mizrahi",
		bio:                  "טיפול ביד ושיקום לאחר פציעות ספורט וניתוחים אורתופדיים.",
		city:                 "ירושלים",
		phone:                "050-5551003",
		specialties:          []string{"handTherapy"},
		sessionTypes:         []string{"inPerson"},
		insurance:            []string{"maccabi", "private"},
		languages:            []string{"he", "en"},
		feePerSession:        450,
		isPro:                true,
		acceptingNewPatients: false,
		daysAgo:              300,
	},
	{
		id:                   "seed-4",
		slug:                 "rana-khatib",
		name:                 "רנא ח'טיב",
		nameEn:               "Rana Khatib",
		bio:                  "ליווי ילדים ובני נוער בתחום בריאות הנפש, טיפול דו-לשוני בערבית ובעברית.",
		city:                 "נצרת",
		phone:                "052-5551004",
		specialties:          []string{"mentalHealth", "paediatrics"},
		sessionTypes:         []string{"inPerson", "telehealth"},
		insurance:            []string{"clalit", "meuhedet"},
		languages:            []string{"he", "ar"},
		feePerSession:        320,
		isPro:                false,
		acceptingNewPatients: true,
		daysAgo:              270,
	},
	{
		id:                   "seed-5",
		slug:                 "david-peretz",
		name:                 "דוד פרץ",
		nameEn:               "David Peretz",
		bio:                  "התאמות ארגונומיות לסביבת עבודה ושיקום תעסוקתי למבוגרים.",
		city:                 "באר שבע",
		phone:                "053-5551005",
		specialties:          []string{"ergonomic", "vocational"},
		sessionTypes:         []string{"inPerson", "telehealth"},
		insurance:            []string{"leumit", "private"},
		languages:            []string{"he"},
		feePerSession:        380,
		isPro:                false,
		acceptingNewPatients: true,
		daysAgo:              240,
	},
	{
		id:                   "seed-6",
		slug:                 "miriam-katz",
		name:                 "מרים כץ",
		nameEn:               "Miriam Katz",
		bio:                  "טיפול גריאטרי בבית המטופל, דגש על תפקוד יומיומי ובטיחות בבית.",
		city:                 "רמת גן",
		phone:                "054-5551006",
		specialties:          []string{"geriatrics"},
		sessionTypes:         []string{"homeVisit"},
		insurance:            []string{"maccabi", "meuhedet"},
		languages:            []string{"he", "yi"},
		feePerSession:        300,
		isPro:                false,
		acceptingNewPatients: true,
		daysAgo:              200,
	},
	{
		id:                   "seed-7",
		slug:                 "tamar-shapiro",
		name:                 "תמר שפירו",
		nameEn:               "Tamar Shapiro",
		bio:                  "אבחון וטיפול בילדים עם קשיי כתיבה, קשב וויסות חושי בגני ילדים ובתי ספר.",
		city:                 "תל אביב",
		phone:                "050-5551007",
		specialties:          []string{"paediatrics", "sensoryProcessing"},
		sessionTypes:         []string{"inPerson", "homeVisit"},
		insurance:            []string{"clalit", "private"},
		languages:            []string{"he", "en", "fr"},
		feePerSession:        420,
		isPro:                true,
		acceptingNewPatients: true,
		daysAgo:              150,
	},
	{
		id:                   "seed-8",
		slug:                 "omar-haddad",
		name:                 "עומר חדאד",
		nameEn:               "Omar Haddad",
		bio:                  "שיקום נוירולוגי ותעסוקתי, ליווי חזרה לעבודה אחרי פגיעה.",
		city:                 "חיפה",
		phone:                "052-5551008",
		specialties:          []string{"neuro", "vocational"},
		sessionTypes:         []string{"inPerson", "telehealth"},
		insurance:            []string{"clalit", "maccabi", "leumit"},
		languages:            []string{"he", "ar", "en"},
		feePerSession:        360,
		isPro:                false,
		acceptingNewPatients: false,
		daysAgo:              120,
	},
	{
		id:                   "seed-9",
		slug:                 "shira-golan",
		name:                 "שירה גולן",
		nameEn:               "Shira Golan",
		bio:                  "בריאות הנפש למבוגרים, שילוב כלים מעולם ההתעסוקה והמיינדפולנס.",
		city:                 "הרצליה",
		phone:                "053-5551009",
		specialties:          []string{"mentalHealth"},
		sessionTypes:         []string{"telehealth"},
		insurance:            []string{"private"},
		languages:            []string{"he", "en"},
		feePerSession:        500,
		isPro:                true,
		acceptingNewPatients: true,
		daysAgo:              90,
	},
	{
		id:                   "seed-10",
		slug:                 "eli-baruch",
		name:                 "אלי ברוך",
		nameEn:               "Eli Baruch",
		bio:                  "טיפול ביד והתאמת סדים, קליניקה נגישה במרכז העיר.",
		city:                 "פתח תקווה",
		phone:                "054-5551010",
		specialties:          []string{"handTherapy", "ergonomic"},
		sessionTypes:         []string{"inPerson"},
		insurance:            []string{"meuhedet", "leumit"},
		languages:            []string{"he"},
		feePerSession:        340,
		isPro:                false,
		acceptingNewPatients: true,
		daysAgo:              60,
	},
}
