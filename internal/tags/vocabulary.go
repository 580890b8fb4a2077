package tags

// aliases maps lower-cased free-text labels (provider rubrics, chat input,
// seed data) onto canonical tags.
var aliases = map[string]Tag{
	// history
	"историческое место":    History,
	"исторические места":    History,
	"исторический музей":    History,
	"памятник":              History,
	"памятники":             History,
	"достопримечательность": History,
	"historic":              History,
	"historic_architecture": History,
	"monuments":             History,
	"monument":              History,
	"memorial":              History,
	// museum
	"музей":      Museum,
	"музеи":      Museum,
	"выставка":   Museum,
	"museums":    Museum,
	"exhibition": Museum,
	// gallery / art
	"галерея":                     Gallery,
	"галереи":                     Gallery,
	"картинная галерея":           Gallery,
	"galleries":                   Gallery,
	"art gallery":                 Gallery,
	"искусство":                   Art,
	"театр":                       Art,
	"театры":                      Art,
	"theatre":                     Art,
	"theater":                     Art,
	"theatres_and_entertainments": Art,
	"culture":                     Art,
	"культура":                    Art,
	// architecture
	"архитектура":            Architecture,
	"особняк":                Architecture,
	"собор":                  Architecture,
	"храм":                   Architecture,
	"churches":               Architecture,
	"cathedrals":             Architecture,
	"religion":               Architecture,
	"architecture_monuments": Architecture,
	// parks, walks, nature
	"парк":               Park,
	"парки":              Park,
	"сквер":              Park,
	"parks":              Park,
	"gardens_and_parks":  Park,
	"garden":             Park,
	"прогулка":           Walk,
	"прогулки":           Walk,
	"пешеходная улица":   Walk,
	"bridges":            Walk,
	"набережная":         Embankment,
	"promenade":          Embankment,
	"природа":            Nature,
	"natural":            Nature,
	"nature_reserves":    Nature,
	"обзорная площадка":  Viewpoint,
	"view_points":        Viewpoint,
	"смотровая площадка": Viewpoint,
	"река":               Waterfront,
	"beaches":            Waterfront,
	"water":              Waterfront,
	// food & coffee
	"еда":         Food,
	"ресторан":    Food,
	"рестораны":   Food,
	"столовая":    Food,
	"бар":         Food,
	"restaurants": Food,
	"restaurant":  Food,
	"foods":       Food,
	"fast_food":   Food,
	"кофе":        Coffee,
	"кофейня":     Coffee,
	"кофейни":     Coffee,
	"кафе":        Coffee,
	"cafes":       Coffee,
	"cafe":        Coffee,
	// family, sport, generic
	"семья":                 Family,
	"дети":                  Family,
	"детский центр":         Family,
	"семейные развлечения":  Family,
	"amusements":            Family,
	"zoos":                  Family,
	"спорт":                 Sport,
	"стадион":               Sport,
	"sport":                 Sport,
	"стадионы":              Sport,
	"attraction":            POI,
	"interesting_places":    POI,
	"достопримечательности": POI,
	"adm_div.place":         POI,
	"branch":                POI,
}
