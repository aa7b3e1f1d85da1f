package geo

import "strings"

// Version of the region lookup table. Bump when entries change so cached
// derivations (regions-of-interest sets, parent lookups) can be invalidated.
const Version = 3

type regionEntry struct {
	needle    string // pre-folded lowercase form searched as a substring
	canonical string // display name returned on a hit
}

// gazetteer lists the recognized provinces with their common variant
// spellings, including co-official language forms. Search order is fixed
// and deliberately not alphabetical: more populous provinces come first so
// the first hit in ambiguous text is the likeliest one.
var gazetteer = []regionEntry{
	{"madrid", "Madrid"},
	{"barcelona", "Barcelona"},
	{"valencia", "Valencia"},
	{"sevilla", "Sevilla"},
	{"alicante", "Alicante"},
	{"alacant", "Alicante"},
	{"malaga", "Málaga"},
	{"murcia", "Murcia"},
	{"cadiz", "Cádiz"},
	{"bizkaia", "Vizcaya"},
	{"vizcaya", "Vizcaya"},
	{"bilbao", "Vizcaya"},
	{"a coruna", "A Coruña"},
	{"la coruna", "A Coruña"},
	{"illes balears", "Islas Baleares"},
	{"islas baleares", "Islas Baleares"},
	{"mallorca", "Islas Baleares"},
	{"las palmas", "Las Palmas"},
	{"asturias", "Asturias"},
	{"zaragoza", "Zaragoza"},
	{"granada", "Granada"},
	{"santa cruz de tenerife", "Santa Cruz de Tenerife"},
	{"tenerife", "Santa Cruz de Tenerife"},
	{"pontevedra", "Pontevedra"},
	{"vigo", "Pontevedra"},
	{"almeria", "Almería"},
	{"toledo", "Toledo"},
	{"badajoz", "Badajoz"},
	{"gipuzkoa", "Guipúzcoa"},
	{"guipuzcoa", "Guipúzcoa"},
	{"donostia", "Guipúzcoa"},
	{"san sebastian", "Guipúzcoa"},
	{"cordoba", "Córdoba"},
	{"tarragona", "Tarragona"},
	{"girona", "Girona"},
	{"gerona", "Girona"},
	{"leon", "León"},
	{"navarra", "Navarra"},
	{"nafarroa", "Navarra"},
	{"pamplona", "Navarra"},
	{"castellon", "Castellón"},
	{"castello", "Castellón"},
	{"jaen", "Jaén"},
	{"valladolid", "Valladolid"},
	{"ciudad real", "Ciudad Real"},
	{"huelva", "Huelva"},
	{"cantabria", "Cantabria"},
	{"santander", "Cantabria"},
	{"burgos", "Burgos"},
	{"salamanca", "Salamanca"},
	{"lleida", "Lleida"},
	{"lerida", "Lleida"},
	{"albacete", "Albacete"},
	{"caceres", "Cáceres"},
	{"la rioja", "La Rioja"},
	{"logrono", "La Rioja"},
	{"ourense", "Ourense"},
	{"orense", "Ourense"},
	{"lugo", "Lugo"},
	{"araba", "Álava"},
	{"alava", "Álava"},
	{"vitoria", "Álava"},
	{"guadalajara", "Guadalajara"},
	{"huesca", "Huesca"},
	{"cuenca", "Cuenca"},
	{"zamora", "Zamora"},
	{"avila", "Ávila"},
	{"palencia", "Palencia"},
	{"segovia", "Segovia"},
	{"teruel", "Teruel"},
	{"soria", "Soria"},
	{"melilla", "Melilla"},
	{"ceuta", "Ceuta"},
}

// parentRegion maps the normalized canonical province name to its
// autonomous community.
var parentRegion = map[string]string{
	"madrid":                 "Comunidad de Madrid",
	"barcelona":              "Cataluña",
	"tarragona":              "Cataluña",
	"girona":                 "Cataluña",
	"lleida":                 "Cataluña",
	"valencia":               "Comunidad Valenciana",
	"alicante":               "Comunidad Valenciana",
	"castellon":              "Comunidad Valenciana",
	"sevilla":                "Andalucía",
	"malaga":                 "Andalucía",
	"cadiz":                  "Andalucía",
	"granada":                "Andalucía",
	"almeria":                "Andalucía",
	"cordoba":                "Andalucía",
	"jaen":                   "Andalucía",
	"huelva":                 "Andalucía",
	"vizcaya":                "País Vasco",
	"guipuzcoa":              "País Vasco",
	"alava":                  "País Vasco",
	"a coruna":               "Galicia",
	"pontevedra":             "Galicia",
	"lugo":                   "Galicia",
	"ourense":                "Galicia",
	"zaragoza":               "Aragón",
	"huesca":                 "Aragón",
	"teruel":                 "Aragón",
	"murcia":                 "Región de Murcia",
	"asturias":               "Principado de Asturias",
	"cantabria":              "Cantabria",
	"la rioja":               "La Rioja",
	"navarra":                "Comunidad Foral de Navarra",
	"toledo":                 "Castilla-La Mancha",
	"ciudad real":            "Castilla-La Mancha",
	"cuenca":                 "Castilla-La Mancha",
	"guadalajara":            "Castilla-La Mancha",
	"albacete":               "Castilla-La Mancha",
	"valladolid":             "Castilla y León",
	"burgos":                 "Castilla y León",
	"salamanca":              "Castilla y León",
	"leon":                   "Castilla y León",
	"zamora":                 "Castilla y León",
	"palencia":               "Castilla y León",
	"avila":                  "Castilla y León",
	"segovia":                "Castilla y León",
	"soria":                  "Castilla y León",
	"badajoz":                "Extremadura",
	"caceres":                "Extremadura",
	"islas baleares":         "Islas Baleares",
	"las palmas":             "Canarias",
	"santa cruz de tenerife": "Canarias",
	"ceuta":                  "Ceuta",
	"melilla":                "Melilla",
}

// nutsProvince maps NUTS-3 country-subentity codes to canonical provinces.
var nutsProvince = map[string]string{
	"ES111": "A Coruña",
	"ES112": "Lugo",
	"ES113": "Ourense",
	"ES114": "Pontevedra",
	"ES120": "Asturias",
	"ES130": "Cantabria",
	"ES211": "Álava",
	"ES212": "Guipúzcoa",
	"ES213": "Vizcaya",
	"ES220": "Navarra",
	"ES230": "La Rioja",
	"ES241": "Huesca",
	"ES242": "Teruel",
	"ES243": "Zaragoza",
	"ES300": "Madrid",
	"ES411": "Ávila",
	"ES412": "Burgos",
	"ES413": "León",
	"ES414": "Palencia",
	"ES415": "Salamanca",
	"ES416": "Segovia",
	"ES417": "Soria",
	"ES418": "Valladolid",
	"ES419": "Zamora",
	"ES421": "Albacete",
	"ES422": "Ciudad Real",
	"ES423": "Cuenca",
	"ES424": "Guadalajara",
	"ES425": "Toledo",
	"ES431": "Badajoz",
	"ES432": "Cáceres",
	"ES511": "Barcelona",
	"ES512": "Girona",
	"ES513": "Lleida",
	"ES514": "Tarragona",
	"ES521": "Alicante",
	"ES522": "Castellón",
	"ES523": "Valencia",
	"ES530": "Islas Baleares",
	"ES611": "Almería",
	"ES612": "Cádiz",
	"ES613": "Córdoba",
	"ES614": "Granada",
	"ES615": "Huelva",
	"ES616": "Jaén",
	"ES617": "Málaga",
	"ES618": "Sevilla",
	"ES620": "Murcia",
	"ES630": "Ceuta",
	"ES640": "Melilla",
	"ES703": "Santa Cruz de Tenerife",
	"ES705": "Las Palmas",
}

// FindInText scans free text for any known region name as a whole
// case/diacritic-insensitive substring and returns the canonical
// capitalized name of the first hit, or "" when nothing is recognized.
func FindInText(text string) string {
	folded := Normalize(text)
	if folded == "" {
		return ""
	}
	for _, e := range gazetteer {
		if strings.Contains(folded, e.needle) {
			return e.canonical
		}
	}
	return ""
}

// Resolve maps a region name or variant spelling to its canonical form.
// Unrecognized names are returned trimmed so caller-side normalization
// still applies.
func Resolve(name string) string {
	folded := Normalize(name)
	if folded == "" {
		return ""
	}
	for _, e := range gazetteer {
		if folded == e.needle || folded == Normalize(e.canonical) {
			return e.canonical
		}
	}
	return strings.TrimSpace(name)
}

// FromNUTS resolves a NUTS-3 code to its canonical province name, or ""
// when the code is unknown.
func FromNUTS(code string) string {
	return nutsProvince[strings.ToUpper(strings.TrimSpace(code))]
}

// ParentRegion returns the autonomous community a province belongs to, or
// "" when the province is not in the lookup table.
func ParentRegion(province string) string {
	return parentRegion[Normalize(Resolve(province))]
}
