package normalize

import "strings"

// RegionOther is the fallback when a location maps to no known region.
const RegionOther = "Other NZ"

// RegionRemote groups remote / work-from-home listings.
const RegionRemote = "Remote / Work from Home"

// Regions are the canonical filter values, in display order.
var Regions = []string{
	"Auckland",
	"Wellington",
	"Christchurch",
	"Hamilton",
	"Tauranga",
	"Dunedin",
	"Queenstown",
	"Palmerston North",
	"Napier-Hastings",
	"Nelson",
	"Rotorua",
	"New Plymouth",
	"Whangarei",
	"Invercargill",
	"Whanganui",
	"Gisborne",
	"Blenheim",
	"Timaru",
	RegionOther,
	RegionRemote,
}

type regionRule struct {
	keyword string
	region  string
}

// regionRules maps location keywords (suburbs, districts, aliases) to
// regions. Order matters: more specific entries come before broad ones.
var regionRules = []regionRule{
	// Auckland suburbs and areas
	{"auckland", "Auckland"},
	{"cbd", "Auckland"}, // bare "CBD" is almost always Auckland CBD
	{"north shore", "Auckland"},
	{"takapuna", "Auckland"},
	{"albany", "Auckland"},
	{"manukau", "Auckland"},
	{"papakura", "Auckland"},
	{"pukekohe", "Auckland"},
	{"henderson", "Auckland"},
	{"new lynn", "Auckland"},
	{"ponsonby", "Auckland"},
	{"parnell", "Auckland"},
	{"newmarket", "Auckland"},
	{"remuera", "Auckland"},
	{"mt eden", "Auckland"},
	{"penrose", "Auckland"},
	{"botany", "Auckland"},
	{"howick", "Auckland"},
	{"waitakere", "Auckland"},

	// Wellington region
	{"wellington", "Wellington"},
	{"lower hutt", "Wellington"},
	{"upper hutt", "Wellington"},
	{"hutt valley", "Wellington"},
	{"porirua", "Wellington"},
	{"petone", "Wellington"},
	{"kapiti", "Wellington"},
	{"paraparaumu", "Wellington"},

	// Christchurch / Canterbury
	{"christchurch", "Christchurch"},
	{"canterbury", "Christchurch"},
	{"riccarton", "Christchurch"},
	{"addington", "Christchurch"},
	{"rangiora", "Christchurch"},
	{"rolleston", "Christchurch"},

	// Hamilton / Waikato
	{"hamilton", "Hamilton"},
	{"waikato", "Hamilton"},
	{"cambridge", "Hamilton"},
	{"te awamutu", "Hamilton"},

	// Tauranga / Bay of Plenty
	{"tauranga", "Tauranga"},
	{"mount maunganui", "Tauranga"},
	{"papamoa", "Tauranga"},
	{"bay of plenty", "Tauranga"},

	// Dunedin / Otago
	{"dunedin", "Dunedin"},
	{"mosgiel", "Dunedin"},
	{"otago", "Dunedin"},

	// Queenstown / Central Otago
	{"queenstown", "Queenstown"},
	{"wanaka", "Queenstown"},
	{"cromwell", "Queenstown"},
	{"arrowtown", "Queenstown"},

	// Palmerston North / Manawatu
	{"palmerston north", "Palmerston North"},
	{"manawatu", "Palmerston North"},
	{"levin", "Palmerston North"},
	{"feilding", "Palmerston North"},

	// Napier-Hastings / Hawke's Bay
	{"napier", "Napier-Hastings"},
	{"hastings", "Napier-Hastings"},
	{"hawke's bay", "Napier-Hastings"},
	{"hawkes bay", "Napier-Hastings"},
	{"havelock north", "Napier-Hastings"},

	// Nelson / Tasman
	{"nelson", "Nelson"},
	{"richmond", "Nelson"},
	{"motueka", "Nelson"},
	{"tasman", "Nelson"},

	// Rotorua / Taupo
	{"rotorua", "Rotorua"},
	{"taupo", "Rotorua"},

	// New Plymouth / Taranaki
	{"new plymouth", "New Plymouth"},
	{"taranaki", "New Plymouth"},
	{"hawera", "New Plymouth"},

	// Whangarei / Northland
	{"whangarei", "Whangarei"},
	{"northland", "Whangarei"},
	{"kerikeri", "Whangarei"},
	{"kaitaia", "Whangarei"},

	// Invercargill / Southland
	{"invercargill", "Invercargill"},
	{"southland", "Invercargill"},
	{"gore", "Invercargill"},
	{"te anau", "Invercargill"},

	// Whanganui
	{"whanganui", "Whanganui"},
	{"wanganui", "Whanganui"},

	// Gisborne
	{"gisborne", "Gisborne"},
	{"east coast", "Gisborne"},

	// Blenheim / Marlborough
	{"blenheim", "Blenheim"},
	{"marlborough", "Blenheim"},
	{"picton", "Blenheim"},

	// Timaru
	{"timaru", "Timaru"},
	{"south canterbury", "Timaru"},

	// Remote / WFH — also catches nationwide listings
	{"remote", RegionRemote},
	{"work from home", RegionRemote},
	{"wfh", RegionRemote},
	{"anywhere", RegionRemote},
	{"nz wide", RegionRemote},
	{"new zealand", RegionRemote},
}

// Region maps a free-text location to its canonical region, or RegionOther
// when nothing matches. Matching is case-insensitive substring, first rule
// wins.
func Region(location string) string {
	loc := strings.ToLower(CleanText(location))
	if loc == "" {
		return RegionOther
	}
	for _, r := range regionRules {
		if strings.Contains(loc, r.keyword) {
			return r.region
		}
	}
	return RegionOther
}
