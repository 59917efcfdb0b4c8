package domain

import (
	"encoding/json"
	"strconv"
)

// MovieSummary is one row of a paginated search result.
type MovieSummary struct {
	ID          string `json:"movieId"`
	Name        string `json:"movieName"`
	PosterURL   string `json:"posterLink"`
	ReleaseYear string `json:"releaseYear"`
}

// SearchPage is the payload returned to the search UI.
type SearchPage struct {
	HasNextPage bool           `json:"hasNextPage"`
	CurrentPage int            `json:"currentPage"`
	Movies      []MovieSummary `json:"movies"`
}

// Value holds a scalar attribute that is an integer when the source literal
// parses as one, and the raw (or placeholder) text otherwise.
type Value struct {
	n     int64
	text  string
	isInt bool
}

// IntValue wraps an integer.
func IntValue(n int64) Value {
	return Value{n: n, isInt: true}
}

// TextValue wraps a string.
func TextValue(s string) Value {
	return Value{text: s}
}

// Int64 returns the integer and whether the value is one.
func (v Value) Int64() (int64, bool) {
	return v.n, v.isInt
}

func (v Value) String() string {
	if v.isInt {
		return strconv.FormatInt(v.n, 10)
	}
	return v.text
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.isInt {
		return []byte(strconv.FormatInt(v.n, 10)), nil
	}
	return json.Marshal(v.text)
}

// Person is a cast or crew member resolved against the knowledge graph.
// ExternalURI and ImageURL are empty when the lookup found nothing.
type Person struct {
	Name        string `json:"name"`
	ExternalURI string `json:"externalUri,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Review is one review score shown on the detail page.
type Review struct {
	Source string `json:"source"`
	Score  string `json:"score"`
}

// Crew groups the production roles fetched from the knowledge graph.
type Crew struct {
	Photography      []string `json:"photography"`
	Editor           []string `json:"editor"`
	ProductionDesign []string `json:"productionDesign"`
	CostumeDesign    []string `json:"costumeDesign"`
	Composer         []string `json:"composer"`
	Producer         []string `json:"producer"`
}

// MovieDetail is the denormalized view model behind the detail page. Optional
// scalars carry a "No data for ..." placeholder instead of being empty.
type MovieDetail struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	DirectorName       string   `json:"directorName"`
	Director           Person   `json:"director"`
	Genres             []string `json:"genres"`
	Rating             string   `json:"rating"`
	MetaScore          string   `json:"metaScore"`
	Synopsis           string   `json:"synopsis"`
	PosterURL          string   `json:"posterLink"`
	PosterURLWikipedia string   `json:"posterLinkWikipedia"`
	PhotoURL           string   `json:"photoUrl"`
	ReleaseYear        string   `json:"releaseYear"`
	RunningTimeMinutes Value    `json:"runningTimeMinutes"`
	RunningTime        string   `json:"runningTime"`
	StarNames          []string `json:"-"`
	Stars              []Person `json:"stars"`
	Votes              Value    `json:"votes"`
	WikidataURI        string   `json:"wikidataUri"`
	Distributor        string   `json:"distributor"`
	Distributors       []string `json:"distributors"`
	Budget             Value    `json:"budget"`
	DomesticOpening    Value    `json:"domesticOpening"`
	DomesticSales      Value    `json:"domesticSales"`
	InternationalSales Value    `json:"internationalSales"`
	Certificate        string   `json:"certificate"`
	License            string   `json:"license"`
	ReleaseDate        string   `json:"releaseDate"`
	Screenwriters      []Person `json:"screenwriters"`
	Crew               Crew     `json:"crew"`
	Reviews            []Review `json:"reviews"`
	CountriesOfOrigin  []string `json:"countriesOfOrigin"`
	Awards             []string `json:"awards"`
	FilmingLocations   []string `json:"filmingLocations"`
}
