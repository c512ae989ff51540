package backend

import "context"

// Stadium is the venue information shown above the match list
type Stadium struct {
	Name        string   `json:"name" yaml:"name"`
	City        string   `json:"city" yaml:"city"`
	Country     string   `json:"country" yaml:"country"`
	Capacity    int      `json:"capacity" yaml:"capacity"`
	Address     string   `json:"address" yaml:"address"`
	Teams       []string `json:"teams" yaml:"teams"`
	Description string   `json:"description" yaml:"description"`
	ImageURL    string   `json:"imageUrl" yaml:"image_url"`
}

// Location returns "City, Country", or whichever part is set
func (s *Stadium) Location() string {
	switch {
	case s.City != "" && s.Country != "":
		return s.City + ", " + s.Country
	case s.City != "":
		return s.City
	default:
		return s.Country
	}
}

// SammyOfer is the built-in stadium information used when fixtures come from the
// stadium's own page rather than the API
var SammyOfer = Stadium{
	Name:        "Sammy Ofer Stadium",
	City:        "Haifa",
	Country:     "Israel",
	Capacity:    30858,
	Address:     "32 Haim Weizmann St., Haifa, Israel",
	Teams:       []string{"Maccabi Haifa", "Hapoel Haifa"},
	Description: "Football stadium in Haifa and home ground of both Maccabi Haifa and Hapoel Haifa.",
	ImageURL:    "https://stadiumdb.com/pictures/stadiums/isr/sammy_ofer_stadium/sammy_ofer_stadium21.jpg",
}

// Static serves fixed stadium information without making a request
type Static struct {
	Stadium Stadium
}

// FetchStadium returns a copy of the fixed stadium information
func (s Static) FetchStadium(ctx context.Context) (*Stadium, error) {
	st := s.Stadium
	st.Teams = append([]string(nil), s.Stadium.Teams...)
	return &st, nil
}
