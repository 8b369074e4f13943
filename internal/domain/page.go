package domain

import "slices"

const (
	PageTitle     = "Hotel Booking App"
	LayoutWide    = "wide"
	Heading       = "🏨 Hotel Booking App"
	Welcome       = "Welcome to Anshul's Streamlit-based hotel booking platform!"
	SidebarHeader = "User Filters"
	CityLabel     = "Choose a City"
	GuestsLabel   = "Number of Guests"
)

type PageConfig struct {
	Title  string `json:"title"`
	Layout string `json:"layout"`
}

func DefaultPageConfig() PageConfig {
	return PageConfig{Title: PageTitle, Layout: LayoutWide}
}

type SelectControl struct {
	Label    string `json:"label"`
	Options  []City `json:"options"`
	Selected City   `json:"selected"`
}

type SliderControl struct {
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Value int    `json:"value"`
}

type Sidebar struct {
	Header string        `json:"header"`
	City   SelectControl `json:"city"`
	Guests SliderControl `json:"guests"`
}

// PageView is the output of one render pass.
type PageView struct {
	Config  PageConfig `json:"config"`
	Heading string     `json:"heading"`
	Welcome string     `json:"welcome"`
	Sidebar Sidebar    `json:"sidebar"`
	Success string     `json:"success"`
}

// BuildView assembles the page for f. Everything except the control values and
// the success line is constant.
func BuildView(cfg PageConfig, f Filters) PageView {
	return PageView{
		Config:  cfg,
		Heading: Heading,
		Welcome: Welcome,
		Sidebar: Sidebar{
			Header: SidebarHeader,
			City: SelectControl{
				Label:    CityLabel,
				Options:  Cities(),
				Selected: f.City,
			},
			Guests: SliderControl{
				Label: GuestsLabel,
				Min:   int(MinGuests),
				Max:   int(MaxGuests),
				Value: int(f.Guests),
			},
		},
		Success: Message(f),
	}
}

func (v PageView) Filters() Filters {
	return Filters{City: v.Sidebar.City.Selected, Guests: Guests(v.Sidebar.Guests.Value)}
}

// Equal reports whether two views render identically.
func (v PageView) Equal(o PageView) bool {
	return v.Config == o.Config &&
		v.Heading == o.Heading &&
		v.Welcome == o.Welcome &&
		v.Success == o.Success &&
		v.Sidebar.Header == o.Sidebar.Header &&
		v.Sidebar.Guests == o.Sidebar.Guests &&
		v.Sidebar.City.Label == o.Sidebar.City.Label &&
		v.Sidebar.City.Selected == o.Sidebar.City.Selected &&
		slices.Equal(v.Sidebar.City.Options, o.Sidebar.City.Options)
}
