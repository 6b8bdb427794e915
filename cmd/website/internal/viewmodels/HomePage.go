package viewmodels

type HomePage struct {
	BaseViewModel
	Photographers []PhotographerCard
}

type PhotographerCard struct {
	ID          int
	Name        string
	City        string
	Country     string
	Tagline     string
	Price       int
	PortraitURL string
}
