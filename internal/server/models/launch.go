package models

// Launch is one bookable rocket launch.
type Launch struct {
	ID      string
	Site    string
	Mission string
	Rocket  string
}
