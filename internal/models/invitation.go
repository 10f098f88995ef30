package models

import "weddinginvite/internal/config"

type Schedule struct {
	Ceremony  string `json:"ceremony"`
	Reception string `json:"reception"`
}

type Venue struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	MapsURL string `json:"maps_url"`
}

// Invitation is everything the page renders besides the countdown and the
// RSVP form.
type Invitation struct {
	Couple       string       `json:"couple"`
	DateLabel    string       `json:"date_label"`
	Target       string       `json:"target"`
	Venue        Venue        `json:"venue"`
	Schedule     Schedule     `json:"schedule"`
	Verse        string       `json:"verse,omitempty"`
	RSVPDeadline string       `json:"rsvp_deadline"`
	TransportURL string       `json:"transport_url,omitempty"`
	DressCode    string       `json:"dress_code,omitempty"`
	Tips         []config.Tip `json:"tips"`
	Gifts        config.Gifts `json:"gifts"`
}

func NewInvitation(w config.WeddingConfig) Invitation {
	tips := w.Tips
	if tips == nil {
		tips = []config.Tip{}
	}
	return Invitation{
		Couple:    w.Couple,
		DateLabel: w.Date,
		Target:    w.Target,
		Venue: Venue{
			Name:    w.Venue,
			Address: w.Address,
			MapsURL: w.MapsURL,
		},
		Schedule: Schedule{
			Ceremony:  w.Ceremony,
			Reception: w.Reception,
		},
		Verse:        w.Verse,
		RSVPDeadline: w.Deadline,
		TransportURL: w.Transport,
		DressCode:    w.DressCode,
		Tips:         tips,
		Gifts:        w.Gifts,
	}
}
