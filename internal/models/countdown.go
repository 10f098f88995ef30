package models

import "weddinginvite/internal/countdown"

type CountdownResponse struct {
	Target   string             `json:"target"`
	Snapshot countdown.Snapshot `json:"snapshot"`
	Display  countdown.Display  `json:"display"`
	Text     string             `json:"text"`
}

func NewCountdownResponse(target string, s countdown.Snapshot) CountdownResponse {
	return CountdownResponse{
		Target:   target,
		Snapshot: s,
		Display:  s.Display(),
		Text:     s.String(),
	}
}
