package dto

import "mdt-records-be/pkg/reactive"

type LookupResponse struct {
	Kind       string               `json:"kind"`
	Query      string               `json:"query"`
	Candidates []reactive.Candidate `json:"candidates"`
	Cached     bool                 `json:"cached"`
}

type RefreshResponse struct {
	Event       string `json:"event"`
	Subscribers int    `json:"subscribers"`
	Relayed     bool   `json:"relayed"`
}
