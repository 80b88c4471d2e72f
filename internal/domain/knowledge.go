package domain

// Knowledge is the typed view of the merged knowledge document. Every
// field is optional; matcher rules declare exactly which fields they
// read and fall back to generic wording when a field is empty.
type Knowledge struct {
	Club       ClubInfo   `json:"club"`
	LeoGeneral LeoGeneral `json:"leo_general"`
}

// ClubInfo holds facts about this specific club.
type ClubInfo struct {
	Name        string        `json:"name,omitempty"`
	Description string        `json:"description,omitempty"`
	Motto       string        `json:"motto,omitempty"`
	Join        JoinInfo      `json:"join"`
	Contact     ContactInfo   `json:"contact"`
	Board       BoardInfo     `json:"board"`
	Projects    []ProjectInfo `json:"projects,omitempty"`
}

// JoinInfo describes the membership process.
type JoinInfo struct {
	How     string `json:"how,omitempty"`
	FormURL string `json:"formUrl,omitempty"`
}

// ContactInfo holds the club's reachable channels.
type ContactInfo struct {
	Email  string            `json:"email,omitempty"`
	Social map[string]string `json:"social,omitempty"`
}

// BoardInfo holds the current board summary.
type BoardInfo struct {
	Year string `json:"year,omitempty"`
	Note string `json:"note,omitempty"`
}

// ProjectInfo is one entry of the club's curated project list.
type ProjectInfo struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// LeoGeneral holds facts about the Leo program at large, independent
// of any particular club.
type LeoGeneral struct {
	WhatIsLeo  string `json:"what_is_leo,omitempty"`
	AgeRange   string `json:"age_range,omitempty"`
	Benefits   string `json:"benefits,omitempty"`
	Activities string `json:"activities,omitempty"`
}
