package repository

import (
	"encoding/json"
	"slices"
)

// Repository is a tracked source repository and its like counter.
// Title, URL and Techs hold the JSON values exactly as the client sent them;
// a field that was never sent is nil and left out of responses.
type Repository struct {
	ID    string          `json:"id"`
	Title json.RawMessage `json:"title,omitempty"`
	URL   json.RawMessage `json:"url,omitempty"`
	Techs json.RawMessage `json:"techs,omitempty"`
	Likes int             `json:"likes"`
}

// Fields are the caller-supplied parts of a Repository.
type Fields struct {
	Title json.RawMessage
	URL   json.RawMessage
	Techs json.RawMessage
}

// clone returns a copy that shares no memory with r.
func (r Repository) clone() Repository {
	r.Title = slices.Clone(r.Title)
	r.URL = slices.Clone(r.URL)
	r.Techs = slices.Clone(r.Techs)
	return r
}

func (f Fields) clone() Fields {
	return Fields{
		Title: slices.Clone(f.Title),
		URL:   slices.Clone(f.URL),
		Techs: slices.Clone(f.Techs),
	}
}
