package hubspot

import "encoding/json"

type ContactProperties struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

type Contact struct {
	ID         string            `json:"id"`
	Properties ContactProperties `json:"properties"`
}

// pageResponse is decoded lazily: results stays raw until it is known to be
// a list, and the cursor is normalized to "" when paging, next or after is
// missing, null or empty.
type pageResponse struct {
	Results json.RawMessage `json:"results"`
	Paging  *struct {
		Next *struct {
			After string `json:"after"`
		} `json:"next"`
	} `json:"paging"`
}

func (p *pageResponse) nextCursor() string {
	if p.Paging == nil || p.Paging.Next == nil {
		return ""
	}

	return p.Paging.Next.After
}
