package models

// Character is a persisted persona record. It lives entirely inside the
// media host; once fetched it is read-only from the application's side.
type Character struct {
	Name           string   `json:"name"`
	URLName        string   `json:"urlName"`
	ImageURL       string   `json:"imageUrl"`
	Bio            string   `json:"bio"`
	Scenario       string   `json:"scenario"`
	Personality    string   `json:"personality"`
	FirstMessage   string   `json:"firstMessage"`
	ExampleDialogs string   `json:"exampleDialogs"`
	Tags           []string `json:"tags"`
}

// CharacterSummary is the directory listing shape. The host's search API
// only exposes a subset of the context metadata per result.
type CharacterSummary struct {
	Name     string   `json:"name"`
	ImageURL string   `json:"imageUrl"`
	Bio      string   `json:"bio"`
	Tags     []string `json:"tags"`
}

// CharacterFields is the user-submitted half of a create request
type CharacterFields struct {
	Name           string   `json:"name"`
	Bio            string   `json:"bio"`
	Scenario       string   `json:"scenario"`
	Personality    string   `json:"personality"`
	FirstMessage   string   `json:"firstMessage"`
	ExampleDialogs string   `json:"exampleDialogs"`
	Tags           []string `json:"tags"`
}

// ImageUpload is a portrait image received from a create form
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}
