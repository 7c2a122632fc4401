package model

// SuggestRequest asks for a random password that satisfies the password policy.
// A zero Length selects the default.
type SuggestRequest struct {
	Length int `json:"length"`
}

// SuggestResponse carries a suggested password.
type SuggestResponse struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
}
