package challonge

// --- Tournaments ---
type createTournamentDTO struct {
	APIKey     string        `json:"api_key"`
	Tournament tournamentDTO `json:"tournament"`
}

type tournamentDTO struct {
	Name            string `json:"name"`
	URL             string `json:"url"`
	Description     string `json:"description"`
	RankedBy        string `json:"ranked_by"`
	SignupCap       int    `json:"signup_cap"`
	CheckInDuration int    `json:"check_in_duration"`
	OpenSignup      bool   `json:"open_signup"`
	Subdomain       string `json:"subdomain"`
}

type tournamentEnvelopeDTO struct {
	Tournament struct {
		ID               int64  `json:"id"`
		URL              string `json:"url"`
		FullChallongeURL string `json:"full_challonge_url"`
	} `json:"tournament"`
}

// --- Participants ---
type bulkAddDTO struct {
	APIKey       string           `json:"api_key"`
	Participants []participantDTO `json:"participants"`
}

type participantDTO struct {
	Name string `json:"name"`
}
