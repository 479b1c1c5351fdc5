package config

// Config holds all configuration for the application.
type Config struct {
	Port                string
	DataDir             string
	ClubsFile           string
	CompetitionsFile    string
	BookingsFile        string
	MaxPlacesPerBooking int
	RefreshCompetitions bool
	LogLevel            string
	Slack               SlackConfig
	ProjectID           string
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

// Enabled reports whether Slack notifications can be sent.
func (c SlackConfig) Enabled() bool {
	return c.Token != "" && c.ChannelID != ""
}
