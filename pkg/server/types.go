package server

const (
	DefaultListenAddress = ":9102"
)

type PathsResponse struct {
	Results []int `json:"results"`
}

type DebugState struct {
	Enabled bool `json:"enabled"`
}
