package output

// TokenInfo describes one token in list output.
type TokenInfo struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Raw         string `json:"raw"`
	Value       any    `json:"value,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ListOutput is the JSON output of the list command.
type ListOutput struct {
	Themes      []string    `json:"themes"`
	Platform    string      `json:"platform"`
	Fingerprint string      `json:"fingerprint"`
	Tokens      []TokenInfo `json:"tokens"`
}

// ResolvedValue is one resolution in resolve output.
type ResolvedValue struct {
	Name     string `json:"name"`
	Platform string `json:"platform"`
	Value    any    `json:"value"`
}

// ChangeInfo describes a token whose value a composition changed.
type ChangeInfo struct {
	Name   string `json:"name"`
	Before any    `json:"before"`
	After  any    `json:"after"`
}

// ComposeOutput is the JSON output of the compose command.
type ComposeOutput struct {
	Themes      []string     `json:"themes"`
	Platform    string       `json:"platform"`
	Fingerprint string       `json:"fingerprint"`
	Tokens      int          `json:"tokens"`
	Changes     []ChangeInfo `json:"changes"`
}

// CheckProblem is one failure found by the check command.
type CheckProblem struct {
	Theme    string `json:"theme"`
	Platform string `json:"platform,omitempty"`
	Token    string `json:"token,omitempty"`
	Error    string `json:"error"`
}

// CheckOutput is the JSON output of the check command.
type CheckOutput struct {
	OK        bool           `json:"ok"`
	Themes    []string       `json:"themes"`
	Platforms []string       `json:"platforms"`
	Tokens    int            `json:"tokens"`
	Problems  []CheckProblem `json:"problems"`
}
