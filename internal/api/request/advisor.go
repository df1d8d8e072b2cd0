package request

// AskAdvisorRequest is the payload for an advisor chat message.
type AskAdvisorRequest struct {
	Question string `json:"question"`
}
