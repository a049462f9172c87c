package models

// OutboundMessageRequest is a WhatsApp message pushed through the HTTP API.
// An empty To addresses the hotel manager.
type OutboundMessageRequest struct {
	To         string `json:"to"`
	Message    string `json:"message" binding:"required"`
	PreviewURL bool   `json:"preview_url"`
}

// ToManager reports whether the message goes to the configured manager.
func (r OutboundMessageRequest) ToManager() bool { return r.To == "" }
