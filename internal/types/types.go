package types

type ChatRequest struct {
	UserID  string `json:"userId"`
	Role    string `json:"role"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

type ChatReply struct {
	Role     string `json:"role"`
	Message  string `json:"message"`
	Response string `json:"response"`
}

type SaveTokenRequest struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
