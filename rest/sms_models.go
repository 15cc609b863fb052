package rest

type SendSMSRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

type SendSMSResponse struct {
	Success bool   `json:"success"`
	Sid     string `json:"sid,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    int    `json:"code,omitempty"`
}
