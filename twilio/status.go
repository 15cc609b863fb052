package twilio

import (
	"context"
	"strings"
)

// ConfigStatus is the credential summary exposed to the dashboard. The
// account SID is masked; secrets are never included.
type ConfigStatus struct {
	Configured  bool   `json:"configured"`
	AccountSid  string `json:"accountSid,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Warning     string `json:"warning,omitempty"`
}

// Status summarizes the current credential configuration. It never
// returns an error: any resolution failure degrades to configured=false.
func Status(ctx context.Context, source CredentialSource) ConfigStatus {
	creds, err := source.Resolve(ctx)
	if err != nil {
		return ConfigStatus{}
	}

	status := ConfigStatus{
		Configured:  creds.Usable(),
		AccountSid:  maskAccountSID(creds.AccountSID),
		PhoneNumber: creds.PhoneNumber,
	}

	hasAPIKey := creds.APIKey != "" && creds.APIKeySecret != ""
	if hasAPIKey && !strings.HasPrefix(creds.APIKey, "SK") {
		status.Warning = `API key format may be incorrect. Valid Twilio API keys start with "SK".`
	}

	return status
}

func maskAccountSID(sid string) string {
	if sid == "" {
		return ""
	}
	if len(sid) > 6 {
		sid = sid[:6]
	}
	return sid + "..."
}
