package logger

import "strings"

// Example: john.doe@gmail.com -> j***@gmail.com
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***@***"
	}

	username := parts[0]
	domain := parts[1]

	if len(username) == 0 {
		return "***@" + domain
	}

	// Keep only first character of username
	return username[:1] + "***@" + domain
}

// MaskEmailPtr masks an optional email
func MaskEmailPtr(email *string) string {
	if email == nil {
		return ""
	}
	return MaskEmail(*email)
}

// MaskToken keeps the last four characters of OAuth/FCM tokens
// Example: ya29.a0AfH6SMB...xYz9 -> ***xYz9
func MaskToken(token string) string {
	if len(token) <= 4 {
		return "***"
	}
	return "***" + token[len(token)-4:]
}
