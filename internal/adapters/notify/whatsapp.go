package notify

import (
	"fmt"
	"net/url"
)

// WhatsAppLink builds the compose hand-off URL for a digits-only
// international phone number. Opening it is the UI's job; no delivery
// confirmation ever comes back.
func WhatsAppLink(phone, message string) (string, error) {
	if phone == "" {
		return "", fmt.Errorf("whatsapp link: phone is required")
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("whatsapp link: phone %q must contain digits only", phone)
		}
	}

	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(message), nil
}
